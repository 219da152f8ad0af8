package escape

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<script>", "&lt;script&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#039;s"},
		{"&lt;", "&amp;lt;"},
		{"", ""},
	}
	for _, tt := range tests {
		got := String(tt.input)
		if got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeNonStrings(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
		{[]string{"<a>"}, `[&quot;&lt;a&gt;&quot;]`},
	}
	for _, tt := range tests {
		got := Escape(tt.input)
		if got != tt.want {
			t.Errorf("Escape(%#v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeIsStableForIdenticalInput(t *testing.T) {
	in := `Tom & "Jerry" <3`
	first := String(in)
	second := String(in)
	if first != second {
		t.Errorf("escaping the same input twice differed: %q vs %q", first, second)
	}
}
