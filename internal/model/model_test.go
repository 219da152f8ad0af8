package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

const siteJSON = `{
  "site": {"title": "Team", "tagline": "profiles"},
  "defaults": {"person": "zed", "profile": "summary"},
  "people": {
    "zed":   {"enabled": false, "label": "Zed"},
    "bob":   {"enabled": true, "label": "Bob", "profiles": {
      "resume":  {"enabled": true, "dataFile": "data/bob/resume.json"},
      "summary": {"enabled": true, "dataFile": "data/bob/summary.json"}
    }},
    "alice": {"enabled": true, "label": "Alice"}
  },
  "profiles": {"resume": {"label": "Resume"}, "summary": {"label": "Summary"}}
}`

func TestSiteConfigKeepsDocumentOrder(t *testing.T) {
	var cfg SiteConfig
	if err := json.Unmarshal([]byte(siteJSON), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got, want := cfg.PersonKeys(), []string{"zed", "bob", "alice"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PersonKeys() = %v, want %v", got, want)
	}
	bob, ok := cfg.Person("bob")
	if !ok {
		t.Fatal("bob not found")
	}
	if got, want := bob.ProfileKeys(), []string{"resume", "summary"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProfileKeys() = %v, want %v", got, want)
	}
	if !cfg.ProfileEnabled("bob", "summary") {
		t.Error("bob/summary should be enabled")
	}
	if cfg.PersonEnabled("zed") {
		t.Error("zed should be disabled")
	}
	if cfg.ProfileLabel("resume") != "Resume" || cfg.ProfileLabel("other") != "other" {
		t.Errorf("ProfileLabel fallback wrong: %q %q", cfg.ProfileLabel("resume"), cfg.ProfileLabel("other"))
	}
}

func TestNilMapsAreEmpty(t *testing.T) {
	var cfg SiteConfig
	if len(cfg.PersonKeys()) != 0 {
		t.Error("expected no people")
	}
	if _, ok := cfg.Person("x"); ok {
		t.Error("lookup on empty config should fail")
	}
	if cfg.PersonLabel("x") != "x" {
		t.Errorf("PersonLabel fallback = %q, want x", cfg.PersonLabel("x"))
	}
}

func TestValueDecoding(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{`null`, Null()},
		{`"hello"`, Scalar("hello")},
		{`12.50`, Scalar("12.50")},
		{`true`, Scalar("true")},
		{`["a", 2, null]`, List("a", "2", "null")},
		{`{"label": "GitHub", "href": "https://github.com/x"}`, LinkValue("GitHub", "https://github.com/x", false)},
		{`{"href": "cv.pdf", "download": true}`, LinkValue("", "cv.pdf", true)},
		{`{"label": 0, "download": ""}`, LinkValue("", "", false)},
	}
	for _, tt := range tests {
		var got Value
		if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestSectionEntriesKeepOrder(t *testing.T) {
	const data = `{"headline": "Hi", "sections": [
	  {"title": "Contact", "visible": true, "kind": "keyValue",
	   "content": {"Zeta": "z", "Alpha": null, "Mid": ["x"]}}
	]}`
	var pd ProfileData
	if err := json.Unmarshal([]byte(data), &pd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	entries := pd.Sections[0].Entries()
	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	if want := []string{"Zeta", "Alpha", "Mid"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if entries[1].Value.Kind != ValueNull {
		t.Errorf("Alpha kind = %v, want null", entries[1].Value.Kind)
	}
}

func TestPersonaSectionsUnion(t *testing.T) {
	const data = `{
	  "navTitle": "Ada",
	  "hero": {"title": "Ada", "actions": [{"href": "cv.pdf", "download": "yes"}]},
	  "sections": [
	    {"type": "text", "title": "About", "body": "a\n\nb"},
	    {"type": "kv", "rows": [{"label": "Age", "value": 36}]},
	    {"type": "chart", "title": "Stats"},
	    {"type": "gallery", "images": "not-a-list"},
	    {"type": "downloads", "items": [{"file": "a.pdf", "label": "A"}]}
	  ]
	}`
	var doc PersonaProfile
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !bool(doc.Hero.Actions[0].Download) {
		t.Error("download flag should be truthy")
	}
	if len(doc.Sections) != 5 {
		t.Fatalf("sections = %d, want 5", len(doc.Sections))
	}
	if _, ok := doc.Sections[0].(TextSection); !ok {
		t.Errorf("section 0 = %T, want TextSection", doc.Sections[0])
	}
	kv, ok := doc.Sections[1].(KVSection)
	if !ok || kv.Rows[0].Value != "36" {
		t.Errorf("section 1 = %#v, want KVSection with value 36", doc.Sections[1])
	}
	unknown, ok := doc.Sections[2].(UnknownSection)
	if !ok || unknown.Type != "chart" || unknown.Err != nil {
		t.Errorf("section 2 = %#v, want unknown chart", doc.Sections[2])
	}
	malformed, ok := doc.Sections[3].(UnknownSection)
	if !ok || malformed.Err == nil {
		t.Errorf("section 3 = %#v, want malformed gallery", doc.Sections[3])
	}
	if _, ok := doc.Sections[4].(DownloadsSection); !ok {
		t.Errorf("section 4 = %T, want DownloadsSection", doc.Sections[4])
	}
}

func TestProfileSectionsTolerateMalformed(t *testing.T) {
	const data = `{"headline": 7, "sections": [
	  {"title": "Good", "visible": true, "kind": "keyValue", "content": {"k": "v"}},
	  {"title": 2024, "visible": 1, "kind": "chart", "content": {}},
	  {"title": "Broken", "visible": "yes", "kind": "keyValue", "content": "not an object"},
	  42
	]}`
	var pd ProfileData
	if err := json.Unmarshal([]byte(data), &pd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if pd.Headline != "7" {
		t.Errorf("headline = %q, want 7", pd.Headline)
	}
	if len(pd.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(pd.Sections))
	}
	if s := pd.Sections[0]; s.Err != nil || len(s.Entries()) != 1 {
		t.Errorf("good section = %+v", s)
	}
	if s := pd.Sections[1]; s.Title != "2024" || !bool(s.Visible) || s.Kind != "chart" || s.Err != nil {
		t.Errorf("loose header section = %+v", s)
	}
	if s := pd.Sections[2]; s.Err == nil || s.Title != "Broken" || !bool(s.Visible) || s.Kind != KindKeyValue {
		t.Errorf("broken content section = %+v", s)
	}
	if s := pd.Sections[3]; s.Err == nil || bool(s.Visible) {
		t.Errorf("non-object section = %+v, want hidden with error", s)
	}
}
