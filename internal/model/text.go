package model

import (
	"bytes"
	"encoding/json"

	"github.com/ziadkadry99/persona/internal/escape"
)

// Text is a display string that tolerates any JSON scalar. Numbers and
// booleans keep their literal spelling; null decodes to "". Objects and
// arrays are kept as compact JSON so a misplaced value still shows up.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*t = Text(escape.Stringify(raw))
	return nil
}

func (t Text) String() string { return string(t) }

// Or returns t, or fallback when t is empty.
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

// Flag is a boolean that follows JSON truthiness: false, 0, "" and null are
// false, everything else is true.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*f = Flag(truthy(raw))
	return nil
}
