package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ziadkadry99/persona/internal/escape"
)

// ValueKind discriminates the shapes a keyValue content entry can take.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueLink
	ValueList
	ValueScalar
)

// Link is the object form of a content value.
type Link struct {
	Label    string
	Href     string
	Download bool
}

// Value is one keyValue content entry, decoded once at the JSON boundary.
type Value struct {
	Kind   ValueKind
	Link   Link
	List   []string
	Scalar string
}

// Null, Scalar, List and LinkValue build values in code and tests.
func Null() Value                { return Value{Kind: ValueNull} }
func Scalar(s string) Value      { return Value{Kind: ValueScalar, Scalar: s} }
func List(items ...string) Value { return Value{Kind: ValueList, List: items} }
func LinkValue(label, href string, download bool) Value {
	return Value{Kind: ValueLink, Link: Link{Label: label, Href: href, Download: download}}
}

// MarshalJSON writes the value back in its document form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNull:
		return []byte("null"), nil
	case ValueLink:
		return json.Marshal(struct {
			Label    string `json:"label,omitempty"`
			Href     string `json:"href"`
			Download bool   `json:"download,omitempty"`
		}{v.Link.Label, v.Link.Href, v.Link.Download})
	case ValueList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON accepts null, objects, arrays and scalars. Objects are read
// as links whatever keys they carry; missing keys become empty strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding content value: %w", err)
	}

	switch x := raw.(type) {
	case map[string]any:
		*v = Value{Kind: ValueLink, Link: Link{
			Label:    truthyString(x["label"]),
			Href:     truthyString(x["href"]),
			Download: truthy(x["download"]),
		}}
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			if item == nil {
				items[i] = "null"
				continue
			}
			items[i] = escape.Stringify(item)
		}
		*v = Value{Kind: ValueList, List: items}
	default:
		*v = Scalar(escape.Stringify(x))
	}
	return nil
}

// Content is the ordered label -> value mapping of a keyValue section.
type Content = orderedmap.OrderedMap[string, Value]

// NewContent builds Content from alternating label/value pairs in order.
func NewContent(pairs ...ContentPair) *Content {
	c := orderedmap.New[string, Value]()
	for _, p := range pairs {
		c.Set(p.Label, p.Value)
	}
	return c
}

// ContentPair is one ordered entry passed to NewContent.
type ContentPair struct {
	Label string
	Value Value
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func truthyString(v any) string {
	if !truthy(v) {
		return ""
	}
	return escape.Stringify(v)
}
