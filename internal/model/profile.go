package model

import (
	"encoding/json"
	"fmt"
)

// KindKeyValue is the only section kind the index archetype renders.
const KindKeyValue = "keyValue"

// ProfileData is the document a ProfileRef.DataFile points at.
type ProfileData struct {
	Headline Text            `json:"headline"`
	Sections ProfileSections `json:"sections"`
}

// Section is one block of a ProfileData document. Content order is display order.
type Section struct {
	Title   Text     `json:"title"`
	Visible Flag     `json:"visible"`
	Kind    Text     `json:"kind"`
	Content *Content `json:"content"`
	// Err is set when the section's content could not be decoded. The
	// section still renders, as a placeholder.
	Err error `json:"-"`
}

// Entries returns the section content as ordered pairs.
func (s Section) Entries() []ContentPair {
	if s.Content == nil {
		return nil
	}
	out := make([]ContentPair, 0, s.Content.Len())
	for pair := s.Content.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, ContentPair{Label: pair.Key, Value: pair.Value})
	}
	return out
}

// ProfileSections decodes each section on its own, so one malformed
// section never fails the whole document.
type ProfileSections []Section

func (ps *ProfileSections) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decoding sections: %w", err)
	}
	out := make(ProfileSections, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodeSection(raw))
	}
	*ps = out
	return nil
}

type sectionFields struct {
	Title   Text `json:"title"`
	Visible Flag `json:"visible"`
	Kind    Text `json:"kind"`
}

// decodeSection decodes one section. A value that is not an object has no
// visible flag and is skipped like any hidden section. The header fields
// accept any JSON value, so when an object fails it is the content that is
// malformed; the section keeps its title, kind and visibility.
func decodeSection(raw json.RawMessage) Section {
	var s Section
	err := json.Unmarshal(raw, &s)
	if err == nil {
		return s
	}
	var head sectionFields
	if herr := json.Unmarshal(raw, &head); herr != nil {
		return Section{Err: herr}
	}
	return Section{
		Title:   head.Title,
		Visible: head.Visible,
		Kind:    head.Kind,
		Err:     fmt.Errorf("decoding content: %w", err),
	}
}
