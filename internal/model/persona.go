package model

import (
	"encoding/json"
	"fmt"
)

// Persona section type tags.
const (
	TypeText      = "text"
	TypeKV        = "kv"
	TypeBadges    = "badges"
	TypeTimeline  = "timeline"
	TypeCards     = "cards"
	TypeDownloads = "downloads"
	TypeGallery   = "gallery"
)

// FormatMarkdown marks a text section whose body is rendered as markdown.
const FormatMarkdown = "markdown"

// PersonaProfile is the document behind a profile or business page.
type PersonaProfile struct {
	NavTitle Text            `json:"navTitle"`
	Hero     Hero            `json:"hero"`
	Sections PersonaSections `json:"sections"`
}

// Hero is the profile header.
type Hero struct {
	Title    Text     `json:"title"`
	Subtitle Text     `json:"subtitle"`
	Meta     Text     `json:"meta"`
	Avatar   Text     `json:"avatar"`
	Actions  []Action `json:"actions"`
}

// Action is a hero button.
type Action struct {
	Href     Text `json:"href"`
	Label    Text `json:"label"`
	Icon     Text `json:"icon"`
	Variant  Text `json:"variant"`
	Target   Text `json:"target"`
	Download Flag `json:"download"`
}

// PersonaSection is the closed set of typed sections. Render with a type
// switch over the concrete types below; Unknown covers everything else.
type PersonaSection interface {
	SectionTitle() Text
	personaSection()
}

type TextSection struct {
	Title  Text `json:"title"`
	Body   Text `json:"body"`
	Format Text `json:"format"`
}

type KVSection struct {
	Title Text    `json:"title"`
	Rows  []KVRow `json:"rows"`
}

type KVRow struct {
	Label Text `json:"label"`
	Value Text `json:"value"`
}

type BadgesSection struct {
	Title  Text         `json:"title"`
	Groups []BadgeGroup `json:"groups"`
}

type BadgeGroup struct {
	Title Text   `json:"title"`
	Items []Text `json:"items"`
}

type TimelineSection struct {
	Title Text           `json:"title"`
	Items []TimelineItem `json:"items"`
}

type TimelineItem struct {
	Title    Text   `json:"title"`
	Subtitle Text   `json:"subtitle"`
	Period   Text   `json:"period"`
	Bullets  []Text `json:"bullets"`
}

type CardsSection struct {
	Title Text   `json:"title"`
	Note  Text   `json:"note"`
	Items []Card `json:"items"`
}

type Card struct {
	Title    Text       `json:"title"`
	Subtitle Text       `json:"subtitle"`
	Body     Text       `json:"body"`
	Links    []CardLink `json:"links"`
}

type CardLink struct {
	Href   Text `json:"href"`
	Label  Text `json:"label"`
	Target Text `json:"target"`
}

type DownloadsSection struct {
	Title Text       `json:"title"`
	Items []Download `json:"items"`
}

type Download struct {
	File  Text `json:"file"`
	Label Text `json:"label"`
	Note  Text `json:"note"`
}

type GallerySection struct {
	Title  Text   `json:"title"`
	Images []Text `json:"images"`
}

// UnknownSection is any section whose type is not recognized, or whose
// payload did not match the shape its type requires (Err is set then).
type UnknownSection struct {
	Title Text
	Type  string
	Err   error
}

func (s TextSection) SectionTitle() Text      { return s.Title }
func (s KVSection) SectionTitle() Text        { return s.Title }
func (s BadgesSection) SectionTitle() Text    { return s.Title }
func (s TimelineSection) SectionTitle() Text  { return s.Title }
func (s CardsSection) SectionTitle() Text     { return s.Title }
func (s DownloadsSection) SectionTitle() Text { return s.Title }
func (s GallerySection) SectionTitle() Text   { return s.Title }
func (s UnknownSection) SectionTitle() Text   { return s.Title }

func (TextSection) personaSection()      {}
func (KVSection) personaSection()        {}
func (BadgesSection) personaSection()    {}
func (TimelineSection) personaSection()  {}
func (CardsSection) personaSection()     {}
func (DownloadsSection) personaSection() {}
func (GallerySection) personaSection()   {}
func (UnknownSection) personaSection()   {}

// PersonaSections decodes a heterogeneous section array. A section that fails
// to decode becomes an UnknownSection instead of failing the whole document.
type PersonaSections []PersonaSection

func (ps *PersonaSections) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decoding sections: %w", err)
	}
	out := make(PersonaSections, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodePersonaSection(raw))
	}
	*ps = out
	return nil
}

type sectionHeader struct {
	Type  Text `json:"type"`
	Title Text `json:"title"`
}

func decodePersonaSection(raw json.RawMessage) PersonaSection {
	var head sectionHeader
	if err := json.Unmarshal(raw, &head); err != nil {
		return UnknownSection{Err: err}
	}

	var (
		section PersonaSection
		err     error
	)
	switch string(head.Type) {
	case TypeText:
		var s TextSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeKV:
		var s KVSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeBadges:
		var s BadgesSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeTimeline:
		var s TimelineSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeCards:
		var s CardsSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeDownloads:
		var s DownloadsSection
		err = json.Unmarshal(raw, &s)
		section = s
	case TypeGallery:
		var s GallerySection
		err = json.Unmarshal(raw, &s)
		section = s
	default:
		return UnknownSection{Title: head.Title, Type: string(head.Type)}
	}
	if err != nil {
		return UnknownSection{Title: head.Title, Type: string(head.Type), Err: err}
	}
	return section
}

// Landing is the document behind the landing page.
type Landing struct {
	Title    Text           `json:"title"`
	Subtitle Text           `json:"subtitle"`
	Note     Text           `json:"note"`
	Business *Business      `json:"business"`
	Groups   []LandingGroup `json:"groups"`
}

// Business is the optional banner linking to the business page.
type Business struct {
	Title    Text `json:"title"`
	Subtitle Text `json:"subtitle"`
	Href     Text `json:"href"`
}

type LandingGroup struct {
	Title    Text          `json:"title"`
	Subtitle Text          `json:"subtitle"`
	Items    []LandingItem `json:"items"`
}

type LandingItem struct {
	Name   Text `json:"name"`
	Note   Text `json:"note"`
	Avatar Text `json:"avatar"`
	Href   Text `json:"href"`
}
