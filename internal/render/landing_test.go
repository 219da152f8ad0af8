package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ziadkadry99/persona/internal/model"
)

func TestLandingMainDefaults(t *testing.T) {
	got := LandingMain(model.Landing{})
	if !strings.Contains(got, defaultLandingTitle) {
		t.Errorf("default title missing: %s", got)
	}
	if !strings.Contains(got, defaultLandingSubtitle) {
		t.Errorf("default subtitle missing: %s", got)
	}
	if strings.Contains(got, "Open Business") {
		t.Error("business banner rendered without business block")
	}
}

func TestLandingMainGroups(t *testing.T) {
	var l model.Landing
	doc := `{
	  "title": "Fair 2026",
	  "business": {"title": "Acme"},
	  "groups": [
	    {"title": "Speakers", "items": [{"name": "Ada", "href": "ada/", "avatar": "ada.png", "note": "Keynote"}]},
	    {"title": "Hosts", "items": []}
	  ]
	}`
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := LandingMain(l)
	wants := []string{
		"Fair 2026",
		`<a class="btn btn-primary" href="business/">Open Business</a>`,
		`<h2 class="h5 section-title mb-0">Speakers</h2>`,
		`<div class="fw-semibold">Ada</div>`,
		`<div class="small muted">Keynote</div>`,
		`href="ada/">Open</a>`,
		`<h2 class="h5 section-title mb-0">Hosts</h2>`,
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("LandingMain() missing %q", w)
		}
	}
	if strings.Index(got, "Speakers") > strings.Index(got, "Hosts") {
		t.Error("groups out of order")
	}
}
