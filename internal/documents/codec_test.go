package documents_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/site"
)

func sampleSite(t *testing.T) site.Site {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	block := site.NewBlock("block-1", site.BlockCentered)
	for i, elementType := range site.ElementTypes() {
		content, err := site.DefaultContent(elementType, now)
		if err != nil {
			t.Fatalf("DefaultContent(%s): %v", elementType, err)
		}
		block.Elements = append(block.Elements, site.Element{
			ID:      string(elementType) + "-" + string(rune('a'+i)),
			Type:    elementType,
			Content: content,
		})
	}

	home := site.NewPage("page-1", "Home")
	home.Header = site.HeaderFooterConfig{
		Template:  string(site.HeaderSimple),
		BrandName: "Loja",
		Links:     []site.Link{{Text: "Início", Href: "/"}},
	}
	home.Blocks = []site.Block{block}

	about := site.NewPage("page-2", "Sobre")
	about.Footer = site.HeaderFooterConfig{
		Template:    string(site.FooterSocial),
		SocialLinks: []site.SocialLink{{Platform: "instagram", URL: "https://instagram.com/loja"}},
	}

	return site.Site{Pages: []site.Page{home, about}, CurrentPageID: "page-2"}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := sampleSite(t)

	payload, err := documents.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	decoded, err := documents.Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("expected round trip to preserve document\nwant %#v\ngot  %#v", original, decoded)
	}
}

func TestRoundTripKeepsFreeFormStyles(t *testing.T) {
	styled := site.NewBlock("styled", site.BlockFullWidth)
	styled.Elements = []site.Element{
		{ID: "size", Type: site.ElementText, Content: site.TextContent{
			Text:  "Promo",
			Style: site.Style{"fontSize": 18, "lineHeight": 1.5, "opacity": uint8(1), "bold": true},
		}},
		{ID: "nested", Type: site.ElementTitle, Content: site.TitleContent{
			Text: "Oferta",
			Style: site.Style{
				"border":  map[string]any{"width": 2, "sides": []string{"top", "bottom"}},
				"shadow":  site.Style{"blur": int64(4)},
				"margins": []any{8, "auto"},
				"empty":   map[string]any{},
			},
		}},
		{ID: "bare", Type: site.ElementButton, Content: site.ButtonContent{Text: "Comprar", Href: "/", Style: site.Style{}}},
	}
	page := site.NewPage("page-1", "Home")
	page.Blocks = []site.Block{styled}
	built := site.Site{Pages: []site.Page{page}, CurrentPageID: "page-1"}

	// The editor keeps documents as clones of what it was given.
	stored := built.Clone()

	payload, err := documents.Serialize(stored)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	decoded, err := documents.Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if !reflect.DeepEqual(stored, decoded) {
		t.Fatalf("expected styles to survive the round trip\nwant %#v\ngot  %#v", stored, decoded)
	}

	text := stored.Pages[0].Blocks[0].Elements[0].Content.(site.TextContent)
	if size, ok := text.Style["fontSize"].(float64); !ok || size != 18 {
		t.Fatalf("expected fontSize stored as float64 18, got %#v", text.Style["fontSize"])
	}
	button := stored.Pages[0].Blocks[0].Elements[2].Content.(site.ButtonContent)
	if button.Style != nil {
		t.Fatalf("expected empty style to be stored as nil, got %#v", button.Style)
	}
	if again := stored.Clone(); !reflect.DeepEqual(stored, again) {
		t.Fatalf("expected cloning a stored document to be stable, got %#v", again)
	}
}

func TestDeserializeRepairsDanglingCurrentPage(t *testing.T) {
	payload := []byte(`{"pages":[{"id":"p1","name":"A","blocks":null},{"id":"p2","name":"B"}],"currentPageId":"gone"}`)

	decoded, err := documents.Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if decoded.CurrentPageID != "p1" {
		t.Fatalf("expected current page p1, got %q", decoded.CurrentPageID)
	}
	if decoded.Pages[0].Blocks == nil || decoded.Pages[1].Blocks == nil {
		t.Fatal("expected nil block lists to be normalized")
	}
	if decoded.Pages[1].Header.Template != string(site.HeaderNone) {
		t.Fatalf("expected missing header template to become none, got %q", decoded.Pages[1].Header.Template)
	}
}

func TestDeserializeToleratesUnknownAndMissingContentKeys(t *testing.T) {
	payload := []byte(`{
		"pages":[{"id":"p1","name":"A","blocks":[{"id":"b1","type":"grid","elements":[
			{"id":"e1","type":"countdown","content":{"futureKey":true}},
			{"id":"e2","type":"title"}
		]}]}],
		"currentPageId":"p1"
	}`)

	decoded, err := documents.Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	elements := decoded.Pages[0].Blocks[0].Elements
	if countdown, ok := elements[0].Content.(site.CountdownContent); !ok || countdown.TargetDate != "" {
		t.Fatalf("expected empty countdown content, got %#v", elements[0].Content)
	}
	if _, ok := elements[1].Content.(site.TitleContent); !ok {
		t.Fatalf("expected title content, got %T", elements[1].Content)
	}
}

func TestDeserializeRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":              ``,
		"syntax":             `{"pages":[`,
		"no pages":           `{"pages":[],"currentPageId":""}`,
		"pages not array":    `{"pages":{}}`,
		"unknown block type": `{"pages":[{"id":"p1","blocks":[{"id":"b1","type":"hero"}]}]}`,
		"unknown element":    `{"pages":[{"id":"p1","blocks":[{"id":"b1","type":"grid","elements":[{"id":"e1","type":"map"}]}]}]}`,
		"duplicate page ids": `{"pages":[{"id":"p1"},{"id":"p1"}]}`,
		"duplicate element":  `{"pages":[{"id":"p1","blocks":[{"id":"b1","type":"grid","elements":[{"id":"e1","type":"text"},{"id":"e1","type":"text"}]}]}]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := documents.Deserialize([]byte(payload))
			if !errors.Is(err, documents.ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestDeserializeReportsSchemaIssues(t *testing.T) {
	_, err := documents.Deserialize([]byte(`{"pages":[{"id":"p1","blocks":[{"id":"b1","type":"hero"}]}]}`))
	issues := documents.Issues(err)
	if len(issues) == 0 {
		t.Fatalf("expected schema issues, got %v", err)
	}
	if issues[0].Location != "#/pages/0/blocks/0/type" {
		t.Fatalf("expected issue at block type, got %q", issues[0].Location)
	}
}
