package editor

import (
	"testing"

	"github.com/goliatone/go-pagebuilder/site"
)

func TestResolveFormPriority(t *testing.T) {
	r := newTestReducer()
	state := NewState(site.DefaultSite())
	if form := ResolveForm(state); form.Kind != FormPlaceholder {
		t.Fatalf("expected placeholder, got %s", form.Kind)
	}

	state = mustReduce(t, r, state, AddBlockAction{BlockType: site.BlockFullWidth, BlockID: "A"})
	state = mustReduce(t, r, state, AddElementAction{BlockID: "A", ElementType: site.ElementCountdown, ElementID: "E"})

	state = mustReduce(t, r, state, SelectBlockAction{BlockID: "A"})
	if form := ResolveForm(state); form.Kind != FormBlock || form.Block.ID != "A" {
		t.Fatalf("expected block form, got %+v", form)
	}

	state = mustReduce(t, r, state, SelectElementAction{ElementID: "E"})
	form := ResolveForm(state)
	if form.Kind != FormElement || form.ElementType != site.ElementCountdown || form.Block.ID != "A" {
		t.Fatalf("expected countdown element form, got %+v", form)
	}

	state = mustReduce(t, r, state, SelectChromeAction{Kind: site.ChromeFooter})
	if form := ResolveForm(state); form.Kind != FormChrome || form.ChromeKind != site.ChromeFooter {
		t.Fatalf("expected footer form, got %+v", form)
	}

	state = mustReduce(t, r, state, ShowPageConfigAction{})
	if form := ResolveForm(state); form.Kind != FormPageConfig || form.Page.ID != site.DefaultPageID {
		t.Fatalf("expected page config form, got %+v", form)
	}
}

func TestResolveFormFallsBackForStaleSelection(t *testing.T) {
	state := NewState(site.DefaultSite())
	state.Selection = ElementSelection("gone", "also-gone")
	if form := ResolveForm(state); form.Kind != FormPlaceholder {
		t.Fatalf("expected placeholder for stale element, got %s", form.Kind)
	}
	state.Selection = BlockSelection("gone")
	if form := ResolveForm(state); form.Kind != FormPlaceholder {
		t.Fatalf("expected placeholder for stale block, got %s", form.Kind)
	}
}

func TestVisibleChrome(t *testing.T) {
	r := newTestReducer()
	state := NewState(site.DefaultSite())
	header, footer := VisibleChrome(state)
	if header || footer {
		t.Fatalf("expected default chrome hidden")
	}
	social := "social"
	state = mustReduce(t, r, state, UpdateChromeAction{PageID: site.DefaultPageID, Kind: site.ChromeFooter, Patch: site.ChromePatch{Template: &social}})
	if _, footer := VisibleChrome(state); !footer {
		t.Fatalf("expected footer visible")
	}
}

func TestNewElementUsesFactoryOnce(t *testing.T) {
	r := newTestReducer()
	element, err := r.NewElement(site.ElementCountdown)
	if err != nil {
		t.Fatalf("new element: %v", err)
	}
	if element.ID != "element-1" {
		t.Fatalf("expected sequenced id, got %s", element.ID)
	}
	if got := element.Content.(site.CountdownContent).TargetDate; got != "2024-01-17" {
		t.Fatalf("expected target seven days after clock, got %s", got)
	}
}
