package editor

import (
	"reflect"

	"github.com/goliatone/go-pagebuilder/site"
)

// SelectionKind enumerates the selection variants. Only one variant is active
// at a time.
type SelectionKind int

const (
	SelectNothing SelectionKind = iota
	SelectBlock
	SelectElement
	SelectChrome
	SelectPageConfig
)

func (k SelectionKind) String() string {
	switch k {
	case SelectBlock:
		return "block"
	case SelectElement:
		return "element"
	case SelectChrome:
		return "chrome"
	case SelectPageConfig:
		return "page-config"
	default:
		return "nothing"
	}
}

// Selection is the single focused entity of the editor. Element selections
// carry their parent block id.
type Selection struct {
	Kind      SelectionKind   `json:"kind"`
	BlockID   string          `json:"blockId,omitempty"`
	ElementID string          `json:"elementId,omitempty"`
	Chrome    site.ChromeKind `json:"chrome,omitempty"`
}

// NoSelection selects nothing.
func NoSelection() Selection { return Selection{} }

// BlockSelection selects a whole block.
func BlockSelection(blockID string) Selection {
	return Selection{Kind: SelectBlock, BlockID: blockID}
}

// ElementSelection selects an element inside its block.
func ElementSelection(blockID, elementID string) Selection {
	return Selection{Kind: SelectElement, BlockID: blockID, ElementID: elementID}
}

// ChromeSelection selects the header or footer of the current page.
func ChromeSelection(kind site.ChromeKind) Selection {
	return Selection{Kind: SelectChrome, Chrome: kind}
}

// PageConfigSelection selects the settings of the current page.
func PageConfigSelection() Selection { return Selection{Kind: SelectPageConfig} }

// SelectedBlockID is set only while a block itself is selected.
func (s Selection) SelectedBlockID() string {
	if s.Kind == SelectBlock {
		return s.BlockID
	}
	return ""
}

// SelectedElementID is set only while an element is selected.
func (s Selection) SelectedElementID() string {
	if s.Kind == SelectElement {
		return s.ElementID
	}
	return ""
}

// SelectedChrome is set only while the header or footer is selected.
func (s Selection) SelectedChrome() site.ChromeKind {
	if s.Kind == SelectChrome {
		return s.Chrome
	}
	return ""
}

// ShowingPageConfig reports whether the page settings form is open.
func (s Selection) ShowingPageConfig() bool {
	return s.Kind == SelectPageConfig
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return s.Kind == SelectNothing }

// touchesBlock reports whether the selection is the block or one of its elements.
func (s Selection) touchesBlock(blockID string) bool {
	return (s.Kind == SelectBlock || s.Kind == SelectElement) && s.BlockID == blockID
}

// Sheet identifies the bottom sheet or modal currently open.
type Sheet string

const (
	SheetNone         Sheet = ""
	SheetAddBlock     Sheet = "add-block"
	SheetAddElement   Sheet = "add-element"
	SheetProperties   Sheet = "properties"
	SheetPageSettings Sheet = "page-settings"
)

// Toolbar is the floating toolbar anchored to the selection.
type Toolbar struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// UI holds transient interface state that is never persisted.
type UI struct {
	ActiveSheet Sheet   `json:"activeSheet,omitempty"`
	InsertIndex int     `json:"insertIndex"`
	Toolbar     Toolbar `json:"toolbar"`
}

// NoInsertIndex marks an unset insertion cursor.
const NoInsertIndex = -1

// State is the full editor state: the persisted document plus selection and
// UI fields.
type State struct {
	Site      site.Site `json:"site"`
	Selection Selection `json:"selection"`
	UI        UI        `json:"ui"`
}

// NewState returns an editor over s with nothing selected.
func NewState(s site.Site) State {
	return State{
		Site:      s.Normalize(),
		Selection: NoSelection(),
		UI:        UI{InsertIndex: NoInsertIndex},
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Site = s.Site.Clone()
	return out
}

// CurrentPage returns the page being edited.
func (s State) CurrentPage() (site.Page, bool) {
	return s.Site.CurrentPage()
}

func sameSite(a, b site.Site) bool {
	return reflect.DeepEqual(a, b)
}
