package editor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/site"
	"github.com/google/uuid"
)

// DefaultPageNameFormat names pages created by AddPageAction.
const DefaultPageNameFormat = "Página %d"

// IDGenerator returns a fresh identifier for a page, block or element.
type IDGenerator func(kind string) string

// UUIDGenerator prefixes random UUIDs with the entity kind.
func UUIDGenerator() IDGenerator {
	return func(kind string) string {
		return kind + "-" + uuid.NewString()
	}
}

// Outcome describes what a reduction changed. Err carries not-found and
// guard signals; the state is unchanged whenever Err is set.
type Outcome struct {
	DocumentChanged  bool
	SelectionChanged bool
	PageChanged      bool
	UIChanged        bool
	Err              error
}

// Noop reports whether the action left the state untouched.
func (o Outcome) Noop() bool {
	return !o.DocumentChanged && !o.SelectionChanged && !o.PageChanged && !o.UIChanged
}

// Benign reports whether Err is one of the tolerated signals (missing id,
// last page, move past the boundary).
func (o Outcome) Benign() bool {
	return o.Err == nil ||
		site.IsNotFound(o.Err) ||
		errors.Is(o.Err, site.ErrLastPage) ||
		errors.Is(o.Err, site.ErrMoveOutOfBounds)
}

// ReducerOption customises a Reducer.
type ReducerOption func(*Reducer)

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen IDGenerator) ReducerOption {
	return func(r *Reducer) {
		if gen != nil {
			r.ids = gen
		}
	}
}

// WithClock overrides the clock used for time based default content.
func WithClock(clock func() time.Time) ReducerOption {
	return func(r *Reducer) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithContentRegistry overrides the default content factories.
func WithContentRegistry(registry *site.ContentRegistry) ReducerOption {
	return func(r *Reducer) {
		if registry != nil {
			r.content = registry
		}
	}
}

// WithPageNameFormat overrides the fmt pattern used to name new pages.
func WithPageNameFormat(format string) ReducerOption {
	return func(r *Reducer) {
		if strings.Contains(format, "%d") {
			r.pageNameFormat = format
		}
	}
}

// Reducer maps (State, Action) to a new State. It holds no editor state of
// its own.
type Reducer struct {
	ids            IDGenerator
	now            func() time.Time
	content        *site.ContentRegistry
	pageNameFormat string
}

// NewReducer builds a reducer with UUID ids and the stock content factories.
func NewReducer(opts ...ReducerOption) *Reducer {
	r := &Reducer{
		ids:            UUIDGenerator(),
		now:            time.Now,
		content:        site.DefaultContentRegistry(),
		pageNameFormat: DefaultPageNameFormat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewElement builds an element of type t with its default content.
func (r *Reducer) NewElement(t site.ElementType) (site.Element, error) {
	content, err := r.content.Build(t, r.now())
	if err != nil {
		return site.Element{}, err
	}
	return site.Element{ID: r.ids("element"), Type: t, Content: content}, nil
}

// Reduce applies action to state. Validation failures and tolerated signals
// are reported through Outcome.Err with the input state returned as is.
func (r *Reducer) Reduce(state State, action Action) (State, Outcome) {
	if action == nil {
		return state, Outcome{Err: fmt.Errorf("editor: nil action")}
	}
	if err := action.Validate(); err != nil {
		return state, Outcome{Err: err}
	}

	next, err := r.apply(state, action)
	if err != nil {
		return state, Outcome{Err: err}
	}
	return next, diff(state, next)
}

func (r *Reducer) apply(state State, action Action) (State, error) {
	next := state
	var err error

	switch a := action.(type) {
	case AddPageAction:
		id := a.PageID
		if id == "" {
			id = r.freshID("page", func(candidate string) bool { return state.Site.PageIndex(candidate) >= 0 })
		}
		name := strings.TrimSpace(a.Name)
		if name == "" {
			name = fmt.Sprintf(r.pageNameFormat, len(state.Site.Pages)+1)
		}
		next.Site, err = AddPage(state.Site, site.NewPage(id, name))
		next.Selection = NoSelection()

	case RemovePageAction:
		next.Site, err = RemovePage(state.Site, a.PageID)
		if next.Site.CurrentPageID != state.Site.CurrentPageID {
			next.Selection = NoSelection()
		}

	case RenamePageAction:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return state, nil
		}
		next.Site, err = UpdatePage(state.Site, a.PageID, site.PagePatch{Name: &name})

	case UpdatePageAction:
		next.Site, err = UpdatePage(state.Site, a.PageID, a.Patch)

	case UpdateChromeAction:
		if a.Kind == site.ChromeFooter {
			next.Site, err = UpdatePageFooter(state.Site, a.PageID, a.Patch)
		} else {
			next.Site, err = UpdatePageHeader(state.Site, a.PageID, a.Patch)
		}

	case SetCurrentPageAction:
		next.Site, err = SetCurrentPage(state.Site, a.PageID)
		next.Selection = NoSelection()

	case AddBlockAction:
		next.Site, err = AddBlock(state.Site, r.newBlock(state.Site, a.BlockID, a.BlockType))

	case AddBlockAtAction:
		block := r.newBlock(state.Site, a.BlockID, a.BlockType)
		next.Site, err = AddBlockAt(state.Site, block, a.Index)
		next.Selection = BlockSelection(block.ID)
		next.UI.ActiveSheet = SheetNone
		next.UI.InsertIndex = NoInsertIndex

	case RemoveBlockAction:
		next.Site, err = RemoveBlock(state.Site, a.BlockID)
		if state.Selection.touchesBlock(a.BlockID) {
			next.Selection = NoSelection()
		}

	case UpdateBlockAction:
		next.Site, err = UpdateBlock(state.Site, a.BlockID, a.Patch)

	case UpdateBlockStyleAction:
		next.Site, err = UpdateBlockStyle(state.Site, a.BlockID, a.Patch)

	case MoveBlockAction:
		next.Site, err = MoveBlock(state.Site, a.BlockID, a.Direction)

	case AddElementAction:
		var element site.Element
		element, err = r.NewElement(a.ElementType)
		if err != nil {
			return state, err
		}
		if a.ElementID != "" {
			element.ID = a.ElementID
		} else if page, ok := state.Site.CurrentPage(); ok {
			if block, found := page.Block(a.BlockID); found {
				for _, taken := block.Element(element.ID); taken; _, taken = block.Element(element.ID) {
					element.ID = r.ids("element")
				}
			}
		}
		next.Site, err = AddElement(state.Site, a.BlockID, element)

	case InsertElementAction:
		next.Site, err = AddElement(state.Site, a.BlockID, a.Element)

	case RemoveElementAction:
		next.Site, err = RemoveElement(state.Site, a.BlockID, a.ElementID)
		if state.Selection.Kind == SelectElement && state.Selection.ElementID == a.ElementID && state.Selection.BlockID == a.BlockID {
			next.Selection = NoSelection()
		}

	case UpdateElementAction:
		next.Site, err = UpdateElement(state.Site, a.BlockID, a.ElementID, site.ElementPatch{Content: a.Content})

	case SelectBlockAction:
		page, ok := state.Site.CurrentPage()
		if !ok {
			return state, site.PageNotFound(state.Site.CurrentPageID)
		}
		if _, found := page.Block(a.BlockID); !found {
			return state, site.BlockNotFound(a.BlockID)
		}
		next.Selection = BlockSelection(a.BlockID)

	case SelectElementAction:
		blockID := a.BlockID
		if blockID == "" {
			var found bool
			if blockID, found = FindElementBlock(state.Site, a.ElementID); !found {
				return state, site.ElementNotFound(a.ElementID)
			}
		} else if err := r.requireElement(state.Site, blockID, a.ElementID); err != nil {
			return state, err
		}
		next.Selection = ElementSelection(blockID, a.ElementID)

	case SelectChromeAction:
		next.Selection = ChromeSelection(a.Kind)

	case ShowPageConfigAction:
		next.Selection = PageConfigSelection()

	case ClearSelectionAction:
		next.Selection = NoSelection()

	case OpenSheetAction:
		next.UI.ActiveSheet = a.Sheet
		if a.InsertIndex != nil {
			next.UI.InsertIndex = *a.InsertIndex
		}

	case CloseSheetAction:
		next.UI.ActiveSheet = SheetNone
		next.UI.InsertIndex = NoInsertIndex

	case ShowToolbarAction:
		next.UI.Toolbar = Toolbar{X: a.X, Y: a.Y, Visible: true}

	case HideToolbarAction:
		next.UI.Toolbar = Toolbar{}

	case ReplaceSiteAction:
		next = NewState(a.Site)

	default:
		return state, fmt.Errorf("editor: unsupported action %s", action.Type())
	}

	if err != nil {
		return state, err
	}
	return next, nil
}

func (r *Reducer) newBlock(s site.Site, id string, t site.BlockType) site.Block {
	if id == "" {
		page, _ := s.CurrentPage()
		id = r.freshID("block", func(candidate string) bool { return page.BlockIndex(candidate) >= 0 })
	}
	return site.NewBlock(id, t)
}

// freshID draws ids until one is not taken in its scope.
func (r *Reducer) freshID(kind string, taken func(string) bool) string {
	id := r.ids(kind)
	for taken(id) {
		id = r.ids(kind)
	}
	return id
}

func (r *Reducer) requireElement(s site.Site, blockID, elementID string) error {
	page, ok := s.CurrentPage()
	if !ok {
		return site.PageNotFound(s.CurrentPageID)
	}
	block, ok := page.Block(blockID)
	if !ok {
		return site.BlockNotFound(blockID)
	}
	if _, ok := block.Element(elementID); !ok {
		return site.ElementNotFound(elementID)
	}
	return nil
}

func diff(prev, next State) Outcome {
	return Outcome{
		DocumentChanged:  !sameSite(prev.Site, next.Site),
		SelectionChanged: prev.Selection != next.Selection,
		PageChanged:      prev.Site.CurrentPageID != next.Site.CurrentPageID,
		UIChanged:        prev.UI != next.UI,
	}
}
