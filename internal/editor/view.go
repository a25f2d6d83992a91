package editor

import (
	"github.com/goliatone/go-pagebuilder/site"
)

// FormKind names the properties form the editor should render.
type FormKind string

const (
	FormPlaceholder FormKind = "placeholder"
	FormPageConfig  FormKind = "page-config"
	FormChrome      FormKind = "chrome"
	FormElement     FormKind = "element"
	FormBlock       FormKind = "block"
)

// FormView is the resolved properties form with the entity it edits.
type FormView struct {
	Kind        FormKind
	Page        site.Page
	ChromeKind  site.ChromeKind
	Chrome      site.HeaderFooterConfig
	Block       site.Block
	Element     site.Element
	ElementType site.ElementType
}

// ResolveForm maps the selection to a form, checking page config first, then
// header/footer, element and block. Selections pointing at entities that no
// longer exist resolve to the placeholder.
func ResolveForm(state State) FormView {
	page, ok := state.CurrentPage()
	if !ok {
		return FormView{Kind: FormPlaceholder}
	}
	sel := state.Selection

	if sel.ShowingPageConfig() {
		return FormView{Kind: FormPageConfig, Page: page}
	}
	if kind := sel.SelectedChrome(); kind != "" {
		return FormView{Kind: FormChrome, Page: page, ChromeKind: kind, Chrome: page.Chrome(kind)}
	}
	if elementID := sel.SelectedElementID(); elementID != "" {
		if block, found := page.Block(sel.BlockID); found {
			if element, found := block.Element(elementID); found {
				return FormView{Kind: FormElement, Page: page, Block: block, Element: element, ElementType: element.Type}
			}
		}
		return FormView{Kind: FormPlaceholder, Page: page}
	}
	if blockID := sel.SelectedBlockID(); blockID != "" {
		if block, found := page.Block(blockID); found {
			return FormView{Kind: FormBlock, Page: page, Block: block}
		}
	}
	return FormView{Kind: FormPlaceholder, Page: page}
}

// VisibleChrome reports which chrome slots of the current page render.
func VisibleChrome(state State) (header, footer bool) {
	page, ok := state.CurrentPage()
	if !ok {
		return false, false
	}
	return page.Header.Visible(), page.Footer.Visible()
}
