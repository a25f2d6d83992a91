package editor

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/site"
)

// Action is an editor event. Actions satisfy the go-command Message contract
// so they can travel through a dispatcher unchanged.
type Action interface {
	Type() string
	Validate() error
}

const actionPrefix = "pagebuilder.editor."

// AddPageAction appends a page named "Página N" and makes it current. An
// empty PageID is generated.
type AddPageAction struct {
	PageID string `json:"pageId,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (AddPageAction) Type() string    { return actionPrefix + "add_page" }
func (AddPageAction) Validate() error { return nil }

type RemovePageAction struct {
	PageID string `json:"pageId"`
}

func (RemovePageAction) Type() string { return actionPrefix + "remove_page" }
func (a RemovePageAction) Validate() error {
	return requireID("pageId", "remove_page.page_id_required", a.PageID)
}

// RenamePageAction trims the name and ignores empty names.
type RenamePageAction struct {
	PageID string `json:"pageId"`
	Name   string `json:"name"`
}

func (RenamePageAction) Type() string { return actionPrefix + "rename_page" }
func (a RenamePageAction) Validate() error {
	return requireID("pageId", "rename_page.page_id_required", a.PageID)
}

type UpdatePageAction struct {
	PageID string         `json:"pageId"`
	Patch  site.PagePatch `json:"patch"`
}

func (UpdatePageAction) Type() string { return actionPrefix + "update_page" }
func (a UpdatePageAction) Validate() error {
	return requireID("pageId", "update_page.page_id_required", a.PageID)
}

// UpdateChromeAction merges a header or footer patch.
type UpdateChromeAction struct {
	PageID string           `json:"pageId"`
	Kind   site.ChromeKind  `json:"kind"`
	Patch  site.ChromePatch `json:"patch"`
}

func (UpdateChromeAction) Type() string { return actionPrefix + "update_chrome" }
func (a UpdateChromeAction) Validate() error {
	if err := requireID("pageId", "update_chrome.page_id_required", a.PageID); err != nil {
		return err
	}
	return a.Patch.Validate(a.Kind)
}

type SetCurrentPageAction struct {
	PageID string `json:"pageId"`
}

func (SetCurrentPageAction) Type() string { return actionPrefix + "set_current_page" }
func (a SetCurrentPageAction) Validate() error {
	return requireID("pageId", "set_current_page.page_id_required", a.PageID)
}

// AddBlockAction appends a block without touching the selection.
type AddBlockAction struct {
	BlockType site.BlockType `json:"blockType"`
	BlockID   string         `json:"blockId,omitempty"`
}

func (AddBlockAction) Type() string { return actionPrefix + "add_block" }
func (a AddBlockAction) Validate() error {
	return validateBlockType("add_block", a.BlockType)
}

// AddBlockAtAction inserts a block at Index and selects it.
type AddBlockAtAction struct {
	BlockType site.BlockType `json:"blockType"`
	Index     int            `json:"index"`
	BlockID   string         `json:"blockId,omitempty"`
}

func (AddBlockAtAction) Type() string { return actionPrefix + "add_block_at" }
func (a AddBlockAtAction) Validate() error {
	return validateBlockType("add_block_at", a.BlockType)
}

type RemoveBlockAction struct {
	BlockID string `json:"blockId"`
}

func (RemoveBlockAction) Type() string { return actionPrefix + "remove_block" }
func (a RemoveBlockAction) Validate() error {
	return requireID("blockId", "remove_block.block_id_required", a.BlockID)
}

type UpdateBlockAction struct {
	BlockID string          `json:"blockId"`
	Patch   site.BlockPatch `json:"patch"`
}

func (UpdateBlockAction) Type() string { return actionPrefix + "update_block" }
func (a UpdateBlockAction) Validate() error {
	if err := requireID("blockId", "update_block.block_id_required", a.BlockID); err != nil {
		return err
	}
	return a.Patch.Validate()
}

type UpdateBlockStyleAction struct {
	BlockID string          `json:"blockId"`
	Patch   site.StylePatch `json:"patch"`
}

func (UpdateBlockStyleAction) Type() string { return actionPrefix + "update_block_style" }
func (a UpdateBlockStyleAction) Validate() error {
	if err := requireID("blockId", "update_block_style.block_id_required", a.BlockID); err != nil {
		return err
	}
	return a.Patch.Validate()
}

type MoveBlockAction struct {
	BlockID   string    `json:"blockId"`
	Direction Direction `json:"direction"`
}

func (MoveBlockAction) Type() string { return actionPrefix + "move_block" }
func (a MoveBlockAction) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(a.BlockID) == "" {
		errs["blockId"] = validation.NewError(actionPrefix+"move_block.block_id_required", "blockId is required")
	}
	if a.Direction != DirectionUp && a.Direction != DirectionDown {
		errs["direction"] = validation.NewError(actionPrefix+"move_block.direction_invalid", "direction must be up or down")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddElementAction creates an element of ElementType with default content.
type AddElementAction struct {
	BlockID     string           `json:"blockId"`
	ElementType site.ElementType `json:"elementType"`
	ElementID   string           `json:"elementId,omitempty"`
}

func (AddElementAction) Type() string { return actionPrefix + "add_element" }
func (a AddElementAction) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(a.BlockID) == "" {
		errs["blockId"] = validation.NewError(actionPrefix+"add_element.block_id_required", "blockId is required")
	}
	if !a.ElementType.Valid() {
		errs["elementType"] = validation.NewError(actionPrefix+"add_element.type_invalid", "elementType is not supported")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InsertElementAction appends an element that was built by the caller.
type InsertElementAction struct {
	BlockID string       `json:"blockId"`
	Element site.Element `json:"element"`
}

func (InsertElementAction) Type() string { return actionPrefix + "insert_element" }
func (a InsertElementAction) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(a.BlockID) == "" {
		errs["blockId"] = validation.NewError(actionPrefix+"insert_element.block_id_required", "blockId is required")
	}
	if strings.TrimSpace(a.Element.ID) == "" {
		errs["element.id"] = validation.NewError(actionPrefix+"insert_element.element_id_required", "element id is required")
	}
	if !a.Element.Type.Valid() {
		errs["element.type"] = validation.NewError(actionPrefix+"insert_element.type_invalid", "element type is not supported")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RemoveElementAction struct {
	BlockID   string `json:"blockId"`
	ElementID string `json:"elementId"`
}

func (RemoveElementAction) Type() string { return actionPrefix + "remove_element" }
func (a RemoveElementAction) Validate() error {
	return requireElement("remove_element", a.BlockID, a.ElementID)
}

// UpdateElementAction replaces the element content wholesale. Callers merge
// the previous content themselves.
type UpdateElementAction struct {
	BlockID   string       `json:"blockId"`
	ElementID string       `json:"elementId"`
	Content   site.Content `json:"-"`
}

func (UpdateElementAction) Type() string { return actionPrefix + "update_element" }
func (a UpdateElementAction) Validate() error {
	if err := requireElement("update_element", a.BlockID, a.ElementID); err != nil {
		return err
	}
	if a.Content == nil {
		return validation.Errors{"content": validation.NewError(actionPrefix+"update_element.content_required", "content is required")}
	}
	return nil
}

type SelectBlockAction struct {
	BlockID string `json:"blockId"`
}

func (SelectBlockAction) Type() string { return actionPrefix + "select_block" }
func (a SelectBlockAction) Validate() error {
	return requireID("blockId", "select_block.block_id_required", a.BlockID)
}

// SelectElementAction selects an element. An empty BlockID is resolved by
// searching the current page.
type SelectElementAction struct {
	BlockID   string `json:"blockId,omitempty"`
	ElementID string `json:"elementId"`
}

func (SelectElementAction) Type() string { return actionPrefix + "select_element" }
func (a SelectElementAction) Validate() error {
	return requireID("elementId", "select_element.element_id_required", a.ElementID)
}

type SelectChromeAction struct {
	Kind site.ChromeKind `json:"kind"`
}

func (SelectChromeAction) Type() string { return actionPrefix + "select_chrome" }
func (a SelectChromeAction) Validate() error {
	if !a.Kind.Valid() {
		return validation.Errors{"kind": validation.NewError(actionPrefix+"select_chrome.kind_invalid", "kind must be header or footer")}
	}
	return nil
}

type ShowPageConfigAction struct{}

func (ShowPageConfigAction) Type() string    { return actionPrefix + "show_page_config" }
func (ShowPageConfigAction) Validate() error { return nil }

type ClearSelectionAction struct{}

func (ClearSelectionAction) Type() string    { return actionPrefix + "clear_selection" }
func (ClearSelectionAction) Validate() error { return nil }

// OpenSheetAction opens a sheet. InsertIndex positions the next block
// inserted from the add-block sheet.
type OpenSheetAction struct {
	Sheet       Sheet `json:"sheet"`
	InsertIndex *int  `json:"insertIndex,omitempty"`
}

func (OpenSheetAction) Type() string { return actionPrefix + "open_sheet" }
func (a OpenSheetAction) Validate() error {
	switch a.Sheet {
	case SheetAddBlock, SheetAddElement, SheetProperties, SheetPageSettings:
		return nil
	}
	return validation.Errors{"sheet": validation.NewError(actionPrefix+"open_sheet.sheet_invalid", "sheet is not supported")}
}

type CloseSheetAction struct{}

func (CloseSheetAction) Type() string    { return actionPrefix + "close_sheet" }
func (CloseSheetAction) Validate() error { return nil }

type ShowToolbarAction struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (ShowToolbarAction) Type() string    { return actionPrefix + "show_toolbar" }
func (ShowToolbarAction) Validate() error { return nil }

type HideToolbarAction struct{}

func (HideToolbarAction) Type() string    { return actionPrefix + "hide_toolbar" }
func (HideToolbarAction) Validate() error { return nil }

// ReplaceSiteAction swaps the whole document, used when a template seeds a
// project or a stored document is reloaded.
type ReplaceSiteAction struct {
	Site site.Site `json:"site"`
}

func (ReplaceSiteAction) Type() string { return actionPrefix + "replace_site" }
func (a ReplaceSiteAction) Validate() error {
	return a.Site.Validate()
}

func requireID(field, code, value string) error {
	if strings.TrimSpace(value) == "" {
		return validation.Errors{field: validation.NewError(actionPrefix+code, field+" is required")}
	}
	return nil
}

func requireElement(op, blockID, elementID string) error {
	errs := validation.Errors{}
	if strings.TrimSpace(blockID) == "" {
		errs["blockId"] = validation.NewError(actionPrefix+op+".block_id_required", "blockId is required")
	}
	if strings.TrimSpace(elementID) == "" {
		errs["elementId"] = validation.NewError(actionPrefix+op+".element_id_required", "elementId is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateBlockType(op string, t site.BlockType) error {
	if !t.Valid() {
		return validation.Errors{"blockType": validation.NewError(actionPrefix+op+".block_type_invalid", "blockType must be full-width, centered, split or grid")}
	}
	return nil
}
