package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-pagebuilder/site"
)

// ErrUnknownAction is returned by DecodeAction for names it does not know.
var ErrUnknownAction = errors.New("editor: unknown action")

type actionDecoder func(payload []byte) (Action, error)

var actionDecoders = map[string]actionDecoder{
	"add_page":           decodeAs[AddPageAction],
	"remove_page":        decodeAs[RemovePageAction],
	"rename_page":        decodeAs[RenamePageAction],
	"update_page":        decodeAs[UpdatePageAction],
	"update_chrome":      decodeAs[UpdateChromeAction],
	"set_current_page":   decodeAs[SetCurrentPageAction],
	"add_block":          decodeAs[AddBlockAction],
	"add_block_at":       decodeAs[AddBlockAtAction],
	"remove_block":       decodeAs[RemoveBlockAction],
	"update_block":       decodeAs[UpdateBlockAction],
	"update_block_style": decodeAs[UpdateBlockStyleAction],
	"move_block":         decodeAs[MoveBlockAction],
	"add_element":        decodeAs[AddElementAction],
	"insert_element":     decodeAs[InsertElementAction],
	"remove_element":     decodeAs[RemoveElementAction],
	"update_element":     decodeUpdateElement,
	"select_block":       decodeAs[SelectBlockAction],
	"select_element":     decodeAs[SelectElementAction],
	"select_chrome":      decodeAs[SelectChromeAction],
	"show_page_config":   decodeAs[ShowPageConfigAction],
	"clear_selection":    decodeAs[ClearSelectionAction],
	"open_sheet":         decodeAs[OpenSheetAction],
	"close_sheet":        decodeAs[CloseSheetAction],
	"show_toolbar":       decodeAs[ShowToolbarAction],
	"hide_toolbar":       decodeAs[HideToolbarAction],
	"replace_site":       decodeAs[ReplaceSiteAction],
}

// ActionNames lists the short names accepted by DecodeAction.
func ActionNames() []string {
	names := make([]string, 0, len(actionDecoders))
	for name := range actionDecoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeAction builds an action from its name and JSON payload. Both the
// short name ("add_block") and the message type
// ("pagebuilder.editor.add_block") are accepted. An empty payload decodes
// to the zero action.
func DecodeAction(name string, payload []byte) (Action, error) {
	short := strings.TrimPrefix(strings.TrimSpace(name), actionPrefix)
	decode, ok := actionDecoders[short]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	action, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("editor: decode %s: %w", short, err)
	}
	return action, nil
}

func decodeAs[T Action](payload []byte) (Action, error) {
	var action T
	if len(strings.TrimSpace(string(payload))) == 0 {
		return action, nil
	}
	if err := json.Unmarshal(payload, &action); err != nil {
		return nil, err
	}
	return action, nil
}

type updateElementWire struct {
	BlockID   string           `json:"blockId"`
	ElementID string           `json:"elementId"`
	Type      site.ElementType `json:"type"`
	Content   json.RawMessage  `json:"content"`
}

// update_element carries the element type next to the content so the
// payload variant can be chosen.
func decodeUpdateElement(payload []byte) (Action, error) {
	var wire updateElementWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, err
	}
	action := UpdateElementAction{BlockID: wire.BlockID, ElementID: wire.ElementID}
	if len(wire.Content) == 0 {
		return action, nil
	}
	content, err := site.DecodeContent(wire.Type, wire.Content)
	if err != nil {
		return nil, err
	}
	action.Content = content
	return action, nil
}
