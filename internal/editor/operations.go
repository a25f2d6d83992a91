package editor

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-pagebuilder/site"
)

// Direction is the adjacent-swap direction accepted by MoveBlock.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Operations in this file are pure: the input document is never mutated and,
// when an error is returned, the returned document equals the input.

// AddPage appends page and makes it current.
func AddPage(s site.Site, page site.Page) (site.Site, error) {
	if s.PageIndex(page.ID) >= 0 {
		return s, fmt.Errorf("editor: page %q: %w", page.ID, site.ErrDuplicateID)
	}
	out := s.Clone()
	out.Pages = append(out.Pages, page.Clone())
	out.CurrentPageID = page.ID
	return out, nil
}

// RemovePage drops the page. The last page cannot be removed. When the
// current page is removed the first remaining page becomes current.
func RemovePage(s site.Site, pageID string) (site.Site, error) {
	idx := s.PageIndex(pageID)
	if idx < 0 {
		return s, site.PageNotFound(pageID)
	}
	if len(s.Pages) <= 1 {
		return s, site.ErrLastPage
	}
	out := s.Clone()
	out.Pages = slices.Delete(out.Pages, idx, idx+1)
	if out.CurrentPageID == pageID {
		out.CurrentPageID = out.Pages[0].ID
	}
	return out, nil
}

// SetCurrentPage switches the page being edited.
func SetCurrentPage(s site.Site, pageID string) (site.Site, error) {
	if s.PageIndex(pageID) < 0 {
		return s, site.PageNotFound(pageID)
	}
	out := s.Clone()
	out.CurrentPageID = pageID
	return out, nil
}

// UpdatePage merges page-level fields.
func UpdatePage(s site.Site, pageID string, patch site.PagePatch) (site.Site, error) {
	return withPage(s, pageID, func(page *site.Page) error {
		*page = patch.Apply(*page)
		return nil
	})
}

// UpdatePageHeader merges header fields. Other fields survive a switch to
// template "none".
func UpdatePageHeader(s site.Site, pageID string, patch site.ChromePatch) (site.Site, error) {
	return withPage(s, pageID, func(page *site.Page) error {
		page.Header = patch.Apply(page.Header)
		return nil
	})
}

// UpdatePageFooter merges footer fields.
func UpdatePageFooter(s site.Site, pageID string, patch site.ChromePatch) (site.Site, error) {
	return withPage(s, pageID, func(page *site.Page) error {
		page.Footer = patch.Apply(page.Footer)
		return nil
	})
}

// AddBlock appends block to the current page.
func AddBlock(s site.Site, block site.Block) (site.Site, error) {
	return insertBlock(s, block, func(page *site.Page) int { return len(page.Blocks) })
}

// AddBlockAt inserts block at index on the current page. The index is
// clamped to [0, len(blocks)].
func AddBlockAt(s site.Site, block site.Block, index int) (site.Site, error) {
	return insertBlock(s, block, func(page *site.Page) int {
		return min(max(index, 0), len(page.Blocks))
	})
}

func insertBlock(s site.Site, block site.Block, position func(*site.Page) int) (site.Site, error) {
	return withCurrentPage(s, func(page *site.Page) error {
		if page.BlockIndex(block.ID) >= 0 {
			return fmt.Errorf("editor: block %q: %w", block.ID, site.ErrDuplicateID)
		}
		page.Blocks = slices.Insert(page.Blocks, position(page), block.Clone())
		return nil
	})
}

// RemoveBlock drops the block and every element in it.
func RemoveBlock(s site.Site, blockID string) (site.Site, error) {
	return withCurrentPage(s, func(page *site.Page) error {
		idx := page.BlockIndex(blockID)
		if idx < 0 {
			return site.BlockNotFound(blockID)
		}
		page.Blocks = slices.Delete(page.Blocks, idx, idx+1)
		return nil
	})
}

// UpdateBlock replaces the block type and/or style.
func UpdateBlock(s site.Site, blockID string, patch site.BlockPatch) (site.Site, error) {
	return withBlock(s, blockID, func(block *site.Block) error {
		*block = patch.Apply(*block)
		return nil
	})
}

// UpdateBlockStyle merges individual style fields.
func UpdateBlockStyle(s site.Site, blockID string, patch site.StylePatch) (site.Site, error) {
	return withBlock(s, blockID, func(block *site.Block) error {
		block.Style = patch.Apply(block.Style)
		return nil
	})
}

// MoveBlock swaps the block with its neighbour. Moving the first block up or
// the last block down returns ErrMoveOutOfBounds.
func MoveBlock(s site.Site, blockID string, dir Direction) (site.Site, error) {
	return withCurrentPage(s, func(page *site.Page) error {
		idx := page.BlockIndex(blockID)
		if idx < 0 {
			return site.BlockNotFound(blockID)
		}
		target := idx - 1
		if dir == DirectionDown {
			target = idx + 1
		}
		if target < 0 || target >= len(page.Blocks) {
			return site.ErrMoveOutOfBounds
		}
		page.Blocks[idx], page.Blocks[target] = page.Blocks[target], page.Blocks[idx]
		return nil
	})
}

// AddElement appends a fully built element to the block.
func AddElement(s site.Site, blockID string, element site.Element) (site.Site, error) {
	if !element.Type.Valid() {
		return s, &site.UnknownElementTypeError{Type: string(element.Type)}
	}
	if element.Content != nil && element.Content.Kind() != element.Type {
		return s, site.ErrElementTypeImmutable
	}
	return withBlock(s, blockID, func(block *site.Block) error {
		if _, ok := block.Element(element.ID); ok {
			return fmt.Errorf("editor: element %q: %w", element.ID, site.ErrDuplicateID)
		}
		block.Elements = append(block.Elements, element.Clone())
		return nil
	})
}

// RemoveElement drops the element from the block.
func RemoveElement(s site.Site, blockID, elementID string) (site.Site, error) {
	return withBlock(s, blockID, func(block *site.Block) error {
		idx := slices.IndexFunc(block.Elements, func(e site.Element) bool { return e.ID == elementID })
		if idx < 0 {
			return site.ElementNotFound(elementID)
		}
		block.Elements = slices.Delete(block.Elements, idx, idx+1)
		return nil
	})
}

// UpdateElement replaces the element content. The content kind must match
// the element type.
func UpdateElement(s site.Site, blockID, elementID string, patch site.ElementPatch) (site.Site, error) {
	return withBlock(s, blockID, func(block *site.Block) error {
		for i := range block.Elements {
			if block.Elements[i].ID != elementID {
				continue
			}
			updated, err := patch.Apply(block.Elements[i])
			if err != nil {
				return err
			}
			block.Elements[i] = updated
			return nil
		}
		return site.ElementNotFound(elementID)
	})
}

// FindElementBlock returns the id of the block on the current page holding
// the element.
func FindElementBlock(s site.Site, elementID string) (string, bool) {
	page, ok := s.CurrentPage()
	if !ok {
		return "", false
	}
	for _, block := range page.Blocks {
		if _, found := block.Element(elementID); found {
			return block.ID, true
		}
	}
	return "", false
}

func withPage(s site.Site, pageID string, fn func(*site.Page) error) (site.Site, error) {
	idx := s.PageIndex(pageID)
	if idx < 0 {
		return s, site.PageNotFound(pageID)
	}
	out := s.Clone()
	if err := fn(&out.Pages[idx]); err != nil {
		return s, err
	}
	return out, nil
}

func withCurrentPage(s site.Site, fn func(*site.Page) error) (site.Site, error) {
	return withPage(s, s.CurrentPageID, fn)
}

func withBlock(s site.Site, blockID string, fn func(*site.Block) error) (site.Site, error) {
	return withCurrentPage(s, func(page *site.Page) error {
		idx := page.BlockIndex(blockID)
		if idx < 0 {
			return site.BlockNotFound(blockID)
		}
		return fn(&page.Blocks[idx])
	})
}
