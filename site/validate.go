package site

import (
	"fmt"
)

// Validate checks the structural invariants of a document: at least one
// page, unique page ids, block ids unique per page and element ids unique
// per block. Element content is not inspected.
func (s Site) Validate() error {
	if len(s.Pages) == 0 {
		return ErrNoPages
	}
	pages := make(map[string]struct{}, len(s.Pages))
	for _, page := range s.Pages {
		if page.ID == "" {
			return fmt.Errorf("site: page without id: %w", ErrDuplicateID)
		}
		if _, ok := pages[page.ID]; ok {
			return fmt.Errorf("site: page %q: %w", page.ID, ErrDuplicateID)
		}
		pages[page.ID] = struct{}{}
		if err := page.validateBlocks(); err != nil {
			return err
		}
	}
	return nil
}

func (p Page) validateBlocks() error {
	blocks := make(map[string]struct{}, len(p.Blocks))
	for _, block := range p.Blocks {
		if _, ok := blocks[block.ID]; ok {
			return fmt.Errorf("site: block %q on page %q: %w", block.ID, p.ID, ErrDuplicateID)
		}
		blocks[block.ID] = struct{}{}
		elements := make(map[string]struct{}, len(block.Elements))
		for _, element := range block.Elements {
			if _, ok := elements[element.ID]; ok {
				return fmt.Errorf("site: element %q in block %q: %w", element.ID, block.ID, ErrDuplicateID)
			}
			elements[element.ID] = struct{}{}
		}
	}
	return nil
}

// Normalize repairs a decoded document so it can be edited: nil slices become
// empty and a dangling current page falls back to the first page.
func (s Site) Normalize() Site {
	out := s.Clone()
	for i := range out.Pages {
		page := &out.Pages[i]
		if page.Blocks == nil {
			page.Blocks = []Block{}
		}
		if page.Header.Template == "" {
			page.Header.Template = string(HeaderNone)
		}
		if page.Footer.Template == "" {
			page.Footer.Template = string(FooterNone)
		}
		for j := range page.Blocks {
			if page.Blocks[j].Elements == nil {
				page.Blocks[j].Elements = []Element{}
			}
		}
	}
	if len(out.Pages) > 0 && out.PageIndex(out.CurrentPageID) < 0 {
		out.CurrentPageID = out.Pages[0].ID
	}
	return out
}
