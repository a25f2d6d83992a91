package site

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PagePatch changes page-level fields. Nil fields are left untouched.
type PagePatch struct {
	Name            *string `json:"name,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// Apply merges the patch into page.
func (p PagePatch) Apply(page Page) Page {
	if p.Name != nil {
		page.Name = *p.Name
	}
	if p.BackgroundColor != nil {
		page.BackgroundColor = *p.BackgroundColor
	}
	return page
}

// Empty reports whether the patch carries no change.
func (p PagePatch) Empty() bool {
	return p.Name == nil && p.BackgroundColor == nil
}

// ChromePatch changes header or footer fields. Nil fields are left untouched;
// slices replace the stored list when non-nil.
type ChromePatch struct {
	Template        *string      `json:"template,omitempty"`
	Logo            *string      `json:"logo,omitempty"`
	BrandName       *string      `json:"brandName,omitempty"`
	Tagline         *string      `json:"tagline,omitempty"`
	Links           []Link       `json:"links,omitempty"`
	SocialLinks     []SocialLink `json:"socialLinks,omitempty"`
	Copyright       *string      `json:"copyright,omitempty"`
	BackgroundColor *string      `json:"backgroundColor,omitempty"`
	TextColor       *string      `json:"textColor,omitempty"`
	MenuStyle       *MenuStyle   `json:"menuStyle,omitempty"`
}

// Apply shallow-merges the patch into cfg. Changing the template never
// clears the other fields.
func (p ChromePatch) Apply(cfg HeaderFooterConfig) HeaderFooterConfig {
	cfg = cfg.Clone()
	setString(&cfg.Template, p.Template)
	setString(&cfg.Logo, p.Logo)
	setString(&cfg.BrandName, p.BrandName)
	setString(&cfg.Tagline, p.Tagline)
	setString(&cfg.Copyright, p.Copyright)
	setString(&cfg.BackgroundColor, p.BackgroundColor)
	setString(&cfg.TextColor, p.TextColor)
	if p.Links != nil {
		cfg.Links = append([]Link(nil), p.Links...)
	}
	if p.SocialLinks != nil {
		cfg.SocialLinks = append([]SocialLink(nil), p.SocialLinks...)
	}
	if p.MenuStyle != nil {
		cfg.MenuStyle = *p.MenuStyle
	}
	return cfg
}

// Validate checks the template against the slot's template set.
func (p ChromePatch) Validate(kind ChromeKind) error {
	errs := validation.Errors{}
	if !kind.Valid() {
		errs["kind"] = validation.NewError("site.chrome.kind_invalid", "chrome kind must be header or footer")
	}
	if p.Template != nil && kind.Valid() && !kind.ValidTemplate(*p.Template) {
		errs["template"] = validation.NewError("site.chrome.template_invalid", "template is not available for "+string(kind))
	}
	if p.MenuStyle != nil && *p.MenuStyle != MenuAlwaysVisible && *p.MenuStyle != MenuHamburger {
		errs["menuStyle"] = validation.NewError("site.chrome.menu_style_invalid", "menu style must be always-visible or hamburger")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BlockPatch replaces the block type and/or the whole style.
type BlockPatch struct {
	Type  *BlockType  `json:"type,omitempty"`
	Style *BlockStyle `json:"style,omitempty"`
}

// Apply merges the patch into block. Elements are never touched.
func (p BlockPatch) Apply(block Block) Block {
	if p.Type != nil {
		block.Type = *p.Type
	}
	if p.Style != nil {
		block.Style = p.Style.Clone()
	}
	return block
}

// Validate checks the block type when present.
func (p BlockPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.By(func(value any) error {
			if p.Type == nil || p.Type.Valid() {
				return nil
			}
			return validation.NewError("site.block.type_invalid", "block type must be full-width, centered, split or grid")
		})),
	)
}

// StylePatch merges individual style fields into a block style.
type StylePatch struct {
	BackgroundColor    *string  `json:"backgroundColor,omitempty"`
	BackgroundImage    *string  `json:"backgroundImage,omitempty"`
	BackgroundGradient *string  `json:"backgroundGradient,omitempty"`
	BackgroundOpacity  *float64 `json:"backgroundOpacity,omitempty"`
	BackgroundBlur     *float64 `json:"backgroundBlur,omitempty"`
	Padding            *float64 `json:"padding,omitempty"`
	MinHeight          *float64 `json:"minHeight,omitempty"`
}

// Apply merges the set fields into style.
func (p StylePatch) Apply(style BlockStyle) BlockStyle {
	style = style.Clone()
	setString(&style.BackgroundColor, p.BackgroundColor)
	setString(&style.BackgroundImage, p.BackgroundImage)
	setString(&style.BackgroundGradient, p.BackgroundGradient)
	if p.BackgroundOpacity != nil {
		style.BackgroundOpacity = Float(*p.BackgroundOpacity)
	}
	if p.BackgroundBlur != nil {
		style.BackgroundBlur = Float(*p.BackgroundBlur)
	}
	if p.Padding != nil {
		style.Padding = Float(*p.Padding)
	}
	if p.MinHeight != nil {
		style.MinHeight = Float(*p.MinHeight)
	}
	return style
}

// Validate rejects negative sizes and opacities outside 0..100.
func (p StylePatch) Validate() error {
	errs := validation.Errors{}
	if p.Padding != nil && *p.Padding < 0 {
		errs["padding"] = validation.NewError("site.style.padding_invalid", "padding must be zero or positive")
	}
	if p.MinHeight != nil && *p.MinHeight < 0 {
		errs["minHeight"] = validation.NewError("site.style.min_height_invalid", "minHeight must be zero or positive")
	}
	if p.BackgroundOpacity != nil && (*p.BackgroundOpacity < 0 || *p.BackgroundOpacity > 100) {
		errs["backgroundOpacity"] = validation.NewError("site.style.opacity_invalid", "backgroundOpacity must be between 0 and 100")
	}
	if p.BackgroundBlur != nil && *p.BackgroundBlur < 0 {
		errs["backgroundBlur"] = validation.NewError("site.style.blur_invalid", "backgroundBlur must be zero or positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ElementPatch replaces the whole content of an element. The content kind
// must match the element type.
type ElementPatch struct {
	Content Content
}

// Apply returns the element with the new content, or ErrElementTypeImmutable
// when the content belongs to another type.
func (p ElementPatch) Apply(element Element) (Element, error) {
	if p.Content == nil {
		return element, nil
	}
	if p.Content.Kind() != element.Type {
		return element, ErrElementTypeImmutable
	}
	element.Content = p.Content.clone()
	return element, nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
