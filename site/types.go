package site

import (
	"slices"
	"strings"
)

// BlockType controls how a block arranges its elements.
type BlockType string

const (
	BlockFullWidth BlockType = "full-width"
	BlockCentered  BlockType = "centered"
	BlockSplit     BlockType = "split"
	BlockGrid      BlockType = "grid"
)

// BlockTypes lists the supported block layouts in picker order.
func BlockTypes() []BlockType {
	return []BlockType{BlockFullWidth, BlockCentered, BlockSplit, BlockGrid}
}

// Valid reports whether the block type is part of the closed set.
func (t BlockType) Valid() bool {
	return slices.Contains(BlockTypes(), t)
}

// HeaderTemplate selects the header layout. HeaderNone hides the header.
type HeaderTemplate string

const (
	HeaderNone     HeaderTemplate = "none"
	HeaderSimple   HeaderTemplate = "simple"
	HeaderCentered HeaderTemplate = "centered"
	HeaderWithLogo HeaderTemplate = "with-logo"
)

// FooterTemplate selects the footer layout. FooterNone hides the footer.
type FooterTemplate string

const (
	FooterNone     FooterTemplate = "none"
	FooterSimple   FooterTemplate = "simple"
	FooterSocial   FooterTemplate = "social"
	FooterDetailed FooterTemplate = "detailed"
)

// HeaderTemplates returns the header layouts in picker order.
func HeaderTemplates() []HeaderTemplate {
	return []HeaderTemplate{HeaderNone, HeaderSimple, HeaderCentered, HeaderWithLogo}
}

// FooterTemplates returns the footer layouts in picker order.
func FooterTemplates() []FooterTemplate {
	return []FooterTemplate{FooterNone, FooterSimple, FooterSocial, FooterDetailed}
}

// MenuStyle controls how header links are presented on small screens.
type MenuStyle string

const (
	MenuAlwaysVisible MenuStyle = "always-visible"
	MenuHamburger     MenuStyle = "hamburger"
)

// ChromeKind identifies one of the two page chrome slots.
type ChromeKind string

const (
	ChromeHeader ChromeKind = "header"
	ChromeFooter ChromeKind = "footer"
)

// Valid reports whether the kind names a chrome slot.
func (k ChromeKind) Valid() bool {
	return k == ChromeHeader || k == ChromeFooter
}

// ValidTemplate reports whether template belongs to the template set of the slot.
func (k ChromeKind) ValidTemplate(template string) bool {
	switch k {
	case ChromeHeader:
		return slices.Contains(HeaderTemplates(), HeaderTemplate(template))
	case ChromeFooter:
		return slices.Contains(FooterTemplates(), FooterTemplate(template))
	}
	return false
}

// ListStyle is the bullet style of a list element.
type ListStyle string

const (
	ListBullet    ListStyle = "bullet"
	ListNumbered  ListStyle = "numbered"
	ListChecklist ListStyle = "checklist"
	ListIcon      ListStyle = "icon"
)

// Link is a header navigation entry or footer link.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// SocialLink points at a social network profile rendered by footer templates.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// HeaderFooterConfig describes a header or footer. Template "none" hides the
// slot but every other field is kept so switching back restores it.
type HeaderFooterConfig struct {
	Template        string       `json:"template"`
	Logo            string       `json:"logo,omitempty"`
	BrandName       string       `json:"brandName,omitempty"`
	Tagline         string       `json:"tagline,omitempty"`
	Links           []Link       `json:"links,omitempty"`
	SocialLinks     []SocialLink `json:"socialLinks,omitempty"`
	Copyright       string       `json:"copyright,omitempty"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	TextColor       string       `json:"textColor,omitempty"`
	MenuStyle       MenuStyle    `json:"menuStyle,omitempty"`
}

// Visible reports whether the chrome renders at all.
func (c HeaderFooterConfig) Visible() bool {
	template := strings.TrimSpace(c.Template)
	return template != "" && template != string(HeaderNone)
}

// BlockStyle holds the visual attributes of a block. Pointer fields are unset
// when nil so a zero value can be told apart from an absent one.
type BlockStyle struct {
	BackgroundColor    string   `json:"backgroundColor,omitempty"`
	BackgroundImage    string   `json:"backgroundImage,omitempty"`
	BackgroundGradient string   `json:"backgroundGradient,omitempty"`
	BackgroundOpacity  *float64 `json:"backgroundOpacity,omitempty"`
	BackgroundBlur     *float64 `json:"backgroundBlur,omitempty"`
	Padding            *float64 `json:"padding,omitempty"`
	MinHeight          *float64 `json:"minHeight,omitempty"`
}

// Block is an ordered container of elements on a page.
type Block struct {
	ID       string     `json:"id"`
	Type     BlockType  `json:"type"`
	Elements []Element  `json:"elements"`
	Style    BlockStyle `json:"style"`
}

// Element returns the element with the given id.
func (b Block) Element(id string) (Element, bool) {
	for _, element := range b.Elements {
		if element.ID == id {
			return element, true
		}
	}
	return Element{}, false
}

// Page is a single page of the site with its chrome and blocks.
type Page struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	BackgroundColor string             `json:"backgroundColor"`
	Header          HeaderFooterConfig `json:"header"`
	Footer          HeaderFooterConfig `json:"footer"`
	Blocks          []Block            `json:"blocks"`
}

// Block returns the block with the given id.
func (p Page) Block(id string) (Block, bool) {
	for _, block := range p.Blocks {
		if block.ID == id {
			return block, true
		}
	}
	return Block{}, false
}

// BlockIndex returns the position of the block or -1.
func (p Page) BlockIndex(id string) int {
	return slices.IndexFunc(p.Blocks, func(b Block) bool { return b.ID == id })
}

// Chrome returns the header or footer configuration.
func (p Page) Chrome(kind ChromeKind) HeaderFooterConfig {
	if kind == ChromeFooter {
		return p.Footer
	}
	return p.Header
}

// Site is the persisted document: the ordered pages and the page being edited.
type Site struct {
	Pages         []Page `json:"pages"`
	CurrentPageID string `json:"currentPageId"`
}

// Page returns the page with the given id.
func (s Site) Page(id string) (Page, bool) {
	for _, page := range s.Pages {
		if page.ID == id {
			return page, true
		}
	}
	return Page{}, false
}

// PageIndex returns the position of the page or -1.
func (s Site) PageIndex(id string) int {
	return slices.IndexFunc(s.Pages, func(p Page) bool { return p.ID == id })
}

// CurrentPage returns the page referenced by CurrentPageID.
func (s Site) CurrentPage() (Page, bool) {
	return s.Page(s.CurrentPageID)
}

// Clone returns a deep copy of the document.
func (s Site) Clone() Site {
	out := Site{CurrentPageID: s.CurrentPageID}
	if s.Pages != nil {
		out.Pages = make([]Page, len(s.Pages))
		for i, page := range s.Pages {
			out.Pages[i] = page.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	out.Header = p.Header.Clone()
	out.Footer = p.Footer.Clone()
	if p.Blocks != nil {
		out.Blocks = make([]Block, len(p.Blocks))
		for i, block := range p.Blocks {
			out.Blocks[i] = block.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the chrome configuration.
func (c HeaderFooterConfig) Clone() HeaderFooterConfig {
	out := c
	out.Links = slices.Clone(c.Links)
	out.SocialLinks = slices.Clone(c.SocialLinks)
	return out
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	out.Style = b.Style.Clone()
	if b.Elements != nil {
		out.Elements = make([]Element, len(b.Elements))
		for i, element := range b.Elements {
			out.Elements[i] = element.Clone()
		}
	}
	return out
}

// Clone returns a copy of the style with its own pointer fields.
func (s BlockStyle) Clone() BlockStyle {
	out := s
	out.BackgroundOpacity = cloneFloat(s.BackgroundOpacity)
	out.BackgroundBlur = cloneFloat(s.BackgroundBlur)
	out.Padding = cloneFloat(s.Padding)
	out.MinHeight = cloneFloat(s.MinHeight)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Float returns a pointer to v, handy for style literals.
func Float(v float64) *float64 {
	return &v
}
