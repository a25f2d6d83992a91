package site

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// ElementType is the closed set of content atoms a block can hold.
type ElementType string

const (
	ElementTitle     ElementType = "title"
	ElementText      ElementType = "text"
	ElementImage     ElementType = "image"
	ElementVideo     ElementType = "video"
	ElementButton    ElementType = "button"
	ElementLink      ElementType = "link"
	ElementCountdown ElementType = "countdown"
	ElementProduct   ElementType = "product"
	ElementList      ElementType = "list"
	ElementCarousel  ElementType = "carousel"
)

// ElementTypes lists every element type in picker order.
func ElementTypes() []ElementType {
	return []ElementType{
		ElementTitle, ElementText, ElementImage, ElementVideo, ElementButton,
		ElementLink, ElementCountdown, ElementProduct, ElementList, ElementCarousel,
	}
}

// Valid reports whether the element type is part of the closed set.
func (t ElementType) Valid() bool {
	return slices.Contains(ElementTypes(), t)
}

// Style carries free-form presentation attributes such as fontSize or color.
// Cloned styles hold values in their JSON form: numbers as float64, objects
// as map[string]any and arrays as []any. An empty style clones to nil, as it
// is omitted from documents.
type Style map[string]any

// Content is the type-specific payload of an element. Each element type has
// exactly one implementation.
type Content interface {
	Kind() ElementType
	clone() Content
}

// TitleContent is a heading.
type TitleContent struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// TextContent is a paragraph of body text.
type TextContent struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// ImageContent shows the image at URL.
type ImageContent struct {
	URL   string `json:"url"`
	Alt   string `json:"alt,omitempty"`
	Style Style  `json:"style,omitempty"`
}

// VideoContent embeds the video at URL.
type VideoContent struct {
	URL   string `json:"url"`
	Style Style  `json:"style,omitempty"`
}

// ButtonContent is a call to action linking to Href.
type ButtonContent struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Style Style  `json:"style,omitempty"`
}

// LinkContent is an inline text link.
type LinkContent struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Style Style  `json:"style,omitempty"`
}

// CountdownContent counts down to TargetDate (YYYY-MM-DD or RFC3339).
type CountdownContent struct {
	TargetDate string `json:"targetDate"`
	Label      string `json:"countdownLabel,omitempty"`
	Style      Style  `json:"style,omitempty"`
}

// ProductContent is a product card with price and buy button.
type ProductContent struct {
	Name          string `json:"productName"`
	Price         string `json:"productPrice"`
	OriginalPrice string `json:"productOriginalPrice,omitempty"`
	Description   string `json:"productDescription,omitempty"`
	Image         string `json:"productImage,omitempty"`
	ButtonText    string `json:"productButtonText,omitempty"`
	ButtonLink    string `json:"productButtonLink,omitempty"`
	Style         Style  `json:"style,omitempty"`
}

// ListContent is a bulleted or numbered list of Items.
type ListContent struct {
	Items     []string  `json:"listItems"`
	Icon      string    `json:"listIcon,omitempty"`
	ListStyle ListStyle `json:"listStyle,omitempty"`
	Style     Style     `json:"style,omitempty"`
}

// CarouselContent rotates Images every IntervalMs milliseconds when Autoplay is set.
type CarouselContent struct {
	Images     []string `json:"carouselImages"`
	Autoplay   bool     `json:"carouselAutoplay"`
	IntervalMs int      `json:"carouselInterval,omitempty"`
	Style      Style    `json:"style,omitempty"`
}

func (TitleContent) Kind() ElementType     { return ElementTitle }
func (TextContent) Kind() ElementType      { return ElementText }
func (ImageContent) Kind() ElementType     { return ElementImage }
func (VideoContent) Kind() ElementType     { return ElementVideo }
func (ButtonContent) Kind() ElementType    { return ElementButton }
func (LinkContent) Kind() ElementType      { return ElementLink }
func (CountdownContent) Kind() ElementType { return ElementCountdown }
func (ProductContent) Kind() ElementType   { return ElementProduct }
func (ListContent) Kind() ElementType      { return ElementList }
func (CarouselContent) Kind() ElementType  { return ElementCarousel }

func (c TitleContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c TextContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c ImageContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c VideoContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c ButtonContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c LinkContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c CountdownContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c ProductContent) clone() Content {
	c.Style = c.Style.Clone()
	return c
}

func (c ListContent) clone() Content {
	c.Items = slices.Clone(c.Items)
	c.Style = c.Style.Clone()
	return c
}

func (c CarouselContent) clone() Content {
	c.Images = slices.Clone(c.Images)
	c.Style = c.Style.Clone()
	return c
}

// Clone deep-copies the style map, converting values to their JSON form.
func (s Style) Clone() Style {
	if len(s) == 0 {
		return nil
	}
	out := make(Style, len(s))
	for key, value := range s {
		out[key] = jsonValue(value)
	}
	return out
}

func jsonValue(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, float64:
		return typed
	case json.Marshaler:
		return reencode(typed)
	case Style:
		return jsonObject(typed)
	case map[string]any:
		return jsonObject(typed)
	case []any:
		if typed == nil {
			return nil
		}
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = jsonValue(nested)
		}
		return out
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	}
	return reencode(value)
}

func jsonObject(m map[string]any) any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, nested := range m {
		out[key] = jsonValue(nested)
	}
	return out
}

// reencode passes value through encoding/json. Values that cannot be
// encoded are kept as they are.
func reencode(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return value
	}
	return decoded
}

// Element is a typed content atom inside a block. Its type never changes
// after creation.
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	Content Content     `json:"content"`
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Content != nil {
		out.Content = e.Content.clone()
	}
	return out
}

// NewContent returns the zero payload for the element type.
func NewContent(t ElementType) (Content, error) {
	switch t {
	case ElementTitle:
		return TitleContent{}, nil
	case ElementText:
		return TextContent{}, nil
	case ElementImage:
		return ImageContent{}, nil
	case ElementVideo:
		return VideoContent{}, nil
	case ElementButton:
		return ButtonContent{}, nil
	case ElementLink:
		return LinkContent{}, nil
	case ElementCountdown:
		return CountdownContent{}, nil
	case ElementProduct:
		return ProductContent{}, nil
	case ElementList:
		return ListContent{}, nil
	case ElementCarousel:
		return CarouselContent{}, nil
	}
	return nil, &UnknownElementTypeError{Type: string(t)}
}

type elementWire struct {
	ID      string          `json:"id"`
	Type    ElementType     `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the element with its content under the "content" key.
func (e Element) MarshalJSON() ([]byte, error) {
	content := e.Content
	if content == nil {
		zero, err := NewContent(e.Type)
		if err != nil {
			return nil, err
		}
		content = zero
	}
	if content.Kind() != e.Type {
		return nil, fmt.Errorf("site: element %q has %s content for type %s", e.ID, content.Kind(), e.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementWire{ID: e.ID, Type: e.Type, Content: raw})
}

// UnmarshalJSON decodes the content variant selected by the "type" key.
// Missing content keys stay at their zero values and unknown keys are ignored.
func (e *Element) UnmarshalJSON(data []byte) error {
	var wire elementWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	content, err := decodeContent(wire.Type, wire.Content)
	if err != nil {
		return err
	}
	e.ID = wire.ID
	e.Type = wire.Type
	e.Content = content
	return nil
}

// DecodeContent decodes raw as the content payload of an element of type t.
func DecodeContent(t ElementType, raw json.RawMessage) (Content, error) {
	return decodeContent(t, raw)
}

func decodeContent(t ElementType, raw json.RawMessage) (Content, error) {
	if _, err := NewContent(t); err != nil {
		return nil, err
	}
	empty := len(raw) == 0 || string(raw) == "null"
	switch t {
	case ElementTitle:
		return decodeInto[TitleContent](raw, empty)
	case ElementText:
		return decodeInto[TextContent](raw, empty)
	case ElementImage:
		return decodeInto[ImageContent](raw, empty)
	case ElementVideo:
		return decodeInto[VideoContent](raw, empty)
	case ElementButton:
		return decodeInto[ButtonContent](raw, empty)
	case ElementLink:
		return decodeInto[LinkContent](raw, empty)
	case ElementCountdown:
		return decodeInto[CountdownContent](raw, empty)
	case ElementProduct:
		return decodeInto[ProductContent](raw, empty)
	case ElementList:
		return decodeInto[ListContent](raw, empty)
	default:
		return decodeInto[CarouselContent](raw, empty)
	}
}

func decodeInto[T Content](raw json.RawMessage, empty bool) (Content, error) {
	var out T
	if empty {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("site: decode %s content: %w", out.Kind(), err)
	}
	return out, nil
}
