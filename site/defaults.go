package site

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPageID          = "page-1"
	DefaultPageName        = "Home"
	DefaultBackgroundColor = "#ffffff"
	DefaultBlockPadding    = 2.0
	DefaultBlockMinHeight  = 120.0
	DefaultCarouselMs      = 3000
	countdownLeadDays      = 7
	targetDateLayout       = "2006-01-02"
	sampleImageURL         = "https://images.unsplash.com/photo-1516321497487-e288fb19713f"
	sampleProductImageURL  = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e"
	sampleVideoURL         = "https://www.youtube.com/embed/dQw4w9WgXcQ"
)

// DefaultSite returns the document used when nothing is stored for a project.
func DefaultSite() Site {
	return Site{
		Pages:         []Page{NewPage(DefaultPageID, DefaultPageName)},
		CurrentPageID: DefaultPageID,
	}
}

// NewPage returns an empty page with hidden chrome and a white background.
func NewPage(id, name string) Page {
	return Page{
		ID:              id,
		Name:            name,
		BackgroundColor: DefaultBackgroundColor,
		Header:          HeaderFooterConfig{Template: string(HeaderNone)},
		Footer:          HeaderFooterConfig{Template: string(FooterNone)},
		Blocks:          []Block{},
	}
}

// DefaultBlockStyle is applied to blocks created from the picker.
func DefaultBlockStyle() BlockStyle {
	return BlockStyle{
		BackgroundColor: DefaultBackgroundColor,
		Padding:         Float(DefaultBlockPadding),
		MinHeight:       Float(DefaultBlockMinHeight),
	}
}

// NewBlock returns an empty block with the default style.
func NewBlock(id string, t BlockType) Block {
	return Block{ID: id, Type: t, Elements: []Element{}, Style: DefaultBlockStyle()}
}

// ContentFactory builds the initial payload of a freshly created element.
type ContentFactory func(now time.Time) Content

// ContentRegistry maps element types to their default content factories.
type ContentRegistry struct {
	mu        sync.RWMutex
	factories map[ElementType]ContentFactory
}

// NewContentRegistry returns an empty registry.
func NewContentRegistry() *ContentRegistry {
	return &ContentRegistry{factories: make(map[ElementType]ContentFactory)}
}

// Register associates a factory with an element type.
func (r *ContentRegistry) Register(t ElementType, factory ContentFactory) error {
	if r == nil {
		return fmt.Errorf("site: content registry is nil")
	}
	t = ElementType(strings.TrimSpace(strings.ToLower(string(t))))
	if !t.Valid() {
		return &UnknownElementTypeError{Type: string(t)}
	}
	if factory == nil {
		return fmt.Errorf("site: content factory is nil for type %s", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[ElementType]ContentFactory)
	}
	r.factories[t] = factory
	return nil
}

// MustRegister registers the factory and panics on error.
func (r *ContentRegistry) MustRegister(t ElementType, factory ContentFactory) {
	if err := r.Register(t, factory); err != nil {
		panic(err)
	}
}

// Build runs the factory registered for t. Types without a factory get
// their zero payload.
func (r *ContentRegistry) Build(t ElementType, now time.Time) (Content, error) {
	if r != nil {
		r.mu.RLock()
		factory, ok := r.factories[t]
		r.mu.RUnlock()
		if ok {
			content := factory(now)
			if content.Kind() != t {
				return nil, fmt.Errorf("site: factory for %s produced %s content", t, content.Kind())
			}
			return content, nil
		}
	}
	return NewContent(t)
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *ContentRegistry
)

// DefaultContentRegistry returns the shared registry with the stock placeholders.
func DefaultContentRegistry() *ContentRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewContentRegistry()
		RegisterDefaultContent(defaultRegistry)
	})
	return defaultRegistry
}

// DefaultContent returns the placeholder payload for a new element of type t.
// Countdown targets are derived from now.
func DefaultContent(t ElementType, now time.Time) (Content, error) {
	return DefaultContentRegistry().Build(t, now)
}

// RegisterDefaultContent installs the stock placeholder factories.
func RegisterDefaultContent(r *ContentRegistry) {
	r.MustRegister(ElementTitle, func(time.Time) Content {
		return TitleContent{Text: "Título", Style: Style{"fontSize": "2rem", "fontWeight": "bold"}}
	})
	r.MustRegister(ElementText, func(time.Time) Content {
		return TextContent{Text: "Seu texto aqui"}
	})
	r.MustRegister(ElementImage, func(time.Time) Content {
		return ImageContent{URL: sampleImageURL, Alt: "Imagem"}
	})
	r.MustRegister(ElementVideo, func(time.Time) Content {
		return VideoContent{URL: sampleVideoURL}
	})
	r.MustRegister(ElementButton, func(time.Time) Content {
		return ButtonContent{Text: "Clique aqui", Href: "#"}
	})
	r.MustRegister(ElementLink, func(time.Time) Content {
		return LinkContent{Text: "Link", Href: "#"}
	})
	r.MustRegister(ElementCountdown, func(now time.Time) Content {
		return CountdownContent{
			TargetDate: now.AddDate(0, 0, countdownLeadDays).Format(targetDateLayout),
			Label:      "Faltam apenas:",
		}
	})
	r.MustRegister(ElementProduct, func(time.Time) Content {
		return ProductContent{
			Name:        "Nome do Produto",
			Price:       "R$ 99,90",
			Description: "Descrição do produto",
			Image:       sampleProductImageURL,
			ButtonText:  "Comprar Agora",
			ButtonLink:  "#",
		}
	})
	r.MustRegister(ElementList, func(time.Time) Content {
		return ListContent{Items: []string{"Item 1", "Item 2", "Item 3"}, ListStyle: ListBullet}
	})
	r.MustRegister(ElementCarousel, func(time.Time) Content {
		return CarouselContent{
			Images:     []string{sampleImageURL, sampleProductImageURL},
			Autoplay:   true,
			IntervalMs: DefaultCarouselMs,
		}
	})
}
