package documents

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

// Bridge moves whole documents between an editor session and a Repository.
type Bridge struct {
	repo   Repository
	logger interfaces.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithBridgeLogger sets the logger used for load and save diagnostics.
func WithBridgeLogger(logger interfaces.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBridge wraps repo. A nil repository is replaced by an in-memory one.
func NewBridge(repo Repository, opts ...BridgeOption) *Bridge {
	if repo == nil {
		repo = NewMemoryRepository()
	}
	b := &Bridge{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Load returns the stored document for projectID. It never returns an
// unusable document: when nothing is stored, or the stored payload cannot be
// read or decoded, the default document is returned. The latter two cases
// also return a *LoadError so callers can tell the user.
func (b *Bridge) Load(ctx context.Context, projectID string) (site.Site, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return site.DefaultSite(), ErrProjectIDRequired
	}
	logger := logging.WithProject(b.logger, projectID).WithContext(ctx)

	record, err := b.repo.Get(ctx, projectID)
	if err != nil {
		if IsNotFound(err) {
			logger.Debug("documents.load.default")
			return site.DefaultSite(), nil
		}
		logger.Error("documents.load.failed", "error", err)
		return site.DefaultSite(), &LoadError{ProjectID: projectID, Category: LoadIO, Err: err}
	}

	doc, err := Deserialize(record.Document)
	if err != nil {
		logger.Warn("documents.load.malformed", "error", err, "issues", len(Issues(err)))
		return site.DefaultSite(), &LoadError{ProjectID: projectID, Category: LoadMalformed, Err: err}
	}
	logger.Debug("documents.load.ok", "pages", len(doc.Pages))
	return doc, nil
}

// Save writes a full snapshot of doc.
func (b *Bridge) Save(ctx context.Context, projectID string, doc site.Site) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ErrProjectIDRequired
	}
	payload, err := Serialize(doc)
	if err != nil {
		return &SaveError{ProjectID: projectID, Err: err}
	}
	if _, err := b.repo.Save(ctx, projectID, payload); err != nil {
		logging.WithProject(b.logger, projectID).WithContext(ctx).Error("documents.save.failed", "error", err)
		return &SaveError{ProjectID: projectID, Err: err}
	}
	return nil
}

// Seed stores doc as the project's document after checking its structure.
// Used when a project is created from a template.
func (b *Bridge) Seed(ctx context.Context, projectID string, doc site.Site) (site.Site, error) {
	if err := doc.Validate(); err != nil {
		return site.Site{}, &MalformedError{Cause: err}
	}
	normalized := doc.Normalize()
	if err := b.Save(ctx, projectID, normalized); err != nil {
		return site.Site{}, err
	}
	return normalized, nil
}

// Delete removes the stored document. A missing document is not an error.
func (b *Bridge) Delete(ctx context.Context, projectID string) error {
	err := b.repo.Delete(ctx, projectID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// Projects lists the ids of every stored project.
func (b *Bridge) Projects(ctx context.Context) ([]string, error) {
	records, err := b.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ProjectID)
	}
	return ids, nil
}
