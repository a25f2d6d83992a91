package di

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/database"
	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/observability"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/sessions"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/internal/timers"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Container wires the page builder modules from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	metrics        *observability.Metrics

	documentRepo documents.Repository
	categoryRepo templates.CategoryRepository
	templateRepo templates.TemplateRepository

	bridge      *documents.Bridge
	templateSvc templates.Service
	manager     *sessions.Manager
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database for the bun storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDocumentRepository overrides the document store.
func WithDocumentRepository(repo documents.Repository) Option {
	return func(c *Container) {
		c.documentRepo = repo
	}
}

// WithTemplateService overrides the template catalog.
func WithTemplateService(svc templates.Service) Option {
	return func(c *Container) {
		c.templateSvc = svc
	}
}

// WithMetrics overrides the metrics collectors.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// NewContainer validates cfg and builds every module. With the bun provider
// and no injected database the container opens and migrates one itself.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureTemplates()

	if err := c.configureSessions(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureMetrics() {
	if c.metrics == nil && c.Config.Features.Metrics {
		c.metrics = observability.NewMetrics(c.Config.Metrics.Namespace)
	}
}

func (c *Container) configureStorage() error {
	if !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), runtimeconfig.ProviderBun) || c.bunDB != nil {
		return nil
	}
	ctx := context.Background()
	db, err := database.Open(ctx, c.Config.Storage.Driver, c.Config.Storage.DSN, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("di: open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("di: migrate database: %w", err)
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger(logging.RootModule).Warn("di.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		if c.cacheService != nil {
			if c.documentRepo == nil {
				c.documentRepo = documents.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			}
			c.categoryRepo = templates.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			c.templateRepo = templates.NewBunTemplateRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			return
		}
		if c.documentRepo == nil {
			c.documentRepo = documents.NewBunRepository(c.bunDB)
		}
		c.categoryRepo = templates.NewBunCategoryRepository(c.bunDB)
		c.templateRepo = templates.NewBunTemplateRepository(c.bunDB)
		return
	}
	if c.documentRepo == nil {
		c.documentRepo = documents.NewMemoryRepository()
	}
	c.categoryRepo = templates.NewMemoryCategoryRepository()
	c.templateRepo = templates.NewMemoryTemplateRepository()
}

func (c *Container) configureTemplates() {
	if c.templateSvc != nil {
		return
	}
	if !c.Config.Features.Templates {
		c.templateSvc = templates.NewNoOpService()
		return
	}
	c.templateSvc = templates.NewService(c.categoryRepo, c.templateRepo,
		templates.WithLogger(c.logger(logging.TemplatesModule)),
	)
}

func (c *Container) configureSessions() error {
	loc, err := c.Config.TimerLocation()
	if err != nil {
		return fmt.Errorf("di: timer location: %w", err)
	}

	c.bridge = documents.NewBridge(c.documentRepo,
		documents.WithBridgeLogger(c.logger(logging.DocumentsModule)),
	)

	reducerOpts := []editor.ReducerOption{}
	if format := strings.TrimSpace(c.Config.Editor.NewPageNameFormat); format != "" {
		reducerOpts = append(reducerOpts, editor.WithPageNameFormat(format))
	}

	c.manager = sessions.NewManager(c.bridge,
		sessions.WithTemplates(c.templateSvc),
		sessions.WithMetrics(c.metrics),
		sessions.WithLogger(c.logger(logging.SessionsModule)),
		sessions.WithTimersLogger(c.logger(logging.TimersModule)),
		sessions.WithReducerOptions(reducerOpts...),
		sessions.WithTimerOptions(
			timers.WithLocation(loc),
			timers.WithCountdownInterval(c.Config.Timers.CountdownInterval),
			timers.WithCarouselFallback(c.Config.Timers.CarouselDefaultInterval),
		),
		sessions.WithPersistence(c.Config.Persistence.SaveDebounce, c.Config.Persistence.SaveTimeout),
	)
	return nil
}

// SeedTemplates loads the configured seed file into the template catalog.
// Categories and templates that already exist are kept.
func (c *Container) SeedTemplates(ctx context.Context) error {
	path := strings.TrimSpace(c.Config.Templates.SeedFile)
	if path == "" {
		return nil
	}
	seeds, err := templates.LoadSeedFile(path)
	if err != nil {
		return err
	}
	if err := templates.Bootstrap(ctx, c.templateSvc, seeds); err != nil {
		return err
	}
	c.logger(logging.TemplatesModule).Info("templates.seeded", "categories", len(seeds), "file", path)
	return nil
}

// Close flushes open sessions and releases the database when the container
// opened it.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.manager != nil {
		if err := c.manager.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.ownsDB && c.bunDB != nil {
		if err := c.bunDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// LoggerProvider returns the configured provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Metrics() *observability.Metrics          { return c.metrics }
func (c *Container) DB() *bun.DB                              { return c.bunDB }
func (c *Container) DocumentRepository() documents.Repository { return c.documentRepo }
func (c *Container) Bridge() *documents.Bridge                { return c.bridge }
func (c *Container) TemplateService() templates.Service       { return c.templateSvc }
func (c *Container) Sessions() *sessions.Manager              { return c.manager }
func (c *Container) CacheService() repocache.CacheService     { return c.cacheService }
