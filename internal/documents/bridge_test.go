package documents_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/site"
)

type failingRepository struct {
	documents.Repository
	getErr  error
	saveErr error
}

func (f failingRepository) Get(ctx context.Context, projectID string) (*documents.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, projectID)
}

func (f failingRepository) Save(ctx context.Context, projectID string, document []byte) (*documents.Record, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.Repository.Save(ctx, projectID, document)
}

func TestBridgeLoadMissingReturnsDefault(t *testing.T) {
	bridge := documents.NewBridge(documents.NewMemoryRepository())

	doc, err := bridge.Load(context.Background(), "new-project")
	if err != nil {
		t.Fatalf("expected no error for missing document, got %v", err)
	}
	if !reflect.DeepEqual(doc, site.DefaultSite()) {
		t.Fatalf("expected default document, got %#v", doc)
	}
}

func TestBridgeSaveThenLoad(t *testing.T) {
	bridge := documents.NewBridge(documents.NewMemoryRepository())
	ctx := context.Background()
	original := sampleSite(t)

	if err := bridge.Save(ctx, "proj", original); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := bridge.Load(ctx, "proj")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Fatal("expected loaded document to equal saved document")
	}

	ids, err := bridge.Projects(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "proj" {
		t.Fatalf("expected [proj], got %v (%v)", ids, err)
	}
}

func TestBridgeLoadMalformedFailsClosed(t *testing.T) {
	repo := documents.NewMemoryRepository()
	ctx := context.Background()
	if _, err := repo.Save(ctx, "broken", []byte(`{"pages":"nope"}`)); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	doc, err := documents.NewBridge(repo).Load(ctx, "broken")
	var loadErr *documents.LoadError
	if !errors.As(err, &loadErr) || loadErr.Category != documents.LoadMalformed {
		t.Fatalf("expected malformed LoadError, got %v", err)
	}
	if !errors.Is(err, documents.ErrMalformedDocument) {
		t.Fatalf("expected error chain to include ErrMalformedDocument, got %v", err)
	}
	if !reflect.DeepEqual(doc, site.DefaultSite()) {
		t.Fatal("expected default document on malformed payload")
	}
}

func TestBridgeLoadIOFailure(t *testing.T) {
	ioErr := errors.New("disk unavailable")
	repo := failingRepository{Repository: documents.NewMemoryRepository(), getErr: ioErr}

	doc, err := documents.NewBridge(repo).Load(context.Background(), "proj")
	var loadErr *documents.LoadError
	if !errors.As(err, &loadErr) || loadErr.Category != documents.LoadIO {
		t.Fatalf("expected io LoadError, got %v", err)
	}
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected wrapped io error, got %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected default document, got %d pages", len(doc.Pages))
	}
}

func TestBridgeSaveFailure(t *testing.T) {
	repo := failingRepository{Repository: documents.NewMemoryRepository(), saveErr: errors.New("quota")}

	err := documents.NewBridge(repo).Save(context.Background(), "proj", site.DefaultSite())
	var saveErr *documents.SaveError
	if !errors.As(err, &saveErr) || saveErr.ProjectID != "proj" {
		t.Fatalf("expected SaveError for proj, got %v", err)
	}
}

func TestBridgeSeedRejectsInvalidDocument(t *testing.T) {
	bridge := documents.NewBridge(nil)
	if _, err := bridge.Seed(context.Background(), "proj", site.Site{}); !errors.Is(err, documents.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for empty site, got %v", err)
	}

	seeded, err := bridge.Seed(context.Background(), "proj", site.Site{Pages: []site.Page{site.NewPage("landing", "Landing")}})
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if seeded.CurrentPageID != "landing" {
		t.Fatalf("expected seeded current page landing, got %q", seeded.CurrentPageID)
	}
	if err := bridge.Delete(context.Background(), "proj"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := bridge.Delete(context.Background(), "proj"); err != nil {
		t.Fatalf("expected deleting missing document to succeed, got %v", err)
	}
}

type recordingSaver struct {
	mu    sync.Mutex
	saves []site.Site
	delay time.Duration
	err   error
}

func (r *recordingSaver) Save(_ context.Context, _ string, doc site.Site) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, doc)
	return r.err
}

func (r *recordingSaver) snapshot() []site.Site {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]site.Site(nil), r.saves...)
}

func siteNamed(name string) site.Site {
	doc := site.DefaultSite()
	doc.Pages[0].Name = name
	return doc
}

func TestAutoSaverLastWriteWins(t *testing.T) {
	saver := &recordingSaver{delay: 20 * time.Millisecond}
	auto := documents.NewAutoSaver(saver)

	for _, name := range []string{"v1", "v2", "v3", "v4"} {
		if err := auto.Enqueue("proj", siteNamed(name)); err != nil {
			t.Fatalf("Enqueue returned error: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := auto.Flush(ctx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}

	saves := saver.snapshot()
	if len(saves) == 0 {
		t.Fatal("expected at least one save")
	}
	if last := saves[len(saves)-1].Pages[0].Name; last != "v4" {
		t.Fatalf("expected newest snapshot to be written last, got %q", last)
	}
	if auto.Pending("proj") {
		t.Fatal("expected nothing pending after flush")
	}
}

func TestAutoSaverDebounceCoalesces(t *testing.T) {
	saver := &recordingSaver{}
	auto := documents.NewAutoSaver(saver, documents.WithDebounce(time.Hour))

	for _, name := range []string{"a", "b", "c"} {
		if err := auto.Enqueue("proj", siteNamed(name)); err != nil {
			t.Fatalf("Enqueue returned error: %v", err)
		}
	}
	if got := len(saver.snapshot()); got != 0 {
		t.Fatalf("expected no saves before the quiet period, got %d", got)
	}
	if !auto.Pending("proj") {
		t.Fatal("expected pending snapshot")
	}

	if err := auto.FlushProject(context.Background(), "proj"); err != nil {
		t.Fatalf("FlushProject returned error: %v", err)
	}
	saves := saver.snapshot()
	if len(saves) != 1 || saves[0].Pages[0].Name != "c" {
		t.Fatalf("expected a single save of the newest snapshot, got %d", len(saves))
	}
}

func TestAutoSaverReportsFailures(t *testing.T) {
	saver := &recordingSaver{err: errors.New("offline")}
	var (
		mu     sync.Mutex
		failed []string
	)
	auto := documents.NewAutoSaver(saver, documents.WithOnError(func(projectID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, projectID)
	}))

	if err := auto.Enqueue("proj", site.DefaultSite()); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if err := auto.Close(context.Background()); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(failed) != 1 || failed[0] != "proj" {
		t.Fatalf("expected one failure for proj, got %v", failed)
	}
	if err := auto.Enqueue("proj", site.DefaultSite()); !errors.Is(err, documents.ErrAutoSaverClosed) {
		t.Fatalf("expected ErrAutoSaverClosed after Close, got %v", err)
	}
}

func TestAutoSaverIsolatesSnapshots(t *testing.T) {
	saver := &recordingSaver{}
	auto := documents.NewAutoSaver(saver, documents.WithDebounce(time.Hour))
	doc := siteNamed("before")

	if err := auto.Enqueue("proj", doc); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	doc.Pages[0].Name = "mutated"
	if err := auto.Flush(context.Background()); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if saves := saver.snapshot(); len(saves) != 1 || saves[0].Pages[0].Name != "before" {
		t.Fatal("expected the enqueued snapshot to be isolated from later mutation")
	}
}
