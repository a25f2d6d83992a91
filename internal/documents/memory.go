package documents

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/identity"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewMemoryRepository constructs an in-memory document store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

func (m *memoryRepository) Get(_ context.Context, projectID string) (*Record, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[projectID]
	if !ok {
		return nil, &NotFoundError{ProjectID: projectID}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) Save(_ context.Context, projectID string, document []byte) (*Record, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	record, ok := m.records[projectID]
	if !ok {
		record = &Record{
			ID:        identity.ProjectDocumentUUID(projectID),
			ProjectID: projectID,
			CreatedAt: now,
		}
		m.records[projectID] = record
	}
	record.Document = append([]byte(nil), document...)
	record.UpdatedAt = now
	return cloneRecord(record), nil
}

func (m *memoryRepository) Delete(_ context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[projectID]; !ok {
		return &NotFoundError{ProjectID: projectID}
	}
	delete(m.records, projectID)
	return nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, cloneRecord(record))
	}
	slices.SortFunc(records, func(a, b *Record) int {
		return strings.Compare(a.ProjectID, b.ProjectID)
	})
	return records, nil
}
