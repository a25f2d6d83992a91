package documents

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the stored snapshot of one project's document.
type Record struct {
	bun.BaseModel `bun:"table:project_documents,alias:pd"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProjectID string    `bun:"project_id,notnull,unique" json:"project_id"`
	Document  []byte    `bun:"document,notnull" json:"document"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Repository persists whole documents keyed by project id.
type Repository interface {
	Get(ctx context.Context, projectID string) (*Record, error)
	Save(ctx context.Context, projectID string, document []byte) (*Record, error)
	Delete(ctx context.Context, projectID string) error
	List(ctx context.Context) ([]*Record, error)
}

// NewRecordRepository returns the go-repository-bun repository for records.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "project_id"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.ProjectID
		},
	})
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Document = append([]byte(nil), record.Document...)
	return &cloned
}
