package patient

import (
	"context"

	"github.com/google/uuid"
)

type RecordRepository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, id uuid.UUID) error
}
