package capital

import "context"

type Repository interface {
	// Get returns the pool row; gorm.ErrRecordNotFound when it was never
	// seeded, which callers treat as a zero balance.
	Get(ctx context.Context) (*Balance, error)
	Upsert(ctx context.Context, total float64) error
}
