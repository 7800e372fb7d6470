package mysql

import (
	"context"

	capitalDomain "loanbook-backend/internal/domain/capital"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CapitalRepository struct{ db *gorm.DB }

func NewCapitalRepository(db *gorm.DB) *CapitalRepository { return &CapitalRepository{db: db} }

func (r *CapitalRepository) Get(ctx context.Context) (*capitalDomain.Balance, error) {
	var out capitalDomain.Balance
	res := r.db.WithContext(ctx).Where("id = ?", capitalDomain.PoolID).First(&out)
	return &out, res.Error
}

// Upsert writes the pool total, creating the single row on first use.
func (r *CapitalRepository) Upsert(ctx context.Context, total float64) error {
	b := &capitalDomain.Balance{ID: capitalDomain.PoolID, Total: total}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total"}),
		}).
		Create(b).Error
}
