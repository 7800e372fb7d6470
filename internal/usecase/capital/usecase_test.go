package capital

import (
	"context"
	"errors"
	"testing"

	domain "loanbook-backend/internal/domain/capital"
	"loanbook-backend/internal/testutil/capitalmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seeded(total float64) *capitalmock.Repo {
	return &capitalmock.Repo{
		GetFn: func(ctx context.Context) (*domain.Balance, error) {
			return &domain.Balance{ID: domain.PoolID, Total: total}, nil
		},
	}
}

func TestTotal_UnseededPoolIsZero(t *testing.T) {
	uc := NewUsecase(&capitalmock.Repo{}, nil)

	total, err := uc.Total(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTotal_ReadError(t *testing.T) {
	boom := errors.New("boom")
	repo := &capitalmock.Repo{
		GetFn: func(ctx context.Context) (*domain.Balance, error) { return nil, boom },
	}
	uc := NewUsecase(repo, nil)

	_, err := uc.Total(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOnDisbursement_DeductsWhenCovered(t *testing.T) {
	repo := seeded(10000)
	var written float64
	repo.UpsertFn = func(ctx context.Context, total float64) error {
		written = total
		return nil
	}
	uc := NewUsecase(repo, nil)

	uc.OnDisbursement(context.Background(), 4000)
	assert.Equal(t, 6000.0, written)
}

func TestOnDisbursement_UnderfundedStoresShortfall(t *testing.T) {
	// Pool holds 1000, loan of 5000: the stored balance becomes the 4000
	// shortfall, not a negative number.
	repo := seeded(1000)
	var written float64
	repo.UpsertFn = func(ctx context.Context, total float64) error {
		written = total
		return nil
	}
	uc := NewUsecase(repo, nil)

	uc.OnDisbursement(context.Background(), 5000)
	assert.Equal(t, 4000.0, written)
}

func TestOnDisbursement_IgnoresNonPositive(t *testing.T) {
	repo := seeded(1000)
	repo.UpsertFn = func(ctx context.Context, total float64) error {
		t.Fatal("Upsert must not be called")
		return nil
	}
	uc := NewUsecase(repo, nil)

	uc.OnDisbursement(context.Background(), 0)
	uc.OnDisbursement(context.Background(), -5)
}

func TestOnDisbursement_WriteFailureIsSwallowed(t *testing.T) {
	repo := seeded(1000)
	repo.UpsertFn = func(ctx context.Context, total float64) error { return errors.New("down") }
	uc := NewUsecase(repo, nil)

	// Must not panic or propagate; capital updates are advisory.
	uc.OnDisbursement(context.Background(), 500)
}

func TestOnPaymentReceived_Increments(t *testing.T) {
	repo := seeded(1000)
	var written float64
	repo.UpsertFn = func(ctx context.Context, total float64) error {
		written = total
		return nil
	}
	uc := NewUsecase(repo, nil)

	total, ok := uc.OnPaymentReceived(context.Background(), 250.50)
	require.True(t, ok)
	assert.Equal(t, 1250.50, total)
	assert.Equal(t, 1250.50, written)
}

func TestOnPaymentReceived_FirstPaymentSeedsPool(t *testing.T) {
	repo := &capitalmock.Repo{
		GetFn: func(ctx context.Context) (*domain.Balance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	var written float64
	repo.UpsertFn = func(ctx context.Context, total float64) error {
		written = total
		return nil
	}
	uc := NewUsecase(repo, nil)

	total, ok := uc.OnPaymentReceived(context.Background(), 100)
	require.True(t, ok)
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 100.0, written)
}

func TestOnPaymentReceived_ZeroCashSkipped(t *testing.T) {
	uc := NewUsecase(seeded(1000), nil)

	_, ok := uc.OnPaymentReceived(context.Background(), 0)
	assert.False(t, ok)
}

func TestOnPaymentReceived_WriteFailure(t *testing.T) {
	repo := seeded(1000)
	repo.UpsertFn = func(ctx context.Context, total float64) error { return errors.New("down") }
	uc := NewUsecase(repo, nil)

	_, ok := uc.OnPaymentReceived(context.Background(), 100)
	assert.False(t, ok)
}
