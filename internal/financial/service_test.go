package financial_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/financial"
)

type stubRepo struct {
	created *financial.Entry
	updated *financial.Entry
}

func (r *stubRepo) CreateEntry(ctx context.Context, e *financial.Entry) error {
	r.created = e
	return nil
}

func (r *stubRepo) GetEntry(ctx context.Context, companyID, id uuid.UUID) (*financial.Entry, error) {
	return nil, financial.ErrNotFound
}

func (r *stubRepo) ListEntries(ctx context.Context, companyID uuid.UUID, filter financial.ListFilter) ([]*financial.Entry, error) {
	return nil, nil
}

func (r *stubRepo) UpdateEntry(ctx context.Context, e *financial.Entry) error {
	r.updated = e
	return nil
}

func (r *stubRepo) DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error {
	return nil
}

func TestService_Create_Validation(t *testing.T) {
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  financial.CreateParams
		wantErr error
	}{
		{
			name:    "MissingDate",
			params:  financial.CreateParams{Value: 500},
			wantErr: financial.ErrDateRequired,
		},
		{
			name:    "NegativeValue",
			params:  financial.CreateParams{EntryDate: date, Value: -200},
			wantErr: financial.ErrValueNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := financial.NewService(repo)

			_, err := svc.Create(context.Background(), uuid.New(), tt.params)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}
}

func TestService_Create_ZeroValueAccepted(t *testing.T) {
	repo := &stubRepo{}
	svc := financial.NewService(repo)

	e, err := svc.Create(context.Background(), uuid.New(), financial.CreateParams{
		EntryDate: time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
		Value:     0,
		Notes:     "courtesy visit",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.Value)
	assert.NotNil(t, repo.created)
}

func TestService_Update_RejectsNegativeValue(t *testing.T) {
	repo := &stubRepo{}
	svc := financial.NewService(repo)

	err := svc.Update(context.Background(), &financial.Entry{
		ID:        uuid.New(),
		EntryDate: time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
		Value:     -1,
	})
	require.ErrorIs(t, err, financial.ErrValueNegative)
	assert.Nil(t, repo.updated)
}
