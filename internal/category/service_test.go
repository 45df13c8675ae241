package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/category"
)

// memRepo stores categories in memory; UpdateCategoryName can only touch
// the name, matching the repository contract.
type memRepo struct {
	byID map[uuid.UUID]*category.Category
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[uuid.UUID]*category.Category)}
}

func (r *memRepo) CreateCategory(ctx context.Context, c *category.Category) error {
	c.ID = uuid.New()
	stored := *c
	r.byID[c.ID] = &stored

	return nil
}

func (r *memRepo) ListCategories(ctx context.Context, companyID uuid.UUID, typ *category.Type) ([]*category.Category, error) {
	var out []*category.Category

	for _, c := range r.byID {
		if c.CompanyID != companyID {
			continue
		}
		if typ != nil && c.Type != *typ {
			continue
		}

		out = append(out, c)
	}

	return out, nil
}

func (r *memRepo) UpdateCategoryName(ctx context.Context, companyID, id uuid.UUID, name string) error {
	c, ok := r.byID[id]
	if !ok || c.CompanyID != companyID {
		return category.ErrNotFound
	}

	c.Name = name

	return nil
}

func (r *memRepo) DeleteCategory(ctx context.Context, companyID, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func TestService_Create_Validation(t *testing.T) {
	svc := category.NewService(newMemRepo())

	_, err := svc.Create(context.Background(), uuid.New(), "", category.TypeProduct)
	require.ErrorIs(t, err, category.ErrNameRequired)

	_, err = svc.Create(context.Background(), uuid.New(), "Gases", category.Type("consumable"))
	require.ErrorIs(t, err, category.ErrInvalidType)
}

func TestService_Rename_PreservesType(t *testing.T) {
	repo := newMemRepo()
	svc := category.NewService(repo)
	companyID := uuid.New()

	created, err := svc.Create(context.Background(), companyID, "Manutenção", category.TypeService)
	require.NoError(t, err)

	require.NoError(t, svc.Rename(context.Background(), companyID, created.ID, "Manutenção Preventiva"))

	stored := repo.byID[created.ID]
	assert.Equal(t, "Manutenção Preventiva", stored.Name)
	assert.Equal(t, category.TypeService, stored.Type)
}

func TestService_Rename_Validation(t *testing.T) {
	repo := newMemRepo()
	svc := category.NewService(repo)
	companyID := uuid.New()

	created, err := svc.Create(context.Background(), companyID, "Peças", category.TypeProduct)
	require.NoError(t, err)

	err = svc.Rename(context.Background(), companyID, created.ID, "")
	require.ErrorIs(t, err, category.ErrNameRequired)
	assert.Equal(t, "Peças", repo.byID[created.ID].Name)

	err = svc.Rename(context.Background(), uuid.New(), created.ID, "Componentes")
	require.ErrorIs(t, err, category.ErrNotFound)
}
