package service

import (
	"testing"

	"go-pos-backoffice/internal/cache"
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
	deleted  []uuid.UUID
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[uuid.UUID]*model.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(product *model.Product) error { return nil }
func (f *fakeProductRepo) FindAll() ([]model.Product, error)   { return nil, nil }
func (f *fakeProductRepo) Search(q string, page, pageSize int) ([]model.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (f *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) FindLowStock() ([]model.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(product *model.Product) error    { return nil }
func (f *fakeProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return nil
}
func (f *fakeProductRepo) UpdateBaseCost(tx *gorm.DB, id uuid.UUID, baseCost int64, updatedBy string) error {
	return nil
}
func (f *fakeProductRepo) CountAll() (int64, error)       { return 0, nil }
func (f *fakeProductRepo) CountLowStock() (int64, error)  { return 0, nil }
func (f *fakeProductRepo) StockValuation() (int64, error) { return 0, nil }

type fakeRecipeRepo struct {
	rows           []model.Recipe
	deletedParents []uuid.UUID
}

func (f *fakeRecipeRepo) FindByProduct(productID uuid.UUID) ([]model.Recipe, error) {
	return nil, nil
}
func (f *fakeRecipeRepo) FindAll() ([]model.Recipe, error) { return f.rows, nil }
func (f *fakeRecipeRepo) ReplaceForProduct(productID uuid.UUID, rows []model.Recipe) error {
	return nil
}
func (f *fakeRecipeRepo) DeleteForProduct(productID uuid.UUID) error {
	f.deletedParents = append(f.deletedParents, productID)
	return nil
}

func TestDeleteProduct_BlockedWhileUsedAsComponent(t *testing.T) {
	raw := &model.Product{ProductType: model.ProductRaw}
	raw.ID = uuid.New()
	parentID := uuid.New()

	productRepo := newFakeProductRepo(raw)
	recipeRepo := &fakeRecipeRepo{rows: []model.Recipe{
		{ProductID: parentID, ComponentID: raw.ID, QtyPerUnit: 0.5},
	}}
	svc := NewCatalogService(productRepo, recipeRepo, nil, cache.NewStore(), nil)

	err := svc.DeleteProduct(raw.ID, "user")
	assert.ErrorIs(t, err, ErrProductInUse)
	assert.Empty(t, productRepo.deleted)
	assert.Empty(t, recipeRepo.deletedParents)
}

func TestDeleteProduct_ParentTakesOwnRecipeAlong(t *testing.T) {
	parent := &model.Product{ProductType: model.ProductInternal}
	parent.ID = uuid.New()
	componentID := uuid.New()

	productRepo := newFakeProductRepo(parent)
	recipeRepo := &fakeRecipeRepo{rows: []model.Recipe{
		{ProductID: parent.ID, ComponentID: componentID, QtyPerUnit: 2},
	}}
	svc := NewCatalogService(productRepo, recipeRepo, nil, cache.NewStore(), nil)

	require.NoError(t, svc.DeleteProduct(parent.ID, "user"))
	assert.Equal(t, []uuid.UUID{parent.ID}, recipeRepo.deletedParents)
	assert.Equal(t, []uuid.UUID{parent.ID}, productRepo.deleted)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), &fakeRecipeRepo{}, nil, cache.NewStore(), nil)

	err := svc.DeleteProduct(uuid.New(), "user")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
