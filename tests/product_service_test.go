package tests

import (
	"context"
	"testing"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductSvc() (service.ProductService, *stubProductRepo, *stubCategoryRepo, *assoc.Engine) {
	productRepo := newStubProductRepo()
	categoryRepo := newStubCategoryRepo()
	engine := assoc.NewEngine(newMemStore())
	svc := service.NewProductService(productRepo, categoryRepo, engine)
	return svc, productRepo, categoryRepo, engine
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc, productRepo, _, _ := buildProductSvc()
	productRepo.seed(prod("Existing", "SKU-1", nil))

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "New",
		SKU:   "SKU-1",
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorContains(t, err, "SKU")
}

func TestCreateProduct_RejectsNonLeafCategory(t *testing.T) {
	svc, _, categoryRepo, _ := buildProductSvc()
	parent := categoryRepo.seed(cat("Parent", nil))
	categoryRepo.seed(cat("Child", &parent.ID))

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Runner",
		SKU:        "SKU-1",
		Price:      decimal.NewFromInt(10),
		Categories: []dto.CategoryRef{{CategoryID: parent.ID}},
	})
	assert.ErrorContains(t, err, "subcategories")
}

func TestCreateProduct_TriggersInference(t *testing.T) {
	svc, _, categoryRepo, engine := buildProductSvc()
	leaf := categoryRepo.seed(cat("Shoes", nil))
	brand := uuid.New()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Runner",
		SKU:        "SKU-1",
		Price:      decimal.NewFromInt(10),
		BrandID:    &brand,
		Categories: []dto.CategoryRef{{CategoryID: leaf.ID}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BrandID)

	// The category now holds products of exactly one brand.
	assert.Equal(t, brand, engine.Snapshot()[leaf.ID])
}

func TestUpdateProduct_ReplaceCategoriesChecksLeaves(t *testing.T) {
	svc, productRepo, categoryRepo, _ := buildProductSvc()
	leaf := categoryRepo.seed(cat("Leaf", nil))
	parent := categoryRepo.seed(cat("Parent", nil))
	categoryRepo.seed(cat("Child", &parent.ID))
	p := productRepo.seed(prod("Runner", "SKU-1", nil, leaf.ID))

	_, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Categories: []dto.CategoryRef{{CategoryID: parent.ID}},
	})
	assert.ErrorContains(t, err, "subcategories")

	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Categories: []dto.CategoryRef{{CategoryID: leaf.ID}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, leaf.ID, resp.Categories[0].CategoryID)
}

func TestVariants_Lifecycle(t *testing.T) {
	svc, productRepo, _, _ := buildProductSvc()
	p := productRepo.seed(prod("Runner", "SKU-1", nil))

	v, err := svc.AddVariant(context.Background(), p.ID, dto.CreateVariantRequest{
		Name:  "Size 42",
		SKU:   "SKU-1-42",
		Price: decimal.NewFromInt(12),
		Stock: 3,
	})
	require.NoError(t, err)

	newStock := 7
	updated, err := svc.UpdateVariant(context.Background(), p.ID, v.ID, dto.UpdateVariantRequest{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	// Variant lookups are scoped to the owning product.
	_, err = svc.UpdateVariant(context.Background(), uuid.New(), v.ID, dto.UpdateVariantRequest{})
	assert.Error(t, err)

	require.NoError(t, svc.DeleteVariant(context.Background(), p.ID, v.ID))
	assert.Error(t, svc.DeleteVariant(context.Background(), p.ID, v.ID))
}
