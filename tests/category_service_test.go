package tests

import (
	"context"
	"testing"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/explorer"
	"shopcat/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCategorySvc() (service.CategoryService, *stubCategoryRepo, *stubProductRepo, *stubBrandRepo, *assoc.Engine) {
	categoryRepo := newStubCategoryRepo()
	productRepo := newStubProductRepo()
	brandRepo := newStubBrandRepo()
	engine := assoc.NewEngine(newMemStore())
	svc := service.NewCategoryService(categoryRepo, productRepo, brandRepo, engine)
	return svc, categoryRepo, productRepo, brandRepo, engine
}

func TestCreateCategory_InheritsBrandContext(t *testing.T) {
	svc, _, _, brandRepo, engine := buildCategorySvc()
	brand := brandRepo.seed("Acme")

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:    "Shoes",
		BrandID: &brand.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BrandID)
	assert.Equal(t, brand.ID, *resp.BrandID)
	assert.Equal(t, brand.ID, engine.Snapshot()[resp.ID])
}

func TestCreateCategory_InheritanceNeverDisplacesManualLink(t *testing.T) {
	svc, categoryRepo, _, brandRepo, engine := buildCategorySvc()
	manual := brandRepo.seed("Manual")
	other := brandRepo.seed("Other")

	parent := categoryRepo.seed(cat("Parent", nil))
	engine.Link(context.Background(), parent.ID, manual.ID)

	// Re-creating under another brand context must not rewrite the parent's
	// entry; only the new child inherits.
	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:     "Child",
		ParentID: &parent.ID,
		BrandID:  &other.ID,
	})
	require.NoError(t, err)

	snap := engine.Snapshot()
	assert.Equal(t, manual.ID, snap[parent.ID])
	assert.Equal(t, other.ID, snap[resp.ID])
}

func TestCreateCategory_PlacementGuards(t *testing.T) {
	svc, categoryRepo, productRepo, _, _ := buildCategorySvc()

	// Parent holding a product refuses children.
	withProducts := categoryRepo.seed(cat("Leaf", nil))
	productRepo.seed(prod("Runner", "SKU-1", nil, withProducts.ID))
	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:     "Child",
		ParentID: &withProducts.ID,
	})
	assert.ErrorContains(t, err, "has products")

	// Parent at the subcategory cap refuses one more.
	full := categoryRepo.seed(cat("Full", nil))
	for i := 0; i < explorer.MaxSubcategories; i++ {
		categoryRepo.seed(cat("Sub", &full.ID))
	}
	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:     "Overflow",
		ParentID: &full.ID,
	})
	assert.ErrorContains(t, err, "maximum")
}

func TestUpdateCategory_RejectsCyclicParent(t *testing.T) {
	svc, categoryRepo, _, _, _ := buildCategorySvc()

	a := categoryRepo.seed(cat("A", nil))
	b := categoryRepo.seed(cat("B", &a.ID))
	c := categoryRepo.seed(cat("C", &b.ID))

	// A under its own grandchild closes a loop.
	_, err := svc.Update(context.Background(), a.ID, dto.UpdateCategoryRequest{
		ParentID:  &c.ID,
		SetParent: true,
	})
	assert.ErrorContains(t, err, "descendant")

	// Self-parenting is rejected outright.
	_, err = svc.Update(context.Background(), a.ID, dto.UpdateCategoryRequest{
		ParentID:  &a.ID,
		SetParent: true,
	})
	assert.ErrorContains(t, err, "own parent")

	// Moving to top level is fine.
	resp, err := svc.Update(context.Background(), c.ID, dto.UpdateCategoryRequest{SetParent: true})
	require.NoError(t, err)
	assert.Nil(t, resp.ParentID)
}

func TestLinkBrand_OverwritesAndUnlinkRemoves(t *testing.T) {
	svc, categoryRepo, _, brandRepo, engine := buildCategorySvc()
	first := brandRepo.seed("First")
	second := brandRepo.seed("Second")
	c := categoryRepo.seed(cat("Shoes", nil))

	require.NoError(t, svc.LinkBrand(context.Background(), c.ID, first.ID))
	require.NoError(t, svc.LinkBrand(context.Background(), c.ID, second.ID))
	assert.Equal(t, second.ID, engine.Snapshot()[c.ID], "manual link overwrites")

	require.NoError(t, svc.UnlinkBrand(context.Background(), c.ID))
	_, ok := engine.Snapshot()[c.ID]
	assert.False(t, ok)

	assert.Error(t, svc.LinkBrand(context.Background(), c.ID, uuid.New()), "unknown brand")
	assert.Error(t, svc.LinkBrand(context.Background(), uuid.New(), first.ID), "unknown category")
}
