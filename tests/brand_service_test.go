package tests

import (
	"context"
	"testing"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBrandSvc() (service.BrandService, *stubBrandRepo, *assoc.Engine) {
	brandRepo := newStubBrandRepo()
	engine := assoc.NewEngine(newMemStore())
	return service.NewBrandService(brandRepo, engine), brandRepo, engine
}

func TestCreateBrand_DuplicateName(t *testing.T) {
	svc, brandRepo, _ := buildBrandSvc()
	brandRepo.seed("Acme")

	_, err := svc.Create(context.Background(), dto.CreateBrandRequest{Name: "Acme"})
	assert.ErrorContains(t, err, "already exists")
}

func TestDeactivateBrand_CascadesAssociations(t *testing.T) {
	svc, brandRepo, engine := buildBrandSvc()
	brand := brandRepo.seed("Acme")

	catA, catB := uuid.New(), uuid.New()
	engine.Link(context.Background(), catA, brand.ID)
	engine.Link(context.Background(), catB, brand.ID)
	engine.Link(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, svc.Deactivate(context.Background(), brand.ID))

	assert.False(t, brandRepo.brands[brand.ID].Active)
	snap := engine.Snapshot()
	assert.Len(t, snap, 1, "only the other brand's entry survives")
	_, ok := snap[catA]
	assert.False(t, ok)
}

func TestUpdateBrand_RenameConflict(t *testing.T) {
	svc, brandRepo, _ := buildBrandSvc()
	brandRepo.seed("Acme")
	other := brandRepo.seed("Globex")

	name := "Acme"
	_, err := svc.Update(context.Background(), other.ID, dto.UpdateBrandRequest{Name: &name})
	assert.ErrorContains(t, err, "already exists")
}
