package tests

import (
	"testing"

	"shopcat/internal/explorer"
	"shopcat/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationFixture() ([]model.Category, []model.Product) {
	categories := []model.Category{
		cat("Shoes", nil),
		cat("Shirts", nil),
		cat("Shoe Polish", nil),
	}
	products := []model.Product{
		prod("Running Shoes", "SHO-1", nil),
		prod("Dress Shirt", "SHI-1", nil),
		prod("Polish Kit", "POL-1", nil),
	}
	return categories, products
}

func TestPaginate_CategoriesPrecedeProducts(t *testing.T) {
	categories, products := paginationFixture()

	page := explorer.Paginate(categories, products, explorer.PageRequest{Page: 1, PerPage: 4})

	assert.Len(t, page.Categories, 3)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 6, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Running Shoes", page.Products[0].Name)
}

// Concatenating all pages must reproduce the filtered sequence exactly,
// whatever the page size.
func TestPaginate_LosslessAcrossPageSizes(t *testing.T) {
	categories, products := paginationFixture()

	for perPage := 1; perPage <= 7; perPage++ {
		var gotCats []string
		var gotProds []string
		page := 1
		for {
			res := explorer.Paginate(categories, products, explorer.PageRequest{Page: page, PerPage: perPage})
			for _, c := range res.Categories {
				gotCats = append(gotCats, c.Name)
			}
			for _, p := range res.Products {
				gotProds = append(gotProds, p.Name)
			}
			if page >= res.TotalPages {
				break
			}
			page++
		}
		assert.Equal(t, []string{"Shoes", "Shirts", "Shoe Polish"}, gotCats, "perPage=%d", perPage)
		assert.Equal(t, []string{"Running Shoes", "Dress Shirt", "Polish Kit"}, gotProds, "perPage=%d", perPage)
	}
}

func TestPaginate_QueryFiltersBothKinds(t *testing.T) {
	categories, products := paginationFixture()

	res := explorer.Paginate(categories, products, explorer.PageRequest{Query: "sho", Page: 1, PerPage: 20})

	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Shoes", res.Categories[0].Name)
	assert.Equal(t, "Shoe Polish", res.Categories[1].Name)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Running Shoes", res.Products[0].Name)
}

func TestPaginate_QueryMatchesSKU(t *testing.T) {
	_, products := paginationFixture()

	res := explorer.Paginate(nil, products, explorer.PageRequest{Query: "pol-1", Page: 1, PerPage: 20})
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Polish Kit", res.Products[0].Name)
}

func TestPaginate_PageBeyondTotalClampsToFirst(t *testing.T) {
	categories, products := paginationFixture()

	res := explorer.Paginate(categories, products, explorer.PageRequest{Page: 9, PerPage: 4})
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Categories, 3)

	// The clamp holds even when the filter empties the list.
	res = explorer.Paginate(categories, products, explorer.PageRequest{Query: "no such thing", Page: 5, PerPage: 4})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 0, res.TotalPages)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.Products)
}

func TestPaginate_DefaultsAndEmpty(t *testing.T) {
	res := explorer.Paginate(nil, nil, explorer.PageRequest{})
	assert.Equal(t, explorer.DefaultPerPage, res.PerPage)
	assert.Equal(t, 0, res.TotalItems)
	assert.Equal(t, 0, res.TotalPages)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.Products)

	// Non-positive perPage falls back to the default instead of dividing by zero.
	res = explorer.Paginate(nil, []model.Product{prod("One", "SKU-1", nil, uuid.New())}, explorer.PageRequest{PerPage: -3})
	assert.Equal(t, explorer.DefaultPerPage, res.PerPage)
	assert.Len(t, res.Products, 1)
}
