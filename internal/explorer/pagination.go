package explorer

import (
	"strings"

	"shopcat/internal/model"
)

// DefaultPerPage is used when the client sends no (or a non-positive)
// page size.
const DefaultPerPage = 20

// PageRequest filters and slices the merged category+product list.
type PageRequest struct {
	Query   string
	Page    int
	PerPage int
}

// PageResult is one page of the merged list, split back into typed
// sub-lists for rendering. Categories always precede products.
type PageResult struct {
	Categories []model.Category
	Products   []model.Product
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Paginate filters both collections by a case-insensitive substring match
// (name and localized name; SKU too for products), concatenates filtered
// categories before filtered products, slices the requested page, and
// splits the slice back into typed lists.
//
// The split-and-rejoin is lossless and order-preserving: concatenating all
// pages reproduces the filtered sequence exactly. A page beyond the total
// clamps back to page 1.
func Paginate(categories []model.Category, products []model.Product, req PageRequest) PageResult {
	if req.PerPage <= 0 {
		req.PerPage = DefaultPerPage
	}
	if req.Page < 1 {
		req.Page = 1
	}

	fc := filterCategories(categories, req.Query)
	fp := filterProducts(products, req.Query)

	total := len(fc) + len(fp)
	totalPages := (total + req.PerPage - 1) / req.PerPage
	if req.Page > totalPages {
		req.Page = 1
	}

	start := (req.Page - 1) * req.PerPage
	end := start + req.PerPage

	res := PageResult{
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	// Categories occupy merged positions [0, len(fc)), products the rest.
	if start < len(fc) {
		ce := end
		if ce > len(fc) {
			ce = len(fc)
		}
		res.Categories = fc[start:ce]
	}
	ps := start - len(fc)
	pe := end - len(fc)
	if pe > 0 {
		if ps < 0 {
			ps = 0
		}
		if pe > len(fp) {
			pe = len(fp)
		}
		if ps < pe {
			res.Products = fp[ps:pe]
		}
	}

	return res
}

func filterCategories(categories []model.Category, query string) []model.Category {
	if query == "" {
		return categories
	}
	q := strings.ToLower(query)
	var out []model.Category
	for _, c := range categories {
		if matches(q, c.Name) || (c.NameAr != nil && matches(q, *c.NameAr)) {
			out = append(out, c)
		}
	}
	return out
}

func filterProducts(products []model.Product, query string) []model.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	var out []model.Product
	for _, p := range products {
		if matches(q, p.Name) || (p.NameAr != nil && matches(q, *p.NameAr)) || matches(q, p.SKU) {
			out = append(out, p)
		}
	}
	return out
}

func matches(lowerQuery, field string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}
