package service

import (
	"context"
	"encoding/json"
	"errors"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/explorer"
	"shopcat/internal/model"
	"shopcat/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const sessionKeyPrefix = "explorer:session:"

// ExplorerService drives the hierarchical catalog explorer: per-user
// navigation sessions, the sidebar tree, and the paged content pane.
//
// Sessions are serialized to redis per user id; concurrent mutations are
// last-writer-wins — the session is a soft navigation cache, not
// authoritative data.
type ExplorerService interface {
	Tree(ctx context.Context) ([]explorer.TreeNode, error)
	State(ctx context.Context, userID string) (dto.ExplorerStateResponse, error)
	SelectBrand(ctx context.Context, userID string, brandID uuid.UUID) (dto.ExplorerStateResponse, error)
	SelectCategory(ctx context.Context, userID string, categoryID uuid.UUID) (dto.ExplorerStateResponse, error)
	Back(ctx context.Context, userID string) (dto.ExplorerStateResponse, error)
	Breadcrumb(ctx context.Context, userID string, index int) (dto.ExplorerStateResponse, error)
	Content(ctx context.Context, userID string, req explorer.PageRequest) (dto.ExplorerContentResponse, error)
}

type explorerService struct {
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	engine     *assoc.Engine
	rdb        *redis.Client
}

func NewExplorerService(
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	engine *assoc.Engine,
	rdb *redis.Client,
) ExplorerService {
	return &explorerService{
		brands:     brands,
		categories: categories,
		products:   products,
		engine:     engine,
		rdb:        rdb,
	}
}

// ── Session persistence ──────────────────────────────────────────────────────

func (s *explorerService) loadSession(ctx context.Context, userID string) explorer.Session {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+userID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("user_id", userID).Msg("explorer: session load failed, starting fresh")
		}
		return explorer.NewSession()
	}
	var sess explorer.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("explorer: corrupt session, starting fresh")
		return explorer.NewSession()
	}
	return sess
}

func (s *explorerService) saveSession(ctx context.Context, userID string, sess explorer.Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		log.Error().Err(err).Msg("explorer: session marshal failed")
		return
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+userID, data, 0).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("explorer: session save failed")
	}
}

// ── Navigation ───────────────────────────────────────────────────────────────

func (s *explorerService) Tree(ctx context.Context) ([]explorer.TreeNode, error) {
	brands, categories, products, err := s.loadCollections(ctx)
	if err != nil {
		return nil, err
	}
	return explorer.BuildTree(s.engine.Snapshot(), brands, categories, products)
}

func (s *explorerService) State(ctx context.Context, userID string) (dto.ExplorerStateResponse, error) {
	sess := s.loadSession(ctx, userID)
	return s.buildState(ctx, sess)
}

func (s *explorerService) SelectBrand(ctx context.Context, userID string, brandID uuid.UUID) (dto.ExplorerStateResponse, error) {
	sess := s.loadSession(ctx, userID)
	sess.SelectBrand(brandID)
	s.saveSession(ctx, userID, sess)
	return s.buildState(ctx, sess)
}

// SelectCategory descends into a category. An identifier not present in the
// loaded set is not an error: the transition still applies and the content
// pane simply comes up empty.
func (s *explorerService) SelectCategory(ctx context.Context, userID string, categoryID uuid.UUID) (dto.ExplorerStateResponse, error) {
	sess := s.loadSession(ctx, userID)
	subCount, err := s.categories.CountByParent(ctx, categoryID)
	if err != nil {
		subCount = 0
	}
	sess.SelectCategory(categoryID, int(subCount))
	s.saveSession(ctx, userID, sess)
	return s.buildState(ctx, sess)
}

func (s *explorerService) Back(ctx context.Context, userID string) (dto.ExplorerStateResponse, error) {
	sess := s.loadSession(ctx, userID)
	sess.Back()
	s.saveSession(ctx, userID, sess)
	return s.buildState(ctx, sess)
}

// Breadcrumb handles clicks on the path: index -1 is the brand segment,
// 0..len-1 a category segment.
func (s *explorerService) Breadcrumb(ctx context.Context, userID string, index int) (dto.ExplorerStateResponse, error) {
	sess := s.loadSession(ctx, userID)
	if index < 0 {
		sess.JumpToBrand()
	} else if index < len(sess.Path) {
		target := sess.Path[index]
		subCount, err := s.categories.CountByParent(ctx, target)
		if err != nil {
			subCount = 0
		}
		sess.JumpToPath(index, int(subCount))
	}
	s.saveSession(ctx, userID, sess)
	return s.buildState(ctx, sess)
}

// ── Content pane ─────────────────────────────────────────────────────────────

func (s *explorerService) Content(ctx context.Context, userID string, req explorer.PageRequest) (dto.ExplorerContentResponse, error) {
	sess := s.loadSession(ctx, userID)
	state, err := s.buildState(ctx, sess)
	if err != nil {
		return dto.ExplorerContentResponse{}, err
	}
	resp := dto.ExplorerContentResponse{
		State:      state,
		Categories: []dto.CategoryResponse{},
		Products:   []dto.ProductResponse{},
	}

	if sess.View == explorer.ViewBrands {
		brands, err := s.brands.List(ctx)
		if err != nil {
			return resp, err
		}
		for _, b := range brands {
			resp.Brands = append(resp.Brands, mapBrand(b))
		}
		resp.Page, resp.TotalPages = 1, 1
		resp.TotalItems = len(brands)
		return resp, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return resp, err
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return resp, err
	}

	brandID := uuid.Nil
	if sess.BrandID != nil {
		brandID = *sess.BrandID
	}

	var paneCategories []model.Category
	var paneProducts []model.Product
	switch sess.View {
	case explorer.ViewCategories:
		paneCategories = s.engine.TopLevelByBrand(brandID, categories, products)
	case explorer.ViewSubcategories:
		if sess.CategoryID != nil {
			paneCategories = s.engine.Children(*sess.CategoryID, brandID, categories, products)
			paneProducts = productsInCategory(products, *sess.CategoryID)
		}
	case explorer.ViewProducts:
		if sess.CategoryID != nil {
			paneProducts = productsInCategory(products, *sess.CategoryID)
		}
	}

	page := explorer.Paginate(paneCategories, paneProducts, req)
	m := s.engine.Snapshot()
	for _, c := range page.Categories {
		resp.Categories = append(resp.Categories, mapCategory(c, m))
	}
	for _, p := range page.Products {
		resp.Products = append(resp.Products, *mapProduct(p))
	}
	resp.Page = page.Page
	resp.PerPage = page.PerPage
	resp.TotalItems = page.TotalItems
	resp.TotalPages = page.TotalPages
	return resp, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *explorerService) loadCollections(ctx context.Context) ([]model.Brand, []model.Category, []model.Product, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return brands, categories, products, nil
}

func (s *explorerService) buildState(ctx context.Context, sess explorer.Session) (dto.ExplorerStateResponse, error) {
	state := dto.ExplorerStateResponse{
		View:        string(sess.View),
		BrandID:     sess.BrandID,
		CategoryID:  sess.CategoryID,
		Breadcrumbs: []dto.BreadcrumbEntry{},
	}

	if len(sess.Path) > 0 {
		all, err := s.categories.List(ctx)
		if err != nil {
			return state, err
		}
		byID := make(map[uuid.UUID]model.Category, len(all))
		for _, c := range all {
			byID[c.ID] = c
		}
		for _, id := range sess.Path {
			if c, ok := byID[id]; ok {
				state.Breadcrumbs = append(state.Breadcrumbs, dto.BreadcrumbEntry{ID: c.ID, Name: c.Name, NameAr: c.NameAr})
			}
		}
	}

	// Placement guards for the current location. At the top level only new
	// (sub)categories make sense; products need a leaf category.
	if sess.CategoryID == nil {
		state.CanAddSubcategory = true
		return state, nil
	}
	subCount, err := s.categories.CountByParent(ctx, *sess.CategoryID)
	if err != nil {
		subCount = 0
	}
	productCount, err := s.products.CountByCategory(ctx, *sess.CategoryID)
	if err != nil {
		productCount = 0
	}
	state.CanAddProduct = explorer.CanAddProduct(int(subCount))
	state.CanAddSubcategory = explorer.CanAddSubcategory(int(subCount), int(productCount))
	return state, nil
}

func productsInCategory(products []model.Product, categoryID uuid.UUID) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.InCategory(categoryID) {
			out = append(out, p)
		}
	}
	return out
}
