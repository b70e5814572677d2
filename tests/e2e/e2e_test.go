//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - login → create brand → create category under brand context → inference
//   - explorer navigation: select brand, descend, back, breadcrumbs
//   - manual link/unlink and brand-delete cascade
//   - role enforcement (viewer cannot write)

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopcat/internal/assoc"
	"shopcat/internal/config"
	"shopcat/internal/infra"
	"shopcat/internal/router"
	"shopcat/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func seedUser(t *testing.T, srv *httptest.Server, token, username, role string) {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/users", jsonBody(t, map[string]string{
		"username": username,
		"name":     "E2E " + role,
		"password": "password123",
		"role":     role,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": password}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("shopcat_test"),
		tcPostgres.WithUsername("shopcat"),
		tcPostgres.WithPassword("shopcat"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ExportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), 10)
	require.NoError(t, err)
	require.NoError(t, db.Exec(
		`INSERT INTO users (username, name, password_hash, role, active) VALUES (?, 'Admin E2E', ?, 'admin', true)`,
		"admin@e2e.test", string(hash)).Error)

	engine := assoc.NewEngine(assoc.NewRedisStore(rdb))
	engine.Load(ctx)
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, engine, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		token:  login(t, srv, "admin@e2e.test", "admin-password"),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestE2E_CatalogLifecycleAndInference(t *testing.T) {
	env := setupTestEnv(t)
	srv, token := env.server, env.token

	// Create a brand.
	resp := do(t, srv, "POST", "/v1/brands", jsonBody(t, map[string]string{"name": "Acme"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var brand struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &brand)

	// Create a category under the brand context — inherited association.
	resp = do(t, srv, "POST", "/v1/categories", jsonBody(t, map[string]any{
		"name":    "Shoes",
		"brandId": brand.ID,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var shoes struct {
		ID      string  `json:"id"`
		BrandID *string `json:"brandId"`
	}
	decodeJSON(t, resp, &shoes)
	require.NotNil(t, shoes.BrandID)
	assert.Equal(t, brand.ID, *shoes.BrandID)

	// A second category with no context, then a product of the brand in it —
	// inference must fill the gap.
	resp = do(t, srv, "POST", "/v1/categories", jsonBody(t, map[string]any{"name": "Socks"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var socks struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &socks)

	resp = do(t, srv, "POST", "/v1/products", jsonBody(t, map[string]any{
		"name":       "Wool Socks",
		"sku":        "SOCK-1",
		"price":      "9.90",
		"brandId":    brand.ID,
		"categories": []string{socks.ID}, // bare-id wire shape
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/v1/categories", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []struct {
		ID      string  `json:"id"`
		BrandID *string `json:"brandId"`
	}
	decodeJSON(t, resp, &categories)
	found := false
	for _, c := range categories {
		if c.ID == socks.ID {
			found = true
			require.NotNil(t, c.BrandID, "inference should have associated the category")
			assert.Equal(t, brand.ID, *c.BrandID)
		}
	}
	assert.True(t, found)

	// Deleting the brand cascades both associations away.
	resp = do(t, srv, "DELETE", "/v1/brands/"+brand.ID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/v1/categories", nil, token)
	decodeJSON(t, resp, &categories)
	for _, c := range categories {
		assert.Nil(t, c.BrandID, "category %s should have lost its association", c.ID)
	}
}

func TestE2E_ExplorerNavigation(t *testing.T) {
	env := setupTestEnv(t)
	srv, token := env.server, env.token

	// Brand with one top-level category and one subcategory.
	resp := do(t, srv, "POST", "/v1/brands", jsonBody(t, map[string]string{"name": "Globex"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var brand struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &brand)

	resp = do(t, srv, "POST", "/v1/categories", jsonBody(t, map[string]any{
		"name":    "Electronics",
		"brandId": brand.ID,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var parent struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &parent)

	resp = do(t, srv, "POST", "/v1/categories", jsonBody(t, map[string]any{
		"name":     "Phones",
		"parentId": parent.ID,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var state struct {
		View              string `json:"view"`
		CanAddProduct     bool   `json:"canAddProduct"`
		CanAddSubcategory bool   `json:"canAddSubcategory"`
		Breadcrumbs       []any  `json:"breadcrumbs"`
	}

	resp = do(t, srv, "GET", "/v1/explorer/state", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &state)
	assert.Equal(t, "brands", state.View)

	resp = do(t, srv, "POST", "/v1/explorer/select-brand", jsonBody(t, map[string]string{"brandId": brand.ID}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &state)
	assert.Equal(t, "categories", state.View)

	// Entering a category with children lands on subcategories; with the
	// subcategory present, products cannot be added here.
	resp = do(t, srv, "POST", "/v1/explorer/select-category", jsonBody(t, map[string]string{"categoryId": parent.ID}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &state)
	assert.Equal(t, "subcategories", state.View)
	assert.False(t, state.CanAddProduct, "non-leaf category refuses products")
	assert.True(t, state.CanAddSubcategory, "one child, no products — room for more")
	require.Len(t, state.Breadcrumbs, 1)

	resp = do(t, srv, "POST", "/v1/explorer/back", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &state)
	assert.Equal(t, "categories", state.View)

	// Sidebar tree shows brand → Electronics → Phones.
	resp = do(t, srv, "GET", "/v1/explorer/tree", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree []struct {
		Name     string `json:"name"`
		Children []struct {
			Name     string `json:"name"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"children"`
	}
	decodeJSON(t, resp, &tree)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Electronics", tree[0].Children[0].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Phones", tree[0].Children[0].Children[0].Name)
}

func TestE2E_RoleEnforcement(t *testing.T) {
	env := setupTestEnv(t)
	srv, adminToken := env.server, env.token

	seedUser(t, srv, adminToken, "viewer@e2e.test", "viewer")
	viewerToken := login(t, srv, "viewer@e2e.test", "password123")

	// Viewers can read.
	resp := do(t, srv, "GET", "/v1/brands", nil, viewerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// But not write.
	resp = do(t, srv, "POST", "/v1/brands", jsonBody(t, map[string]string{"name": "Nope"}), viewerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// And not manage users.
	resp = do(t, srv, "GET", "/v1/users", nil, viewerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Unauthenticated requests bounce.
	resp = do(t, srv, "GET", "/v1/brands", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
