package router

import (
	"time"

	"shopcat/internal/assoc"
	"shopcat/internal/config"
	"shopcat/internal/handler"
	"shopcat/internal/infra"
	"shopcat/internal/middleware"
	"shopcat/internal/repository"
	"shopcat/internal/service"
	"shopcat/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The association engine and job dispatcher are shared singletons owned by
// main — the worker pool uses the same instances.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, engine *assoc.Engine, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mediaClient := infra.NewMediaClient(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	brandSvc := service.NewBrandService(brandRepo, engine)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, brandRepo, engine)
	productSvc := service.NewProductService(productRepo, categoryRepo, engine)
	explorerSvc := service.NewExplorerService(brandRepo, categoryRepo, productRepo, engine, rdb)
	exportSvc := service.NewExportService(dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	brandsH := handler.NewBrandsHandler(brandSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	explorerH := handler.NewExplorerHandler(explorerSvc)
	exportH := handler.NewExportHandler(exportSvc)
	mediaH := handler.NewMediaHandler(mediaClient)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: viewer, editor, admin — declared per-endpoint.
		read := middleware.RequireRole("viewer", "editor", "admin")
		write := middleware.RequireRole("editor", "admin")

		// Explorer — any authenticated role can navigate
		exp := v1.Group("/explorer", read)
		{
			exp.GET("/tree", explorerH.Tree)
			exp.GET("/state", explorerH.State)
			exp.GET("/content", explorerH.Content)
			exp.POST("/select-brand", explorerH.SelectBrand)
			exp.POST("/select-category", explorerH.SelectCategory)
			exp.POST("/back", explorerH.Back)
			exp.POST("/breadcrumb", explorerH.Breadcrumb)
		}

		// Brands
		v1.GET("/brands", read, brandsH.List)
		brands := v1.Group("/brands", write)
		{
			brands.POST("", brandsH.Create)
			brands.PUT("/:id", brandsH.Update)
			brands.DELETE("/:id", brandsH.Deactivate)
		}

		// Categories — manual link/unlink is the strongest association source
		v1.GET("/categories", read, categoriesH.List)
		categories := v1.Group("/categories", write)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
			categories.POST("/:id/brand", categoriesH.LinkBrand)
			categories.DELETE("/:id/brand", categoriesH.UnlinkBrand)
		}

		// Products and variants
		v1.GET("/products", read, productsH.List)
		v1.GET("/products/:id", read, productsH.FindByID)
		products := v1.Group("/products", write)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.POST("/:id/variants", productsH.AddVariant)
			products.PUT("/:id/variants/:variantId", productsH.UpdateVariant)
			products.DELETE("/:id/variants/:variantId", productsH.DeleteVariant)
		}

		// Media uploads
		v1.POST("/uploads", write, mediaH.Upload)

		// Async catalog export
		v1.POST("/exports/catalog", read, exportH.Enqueue)

		// User management — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
