package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/auth"
	"github.com/Lixing-Zhang/coffee-shop/internal/config"
	"github.com/Lixing-Zhang/coffee-shop/internal/handlers"
	"github.com/Lixing-Zhang/coffee-shop/internal/middleware"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
	"github.com/Lixing-Zhang/coffee-shop/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

const requestTimeout = 60 * time.Second

// New wires repositories, services and handlers onto a chi router.
func New(db *gorm.DB, cfg *config.Config, log *slog.Logger, now service.Clock) http.Handler {
	loc := cfg.Location()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db, cfg.Shop.AllowNegativeStock)
	reportRepo := repository.NewReportRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan(), now)

	// Initialize services
	saleService := service.NewSaleService(saleRepo, productRepo, now, loc, log)
	reportService := service.NewReportService(reportRepo, saleRepo, productRepo, now, loc)
	productService := service.NewProductService(productRepo, log)
	purchaseService := service.NewPurchaseService(purchaseRepo, now, loc, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	authService := service.NewAuthService(userRepo, tokens, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, now)
	dashboardHandler := handlers.NewDashboardHandler(reportService, log)
	saleHandler := handlers.NewSaleHandler(saleService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, log)
	expenseHandler := handlers.NewExpenseHandler(expenseService, log)
	authHandler := handlers.NewAuthHandler(authService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health-check", healthHandler.ServeHTTP)
	r.Get("/", dashboardHandler.ServeHTTP)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", saleHandler.ListSales)
			r.Post("/", saleHandler.CreateSale)
			r.Get("/create", saleHandler.CreateForm)
			r.With(middleware.RequireManager()).Get("/export", saleHandler.ExportSales)
			r.Get("/{id}", saleHandler.GetSale)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager())
				r.Post("/", productHandler.CreateProduct)
				r.Put("/{id}", productHandler.UpdateProduct)
				r.Delete("/{id}", productHandler.DeleteProduct)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager())

			r.Get("/purchases", purchaseHandler.ListPurchases)
			r.Post("/purchases", purchaseHandler.CreatePurchase)
			r.Get("/suppliers", purchaseHandler.ListSuppliers)

			r.Get("/expenses", expenseHandler.ListExpenses)
			r.Post("/expenses", expenseHandler.CreateExpense)
		})
	})

	return r
}
