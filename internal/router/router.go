package router

import (
	"net/http"

	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/config"
	"github.com/annapurna-pos/api/internal/database"
	"github.com/annapurna-pos/api/internal/handler"
	"github.com/annapurna-pos/api/internal/logger"
	mw "github.com/annapurna-pos/api/internal/middleware"
	"github.com/annapurna-pos/api/internal/service"
	"github.com/annapurna-pos/api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// New creates a Chi router with all application routes wired up. The menu
// snapshot is the catalog loaded at startup; sess is the operator
// terminal's session.
func New(cfg *config.Config, log *logger.Logger, queries *database.Queries,
	pool *pgxpool.Pool, menu []database.MenuItem, sess *session.Session) chi.Router {

	items := catalog.Snapshot(menu)
	catalogItems := make([]catalog.Item, 0, len(menu))
	for _, row := range menu {
		catalogItems = append(catalogItems, catalog.FromRow(row))
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(mw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		menuHandler := handler.NewMenuHandler(catalogItems)
		r.Route("/menu", menuHandler.RegisterRoutes)

		cartHandler := handler.NewCartHandler(sess, items)
		r.Route("/cart", cartHandler.RegisterRoutes)

		newOrderStore := func(db database.DBTX) service.OrderStore {
			return database.New(db)
		}
		orderService := service.NewOrderService(pool, newOrderStore)
		billHandler := handler.NewBillHandler(
			orderService,
			queries,
			sess,
			items,
			decimal.NewFromFloat(cfg.GSTPercent),
			log,
		)
		r.Route("/bills", billHandler.RegisterRoutes)

		reportsHandler := handler.NewReportsHandler(queries)
		r.Route("/reports", reportsHandler.RegisterRoutes)
	})

	return r
}
