package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
	"github.com/oab26/medusa-colabship/internal/modules/catalog"
	"github.com/oab26/medusa-colabship/internal/modules/marketplace"
	"github.com/oab26/medusa-colabship/internal/modules/store"
	"github.com/oab26/medusa-colabship/internal/modules/user"
	"github.com/oab26/medusa-colabship/internal/saga"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("ping database")
	}
	log.Info("connected to the database")

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	stepTimeout := 15 * time.Second
	if raw := os.Getenv("SAGA_STEP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.WithError(err).Fatal("invalid SAGA_STEP_TIMEOUT")
		}
		stepTimeout = d
	}
	sagas := saga.NewExecutor(log, saga.WithStepTimeout(stepTimeout))

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RequestID)

	authn := auth.Authenticator(jwtSecret)

	// ── Identity provider & login ───────────────────────────
	identityRepo := auth.NewPostgresRepository(db)
	identityProvider := auth.NewProvider(identityRepo)
	auth.NewHandler(auth.NewService(identityProvider, jwtSecret)).RegisterRoutes(router)

	// ── Marketplace: vendors & vendor admins ────────────────
	marketplaceRepo := marketplace.NewPostgresRepository(db)
	marketplaceService := marketplace.NewService(marketplaceRepo, identityProvider, sagas)
	marketplace.NewHandler(marketplaceService).RegisterRoutes(router, authn)

	// ── Stores & store admins ───────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo, userRepo, identityProvider, sagas)
	store.NewHandler(storeService).RegisterRoutes(router, authn)

	// ── Catalog & vendor-product links ──────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	resolveVendor := func(r *http.Request) (string, error) {
		actor, ok := auth.ActorFromContext(r.Context())
		if !ok {
			return "", apperror.New(apperror.NotFound, "no authenticated actor")
		}
		admin, err := marketplaceService.GetVendorAdmin(r.Context(), actor.ID)
		if err != nil {
			return "", err
		}
		return admin.VendorID.String(), nil
	}
	catalog.NewHandler(catalogService, resolveVendor).RegisterRoutes(router, authn)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "9000"
	}
	log.WithField("port", port).Info("marketplace API server starting")
	log.Fatal(http.ListenAndServe(":"+port, router))
}
