package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "vet-medication-reference/docs"
	mem "vet-medication-reference/internal/adapters/storage/memory"
	pg "vet-medication-reference/internal/adapters/storage/postgres"
	"vet-medication-reference/internal/domain/barcodes"
	"vet-medication-reference/internal/domain/dosage"
	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/middleware"
	"vet-medication-reference/internal/platform/httpjson"
	"vet-medication-reference/internal/platform/logger"
	"vet-medication-reference/internal/platform/metrics"
	"vet-medication-reference/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Collector
	Version string

	// Limitador de /api; nil = sin límite.
	RateLimiter *rate.Limiter
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			Version:   version,
		})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		medRepo     medications.Repository
		calcRepo    dosage.Repository
		barcodeRepo barcodes.Repository
	)
	if opts.DB != nil {
		medRepo = pg.NewMedicationsRepo(opts.DB)
		calcRepo = pg.NewCalculationsRepo(opts.DB)
		barcodeRepo = pg.NewBarcodesRepo(opts.DB)
	} else {
		medRepo = mem.NewMedicationRepo()
		calcRepo = mem.NewCalculationRepo()
		barcodeRepo = mem.NewBarcodeRepo()
	}

	// Services por módulo. El borrado de un medicamento arrastra cálculos y barcodes.
	medSvc := medications.NewService(medRepo, calcRepo, barcodeRepo)
	doseSvc := dosage.NewService(calcRepo, medSvc)
	barcodeSvc := barcodes.NewService(barcodeRepo, medSvc)

	// Rutas por módulo
	r.Group(func(api chi.Router) {
		api.Use(middleware.RateLimit(opts.RateLimiter))

		medications.RegisterRoutes(api, medSvc, log.With(map[string]any{"module": "medications"}))
		dosage.RegisterRoutes(api, doseSvc, log.With(map[string]any{"module": "dosage"}), opts.Metrics)
		barcodes.RegisterRoutes(api, barcodeSvc, log.With(map[string]any{"module": "barcodes"}), opts.Metrics)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusNotFound, httpjson.ErrorResponse{Error: "route not found", Code: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusMethodNotAllowed, httpjson.ErrorResponse{Error: "method not allowed"})
	})

	return r
}
