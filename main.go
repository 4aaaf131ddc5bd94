package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	auth "Pumpcalc/internal/auth"
	autodesign "Pumpcalc/internal/calc/premium/autodesign"
	batch "Pumpcalc/internal/calc/premium/batch"
	importer "Pumpcalc/internal/calc/premium/importer"
	recommend "Pumpcalc/internal/calc/premium/recommend"
	pump "Pumpcalc/internal/calc/pump"
	report "Pumpcalc/internal/calc/report"
	sweep "Pumpcalc/internal/calc/sweep"
	config "Pumpcalc/internal/config"
	logger "Pumpcalc/internal/logger"
	validator "Pumpcalc/internal/validator"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, log *zap.Logger) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.Service.TokenKey)}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Service.RateLimit), cfg.Service.RateBurst)
	v := validator.New()

	density := cfg.Calc.DefaultDensity
	gen := sweep.Generator{
		Points:      cfg.Calc.SweepPoints,
		MinFlowRate: cfg.Calc.SweepMinFlowRate,
		Density:     pump.DefaultDensity,
	}

	mux.Use(middleware.RequestID, logger.Logger(log, "http"))
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	pumpH := pump.NewHandler(density, cfg.Calc.Precision)
	sweepH := &sweep.Handler{Generator: gen, Validator: v}
	reportH := &report.Handler{DefaultDensity: density, Generator: gen, Precision: cfg.Calc.Precision}

	api.HandleFunc("/tools/pump/calc", pumpH.Compute).Methods("POST")
	api.HandleFunc("/tools/pump/sweep", sweepH.Sweep).Methods("POST")
	api.HandleFunc("/tools/pump/sweep/chart", sweepH.Chart).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	premium := api.PathPrefix("/premium").Subrouter()
	premium.Use(authEnv.AuthMiddleware)

	batchH := &batch.Handler{DefaultDensity: density, Validator: v}
	importH := &importer.Handler{DefaultDensity: density}
	motorH := &recommend.Handler{DefaultDensity: density, Validator: v}
	maxFlowH := &autodesign.Handler{DefaultDensity: density, Validator: v}

	premium.HandleFunc("/pump/batch", batchH.Pump).Methods("POST")
	premium.HandleFunc("/pump/import", importH.Pump).Methods("POST")
	premium.HandleFunc("/pump/motor", motorH.Motor).Methods("POST")
	premium.HandleFunc("/pump/max-flow", maxFlowH.MaxFlow).Methods("POST")

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logLvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	log := logger.InitLog(logLvl)
	defer func() { _ = log.Sync() }()
	undo := zap.ReplaceGlobals(log)
	defer undo()

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("load config", "error", err)
	}
	logLvl.SetLevel(logger.ParseLevel(cfg.Service.LogLevel).Level())

	if cfg.Service.TokenKey == "" {
		zap.S().Warn("TOKEN_KEY is not set, premium tools will reject every request")
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, log)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Service.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		zap.S().Infow("starting server", "address", cfg.Service.Address, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.Service.TLSCert, cfg.Service.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			zap.S().Errorw("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Fatalw("server shutdown", "error", err)
	}
	zap.S().Info("server stopped")

	wg.Wait()
}
