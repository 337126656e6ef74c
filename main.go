package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"Vortex/internal/calc/actuator"
	"Vortex/internal/calc/batch"
	"Vortex/internal/calc/cavitation"
	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/importer"
	"Vortex/internal/calc/liquid"
	"Vortex/internal/calc/noise"
	"Vortex/internal/calc/recommend"
	"Vortex/internal/calc/report"
	"Vortex/internal/calc/reynolds"
	"Vortex/internal/config"
	"Vortex/internal/materials"
	"Vortex/internal/ratelimit"
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

func HandleList(mux *mux.Router, cfg config.Config) {
	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.Middleware)

	liquidH := &liquid.Handler{}
	gasH := &gas.Handler{}
	reynoldsH := &reynolds.Handler{}
	cavitationH := &cavitation.Handler{}
	noiseH := &noise.Handler{DefaultMethod: noise.Method(cfg.DefaultNoise)}
	actuatorH := &actuator.Handler{}
	recommendH := &recommend.Handler{}
	materialsH := &materials.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}

	api.HandleFunc("/tools/liquid/calc", liquidH.Calc).Methods("POST")
	api.HandleFunc("/tools/gas/calc", gasH.Calc).Methods("POST")
	api.HandleFunc("/tools/reynolds/calc", reynoldsH.Calc).Methods("POST")
	api.HandleFunc("/tools/cavitation/calc", cavitationH.Calc).Methods("POST")
	api.HandleFunc("/tools/noise/calc", noiseH.Calc).Methods("POST")
	api.HandleFunc("/tools/actuator/calc", actuatorH.Calc).Methods("POST")
	api.HandleFunc("/tools/recommend/calc", recommendH.Calc).Methods("POST")
	api.HandleFunc("/tools/materials/select", materialsH.Select).Methods("POST")

	api.HandleFunc("/tools/liquid/batch", batchH.Liquid).Methods("POST")
	api.HandleFunc("/tools/gas/batch", batchH.Gas).Methods("POST")
	api.HandleFunc("/tools/liquid/import", importH.Liquid).Methods("POST")
	api.HandleFunc("/tools/gas/import", importH.Gas).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	cfgPath := os.Getenv("VORTEX_CONFIG")
	if cfgPath == "" {
		cfgPath = "conf/config.ini"
	}
	cfg := config.Load(cfgPath)
	if addr := os.Getenv("VORTEX_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	logrus.WithField("addr", cfg.Addr).Info("starting server")

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server error")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server shutdown failed")
	}
	logrus.Info("server stopped")

	wg.Wait()
}
