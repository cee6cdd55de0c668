package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Aeroperf/internal/auth"
	batch "Aeroperf/internal/calc/batch"
	importer "Aeroperf/internal/calc/importer"
	perf "Aeroperf/internal/calc/perf"
	report "Aeroperf/internal/calc/report"
	solve "Aeroperf/internal/calc/solve"
	sweep "Aeroperf/internal/calc/sweep"
	config "Aeroperf/internal/config"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
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

func HandleList(mux *mux.Router, cfg config.Config, engine *perf.Engine) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), KeyHash: []byte(cfg.APIKeyHash)}
	if !authEnv.Enabled() {
		log.Println("token_key is not set, API authentication is disabled")
	}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")

	tools := api.PathPrefix("/tools").Subrouter()
	tools.Use(authEnv.AuthMiddleware)

	solveH := &solve.Handler{Engine: engine, SettlePasses: cfg.SettlePasses}
	sweepH := &sweep.Handler{Engine: engine}
	batchH := &batch.Handler{Engine: engine, SettlePasses: cfg.SettlePasses}
	importH := &importer.Handler{Engine: engine, SettlePasses: cfg.SettlePasses}
	reportH := &report.Handler{Engine: engine, SettlePasses: cfg.SettlePasses}

	tools.HandleFunc("/solve", solveH.Calc).Methods("POST")
	tools.HandleFunc("/relations", solveH.Relations).Methods("GET")
	tools.HandleFunc("/catalog", solveH.Catalog).Methods("GET")
	tools.HandleFunc("/plans", solveH.Plans).Methods("GET")
	tools.HandleFunc("/constants", solveH.Constants).Methods("GET")
	tools.HandleFunc("/sweep", sweepH.Calc).Methods("POST")
	tools.HandleFunc("/sweep/xlsx", sweepH.XLSX).Methods("POST")
	tools.HandleFunc("/batch", batchH.Calc).Methods("POST")
	tools.HandleFunc("/import", importH.Import).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	engine, err := perf.New(cfg.Constants)
	if err != nil {
		log.Fatalf("Catalog error: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, engine)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s (%d catalog entries)", cfg.Addr, engine.Catalog().Len())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
