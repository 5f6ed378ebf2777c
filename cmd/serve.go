package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eggphy/eggphy-cli/internal/config"
	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the witness API and static browsing interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The dataset is loaded once per server session and read-only after.
		witnesses := dataset.New(cfg.Data).Load(ctx)

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		router := buildRouter(witnesses, st, cfg.Web.Dir, cfg.Server)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("witnesses", len(witnesses)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter assembles the API routes and the static site file server.
func buildRouter(witnesses []model.Witness, st store.Store, webDir string, srvCfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(rateLimit(srvCfg))

	origins := srvCfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	api := &apiHandler{witnesses: witnesses, store: st}

	r.Get("/health", api.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/witnesses", api.listWitnesses)
		r.Get("/witnesses/{id}", api.getWitness)
		r.Get("/witnesses/{id}/related", api.relatedWitnesses)
		r.Get("/families", api.listFamilies)
		r.Get("/prefs", api.getPrefs)
		r.Put("/prefs", api.putPrefs)
	})

	if webDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(webDir)))
	}

	return r
}

// rateLimit applies a server-wide token bucket. Zero or negative rates
// disable limiting.
func rateLimit(srvCfg config.ServerConfig) func(http.Handler) http.Handler {
	if srvCfg.RatePerSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	burst := srvCfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(srvCfg.RatePerSec), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
