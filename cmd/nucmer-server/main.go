// Command nucmer-server provides a REST API for whole genome alignment.
//
// Usage:
//
//	nucmer-server [options]
//
// Options:
//
//	--port     Port to listen on (default: 8080)
//	--host     Host to bind to (default: localhost)
//	--config   Config file with the aligner settings
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/aria-lang/nucmer-go/api/handlers"
	"github.com/aria-lang/nucmer-go/api/middleware"
	"github.com/aria-lang/nucmer-go/internal/config"
)

func main() {
	v := config.NewViper()
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")

	pflag.Int("port", v.GetInt("server.port"), "Port to listen on")
	pflag.String("host", v.GetString("server.host"), "Host to bind to")
	configPath := pflag.String("config", "", "Config file with the aligner settings")
	pflag.Parse()

	v.BindPFlag("server.port", pflag.Lookup("port"))
	v.BindPFlag("server.host", pflag.Lookup("host"))

	if *configPath != "" {
		if err := config.ReadFile(v, *configPath); err != nil {
			log.Fatal(err)
		}
	}

	cfg, err := config.New(v)
	if err != nil {
		log.Fatal(err)
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	log.SetLevel(level)

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	opts.Logger = log.StandardLogger()

	r := newRouter(handlers.New(opts))

	addr := fmt.Sprintf("%s:%d", v.GetString("server.host"), v.GetInt("server.port"))
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("could not gracefully shutdown: %v", err)
		}
		close(done)
	}()

	log.WithField("addr", addr).Info("nucmer API server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("could not listen on %s: %v", addr, err)
	}

	<-done
	log.Info("server stopped")
}

func newRouter(h *handlers.Handler) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.StandardLogger()))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/nucmer", h.Routes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})

	return r
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>nucmer API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>nucmer API</h1>
    <p>Whole genome alignment of nucleotide sequences.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/nucmer/align</code>
        <p>Align queries against references. Options are optional.</p>
        <pre>{"references": [{"id": "chr1", "sequence": "ACGT..."}],
 "queries": [{"id": "read1", "sequence": "ACGT..."}],
 "options": {"min_length": 20, "reverse": true}}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/nucmer/score</code>
        <p>Score two gapped sequences of equal length.</p>
        <pre>{"first": "ACGT-ACGT", "second": "ACGTTACGT", "affine": true}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/nucmer/stats</code>
        <p>Calculate statistics of a sequence set.</p>
        <pre>{"sequences": [{"sequence": "ATGC"}, {"sequence": "GGCCAT"}]}</pre>
    </div>
</body>
</html>`
