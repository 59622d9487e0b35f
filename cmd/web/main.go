// cmd/web/main.go
//
// Coursebook – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (yaml + env overlays, Vault-resolved DB password).
//
//  4. Open the course DB and log the live course count as a sanity check.
//
//  5. Optionally open the GeoLite2 DB for request-info enrichment.
//
//  6. Build renderer, repository, and the chi router; expose Prometheus
//     /metrics beside the site.
//
//  7. Serve through the hardened http.Server inside an errgroup; SIGINT
//     or SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/coursebook/internal/config"
	"github.com/yanizio/coursebook/internal/course"
	"github.com/yanizio/coursebook/internal/database"
	"github.com/yanizio/coursebook/internal/logger"
	"github.com/yanizio/coursebook/internal/middleware"
	"github.com/yanizio/coursebook/internal/requestinfo"
	"github.com/yanizio/coursebook/internal/server"
	"github.com/yanizio/coursebook/internal/view"
	"github.com/yanizio/coursebook/internal/web"
)

const serverEnvPath = "/usr/local/etc/coursebook/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Course DB connect ───────────────────────────────────────────
	//
	logOut.Infow("connecting to course DB")
	db, err := database.Open(cfg.Database.ResolvedDSN())
	if err != nil {
		logOut.Fatalf("connect course DB: %v", err)
	}
	defer db.Close()

	// Log live course count as an early sanity check.
	var live int
	_ = db.Get(&live, `SELECT COUNT(*) FROM courses WHERE is_archived = 0`)
	logOut.Infow("course DB online", "live_courses", live)

	//
	// ── 3.  Optional GeoLite2 DB ────────────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo DB unavailable, continuing without", "err", err)
		}
	}

	//
	// ── 4.  Wiring: renderer → repository → router ─────────────────────
	//
	views := view.New(cfg.Paths.Templates())
	repo := course.NewRepository(db)
	router := web.NewRouter(views, repo, web.Options{
		EnforceAuth: cfg.Admin.EnforceAuth,
		StaticDir:   cfg.Paths.Root + "/static",
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, router))

	//
	// ── 5.  Serve with graceful shutdown ───────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, mux)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("shutdown complete")
}
