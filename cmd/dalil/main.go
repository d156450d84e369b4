package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trouvetonpro/dalil/internal/api"
	"github.com/trouvetonpro/dalil/internal/config"
	"github.com/trouvetonpro/dalil/internal/database"
	"github.com/trouvetonpro/dalil/internal/database/repository"
	"github.com/trouvetonpro/dalil/internal/logger"
	"github.com/trouvetonpro/dalil/internal/metrics"
	"github.com/trouvetonpro/dalil/internal/secrets"
	"github.com/trouvetonpro/dalil/internal/service"
	"github.com/trouvetonpro/dalil/internal/tui"
)

func main() {
	initConfig := flag.Bool("init-config", false, "write the current configuration to the config file and exit")
	clearFavs := flag.Bool("clear-favorites", false, "remove every saved favourite and exit")
	storeToken := flag.Bool("store-token", false, "read an API token from stdin, store it for api.base_url and exit")
	deleteToken := flag.Bool("delete-token", false, "forget the stored API token for api.base_url and exit")
	flag.Parse()

	ctx := context.Background()

	if *initConfig {
		path, err := config.Init()
		if err != nil {
			log.Fatalf("init config: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	switch {
	case *storeToken:
		token, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && strings.TrimSpace(token) == "" {
			log.Fatalf("read token: %v", err)
		}
		if err := secrets.StoreToken(cfg.API.BaseURL, token); err != nil {
			log.Fatalf("store token: %v", err)
		}
		fmt.Println("token stored")
		return
	case *deleteToken:
		if err := secrets.DeleteToken(cfg.API.BaseURL); err != nil {
			log.Fatalf("delete token: %v", err)
		}
		fmt.Println("token removed")
		return
	}

	lg, logFile, err := logger.OpenFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	maintenance := &service.MaintenanceService{DB: db}
	if *clearFavs {
		n, err := maintenance.ClearFavorites(ctx)
		if err != nil {
			log.Fatalf("clear favorites: %v", err)
		}
		fmt.Printf("removed %d favourites\n", n)
		return
	}

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		srv := serveMetrics(ctx, cfg.Metrics.Listen, m, lg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout,
		api.WithToken(resolveToken(cfg)),
		api.WithLogger(lg.Named("api")),
		api.WithMetrics(m),
	)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	dir := &service.DirectoryService{
		API:       client,
		Favorites: repository.NewFavoriteRepo(db),
		Metrics:   m,
		Log:       lg.Named("service"),
	}

	lg.Info(ctx, "starting", logger.String("base_url", cfg.API.BaseURL), logger.String("db", cfg.Database.Path))
	p := tea.NewProgram(tui.New(ctx, cfg, dir, lg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Manager, lg logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error(ctx, "metrics server", logger.Error(err))
		}
	}()
	lg.Info(ctx, "metrics listening", logger.String("addr", addr))
	return srv
}

// resolveToken prefers the environment, then the secret store, then the
// config file.
func resolveToken(cfg config.Config) string {
	if env := strings.TrimSpace(cfg.API.TokenEnv); env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if t, err := secrets.FetchToken(cfg.API.BaseURL); err == nil && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(cfg.API.Token)
}
