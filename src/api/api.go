package api

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/suggestions/src/api/webserver"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/suggestion"
)

// Module serves the read API over HTTP. It implements core.Module so it
// shares the manager lifecycle with the bot.
type Module struct {
	server *http.Server
}

func New(cfg config.Config, svc *suggestion.Service, rdb *redis.Client) *Module {
	router := webserver.New(cfg, svc, rdb)
	return &Module{
		server: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}
}

// Name implements core.Module.
func (m *Module) Name() string { return "api" }

func (m *Module) Start(ctx context.Context) error {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Suggestions API listening on %s", m.server.Addr)
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if err := m.server.Shutdown(ctx); err != nil {
		log.Printf("api: shutdown: %v", err)
	}
}
