package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stake-plus/suggestions/src/api"
	"github.com/stake-plus/suggestions/src/bot"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/core"
	"github.com/stake-plus/suggestions/src/data"
	"github.com/stake-plus/suggestions/src/suggestion"
	"github.com/stake-plus/suggestions/src/suggestion/mysqlstore"
)

func main() {
	// Use a single DB connection for all modules
	db, err := data.ConnectMySQL(data.GetMySQLDSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	store := mysqlstore.New(db)
	svc := suggestion.NewService(store, cfg.Offsets())

	discordBot, err := bot.New(cfg, svc, rdb)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	manager := core.NewManager(discordBot, api.New(cfg, svc, rdb))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatalf("start: %v", err)
	}

	// Wait for termination
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	manager.Stop(shutCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()
}
