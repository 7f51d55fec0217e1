// RiftBuddy API server entry point: loads configuration, connects storage,
// seeds the role tiers, and serves the HTTP API.
//
// @title                      RiftBuddy API
// @version                    1.0
// @description                User directory, social graph and role-based access control behind Riot OAuth login.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riftbuddy/riftbuddy-api/internal/api"
	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/infrastructure/config"
	mongodb "github.com/riftbuddy/riftbuddy-api/internal/infrastructure/db/mongo"
	redisdb "github.com/riftbuddy/riftbuddy-api/internal/infrastructure/db/redis"
	"github.com/riftbuddy/riftbuddy-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	registry, err := domain.NewRoleRegistry(cfg.Roles.DefaultID, cfg.Roles.AdminID, cfg.Roles.SuperAdminID)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid role configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	if err := mongodb.NewRoleRepository(db).Seed(ctx, registry.SeedRoles()); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}
	log.Info().Msg("roles seeded")

	e := api.NewRouter(db, rdb, cfg, registry, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
