package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/andrasetya/realestate-rizz/internal/frame"
	"github.com/andrasetya/realestate-rizz/internal/house"
	houserepo "github.com/andrasetya/realestate-rizz/internal/house/repo"
	"github.com/andrasetya/realestate-rizz/internal/image"
	"github.com/andrasetya/realestate-rizz/internal/leaderboard"
	"github.com/andrasetya/realestate-rizz/internal/profile"
	"github.com/andrasetya/realestate-rizz/internal/router"
	"github.com/andrasetya/realestate-rizz/internal/vote"
	voterepo "github.com/andrasetya/realestate-rizz/internal/vote/repo"
	"github.com/andrasetya/realestate-rizz/pkg/database"
	"github.com/andrasetya/realestate-rizz/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting realestate-rizz")

	houseStore, voteStore, cleanup, err := buildStores(sugar)
	if err != nil {
		sugar.Fatalf("storage init: %v", err)
	}
	defer cleanup()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:3000"
	}

	gen := house.NewGenerator(house.NewLockedRand(rand.NewSource(time.Now().UnixNano())))
	houseSvc := house.NewService(houseStore, gen)
	voteSvc := vote.NewService(voteStore, houseStore)
	boardSvc := leaderboard.NewService(houseStore, voteStore)
	profiles := profile.NewClient(profile.ConfigFromEnv())
	images := image.NewClient(image.ConfigFromEnv())

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := router.RegisterRoutes(sugar, router.Handlers{
		House:       house.NewHandler(houseSvc, profiles, baseURL, sugar),
		Vote:        vote.NewHandler(voteSvc, sugar),
		Leaderboard: leaderboard.NewHandler(boardSvc, sugar),
		Frame:       frame.NewHandler(houseSvc, voteSvc, profiles, baseURL, sugar),
		Image:       image.NewHandler(images, sugar),
	})
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	sugar.Infow("service is running; press Ctrl+C to stop", "addr", addr)

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}

// buildStores wires the house and vote stores from STORAGE_DRIVER
// (memory | postgres | redis; default memory).
func buildStores(sugar *zap.SugaredLogger) (houserepo.Store, voterepo.Store, func(), error) {
	driver := os.Getenv("STORAGE_DRIVER")
	switch driver {
	case "", "memory":
		sugar.Info("using in-memory stores (no durability across restarts)")
		return houserepo.NewMemoryStore(), voterepo.NewMemoryStore(), func() {}, nil

	case "postgres":
		sqlDB, err := database.Connect(database.ConfigFromEnv())
		if err != nil {
			return nil, nil, nil, err
		}
		db := sqlx.NewDb(sqlDB, "postgres")
		houses := houserepo.NewPostgresStore(db)
		votes := voterepo.NewPostgresStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := houses.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		if err := votes.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		sugar.Info("using postgres stores")
		return houses, votes, func() { db.Close() }, nil

	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		prefix := os.Getenv("REDIS_KEY_PREFIX")
		sugar.Infow("using redis stores", "addr", addr)
		return houserepo.NewRedisStore(client, prefix), voterepo.NewRedisStore(client, prefix),
			func() { client.Close() }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
}
