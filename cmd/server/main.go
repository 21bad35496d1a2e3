package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"shipment-tracking-service/internal/adapters/cache"
	"shipment-tracking-service/internal/adapters/memory"
	"shipment-tracking-service/internal/adapters/remote"
	"shipment-tracking-service/internal/adapters/repositories"
	"shipment-tracking-service/internal/api"
	"shipment-tracking-service/internal/config"
	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/ports"
	"shipment-tracking-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or a synced in-memory store)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedDir := config.Get("SEED_DIR", "data/seeds")

	var (
		router http.Handler
		err    error
	)

	// With a collector URL the service runs against a synced in-memory
	// store instead of its own SQLite file.
	if collectorURL := os.Getenv("COLLECTOR_URL"); strings.TrimSpace(collectorURL) != "" {
		router, err = buildSyncedRouter(collectorURL, seedDir)
	} else {
		router, err = buildSqliteRouter(config.Get("DB_PATH", "data/app.db"), seedDir)
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func buildSqliteRouter(dbPath, seedDir string) (http.Handler, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedDir); err != nil {
		return nil, err
	}

	store := repositories.NewSqliteStore(db)
	return api.NewRouter(store, store, store, store), nil
}

func buildSyncedRouter(collectorURL, seedDir string) (http.Handler, error) {
	client, err := remote.NewClient(collectorURL)
	if err != nil {
		return nil, err
	}

	var fetcher ports.CollectionFetcher = client
	if redisAddr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(redisAddr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		fetcher, err = cache.NewRedisCollectionCache(rdb, client, 0)
		if err != nil {
			return nil, err
		}
	}

	store := memory.NewStore()

	// Centers are static reference data and never come from the
	// collector, so they load from the local seed file.
	if err := seedCenters(store, seedDir); err != nil {
		return nil, err
	}

	sync := &services.SyncService{Fetcher: fetcher, Target: store}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sync.Sync(ctx, os.Getenv("CENTER_ID")); err != nil {
		return nil, err
	}

	return api.NewRouter(store, store, store, store), nil
}

func seedCenters(store *memory.Store, seedDir string) error {
	raw, err := os.ReadFile(filepath.Join(seedDir, "centers.json"))
	if err != nil {
		return fmt.Errorf("seed centers: %w", err)
	}

	var seeds []repositories.CenterSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed centers: %w", err)
	}

	ctx := context.Background()
	for _, s := range seeds {
		c := &domain.LogisticsCenter{ID: s.ID, Name: s.Name, Address: s.Address}
		if err := store.InsertCenter(ctx, c); err != nil {
			return fmt.Errorf("seed centers: %w", err)
		}
	}
	return nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedDir string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedDir); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
