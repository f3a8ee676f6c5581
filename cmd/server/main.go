package main // Entry point package

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/config"
	"github.com/greenledger/ecotrack/internal/database"
	"github.com/greenledger/ecotrack/internal/handler"
	"github.com/greenledger/ecotrack/internal/middleware"
	"github.com/greenledger/ecotrack/internal/queue"
	"github.com/greenledger/ecotrack/internal/repository"
	"github.com/greenledger/ecotrack/internal/router"
	"github.com/greenledger/ecotrack/internal/service"
	"github.com/greenledger/ecotrack/internal/session"
)

// loadDotenv loads the nearest .env file when one exists.  Absence is not
// an error; production deployments configure through real env vars.
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("env: loaded", p)
			return
		}
	}
}

func main() {
	loadDotenv()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: open failed: %v", err)
	}
	defer db.Close()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(bootCtx, db); err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.SeedCatalog(bootCtx, db); err != nil {
		log.Fatalf("database: seed catalog failed: %v", err)
	}
	if err := database.SeedAdmin(bootCtx, db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail, cfg.BcryptCost); err != nil {
		log.Fatalf("database: seed admin failed: %v", err)
	}

	// Redis backs sessions, rate limiting and the catalog cache.  When it
	// is unreachable the session store falls back to process memory and
	// the middleware degrades to pass-through.
	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, sessionTTL)
	} else {
		log.Println("redis: unavailable, using in-memory session store")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	users := repository.NewUserRepo(db)
	actions := repository.NewActionRepo(db)
	records := repository.NewRecordRepo(db)

	authSvc := service.NewAuthService(users, sessions, cfg.BcryptCost)
	ecoSvc := service.NewEcoService(actions, records)
	adminSvc := service.NewAdminService(users, actions, sessions)

	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Auth:      handler.NewAuthHandler(authSvc),
		Eco:       handler.NewEcoHandler(ecoSvc),
		Admin:     handler.NewAdminHandler(adminSvc),
		Sessions:  sessions,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.ResponseCache(config.LoadCacheConfig(), rdb),
	})

	// Audit consumer runs for the life of the process and reconnects on
	// broker failures.
	go func() {
		if err := queue.StartRecordConsumer(); err != nil {
			log.Printf("record-consumer: stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
