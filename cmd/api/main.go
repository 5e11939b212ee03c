package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentdash/internal/analysis"
	"talentdash/internal/api"
	"talentdash/internal/auth"
	"talentdash/internal/config"
	"talentdash/internal/database"
	"talentdash/internal/scan"
	"talentdash/internal/storage"
	"talentdash/internal/store"
	"talentdash/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	privateKeyPEM, publicKeyPEM, err := loadKeyMaterial(cfg.Auth)
	if err != nil {
		log.Fatalf("load auth keys: %v", err)
	}
	authService, err := auth.NewAuthService(
		privateKeyPEM,
		publicKeyPEM,
		time.Duration(cfg.Auth.AccessTTLMin)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLHours)*time.Hour,
	)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var jitter analysis.Jitter
	if cfg.Analysis.JitterSeed != 0 {
		jitter = analysis.Seeded(cfg.Analysis.JitterSeed)
	} else {
		jitter = analysis.Deterministic()
	}

	deps := api.Deps{
		AuthService:           authService,
		RedisClient:           redisClient,
		Logger:                logger,
		Jitter:                jitter,
		Scanner:               scan.NewScanner(cfg.API.ClamdAddr),
		LoginRateLimitPerHour: cfg.Auth.LoginRatePerHr,
	}

	if cfg.Database.Configured() {
		db, err := database.InitDatabase(cfg.Database)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
		logger.Info("database connection ready",
			slog.String("host", cfg.Database.Host),
			slog.String("db", cfg.Database.Name),
		)

		storageClient, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
		defer asynqClient.Close()

		deps.Store = store.NewGorm(db)
		deps.Users = api.NewGormUserRepo(db)
		deps.StorageClient = storageClient
		deps.AsynqClient = asynqClient
	} else {
		// Demo mode: no database configured, everything lives in memory
		// and bulk analysis runs inline instead of through the queue.
		memory := store.NewMemory()
		if err := store.SeedDemo(context.Background(), memory); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}

		users := api.NewMemoryUserRepo()
		if err := seedDemoUser(users); err != nil {
			log.Fatalf("seed demo user: %v", err)
		}

		engine := analysis.NewEngine(analysis.WithJitter(jitter))
		deps.Store = memory
		deps.Users = users
		deps.BulkRunner = worker.NewBulkAnalyzeHandler(memory, engine, redisClient, logger)

		logger.Info("running in demo mode with in-memory data",
			slog.String("demo_user", "demo"),
		)
	}

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, deps)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

// loadKeyMaterial reads the RSA PEM files, or generates an ephemeral key
// when no paths are configured. Ephemeral keys invalidate all tokens on
// restart, which is fine for demo setups.
func loadKeyMaterial(cfg config.AuthConfig) (privatePEM, publicPEM []byte, err error) {
	if cfg.PrivateKeyPath != "" && cfg.PublicKeyPath != "" {
		privatePEM, err = os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read private key: %w", err)
		}
		publicPEM, err = os.ReadFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read public key: %w", err)
		}
		return privatePEM, publicPEM, nil
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("generate rsa key: %w", err)
	}
	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	return privatePEM, publicPEM, nil
}

// seedDemoUser adds the fixed demo login so the API is usable out of the
// box without an admin CLI run.
func seedDemoUser(users api.UserRepo) error {
	hashed, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}
	return users.Create(context.Background(), &database.User{
		Username:     "demo",
		PasswordHash: hashed,
	})
}
