package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/wichananm65/shop-backend/internal/cart"
	"github.com/wichananm65/shop-backend/internal/config"
	"github.com/wichananm65/shop-backend/internal/delivery"
	"github.com/wichananm65/shop-backend/internal/logger"
	"github.com/wichananm65/shop-backend/internal/product"
	"github.com/wichananm65/shop-backend/internal/shutdown"
	"github.com/wichananm65/shop-backend/internal/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "shop-backend", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx := context.Background()

	productRepo, userRepo, closeDB, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, product cache disabled", slog.String("addr", cfg.RedisAddr), slog.Any("err", err))
		} else {
			productRepo = product.NewCachedRepository(productRepo, rdb, cfg.ProductCacheTTL, log)
			log.Info("product cache enabled", slog.String("addr", cfg.RedisAddr))
		}
	}

	productService := product.NewService(productRepo)
	seeded, err := productService.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if seeded {
		log.Info("seeded default products")
	}

	deliveries := delivery.NewCatalog(nil)
	cartService := cart.NewService(cart.NewStore(), productService, deliveries,
		cart.WithExpandConcurrency(cfg.ExpandConcurrency),
		cart.WithLogger(log),
	)
	if cfg.SeedDefaultCart {
		n := cartService.SeedDefaults(cart.DefaultLines())
		log.Info("seeded default cart", slog.Int("lines", n))
	}

	app := newApp(services{
		products:   productService,
		users:      user.NewService(userRepo),
		cart:       cartService,
		deliveries: deliveries,
		jwtSecret:  cfg.JWTSecret,
		jwtTTL:     cfg.JWTTTL,
		admins:     cfg.AdminEmails,
		imagesDir:  cfg.ImagesDir,
		log:        log,
	})

	return shutdown.Serve(ctx, app, cfg.Addr, 10*time.Second, log)
}

// openRepositories picks Postgres when DATABASE_URL is set and in-memory
// stores otherwise.
func openRepositories(ctx context.Context, cfg config.Config, log *slog.Logger) (product.Repository, user.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory product and user stores")
		return product.NewInMemoryRepository(nil), user.NewInMemoryRepository(nil), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("ping database: %w", err)
	}

	productRepo := product.NewPostgresRepository(db)
	if err := productRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("products schema: %w", err)
	}
	userRepo := user.NewPostgresRepository(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("users schema: %w", err)
	}

	return productRepo, userRepo, func() { db.Close() }, nil
}
