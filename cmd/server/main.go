package main

import (
	"context"
	"fmt"
	"time"

	"folio/internal/analytics"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/workbook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// amounts are served as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src, closeSrc, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("snapshot source: %v", err)
	}
	snap, err := analytics.LoadSnapshot(ctx, src, logger)
	closeSrc()
	if err != nil {
		logger.Fatalf("snapshot ingestion failed: %v", err)
	}

	h := handlers.NewHandler(snap, logger)

	rg := gin.Default()
	rg.Use(cors.New(corsConfig(cfg)))
	h.Register(rg)

	logger.Infof("server starting on :%s", cfg.Port)
	if err := rg.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

func openSource(ctx context.Context, cfg config.Config, logger *logrus.Logger) (analytics.SheetSource, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		db, err := initDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect failed: %w", err)
		}
		logger.Info("loading snapshot from postgres")
		return database.New(db, logger), func() { db.Close() }, nil
	default:
		logger.Infof("loading snapshot from %s", cfg.PortfolioFile)
		return workbook.NewFile(cfg.PortfolioFile, logger), func() {}, nil
	}
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	c.ExposeHeaders = []string{"Content-Disposition"}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}

func initDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	return db, nil
}
