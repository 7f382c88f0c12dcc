package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	commissionapp "github.com/dealdesk/backend/internal/application/commission"
	"github.com/dealdesk/backend/internal/domain/commission"
	"github.com/dealdesk/backend/internal/infrastructure/config"
	"github.com/dealdesk/backend/internal/infrastructure/kvstore"
	"github.com/dealdesk/backend/internal/infrastructure/logger"
	"github.com/dealdesk/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		logLevel string
		asOf     string
		timeout  time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&asOf, "as-of", "", "Sweep reference date, RFC3339 (default: now)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Sweep timeout")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	now := time.Now()
	if asOf != "" {
		now, err = time.Parse(time.RFC3339, asOf)
		if err != nil {
			log.Fatal("Invalid -as-of value", zap.String("as_of", asOf), zap.Error(err))
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Store.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("Failed to open store", zap.String("dsn", cfg.Store.DSN), zap.Error(err))
	}

	store, err := kvstore.NewGormStore(db)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}

	engine := commission.NewEngine(
		commission.WithDueDays(commission.TriggerBooking, cfg.Policy.DueDaysBooking),
		commission.WithDueDays(commission.TriggerHalfPayment, cfg.Policy.DueDaysHalfPaid),
		commission.WithDueDays(commission.TriggerPossession, cfg.Policy.DueDaysPossession),
		commission.WithDueDays(commission.TriggerFullPayment, cfg.Policy.DueDaysFullPayment),
	)

	commissionRepo := persistence.NewKVCommissionRepository(store, log)
	dealRepo := persistence.NewKVDealRepository(store, log)
	service := commissionapp.NewCommissionService(commissionRepo, dealRepo, engine, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info("Overdue sweep started",
		zap.Time("as_of", now),
		zap.String("store", cfg.Store.DSN),
	)

	transitioned, err := service.SweepOverdue(ctx, now)
	if err != nil {
		log.Fatal("Sweep failed", zap.Error(err))
	}

	log.Info("Overdue sweep completed", zap.Int("newly_overdue", transitioned))
}
