package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/wealthflow-projection/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-projection/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-projection/internal/config"
	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/logger"
	"github.com/simaogato/wealthflow-projection/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-projection/internal/usecase/investment"
	"github.com/simaogato/wealthflow-projection/internal/usecase/ledger"
	"github.com/simaogato/wealthflow-projection/internal/usecase/progress"
	"github.com/simaogato/wealthflow-projection/internal/usecase/seeder"
)

const (
	dbConnectAttempts = 5
	dbRetryDelay      = 2 * time.Second
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// 2. Setup Database
	db, err := connectWithRetry(ctx, log, cfg.DBConnStr)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	// 3. Initialize Repositories (Postgres)
	assetRepo := postgres.NewAssetRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	objectiveRepo := postgres.NewObjectiveRepository(db)

	// Seed the default objective when configured
	if cfg.SeedsDefaultObjective() {
		target, err := decimal.NewFromString(cfg.DefaultTarget)
		if err != nil {
			log.Fatal("Invalid OBJECTIVE_TARGET_AMOUNT", zap.Error(err))
		}
		objectiveSeeder := seeder.NewObjectiveSeeder(objectiveRepo, log)
		if err := objectiveSeeder.Seed(ctx, domain.Objective{
			TargetAmount:        target,
			TargetYears:         cfg.DefaultTargetYears,
			InterestRatePercent: cfg.DefaultInterestRate,
		}); err != nil {
			log.Fatal("Failed to seed default objective", zap.Error(err))
		}
	}

	// 4. Initialize Services (Use Cases)
	progressService := progress.NewProgressService(assetRepo, transactionRepo, objectiveRepo, log)
	dashboardService := dashboard.NewDashboardService(assetRepo, transactionRepo, log)
	investmentService := investment.NewInvestmentService(assetRepo, transactionRepo, log)
	ledgerService := ledger.NewLedgerService(assetRepo, transactionRepo, objectiveRepo, log)

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcAdapter := grpcadapter.NewServer(progressService, dashboardService, investmentService, ledgerService)
	grpcadapter.RegisterProjectionServer(grpcServer, grpcAdapter)

	addr := cfg.GRPCAddr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("Failed to listen", zap.String("addr", addr), zap.Error(err))
	}

	// Start server in a goroutine
	go func() {
		log.Info("gRPC server listening", zap.String("addr", addr), zap.String("service", grpcadapter.ServiceName))
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(log, grpcServer)
}

// connectWithRetry opens the database, retrying while Postgres is still starting
func connectWithRetry(ctx context.Context, log *zap.Logger, connStr string) (*postgres.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err := postgres.NewDB(ctx, connStr)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn("Database not ready", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(dbRetryDelay)
	}
	return nil, lastErr
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(log *zap.Logger, grpcServer *grpclib.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("Shutting down gracefully", zap.String("signal", sig.String()))

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
