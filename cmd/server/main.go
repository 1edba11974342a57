package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/greencart/backend/config"
	httpDelivery "github.com/greencart/backend/internal/delivery/http"
	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/internal/infrastructure/acceptance"
	"github.com/greencart/backend/internal/infrastructure/audit"
	"github.com/greencart/backend/internal/infrastructure/catalog"
	"github.com/greencart/backend/internal/infrastructure/classify"
	"github.com/greencart/backend/internal/infrastructure/explain"
	"github.com/greencart/backend/internal/infrastructure/health"
	"github.com/greencart/backend/internal/infrastructure/lcahub"
	"github.com/greencart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting GreenCart backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Product catalog and footprint table: configured file or the
	// built-in sample catalog.
	products, footprints, err := loadCatalog(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	// Optionally replace the local footprint table with data from the
	// LCA hub. Hydration failure is not fatal; the local table stands.
	if cfg.LCAHub.APIKey != "" {
		footprints = hydrateFootprints(cfg.LCAHub, footprints, logger)
	}

	classifier := classify.NewRuleClassifier(classify.DefaultRules(), classify.DefaultFallback)
	scorer := health.NewCategoryScorer(nil)

	var predictor domain.AcceptancePredictor
	if cfg.Acceptance.ModelPath != "" {
		model, err := acceptance.LoadModel(cfg.Acceptance.ModelPath)
		if err != nil {
			logger.Fatal("failed to load acceptance model", zap.String("path", cfg.Acceptance.ModelPath), zap.Error(err))
		}
		predictor = model
		logger.Info("acceptance model loaded", zap.String("path", cfg.Acceptance.ModelPath))
	} else {
		logger.Info("no acceptance model configured, using heuristic fallback")
	}

	var auditLogger domain.AuditLogger
	if cfg.Audit.Path != "" {
		sqliteLogger, err := audit.NewSQLiteLogger(cfg.Audit.Path)
		if err != nil {
			logger.Fatal("failed to open audit store", zap.String("path", cfg.Audit.Path), zap.Error(err))
		}
		defer sqliteLogger.Close()
		auditLogger = sqliteLogger
		logger.Info("audit trail enabled", zap.String("path", cfg.Audit.Path))
	}

	// Initialize usecase layer
	emissions := usecase.NewEmissionsService(footprints, classifier, usecase.EmissionsConfig{
		ConfidenceLevel: cfg.Optimizer.ConfidenceLevel,
	}, logger)
	substitutes := usecase.NewSubstituteService(products, usecase.SubstituteConfig{
		MaxResults: cfg.Optimizer.MaxSubstitutes,
	}, logger)
	optimizer := usecase.NewOptimizerService(substitutes, products, usecase.OptimizerConfig{
		BeamWidth:           cfg.Optimizer.BeamWidth,
		MaxPriceDelta:       cfg.Optimizer.MaxPriceDelta,
		MaxSubstitutes:      cfg.Optimizer.MaxSubstitutes,
		WeightEmissions:     cfg.Optimizer.EmissionsWeight,
		WeightCost:          cfg.Optimizer.CostWeight,
		WeightDissimilarity: cfg.Optimizer.SimilarityWeight,
		WeightHealth:        cfg.Optimizer.HealthWeight,
	}, logger)
	acceptanceService := usecase.NewAcceptanceService(predictor, logger)
	checkout := usecase.NewCheckoutService(
		emissions, substitutes, optimizer, acceptanceService,
		products, scorer, auditLogger,
		usecase.CheckoutConfig{MessageType: cfg.Acceptance.MessageType},
		logger,
	)

	explainer := explain.NewTemplateGenerator(cfg.Acceptance.MessageType)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(checkout, explainer, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func loadCatalog(path string, logger *zap.Logger) (*catalog.ProductStore, *catalog.FootprintTable, error) {
	if path == "" {
		logger.Info("no catalog configured, using built-in sample catalog")
		byID, byCategory := catalog.SampleFootprints()
		return catalog.NewProductStore(catalog.SampleProducts()), catalog.NewFootprintTable(byID, byCategory), nil
	}

	products, footprints, err := catalog.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("catalog loaded", zap.String("path", path), zap.Int("products", products.Len()))
	return products, footprints, nil
}

func hydrateFootprints(cfg config.LCAHubConfig, local *catalog.FootprintTable, logger *zap.Logger) *catalog.FootprintTable {
	client := lcahub.NewClient(cfg.APIKey, cfg.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := client.ListFootprints(ctx)
	if err != nil {
		logger.Warn("footprint hydration failed, keeping local table", zap.Error(err))
		return local
	}

	byID, byCategory := lcahub.TableMaps(records)
	logger.Info("footprint table hydrated from LCA hub",
		zap.Int("byID", len(byID)),
		zap.Int("byCategory", len(byCategory)),
	)
	return catalog.NewFootprintTable(byID, byCategory)
}
