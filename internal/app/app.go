// Package app wires configuration, storage, clients, and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hmkang/stockquery/internal/clients/eodhd"
	"github.com/hmkang/stockquery/internal/clients/gemini"
	"github.com/hmkang/stockquery/internal/clients/polygon"
	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/nlp"
	"github.com/hmkang/stockquery/internal/services/export"
	"github.com/hmkang/stockquery/internal/services/index"
	"github.com/hmkang/stockquery/internal/services/match"
	"github.com/hmkang/stockquery/internal/services/query"
	"github.com/hmkang/stockquery/internal/services/ticker"
	"github.com/hmkang/stockquery/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	Storage       interfaces.StorageManager
	PolygonClient interfaces.PolygonClient
	EODHDClient   interfaces.EODHDClient
	Extractor     interfaces.Extractor
	QueryService  interfaces.QueryService
	TickerService interfaces.TickerService
	MatchService  interfaces.MatchService
	ExportService interfaces.ExportService
	IndexService  interfaces.IndexService
	StartupTime   time.Time
}

// NewApp initializes all services, clients, and storage from configuration.
// configPath may be empty, in which case STOCKQUERY_CONFIG and then
// config/stockquery.toml are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("STOCKQUERY_CONFIG")
	}
	if configPath == "" {
		configPath = "config/stockquery.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Polygon.APIKey == "" {
		logger.Warn().Msg("Polygon API key not configured - ticker resolution will return no candidates")
	}
	polygonClient := polygon.NewClient(config.Clients.Polygon.APIKey,
		polygon.WithBaseURL(config.Clients.Polygon.BaseURL),
		polygon.WithLogger(logger),
		polygon.WithRateLimit(config.Clients.Polygon.RateLimit),
		polygon.WithTimeout(config.Clients.Polygon.GetTimeout()),
	)

	if config.Clients.EODHD.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured - price matching will be unavailable")
	}
	eodhdClient := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	extractor, err := buildExtractor(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, err
	}

	a := &App{
		Config:        config,
		Logger:        logger,
		Storage:       storageManager,
		PolygonClient: polygonClient,
		EODHDClient:   eodhdClient,
		Extractor:     extractor,
		QueryService:  query.NewService(extractor, logger),
		TickerService: ticker.NewService(polygonClient, logger),
		MatchService:  match.NewService(eodhdClient, logger, config.Query.GetMaxMatches()),
		ExportService: export.NewService(logger),
		IndexService:  index.NewService(storageManager.IndexStore(), logger),
		StartupTime:   startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// buildExtractor selects the extraction engine from config. The prose engine
// is the process-wide default; the Gemini engine requires an API key.
func buildExtractor(config *common.Config, logger *common.Logger) (interfaces.Extractor, error) {
	switch config.Query.Extractor {
	case "", "prose":
		return nlp.Default(), nil
	case "gemini":
		if config.Clients.Gemini.APIKey == "" {
			return nil, fmt.Errorf("extractor 'gemini' selected but no Gemini API key configured")
		}
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini extractor: %w", err)
		}
		return nlp.NewGeminiEngine(client, logger), nil
	}
	return nil, fmt.Errorf("unknown extractor '%s'", config.Query.Extractor)
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
