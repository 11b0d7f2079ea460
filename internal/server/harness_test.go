package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hmkang/stockquery/internal/app"
	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
	"github.com/hmkang/stockquery/internal/storage"
)

// --- Stub services ---

type stubQueryService struct {
	intent *models.Intent
	err    error
}

func (s *stubQueryService) Interpret(_ context.Context, _ string) (*models.Intent, error) {
	return s.intent, s.err
}

type stubTickerService struct {
	candidates []models.TickerCandidate
}

func (s *stubTickerService) Resolve(_ context.Context, _ string) []models.TickerCandidate {
	return s.candidates
}

type stubMatchService struct {
	points []models.PricePoint
	err    error
	ticker string
	cmp    models.Comparison
}

func (s *stubMatchService) Match(_ context.Context, ticker string, _ float64, cmp models.Comparison) ([]models.PricePoint, error) {
	s.ticker = ticker
	s.cmp = cmp
	return s.points, s.err
}

type stubIndexService struct {
	bars     []models.IndexBar
	err      error
	topN     int
	above    float64
	imported []models.IndexBar
}

func (s *stubIndexService) Latest(_ context.Context) ([]models.IndexBar, error) {
	return s.bars, s.err
}

func (s *stubIndexService) TopByClose(_ context.Context, n int) ([]models.IndexBar, error) {
	s.topN = n
	return s.bars, s.err
}

func (s *stubIndexService) CloseAbove(_ context.Context, value float64) ([]models.IndexBar, error) {
	s.above = value
	return s.bars, s.err
}

func (s *stubIndexService) Import(_ context.Context, bars []models.IndexBar) error {
	s.imported = bars
	return s.err
}

var errStub = errors.New("stub failure")

// --- Harness ---

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

// newTestServer creates a server with stub services and no storage.
func newTestServer(a *app.App) *Server {
	if a.Config == nil {
		a.Config = common.NewDefaultConfig()
	}
	if a.Logger == nil {
		a.Logger = testLogger()
	}
	return &Server{app: a, logger: a.Logger}
}

// newTestServerWithStorage creates a server backed by real BadgerHold storage.
func newTestServerWithStorage(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	logger := testLogger()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Internal.Path = filepath.Join(dir, "internal")
	cfg.Storage.Index.Path = filepath.Join(dir, "index")

	mgr, err := storage.NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	a := &app.App{
		Config:      cfg,
		Logger:      logger,
		Storage:     mgr,
		StartupTime: time.Now(),
	}
	return &Server{app: a, logger: logger}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return bytes.NewBuffer(data)
}

// Compile-time checks that the stubs satisfy the service contracts.
var (
	_ interfaces.QueryService  = (*stubQueryService)(nil)
	_ interfaces.TickerService = (*stubTickerService)(nil)
	_ interfaces.MatchService  = (*stubMatchService)(nil)
	_ interfaces.IndexService  = (*stubIndexService)(nil)
)
