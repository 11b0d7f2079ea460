package query

import (
	"context"
	"errors"
	"testing"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/models"
)

// stubExtractor returns a fixed document.
type stubExtractor struct {
	doc *models.Document
	err error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (*models.Document, error) {
	return s.doc, s.err
}

func newService(doc *models.Document) *Service {
	return NewService(&stubExtractor{doc: doc}, common.NewSilentLogger())
}

func TestInterpret_CompanyAndPrice(t *testing.T) {
	doc := &models.Document{
		Entities: []models.Entity{
			{Text: "Amazon", Label: models.LabelOrg},
			{Text: "2000", Label: models.LabelMoney},
		},
		Tokens: []models.Token{
			{Text: "exceed", Lemma: "exceed"},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "Did Amazon exceed $2000")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}

	if intent.Company != "Amazon" {
		t.Errorf("Company = %q, want Amazon", intent.Company)
	}
	if intent.Price != "2000" {
		t.Errorf("Price = %q, want 2000", intent.Price)
	}
	if intent.Comparison != models.ComparisonGreaterOrEqual {
		t.Errorf("Comparison = %q, want greater_than_equal", intent.Comparison)
	}
	if !intent.Complete() {
		t.Error("intent should be complete")
	}
}

func TestInterpret_NoEntities(t *testing.T) {
	intent, err := newService(&models.Document{}).Interpret(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Company != "" || intent.Price != "" {
		t.Errorf("expected empty slots, got %+v", intent)
	}
	if intent.Comparison != models.ComparisonGreaterOrEqual {
		t.Errorf("default Comparison = %q, want greater_than_equal", intent.Comparison)
	}
	if intent.Complete() {
		t.Error("intent should be incomplete")
	}
}

func TestInterpret_LastPriceWins(t *testing.T) {
	doc := &models.Document{
		Entities: []models.Entity{
			{Text: "100", Label: models.LabelMoney},
			{Text: "250", Label: models.LabelCardinal},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "between 100 and 250")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Price != "250" {
		t.Errorf("Price = %q, want the later mention 250", intent.Price)
	}
}

func TestInterpret_LastCompanyWins(t *testing.T) {
	doc := &models.Document{
		Entities: []models.Entity{
			{Text: "Apple", Label: models.LabelOrg},
			{Text: "Singapore", Label: models.LabelGPE},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "Apple in Singapore")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Company != "Singapore" {
		t.Errorf("Company = %q, want the later mention Singapore", intent.Company)
	}
}

func TestInterpret_PersonEntitiesIgnored(t *testing.T) {
	doc := &models.Document{
		Entities: []models.Entity{
			{Text: "Warren Buffett", Label: models.LabelPerson},
			{Text: "50", Label: models.LabelCardinal},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "did Warren Buffett pay 50")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Company != "" {
		t.Errorf("Company = %q, PERSON entities should not fill the company slot", intent.Company)
	}
}

func TestInterpret_BelowGivesLessOrEqual(t *testing.T) {
	doc := &models.Document{
		Tokens: []models.Token{
			{Text: "close", Lemma: "close"},
			{Text: "below", Lemma: "below"},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "close below 50")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Comparison != models.ComparisonLessOrEqual {
		t.Errorf("Comparison = %q, want less_than_equal", intent.Comparison)
	}
}

func TestInterpret_LaterDirectionWins(t *testing.T) {
	doc := &models.Document{
		Tokens: []models.Token{
			{Text: "above", Lemma: "above"},
			{Text: "or", Lemma: "or"},
			{Text: "less", Lemma: "less"},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "above or less")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Comparison != models.ComparisonLessOrEqual {
		t.Errorf("Comparison = %q, want less_than_equal from the later keyword", intent.Comparison)
	}
}

func TestInterpret_ExceededLemma(t *testing.T) {
	doc := &models.Document{
		Tokens: []models.Token{
			{Text: "exceeded", Lemma: "exceed"},
		},
	}

	intent, err := newService(doc).Interpret(context.Background(), "ever exceeded 100")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if intent.Comparison != models.ComparisonGreaterOrEqual {
		t.Errorf("Comparison = %q, want greater_than_equal", intent.Comparison)
	}
}

func TestInterpret_ExtractorError(t *testing.T) {
	svc := NewService(&stubExtractor{err: errors.New("model unavailable")}, common.NewSilentLogger())
	if _, err := svc.Interpret(context.Background(), "anything"); err == nil {
		t.Fatal("expected extractor error to propagate")
	}
}
