package chat

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

func TestSummarize(t *testing.T) {
	summary := Summarize(catalog())
	if summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", summary.Total)
	}
	if summary.LowStock != 2 {
		t.Fatalf("expected 2 low stock, got %d", summary.LowStock)
	}
	if len(summary.Categories) != 3 || summary.Categories[0] != "Disjuntores" {
		t.Fatalf("expected categories in first-seen order, got %v", summary.Categories)
	}
	if len(summary.Brands) != 3 {
		t.Fatalf("expected 3 brands, got %v", summary.Brands)
	}
}

func TestBuildPromptContents(t *testing.T) {
	products := []models.Product{{
		Code:          "DJ-25",
		Name:          "Disjuntor Bipolar 25A",
		Category:      "Disjuntores",
		Brand:         "WEG",
		StockQuantity: 2,
		MinStock:      5,
		Cost:          decimal.NewFromFloat(28.10),
		Price:         decimal.NewFromFloat(1234.56),
		Location:      "Corredor B3",
	}}
	summary := Summarize(products)

	prompt := BuildPrompt("Eletrica Central", summary, QueryTypeLowStock, products, "estoque baixo de disjuntores")

	checks := []string{
		"Empresa: Eletrica Central",
		"Total de produtos cadastrados: 1",
		"Produtos com estoque baixo: 1",
		"Tipo de consulta detectado: estoque_baixo",
		"Disjuntor Bipolar 25A (código DJ-25)",
		"[ESTOQUE BAIXO]",
		"R$ 1.234,56",
		"local Corredor B3",
		"Limite a resposta a 500 caracteres.",
	}
	for _, sub := range checks {
		if !strings.Contains(prompt, sub) {
			t.Errorf("prompt missing %q", sub)
		}
	}
	if !strings.HasSuffix(prompt, "Pergunta do usuário: estoque baixo de disjuntores") {
		t.Fatal("expected the literal user query appended last")
	}
}

func TestBuildPromptCompanyFallback(t *testing.T) {
	prompt := BuildPrompt("  ", StockSummary{}, QueryTypeGeneral, nil, "oi")
	if !strings.Contains(prompt, "Empresa: Não informada") {
		t.Fatal("expected company name fallback")
	}
	if !strings.Contains(prompt, "Nenhum produto relevante encontrado") {
		t.Fatal("expected empty catalog note")
	}
}

func TestBudgetQueriesGetLongerAnswers(t *testing.T) {
	prompt := BuildPrompt("X", StockSummary{}, QueryTypeBudget, nil, "orçamento")
	if !strings.Contains(prompt, "Limite a resposta a 800 caracteres.") {
		t.Fatal("expected 800 char cap for budget queries")
	}
	if maxOutputTokens(QueryTypeBudget) != 800 {
		t.Fatalf("expected 800 output tokens for budget, got %d", maxOutputTokens(QueryTypeBudget))
	}
	if maxOutputTokens(QueryTypeGeneral) != 500 {
		t.Fatalf("expected 500 output tokens otherwise, got %d", maxOutputTokens(QueryTypeGeneral))
	}
}
