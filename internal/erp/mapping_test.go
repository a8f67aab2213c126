package erp

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeRowResolvesAliases(t *testing.T) {
	row := Row{
		"Codigo":    "DJ-25",
		"Descricao": "Disjuntor Bipolar 25A",
		"Grupo":     "Disjuntores",
		"Marca":     "WEG",
		"Qtd":       float64(12),
		"Preco":     "45,90",
		"Custo":     "1.234,56",
		"Corredor":  "B3",
	}

	got, err := NormalizeRow(row)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Code != "DJ-25" {
		t.Fatalf("expected code DJ-25, got %q", got.Code)
	}
	if got.Name != "Disjuntor Bipolar 25A" {
		t.Fatalf("expected name resolved from descricao, got %q", got.Name)
	}
	if got.Category != "Disjuntores" || got.Brand != "WEG" {
		t.Fatalf("expected category/brand resolved, got %q/%q", got.Category, got.Brand)
	}
	if got.StockQuantity != 12 {
		t.Fatalf("expected stock 12, got %d", got.StockQuantity)
	}
	if !got.Price.Equal(decimal.NewFromFloat(45.90)) {
		t.Fatalf("expected price 45.90, got %s", got.Price)
	}
	if !got.Cost.Equal(decimal.NewFromFloat(1234.56)) {
		t.Fatalf("expected cost 1234.56 from comma format, got %s", got.Cost)
	}
	if got.Location != "B3" {
		t.Fatalf("expected location B3, got %q", got.Location)
	}
	if got.Unit != "un" {
		t.Fatalf("expected default unit, got %q", got.Unit)
	}
}

func TestNormalizeRowAlternateAliases(t *testing.T) {
	row := Row{
		"SKU":         "CB-10",
		"Produto":     "Cabo Flexível 10mm",
		"Estoque":     "80",
		"Saldo":       "99",
		"Valor_Venda": 10.5,
		"Fornecedor":  "Distribuidora X",
	}

	got, err := NormalizeRow(row)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Code != "CB-10" {
		t.Fatalf("expected sku alias, got %q", got.Code)
	}
	// "estoque" precedes "saldo" in the alias list.
	if got.StockQuantity != 80 {
		t.Fatalf("expected first-alias-wins stock 80, got %d", got.StockQuantity)
	}
	if !got.Price.Equal(decimal.NewFromFloat(10.5)) {
		t.Fatalf("expected price 10.5, got %s", got.Price)
	}
	if got.Supplier != "Distribuidora X" {
		t.Fatalf("expected supplier, got %q", got.Supplier)
	}
}

func TestNormalizeRowMissingCode(t *testing.T) {
	if _, err := NormalizeRow(Row{"Descricao": "sem código"}); err == nil {
		t.Fatal("expected error for missing code")
	}
}

func TestNormalizeRowMissingName(t *testing.T) {
	if _, err := NormalizeRow(Row{"Codigo": "X-1"}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestNormalizeRowBadNumbers(t *testing.T) {
	if _, err := NormalizeRow(Row{"Codigo": "X-1", "Nome": "x", "Qtd": "doze"}); err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}
	if _, err := NormalizeRow(Row{"Codigo": "X-1", "Nome": "x", "Preco": "caro"}); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestNormalizeRowDotDecimal(t *testing.T) {
	got, err := NormalizeRow(Row{"Codigo": "X-1", "Nome": "x", "Preco": "1234.56"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !got.Price.Equal(decimal.NewFromFloat(1234.56)) {
		t.Fatalf("expected dot-decimal parse, got %s", got.Price)
	}
}
