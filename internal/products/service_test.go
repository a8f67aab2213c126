package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
)

func stringPtr(v string) *string { return &v }
func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestApplyUpdateToProductTrimsAndCopies(t *testing.T) {
	row := &models.Product{
		Code: "DJ-25",
		Name: "old name",
		Unit: "un",
	}

	tags := []string{"eletrico", "residencial"}
	input := UpdateProductInput{
		Name:     stringPtr("  Disjuntor 25A  "),
		Brand:    stringPtr(" WEG "),
		Unit:     stringPtr("  "),
		Price:    decimalPtr(45.90),
		Tags:     &tags,
		IsActive: boolPtr(false),
	}

	if err := applyUpdateToProduct(row, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Name != "Disjuntor 25A" {
		t.Fatalf("expected trimmed name, got %q", row.Name)
	}
	if row.Brand != "WEG" {
		t.Fatalf("expected trimmed brand, got %q", row.Brand)
	}
	if row.Unit != "un" {
		t.Fatalf("expected blank unit to fall back to un, got %q", row.Unit)
	}
	if !row.Price.Equal(decimal.NewFromFloat(45.90)) {
		t.Fatalf("expected price 45.90, got %s", row.Price)
	}
	if len(row.Tags) != 2 || row.Tags[0] != "eletrico" {
		t.Fatalf("expected copied tags, got %v", row.Tags)
	}
	if row.IsActive {
		t.Fatal("expected is_active false")
	}
}

func TestApplyUpdateToProductRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		input UpdateProductInput
	}{
		{"blankName", UpdateProductInput{Name: stringPtr("   ")}},
		{"negativeStock", UpdateProductInput{StockQuantity: intPtr(-1)}},
		{"negativeMinStock", UpdateProductInput{MinStock: intPtr(-2)}},
		{"negativePrice", UpdateProductInput{Price: decimalPtr(-1)}},
		{"negativeCost", UpdateProductInput{Cost: decimalPtr(-0.5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := &models.Product{Name: "x", StockQuantity: 1}
			err := applyUpdateToProduct(row, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}
