package erp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one raw record from an ERP export, keyed by whatever field names the
// vendor uses.
type Row map[string]any

// NormalizedRow is the canonical product shape resolved from a Row.
type NormalizedRow struct {
	Code          string
	Name          string
	Description   string
	Category      string
	Brand         string
	Unit          string
	StockQuantity int
	MinStock      int
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Location      string
	Supplier      string
}

// fieldAliases maps canonical fields to the names Brazilian ERPs actually
// export. Lookup is case-insensitive; first alias present wins.
var fieldAliases = map[string][]string{
	"code":           {"code", "codigo", "código", "cod_produto", "sku", "referencia", "referência"},
	"name":           {"name", "descricao", "descrição", "nome", "produto"},
	"description":    {"description", "descricao_completa", "descrição_completa", "detalhes", "observacao", "observação"},
	"category":       {"category", "categoria", "grupo", "familia", "família"},
	"brand":          {"brand", "marca", "fabricante"},
	"unit":           {"unit", "unidade", "un_medida", "um"},
	"stock_quantity": {"stock_quantity", "qtd", "quantidade", "estoque", "saldo", "qtd_estoque"},
	"min_stock":      {"min_stock", "estoque_minimo", "estoque_mínimo", "qtd_minima", "qtd_mínima"},
	"price":          {"price", "preco", "preço", "valor_venda", "preco_venda", "preço_venda"},
	"cost":           {"cost", "custo", "valor_custo", "preco_custo", "preço_custo"},
	"location":       {"location", "localizacao", "localização", "endereco", "endereço", "corredor"},
	"supplier":       {"supplier", "fornecedor"},
}

// NormalizeRow resolves heterogeneous ERP field names into the canonical
// shape. Code and name are required; quantities and prices default to zero.
func NormalizeRow(row Row) (*NormalizedRow, error) {
	lowered := make(map[string]any, len(row))
	for key, value := range row {
		lowered[strings.ToLower(strings.TrimSpace(key))] = value
	}

	out := &NormalizedRow{
		Code:        lookupString(lowered, "code"),
		Name:        lookupString(lowered, "name"),
		Description: lookupString(lowered, "description"),
		Category:    lookupString(lowered, "category"),
		Brand:       lookupString(lowered, "brand"),
		Unit:        lookupString(lowered, "unit"),
		Location:    lookupString(lowered, "location"),
		Supplier:    lookupString(lowered, "supplier"),
	}
	if out.Code == "" {
		return nil, fmt.Errorf("no product code field (tried %s)", strings.Join(fieldAliases["code"], ", "))
	}
	if out.Name == "" {
		return nil, fmt.Errorf("row %s: no product name field", out.Code)
	}
	if out.Unit == "" {
		out.Unit = "un"
	}

	var err error
	if out.StockQuantity, err = lookupInt(lowered, "stock_quantity"); err != nil {
		return nil, fmt.Errorf("row %s: %w", out.Code, err)
	}
	if out.MinStock, err = lookupInt(lowered, "min_stock"); err != nil {
		return nil, fmt.Errorf("row %s: %w", out.Code, err)
	}
	if out.Price, err = lookupDecimal(lowered, "price"); err != nil {
		return nil, fmt.Errorf("row %s: %w", out.Code, err)
	}
	if out.Cost, err = lookupDecimal(lowered, "cost"); err != nil {
		return nil, fmt.Errorf("row %s: %w", out.Code, err)
	}
	return out, nil
}

func lookupRaw(row map[string]any, canonical string) (any, bool) {
	for _, alias := range fieldAliases[canonical] {
		if value, ok := row[alias]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func lookupString(row map[string]any, canonical string) string {
	value, ok := lookupRaw(row, canonical)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func lookupInt(row map[string]any, canonical string) (int, error) {
	value, ok := lookupRaw(row, canonical)
	if !ok {
		return 0, nil
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q", canonical, v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("invalid %s type %T", canonical, value)
	}
}

func lookupDecimal(row map[string]any, canonical string) (decimal.Decimal, error) {
	value, ok := lookupRaw(row, canonical)
	if !ok {
		return decimal.Zero, nil
	}
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, nil
		}
		// Brazilian exports use comma decimals ("1.234,56").
		if strings.Contains(trimmed, ",") {
			trimmed = strings.ReplaceAll(trimmed, ".", "")
			trimmed = strings.ReplaceAll(trimmed, ",", ".")
		}
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s value %q", canonical, v)
		}
		return parsed, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid %s type %T", canonical, value)
	}
}
