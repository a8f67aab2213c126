package chat

import (
	"fmt"
	"strings"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/money"
)

// unknownCompany is the prompt fallback when no profile exists.
const unknownCompany = "Não informada"

// StockSummary is the derived per-request snapshot embedded in prompts and
// fallback messages. Recomputed from the live product set, never cached.
type StockSummary struct {
	Total      int
	LowStock   int
	Categories []string
	Brands     []string
}

// Summarize derives the stock snapshot from the fetched product set.
func Summarize(products []models.Product) StockSummary {
	summary := StockSummary{Total: len(products)}
	seenCategories := map[string]bool{}
	seenBrands := map[string]bool{}
	for i := range products {
		p := &products[i]
		if p.IsLowStock() {
			summary.LowStock++
		}
		if p.Category != "" && !seenCategories[p.Category] {
			seenCategories[p.Category] = true
			summary.Categories = append(summary.Categories, p.Category)
		}
		if p.Brand != "" && !seenBrands[p.Brand] {
			seenBrands[p.Brand] = true
			summary.Brands = append(summary.Brands, p.Brand)
		}
	}
	return summary
}

// BuildPrompt assembles the completion prompt: company context, stock
// snapshot, the relevant product list and fixed behavioral instructions, with
// the literal user query appended last. The product list is already bounded
// by the relevance filter; nothing is truncated here.
func BuildPrompt(companyName string, summary StockSummary, queryType string, products []models.Product, userQuery string) string {
	if strings.TrimSpace(companyName) == "" {
		companyName = unknownCompany
	}

	var sb strings.Builder
	sb.WriteString("Você é o assistente de estoque de uma distribuidora de materiais elétricos.\n\n")
	fmt.Fprintf(&sb, "Empresa: %s\n", companyName)
	fmt.Fprintf(&sb, "Total de produtos cadastrados: %d\n", summary.Total)
	fmt.Fprintf(&sb, "Produtos com estoque baixo: %d\n", summary.LowStock)
	fmt.Fprintf(&sb, "Tipo de consulta detectado: %s\n\n", queryType)

	if len(products) > 0 {
		sb.WriteString("Produtos relevantes:\n")
		for i := range products {
			writeProductLine(&sb, &products[i])
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("Nenhum produto relevante encontrado para esta consulta.\n\n")
	}

	sb.WriteString("Instruções:\n")
	sb.WriteString("- Responda apenas sobre o estoque e os produtos listados acima.\n")
	sb.WriteString("- Cite somente dados reais da lista; nunca invente produtos ou quantidades.\n")
	sb.WriteString("- Destaque produtos com estoque baixo quando houver.\n")
	sb.WriteString("- Use o formato de moeda brasileiro (R$ 1.234,56) para valores.\n")
	fmt.Fprintf(&sb, "- Limite a resposta a %d caracteres.\n\n", answerCharLimit(queryType))

	fmt.Fprintf(&sb, "Pergunta do usuário: %s", userQuery)
	return sb.String()
}

func writeProductLine(sb *strings.Builder, p *models.Product) {
	marker := ""
	if p.IsLowStock() {
		marker = " [ESTOQUE BAIXO]"
	}
	fmt.Fprintf(sb, "- %s (código %s)", p.Name, p.Code)
	if p.Category != "" {
		fmt.Fprintf(sb, ", categoria %s", p.Category)
	}
	if p.Brand != "" {
		fmt.Fprintf(sb, ", marca %s", p.Brand)
	}
	fmt.Fprintf(sb, ", estoque %d%s", p.StockQuantity, marker)
	fmt.Fprintf(sb, ", custo %s, preço %s", money.FormatBRL(p.Cost), money.FormatBRL(p.Price))
	if p.Location != "" {
		fmt.Fprintf(sb, ", local %s", p.Location)
	}
	sb.WriteString("\n")
}

// answerCharLimit returns the answer length cap stated in the prompt. Budget
// questions get more room for itemized values.
func answerCharLimit(queryType string) int {
	if queryType == QueryTypeBudget {
		return 800
	}
	return 500
}

// maxOutputTokens mirrors the char limit on the generation side.
func maxOutputTokens(queryType string) int {
	if queryType == QueryTypeBudget {
		return 800
	}
	return 500
}
