package chat

import (
	"regexp"
	"strings"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// Characters outside word chars, whitespace and accented Latin letters are
// replaced with spaces before tokenizing.
var nonSearchableRe = regexp.MustCompile(`[^\wáàâãäéèêëíìîïóòôõöúùûüçñ\s]`)

// searchTerms tokenizes a free-text query. Tokens of three or more runes
// become search terms; everything shorter is noise.
func searchTerms(query string) []string {
	stripped := nonSearchableRe.ReplaceAllString(strings.ToLower(query), " ")
	var terms []string
	for _, token := range strings.Fields(stripped) {
		if len([]rune(token)) > 2 {
			terms = append(terms, token)
		}
	}
	return terms
}

// RelevantProducts applies the keyword filter: a product matches when any
// term is contained in its searchable text, or the term itself contains the
// product name, or the term appears in the product code. Matches keep the
// original product order and are capped at limit. Zero terms or zero matches
// fall back to the first fallbackSize products. The function is pure.
func RelevantProducts(query string, products []models.Product, limit, fallbackSize int) []models.Product {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return sample(products, fallbackSize)
	}

	var matched []models.Product
	for i := range products {
		if matchesAnyTerm(&products[i], terms) {
			matched = append(matched, products[i])
			if len(matched) >= limit {
				break
			}
		}
	}
	if len(matched) == 0 {
		return sample(products, fallbackSize)
	}
	return matched
}

// LowStockProducts replaces the keyword result for low-stock queries: every
// product at or below its minimum, original order, capped at limit.
func LowStockProducts(products []models.Product, limit int) []models.Product {
	var out []models.Product
	for i := range products {
		if products[i].IsLowStock() {
			out = append(out, products[i])
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

func matchesAnyTerm(p *models.Product, terms []string) bool {
	haystack := strings.ToLower(strings.Join([]string{p.Name, p.Description, p.Category, p.Brand, p.Code}, " "))
	name := strings.ToLower(p.Name)
	code := strings.ToLower(p.Code)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
		// Reverse containment: a long term swallowing a short product name
		// still counts. Intentionally permissive.
		if name != "" && strings.Contains(term, name) {
			return true
		}
		if code != "" && strings.Contains(code, term) {
			return true
		}
	}
	return false
}

func sample(products []models.Product, size int) []models.Product {
	if len(products) <= size {
		return append([]models.Product{}, products...)
	}
	return append([]models.Product{}, products[:size]...)
}
