package chat

import (
	"regexp"
	"strings"
)

// Query types recognized by the classifier.
const (
	QueryTypeLowStock = "estoque_baixo"
	QueryTypeBudget   = "orçamento"
	QueryTypeCategory = "categoria"
	QueryTypeBrand    = "marca"
	QueryTypeGeneral  = "geral"
)

type queryRule struct {
	pattern *regexp.Regexp
	label   string
}

// Rules are evaluated in order; the first match wins. Low stock outranks
// budget, budget outranks category, category outranks brand.
var queryRules = []queryRule{
	{regexp.MustCompile(`estoque\s+baixo|baixo\s+estoque`), QueryTypeLowStock},
	{regexp.MustCompile(`orçamento|orcamento|cotação|cotacao|proposta`), QueryTypeBudget},
	{regexp.MustCompile(`categoria|tipo`), QueryTypeCategory},
	{regexp.MustCompile(`marca|fabricante`), QueryTypeBrand},
}

// Classify maps a message to exactly one query type.
func Classify(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range queryRules {
		if rule.pattern.MatchString(lower) {
			return rule.label
		}
	}
	return QueryTypeGeneral
}
