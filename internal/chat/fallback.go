package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eletrodesk/eletrodesk-backend/pkg/gemini"
)

// Fallback reasons used for logging and metrics labels.
const (
	fallbackReasonUnconfigured = "unconfigured"
	fallbackReasonTimeout      = "timeout"
	fallbackReasonCredentials  = "credentials"
	fallbackReasonQuota        = "quota"
	fallbackReasonGeneric      = "generic"
)

// classifyFallback maps a completion failure to its reason label.
func classifyFallback(err error) string {
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		return fallbackReasonUnconfigured
	case errors.Is(err, gemini.ErrTimeout):
		return fallbackReasonTimeout
	case errors.Is(err, gemini.ErrInvalidCredentials):
		return fallbackReasonCredentials
	case errors.Is(err, gemini.ErrQuotaExceeded):
		return fallbackReasonQuota
	default:
		return fallbackReasonGeneric
	}
}

var fallbackMessages = map[string]string{
	fallbackReasonUnconfigured: "O assistente de IA não está disponível no momento porque o serviço ainda não foi configurado.",
	fallbackReasonTimeout:      "O assistente demorou demais para responder. Tente novamente em instantes.",
	fallbackReasonCredentials:  "Não foi possível autenticar no serviço de IA. Verifique a configuração da conta.",
	fallbackReasonQuota:        "O limite de uso do assistente foi atingido. Tente novamente mais tarde.",
	fallbackReasonGeneric:      "O assistente encontrou um problema ao gerar a resposta. Tente novamente.",
}

// FallbackMessage builds the user-facing text for a failed completion: a
// reason-specific message plus a plain-text stock summary when product data
// was loaded.
func FallbackMessage(err error, summary StockSummary) string {
	reason := classifyFallback(err)
	msg := fallbackMessages[reason]
	if summary.Total == 0 {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n\nResumo do estoque:\n")
	fmt.Fprintf(&sb, "- %d produtos cadastrados\n", summary.Total)
	fmt.Fprintf(&sb, "- %d com estoque baixo\n", summary.LowStock)
	if cats := firstN(summary.Categories, 3); len(cats) > 0 {
		fmt.Fprintf(&sb, "- Categorias: %s\n", strings.Join(cats, ", "))
	}
	if brands := firstN(summary.Brands, 3); len(brands) > 0 {
		fmt.Fprintf(&sb, "- Marcas: %s\n", strings.Join(brands, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
