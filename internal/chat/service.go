package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/eletrodesk/eletrodesk-backend/internal/conversations"
	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/gemini"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
	"github.com/eletrodesk/eletrodesk-backend/pkg/metrics"
)

type productLister interface {
	ListActive(ctx context.Context, userID string, limit int) ([]models.Product, error)
}

type profileLoader interface {
	FindByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error)
}

type completionClient interface {
	Configured() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerationOptions) (string, error)
}

type lifecycle interface {
	EnsureActive(ctx context.Context, userID string) string
	Touch(ctx context.Context, conversationID, message string)
	Close(ctx context.Context, userID, closedBy string) error
	RecordExchange(ctx context.Context, conversationID, userID, userMessage, assistantMessage string, meta conversation.ExchangeMetadata)
}

// Service runs the chat query pipeline end to end for one request.
type Service struct {
	products    productLister
	profiles    profileLoader
	llm         completionClient
	conv        lifecycle
	logg        *logger.Logger
	cfg         config.ChatConfig
	chatMetrics *metrics.ChatMetrics
}

// NewService wires the pipeline.
func NewService(products productLister, profiles profileLoader, llm completionClient, conv lifecycle, logg *logger.Logger, cfg config.ChatConfig, chatMetrics *metrics.ChatMetrics) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile loader required")
	}
	if llm == nil {
		return nil, fmt.Errorf("completion client required")
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation lifecycle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		products:    products,
		profiles:    profiles,
		llm:         llm,
		conv:        conv,
		logg:        logg,
		cfg:         cfg,
		chatMetrics: chatMetrics,
	}, nil
}

// HandleMessage runs one chat turn. It never fails on completion problems:
// those degrade into fallback text inside a normal envelope.
func (s *Service) HandleMessage(ctx context.Context, userID, message string) *Envelope {
	profile, products := s.fetchContext(ctx, userID)

	companyName := ""
	if profile != nil {
		companyName = profile.CompanyName
	}
	summary := Summarize(products)

	queryType := Classify(message)
	var relevant []models.Product
	if queryType == QueryTypeLowStock {
		relevant = LowStockProducts(products, s.cfg.LowStockLimit)
	} else {
		relevant = RelevantProducts(message, products, s.cfg.RelevantLimit, s.cfg.FallbackSampleSize)
	}

	conversationID := s.conv.EnsureActive(ctx, userID)
	ctx = s.logg.WithConversationID(ctx, conversationID)
	s.conv.Touch(ctx, conversationID, message)

	response, failed := s.complete(ctx, companyName, summary, queryType, relevant, message)

	// Message history is fire and forget; the request context may be gone by
	// the time the insert runs.
	go s.conv.RecordExchange(context.WithoutCancel(ctx), conversationID, userID, message, response, conversation.ExchangeMetadata{
		QueryType:     queryType,
		RelevantCount: len(relevant),
		Fallback:      failed,
	})

	return &Envelope{
		Response: response,
		Context: Context{
			TotalProducts:  summary.Total,
			LowStockCount:  summary.LowStock,
			RelevantCount:  len(relevant),
			QueryType:      queryType,
			HasProducts:    summary.Total > 0,
			CompanyName:    companyName,
			ConversationID: conversationID,
			Active:         true,
			Error:          failed,
		},
	}
}

// CloseChat ends the user's active conversation. Persistence failures here
// do surface, unlike everywhere else in the lifecycle.
func (s *Service) CloseChat(ctx context.Context, userID string) (*Envelope, error) {
	if err := s.conv.Close(ctx, userID, userID); err != nil {
		return nil, err
	}
	return &Envelope{
		Response:   "Conversa encerrada. Envie uma nova mensagem para começar outra.",
		ChatClosed: true,
		Context:    Context{},
	}, nil
}

// fetchContext loads the company profile and product set concurrently. Either
// read may fail without blocking the other; failures are logged and the
// pipeline continues with what it got.
func (s *Service) fetchContext(ctx context.Context, userID string) (*models.CompanyProfile, []models.Product) {
	var (
		wg       sync.WaitGroup
		profile  *models.CompanyProfile
		products []models.Product
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := s.profiles.FindByUserID(ctx, userID)
		if err != nil {
			s.logg.Warn(ctx, "profile fetch failed, continuing without company data")
			return
		}
		profile = p
	}()
	go func() {
		defer wg.Done()
		rows, err := s.products.ListActive(ctx, userID, s.cfg.ProductFetchLimit)
		if err != nil {
			s.logg.Error(ctx, "product fetch failed, continuing with empty catalog", err)
			return
		}
		products = rows
	}()
	wg.Wait()

	return profile, products
}

// complete calls the model under the pipeline deadline. The deadline cancels
// the in-flight HTTP request when it wins.
func (s *Service) complete(ctx context.Context, companyName string, summary StockSummary, queryType string, relevant []models.Product, message string) (string, bool) {
	if !s.llm.Configured() {
		s.chatMetrics.IncFallback(fallbackReasonUnconfigured)
		return FallbackMessage(gemini.ErrNotConfigured, summary), true
	}

	prompt := BuildPrompt(companyName, summary, queryType, relevant, message)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CompletionTimeout)
	defer cancel()

	text, err := s.llm.Generate(callCtx, prompt, gemini.GenerationOptions{
		Temperature:     0.3,
		TopP:            0.8,
		MaxOutputTokens: maxOutputTokens(queryType),
	})
	if err != nil {
		reason := classifyFallback(err)
		s.logg.Error(ctx, "completion failed, serving fallback", err)
		s.chatMetrics.IncFallback(reason)
		return FallbackMessage(err, summary), true
	}

	s.chatMetrics.IncCompletion(queryType)
	return text, false
}
