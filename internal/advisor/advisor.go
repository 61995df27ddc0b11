package advisor

import (
	"context"
	"fmt"
	"log"

	"coin-concierge/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// PriceQuerier provides current quotes for the advisor's context.
type PriceQuerier interface {
	FetchQuotes(ctx context.Context) ([]domain.PriceQuote, error)
}

// ConversationStore persists and retrieves per-user chat history.
type ConversationStore interface {
	AppendMessage(ctx context.Context, userID int64, role, content string) error
	RecentMessages(ctx context.Context, userID int64, limit int) ([]domain.ConversationMessage, error)
}

type AdvisorService struct {
	tracer     trace.Tracer
	llm        LLMClient
	prices     PriceQuerier
	convStore  ConversationStore
	model      string
	maxHistory int
}

func NewAdvisorService(
	tracer trace.Tracer,
	llm LLMClient,
	prices PriceQuerier,
	convStore ConversationStore,
	model string,
	maxHistory int,
) *AdvisorService {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &AdvisorService{
		tracer:     tracer,
		llm:        llm,
		prices:     prices,
		convStore:  convStore,
		model:      model,
		maxHistory: maxHistory,
	}
}

// Ask runs one advisor turn for the user: persist the question, gather live
// prices plus the user's stored preferences into the system prompt, replay
// recent history, and persist the reply.
func (s *AdvisorService) Ask(ctx context.Context, user *domain.User, userMessage string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.ask")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	if err := s.convStore.AppendMessage(ctx, user.ID, "user", userMessage); err != nil {
		log.Printf("failed to store user message: %v", err)
	}

	mentioned := ExtractSymbols(userMessage)

	marketContext, err := s.gatherContext(ctx, mentioned)
	if err != nil {
		log.Printf("failed to gather market context: %v", err)
		marketContext = "Market data temporarily unavailable."
	}

	systemPrompt := BuildSystemPrompt(user.Preferences, marketContext)

	history, err := s.convStore.RecentMessages(ctx, user.ID, s.maxHistory)
	if err != nil {
		log.Printf("failed to load conversation history: %v", err)
		history = nil
	}

	messages := s.buildMessages(systemPrompt, history)

	reply, err := s.callLLM(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("advisor unavailable: %w", err)
	}

	if err := s.convStore.AppendMessage(ctx, user.ID, "assistant", reply); err != nil {
		log.Printf("failed to store assistant reply: %v", err)
	}

	return reply, nil
}

// gatherContext fetches the current quotes, narrowed to the symbols the user
// mentioned when there are any.
func (s *AdvisorService) gatherContext(ctx context.Context, symbols []string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.gather-context")
	defer span.End()

	quotes, err := s.prices.FetchQuotes(ctx)
	if err != nil {
		return "", err
	}

	if len(symbols) > 0 {
		wanted := make(map[string]bool, len(symbols))
		for _, sym := range symbols {
			wanted[sym] = true
		}
		var narrowed []domain.PriceQuote
		for _, q := range quotes {
			if wanted[q.Symbol] {
				narrowed = append(narrowed, q)
			}
		}
		if len(narrowed) > 0 {
			quotes = narrowed
		}
	}

	return FormatMarketContext(quotes), nil
}

func (s *AdvisorService) buildMessages(
	systemPrompt string,
	history []domain.ConversationMessage,
) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)

	// System prompt always first
	messages = append(messages, openai.SystemMessage(systemPrompt))

	// Conversation history (already limited by RecentMessages query)
	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	return messages
}

func (s *AdvisorService) callLLM(
	ctx context.Context,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
