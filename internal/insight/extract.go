package insight

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"coin-concierge/internal/domain"
)

// ExtractionStrategy recognizes one provider response shape and pulls the
// generated text out of it. Extract declines by returning ok=false.
type ExtractionStrategy struct {
	Name    string
	Extract func(body []byte) (string, bool)
}

// ReplyStrategies is the fixed priority order in which provider response
// shapes are probed. OpenAI-compatible chat completions first, then the
// generated_text shapes used by inference-API style providers.
var ReplyStrategies = []ExtractionStrategy{
	{Name: "chat-choices", Extract: extractChatChoices},
	{Name: "generated-text-list", Extract: extractGeneratedTextList},
	{Name: "generated-text-object", Extract: extractGeneratedTextObject},
	{Name: "text-object", Extract: extractTextObject},
}

// ExtractReplyText probes the strategies in order and returns the first
// extracted text. When no shape matches, the whole payload is returned
// stringified so downstream parsing still gets a chance.
func ExtractReplyText(body []byte) string {
	for _, s := range ReplyStrategies {
		if text, ok := s.Extract(body); ok {
			return text
		}
	}
	return string(body)
}

func extractChatChoices(body []byte) (string, bool) {
	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	if len(payload.Choices) == 0 {
		return "", false
	}
	text := payload.Choices[0].Message.Content
	return text, strings.TrimSpace(text) != ""
}

func extractGeneratedTextList(body []byte) (string, bool) {
	var payload []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	if len(payload) == 0 {
		return "", false
	}
	return payload[0].GeneratedText, strings.TrimSpace(payload[0].GeneratedText) != ""
}

func extractGeneratedTextObject(body []byte) (string, bool) {
	var payload struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	return payload.GeneratedText, strings.TrimSpace(payload.GeneratedText) != ""
}

func extractTextObject(body []byte) (string, bool) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	return payload.Text, strings.TrimSpace(payload.Text) != ""
}

// jsonBlockRe grabs the first top-level brace-delimited block greedily, from
// the first { to the last }.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ParseInsight turns a raw model reply into an InsightResult. Fences are
// stripped, the JSON block is located by a greedy brace scan, and both text
// and sentiment must come back as non-empty strings.
func ParseInsight(reply string) (domain.InsightResult, error) {
	reply = trimCodeFence(reply)

	block := jsonBlockRe.FindString(reply)
	if block == "" {
		return domain.InsightResult{}, fmt.Errorf("no JSON block in model reply")
	}

	var parsed struct {
		Text      string `json:"text"`
		Sentiment string `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return domain.InsightResult{}, fmt.Errorf("parse insight json: %w", err)
	}

	text := strings.TrimSpace(parsed.Text)
	sentiment := strings.ToLower(strings.TrimSpace(parsed.Sentiment))
	if text == "" || sentiment == "" {
		return domain.InsightResult{}, fmt.Errorf("insight json missing text or sentiment")
	}

	return domain.InsightResult{Text: text, Sentiment: sentiment, FromModel: true}, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}
