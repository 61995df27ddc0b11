package insight

import (
	"strings"
	"testing"
)

func TestExtractReplyTextChatChoices(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`)
	if got := ExtractReplyText(body); got != "hello from the model" {
		t.Fatalf("expected chat choices text, got %q", got)
	}
}

func TestExtractReplyTextGeneratedTextList(t *testing.T) {
	body := []byte(`[{"generated_text":"list shape"}]`)
	if got := ExtractReplyText(body); got != "list shape" {
		t.Fatalf("expected list shape text, got %q", got)
	}
}

func TestExtractReplyTextGeneratedTextObject(t *testing.T) {
	body := []byte(`{"generated_text":"object shape"}`)
	if got := ExtractReplyText(body); got != "object shape" {
		t.Fatalf("expected object shape text, got %q", got)
	}
}

func TestExtractReplyTextStringifiesUnknownShape(t *testing.T) {
	body := []byte(`{"surprise":{"text": null}}`)
	got := ExtractReplyText(body)
	if got != string(body) {
		t.Fatalf("expected payload stringified as-is, got %q", got)
	}
}

func TestExtractReplyTextStrategyOrder(t *testing.T) {
	// A reply matching both the chat and text shapes must use chat first.
	body := []byte(`{"choices":[{"message":{"content":"from choices"}}],"text":"from text"}`)
	if got := ExtractReplyText(body); got != "from choices" {
		t.Fatalf("expected chat-choices to win, got %q", got)
	}
}

func TestParseInsightStripsCodeFences(t *testing.T) {
	reply := "```json\n{\"text\":\"x\",\"sentiment\":\"Bullish\"}\n```"
	result, err := ParseInsight(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "x" {
		t.Fatalf("expected text x, got %q", result.Text)
	}
	if result.Sentiment != "bullish" {
		t.Fatalf("expected lower-cased sentiment, got %q", result.Sentiment)
	}
	if !result.FromModel {
		t.Fatal("expected FromModel=true")
	}
}

func TestParseInsightBraceScanIgnoresSurroundingProse(t *testing.T) {
	reply := `Sure! Here you go: {"text":"BTC is steady","sentiment":"neutral"} hope that helps`
	result, err := ParseInsight(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "BTC is steady" || result.Sentiment != "neutral" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseInsightMissingSentiment(t *testing.T) {
	if _, err := ParseInsight(`{"text":"only text"}`); err == nil {
		t.Fatal("expected error for missing sentiment")
	}
}

func TestParseInsightMissingText(t *testing.T) {
	if _, err := ParseInsight(`{"text":"  ","sentiment":"bullish"}`); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestParseInsightNoJSONBlock(t *testing.T) {
	if _, err := ParseInsight("the model rambled with no json at all"); err == nil {
		t.Fatal("expected error when no brace block exists")
	}
}

func TestTrimCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
	}
	for in, expected := range cases {
		if got := trimCodeFence(in); got != expected {
			t.Fatalf("trimCodeFence(%q): expected %q, got %q", in, expected, got)
		}
	}
}

func TestReplyStrategiesAreNamed(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range ReplyStrategies {
		if strings.TrimSpace(s.Name) == "" || s.Extract == nil {
			t.Fatalf("strategy missing name or func: %+v", s.Name)
		}
		if seen[s.Name] {
			t.Fatalf("duplicate strategy name %s", s.Name)
		}
		seen[s.Name] = true
	}
}
