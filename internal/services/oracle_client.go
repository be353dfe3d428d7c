package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/habitloop/habitloop-backend/internal/classifier"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/utils"
)

// OracleClient talks to an external language-model service. Every call is a
// single best-effort attempt bounded by the client timeout: no retries, and
// callers must be able to proceed when it fails.
type OracleClient interface {
	classifier.Oracle
	GenerateInsights(ctx context.Context, summary InsightContext) ([]Insight, error)
}

type oracleClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOracleClient(log *logger.Logger) (OracleClient, error) {
	apiKey := os.Getenv("ORACLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing ORACLE_API_KEY")
	}

	baseURL := utils.GetEnv("ORACLE_BASE_URL", "https://api.openai.com", log)
	model := utils.GetEnv("ORACLE_MODEL", "gpt-4o-mini", log)
	timeoutSec := utils.GetEnvAsInt("ORACLE_TIMEOUT_SECONDS", 20, log)

	return &oracleClient{
		log:        log.With("service", "OracleClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *oracleClient) complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("oracle http %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("oracle decode error: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// firstJSONObject lifts the first balanced {...} block out of a response that
// may wrap it in prose or code fences.
func firstJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			ch := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case ch == '\\':
					escaped = true
				case ch == '"':
					inString = false
				}
				continue
			}
			switch ch {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := s[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					i = len(s)
				}
			}
		}
		next := strings.Index(s[start+1:], "{")
		if next < 0 {
			return "", false
		}
		start = start + 1 + next
	}
	return "", false
}

const extractSystemPrompt = `You extract structured habit records from a short journal note.
Return ONLY a JSON object with these fields:
  activity: short canonical label (e.g. "run", "meditate", "procrastinate")
  type: one of "positive habit", "negative behavior", "neutral activity", "emotional event"
  category: one of "exercise", "mindfulness", "learning", "nutrition", "sleep", "productivity", "relationships", "mental health", "health", "habits"
  quantity: number or null
  unit: one of "km", "miles", "minutes", "hours", "pages", "glasses", "times", "reps", "sets", "cups", "days", "weeks" or null
  mood: single lowercase word or null
  sentiment: "positive", "neutral" or "negative"
  trigger: short cause label or null
  tags: array of short context tags
Missing information must be null, never invented.`

func (c *oracleClient) ExtractRecord(ctx context.Context, text string) (*classifier.Record, error) {
	content, err := c.complete(ctx, extractSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	obj, ok := firstJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}
	var rec classifier.Record
	if err := json.Unmarshal([]byte(obj), &rec); err != nil {
		return nil, fmt.Errorf("malformed oracle record: %w", err)
	}
	if rec.Activity == "" {
		return nil, fmt.Errorf("oracle record missing activity")
	}
	return &rec, nil
}

const insightSystemPrompt = `You are a habit coach. Given aggregate tracking data, return ONLY a JSON
object of the form {"insights": [{"type": "...", "title": "...", "message": "..."}]}.
type must be one of "recommendation", "warning", "achievement", "prediction".
At most 5 items, each message one or two sentences, grounded in the data.`

func (c *oracleClient) GenerateInsights(ctx context.Context, summary InsightContext) ([]Insight, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	content, err := c.complete(ctx, insightSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}
	obj, ok := firstJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}
	var parsed struct {
		Insights []Insight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("malformed oracle insights: %w", err)
	}
	return parsed.Insights, nil
}
