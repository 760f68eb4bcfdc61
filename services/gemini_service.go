package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

// Error kinds for AI calls. Transport problems, timeouts and bad output are
// distinct so callers (and telemetry) can tell them apart.
var (
	ErrNoIngredients    = errors.New("gemini: no ingredients to suggest from")
	ErrGenerationFailed = errors.New("gemini: empty or malformed model output")
	ErrAIUnavailable    = errors.New("gemini: endpoint unreachable")
	ErrAITimeout        = errors.New("gemini: call timed out")
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ── Wire types (Gemini REST API) ─────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Items      *geminiSchema            `json:"items,omitempty"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// text flattens the first candidate's parts.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// ── Service ──────────────────────────────────────────────────────

// GeminiOption configures the GeminiService.
type GeminiOption func(*GeminiService)

// WithGeminiModel overrides the default model name.
func WithGeminiModel(model string) GeminiOption {
	return func(s *GeminiService) { s.model = model }
}

// WithGeminiBaseURL points the client at a different endpoint (tests).
func WithGeminiBaseURL(base string) GeminiOption {
	return func(s *GeminiService) { s.baseURL = strings.TrimRight(base, "/") }
}

// WithGeminiTimeout sets the per-call HTTP timeout.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(s *GeminiService) { s.client.Timeout = d }
}

// GeminiService talks to the Gemini generateContent API. It holds no
// durable state; every method is a plain request/response boundary call
// except StreamGenerateContent, which feeds fragments to a callback.
type GeminiService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewGeminiService(apiKey string, opts ...GeminiOption) *GeminiService {
	s := &GeminiService{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultGeminiBaseURL,
		apiKey:  apiKey,
		model:   "gemini-2.5-flash",
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// classifyTransportErr folds a failed http.Do into our error kinds.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrAITimeout, err)
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrAITimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrAIUnavailable, err)
}

// generate posts a generateContent request and returns the reply text.
func (s *GeminiService) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", classifyTransportErr(err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrAIUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, resp.StatusCode, snippet(respBytes))
	}

	var out generateResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("%w: decode envelope: %v", ErrGenerationFailed, err)
	}
	return out.text(), nil
}

// mealSuggestionSchema constrains the structured meal response: an array of
// objects with required name/description/recipe strings, an ingredient list
// and a four-field nutrition object of display strings.
func mealSuggestionSchema() *geminiSchema {
	str := &geminiSchema{Type: "STRING"}
	return &geminiSchema{
		Type: "ARRAY",
		Items: &geminiSchema{
			Type: "OBJECT",
			Properties: map[string]*geminiSchema{
				"name":              str,
				"description":       str,
				"ingredientsNeeded": {Type: "ARRAY", Items: str},
				"recipe":            str,
				"nutrition": {
					Type: "OBJECT",
					Properties: map[string]*geminiSchema{
						"calories": str,
						"protein":  str,
						"carbs":    str,
						"fat":      str,
					},
					Required: []string{"calories", "protein", "carbs", "fat"},
				},
			},
			Required: []string{"name", "description", "ingredientsNeeded", "recipe", "nutrition"},
		},
	}
}

// SuggestMeals asks for three dishes built from the given items. Either the
// whole response decodes into well-formed suggestions or the call fails;
// partially usable output is never returned.
func (s *GeminiService) SuggestMeals(ctx context.Context, items []models.FoodItem) ([]models.MealSuggestion, error) {
	if len(items) == 0 {
		return nil, ErrNoIngredients
	}

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", it.Name, it.Quantity))
	}

	var sb bytes.Buffer
	sb.WriteString("Dựa vào danh sách nguyên liệu có sẵn sau đây, hãy gợi ý 3 thực đơn.\n")
	sb.WriteString("Nguyên liệu: " + strings.Join(parts, ", ") + ".\n")
	sb.WriteString("Với mỗi thực đơn, hãy cung cấp tên món ăn, mô tả ngắn, danh sách nguyên liệu chính cần dùng từ danh sách trên, công thức đơn giản, và giá trị dinh dưỡng ước tính (calo, đạm, carb, béo).\n")
	sb.WriteString("Hãy trả lời bằng tiếng Việt.")

	text, err := s.generate(ctx, generateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: sb.String()}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   mealSuggestionSchema(),
		},
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrGenerationFailed)
	}

	var suggestions []models.MealSuggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	for _, sug := range suggestions {
		if sug.Name == "" || sug.Recipe == "" || sug.Nutrition.Calories == "" {
			return nil, fmt.Errorf("%w: suggestion missing required fields", ErrGenerationFailed)
		}
	}
	return suggestions, nil
}

// GenerateReportSummary asks for a short free-text weekly summary for one
// member. No schema here; the caller decides what to do on failure so one
// bad member never sinks a whole batch.
func (s *GeminiService) GenerateReportSummary(ctx context.Context, member models.FamilyMember) (string, error) {
	prompt := fmt.Sprintf(
		"Phân tích hồ sơ người dùng sau và tạo một bản tóm tắt báo cáo dinh dưỡng hàng tuần.\n"+
			"Người dùng: %s, Tuổi: %d, Mục tiêu: %s.\n"+
			"Bản tóm tắt phải mang tính khích lệ và cung cấp một hoặc hai mẹo đơn giản để giúp họ đạt được mục tiêu. "+
			"Giữ bản tóm tắt dưới 50 từ và trả lời bằng tiếng Việt.",
		member.Name, member.Age, member.Goal,
	)

	text, err := s.generate(ctx, generateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty summary", ErrGenerationFailed)
	}
	return text, nil
}

// StreamGenerateContent runs one streaming turn over the given transcript.
// Fragments are delivered through onFragment in generation order; the
// stream is finite and cannot be restarted. A non-nil return from
// onFragment aborts the stream.
func (s *GeminiService) StreamGenerateContent(ctx context.Context, history []models.ChatMessage, systemInstruction string, onFragment func(string) error) error {
	contents := make([]geminiContent, 0, len(history))
	for _, m := range history {
		parts := make([]geminiPart, 0, len(m.Parts))
		for _, p := range m.Parts {
			parts = append(parts, geminiPart{Text: p.Text})
		}
		contents = append(contents, geminiContent{Role: string(m.Role), Parts: parts})
	}

	reqBody := generateRequest{Contents: contents}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}}
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, resp.StatusCode, snippet(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("%w: decode chunk: %v", ErrGenerationFailed, err)
		}
		if frag := chunk.text(); frag != "" {
			if err := onFragment(frag); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrAITimeout, err)
		}
		return fmt.Errorf("%w: read stream: %v", ErrAIUnavailable, err)
	}
	return nil
}

func snippet(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
