package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

func testItems() []models.FoodItem {
	return []models.FoodItem{
		{ID: "1", Name: "Thịt gà", Quantity: "500g"},
		{ID: "2", Name: "Cà chua", Quantity: "5 quả"},
	}
}

// replyWith wraps text in the generateContent response envelope.
func replyWith(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": text}}}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestSuggestMealsRejectsEmptyInventoryBeforeAnyCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
	_, err := svc.SuggestMeals(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNoIngredients)
	assert.Zero(t, atomic.LoadInt32(&calls), "no request may be sent for an empty inventory")
}

func TestSuggestMealsParsesStructuredResponse(t *testing.T) {
	suggestions := []models.MealSuggestion{{
		Name:              "Gà xào cà chua",
		Description:       "Món xào nhanh cho bữa tối.",
		IngredientsNeeded: []string{"Thịt gà", "Cà chua"},
		Recipe:            "Xào thịt gà, thêm cà chua, nêm gia vị.",
		Nutrition: models.NutritionFacts{
			Calories: "450 kcal", Protein: "35g", Carbs: "12g", Fat: "20g",
		},
	}}
	payload, err := json.Marshal(suggestions)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the request must carry the schema constraint
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		genCfg, ok := req["generationConfig"].(map[string]any)
		require.True(t, ok, "generationConfig missing")
		assert.Equal(t, "application/json", genCfg["responseMimeType"])
		assert.NotNil(t, genCfg["responseSchema"])

		replyWith(t, w, string(payload))
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
	got, err := svc.SuggestMeals(context.Background(), testItems())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gà xào cà chua", got[0].Name)
	assert.Equal(t, "450 kcal", got[0].Nutrition.Calories)
}

func TestSuggestMealsMalformedOutputIsGenerationFailed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "xin lỗi, tôi không thể trả lời"},
		{"empty reply", "   "},
		{"missing required fields", `[{"description":"?"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				replyWith(t, w, tt.text)
			}))
			defer srv.Close()

			svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
			_, err := svc.SuggestMeals(context.Background(), testItems())

			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.NotErrorIs(t, err, ErrAIUnavailable)
		})
	}
}

func TestSuggestMealsNoCandidatesIsGenerationFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
	_, err := svc.SuggestMeals(context.Background(), testItems())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestSuggestMealsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
	_, err := svc.SuggestMeals(context.Background(), testItems())
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestSuggestMealsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		replyWith(t, w, "[]")
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL), WithGeminiTimeout(20*time.Millisecond))
	_, err := svc.SuggestMeals(context.Background(), testItems())
	assert.ErrorIs(t, err, ErrAITimeout)
}

func TestGenerateReportSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// free text: no schema attached
		assert.Nil(t, req["generationConfig"])
		replyWith(t, w, "Chị Mai đang đi đúng hướng! Hãy thêm rau xanh vào bữa tối.")
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))
	got, err := svc.GenerateReportSummary(context.Background(), models.FamilyMember{
		ID: "fm2", Name: "Chị Mai", Age: 32, Goal: "Giảm cân",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "Chị Mai")
}

func TestStreamGenerateContentDeliversFragmentsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frag := range []string{"Xin", " chào", "!"} {
			chunk := map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{{"text": frag}}}},
				},
			}
			b, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", WithGeminiBaseURL(srv.URL))

	var got []string
	err := svc.StreamGenerateContent(context.Background(),
		[]models.ChatMessage{{Role: models.ChatRoleUser, Parts: []models.MessagePart{{Text: "Xin chào"}}}},
		"system",
		func(frag string) error {
			got = append(got, frag)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"Xin", " chào", "!"}, got)
}
