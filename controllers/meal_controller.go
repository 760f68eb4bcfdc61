package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
)

type MealController struct {
	AI  *services.GeminiService
	Inv *services.InventoryService
}

func NewMealController(ai *services.GeminiService, inv *services.InventoryService) *MealController {
	return &MealController{AI: ai, Inv: inv}
}

// POST /meals/suggest — three dishes from whatever the inventory holds.
func (mc *MealController) Suggest(c *gin.Context) {
	items := mc.Inv.Items()

	suggestions, err := mc.AI.SuggestMeals(c.Request.Context(), items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoIngredients):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Kho của bạn đang trống. Hãy thêm nguyên liệu trước."})
		case errors.Is(err, services.ErrAITimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Không thể nhận gợi ý từ AI. Vui lòng thử lại."})
		default:
			// generation failure and transport failure read the same to
			// the user; the log tells them apart
			log.Printf("suggest meals failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Không thể nhận gợi ý từ AI. Vui lòng thử lại."})
		}
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
