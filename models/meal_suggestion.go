package models

// NutritionFacts are display strings with the unit embedded ("450 kcal"),
// exactly as the AI returns them.
type NutritionFacts struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// MealSuggestion is one AI-suggested dish built from the current inventory.
// It only ever exists as a response artifact; nothing stores or mutates it.
type MealSuggestion struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	IngredientsNeeded []string       `json:"ingredientsNeeded"`
	Recipe            string         `json:"recipe"`
	Nutrition         NutritionFacts `json:"nutrition"`
}
