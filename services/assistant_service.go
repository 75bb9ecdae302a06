package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"freshkeep/models"
	"freshkeep/utils"
)

const (
	scanModel   = "gpt-4o"
	recipeModel = "gpt-4o-mini"
)

type AssistantService struct {
	ai    *OpenAIService
	foods *FoodService
}

func NewAssistantService(ai *OpenAIService, foods *FoodService) *AssistantService {
	return &AssistantService{ai: ai, foods: foods}
}

// ScannedProduct carries whatever fields the model could read off a
// product label. Every field is optional.
type ScannedProduct struct {
	Name            string                 `json:"name,omitempty"`
	ExpirationDate  string                 `json:"expiration_date,omitempty"`
	Category        models.FoodCategory    `json:"category,omitempty"`
	Quantity        float64                `json:"quantity,omitempty"`
	Unit            string                 `json:"unit,omitempty"`
	StorageLocation models.StorageLocation `json:"storage_location,omitempty"`
	Price           float64                `json:"price,omitempty"`
}

func scanSystemPrompt() string {
	categories := make([]string, len(models.FoodCategories))
	for i, c := range models.FoodCategories {
		categories[i] = string(c)
	}
	locations := make([]string, len(models.StorageLocations))
	for i, l := range models.StorageLocations {
		locations[i] = string(l)
	}

	return fmt.Sprintf(`You are an expert at identifying food products from label photos. Analyze the image and extract what you can identify. Respond ONLY with a valid JSON object, no extra text, with these fields (all optional, include only what you can identify):

{
  "name": "Product name",
  "expirationDate": "YYYY-MM-DD",
  "category": "one of: %s",
  "quantity": 1,
  "unit": "kg, g, L, mL, pcs, etc.",
  "storageLocation": "one of: %s",
  "price": 0.00
}

Notes:
- The date must be YYYY-MM-DD
- category and storageLocation must be exactly one of the listed values
- If you cannot identify a field with confidence, leave it out
- For storageLocation, use your knowledge of the product to suggest where to store it`,
		strings.Join(categories, ", "), strings.Join(locations, ", "))
}

// ScanLabel sends a label photo to the vision model and returns the
// fields it could identify, each validated before being surfaced.
func (s *AssistantService) ScanLabel(imageBase64 string) (*ScannedProduct, error) {
	if imageBase64 == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}

	messages := []ChatMessage{
		{Role: "system", Content: scanSystemPrompt()},
		{Role: "user", Content: []ContentPart{
			{Type: "text", Text: "Analyze this food product label and extract the data you can identify."},
			{Type: "image_url", ImageURL: &ImageURL{
				URL:    "data:image/jpeg;base64," + imageBase64,
				Detail: "high",
			}},
		}},
	}

	content, err := s.ai.Complete(scanModel, messages, 0.2, 500)
	if err != nil {
		return nil, err
	}
	raw, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Name            string  `json:"name"`
		ExpirationDate  string  `json:"expirationDate"`
		Category        string  `json:"category"`
		Quantity        float64 `json:"quantity"`
		Unit            string  `json:"unit"`
		StorageLocation string  `json:"storageLocation"`
		Price           float64 `json:"price"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	// keep only fields the model got right
	out := &ScannedProduct{}
	if parsed.Name != "" {
		out.Name = parsed.Name
	}
	if parsed.ExpirationDate != "" {
		if _, err := utils.ParseDate(parsed.ExpirationDate); err == nil {
			out.ExpirationDate = parsed.ExpirationDate
		}
	}
	if c := models.FoodCategory(parsed.Category); c.Valid() {
		out.Category = c
	}
	if parsed.Quantity > 0 {
		out.Quantity = parsed.Quantity
	}
	if parsed.Unit != "" {
		out.Unit = parsed.Unit
	}
	if l := models.StorageLocation(parsed.StorageLocation); l.Valid() {
		out.StorageLocation = l
	}
	if parsed.Price > 0 {
		out.Price = parsed.Price
	}
	return out, nil
}

type RecipeSuggestion struct {
	Name         string   `json:"name"`
	Emoji        string   `json:"emoji"`
	Description  string   `json:"description"`
	ServingSize  string   `json:"serving_size"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Fats         float64  `json:"fats"`
	Carbs        float64  `json:"carbs"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

const recipeSystemPrompt = `You are an expert nutritionist chef. Suggest healthy, practical recipes using the user's available ingredients. Prioritize ingredients that are expiring or recently expired. Respond ONLY with a valid JSON object, no extra text, in this format:
{
  "recipes": [
    {
      "name": "Recipe name",
      "emoji": "representative emoji",
      "description": "Short description",
      "servingSize": "2 servings",
      "calories": 350,
      "protein": 25,
      "fats": 12,
      "carbs": 30,
      "ingredients": ["200g chicken", "1 cup rice"],
      "instructions": ["Step 1: ...", "Step 2: ..."]
    }
  ]
}`

// SuggestRecipes asks for count recipes built from the active inventory,
// flagging expiring items so the model uses them first.
func (s *AssistantService) SuggestRecipes(count int) ([]RecipeSuggestion, error) {
	if count <= 0 {
		count = 3
	}

	items, err := s.foods.List(FoodFilter{Disposition: models.DispositionActive})
	if err != nil {
		return nil, err
	}

	today := utils.Today()
	lines := make([]string, 0, len(items))
	for _, item := range items {
		days := utils.DaysBetween(today, item.ExpirationDate)
		urgency := ""
		if days <= 0 {
			urgency = " (EXPIRED)"
		} else if days <= 2 {
			urgency = " (expiring soon)"
		}
		lines = append(lines, fmt.Sprintf("- %s: %g %s%s", item.Name, item.Quantity, item.Unit, urgency))
	}

	userPrompt := fmt.Sprintf(
		"I have these ingredients in my inventory:\n%s\n\nSuggest %d recipes I can make with them. Prioritize the expiring ingredients. Nutrition values should be reasonable per-serving estimates.",
		strings.Join(lines, "\n"), count)

	content, err := s.ai.Complete(recipeModel, []ChatMessage{
		{Role: "system", Content: recipeSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.7, 2000)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Recipes []struct {
			Name         string   `json:"name"`
			Emoji        string   `json:"emoji"`
			Description  string   `json:"description"`
			ServingSize  string   `json:"servingSize"`
			Calories     float64  `json:"calories"`
			Protein      float64  `json:"protein"`
			Fats         float64  `json:"fats"`
			Carbs        float64  `json:"carbs"`
			Ingredients  []string `json:"ingredients"`
			Instructions []string `json:"instructions"`
		} `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(parsed.Recipes) == 0 {
		return nil, fmt.Errorf("%w: no recipes in response", ErrBadResponse)
	}

	out := make([]RecipeSuggestion, 0, len(parsed.Recipes))
	for _, r := range parsed.Recipes {
		suggestion := RecipeSuggestion{
			Name:         r.Name,
			Emoji:        r.Emoji,
			Description:  r.Description,
			ServingSize:  r.ServingSize,
			Calories:     r.Calories,
			Protein:      r.Protein,
			Fats:         r.Fats,
			Carbs:        r.Carbs,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
		}
		if suggestion.Name == "" {
			suggestion.Name = "Untitled recipe"
		}
		if suggestion.Emoji == "" {
			suggestion.Emoji = "\U0001F37D️"
		}
		if suggestion.ServingSize == "" {
			suggestion.ServingSize = "1 serving"
		}
		if suggestion.Ingredients == nil {
			suggestion.Ingredients = []string{}
		}
		if suggestion.Instructions == nil {
			suggestion.Instructions = []string{}
		}
		out = append(out, suggestion)
	}
	return out, nil
}

type IngredientMatch struct {
	Ingredient string           `json:"ingredient"`
	Item       *models.FoodItem `json:"item"`
}

// MatchIngredients pairs recipe ingredient strings with inventory items
// by loose name containment. Unmatched ingredients keep a nil item.
func MatchIngredients(ingredients []string, inventory []models.FoodItem) []IngredientMatch {
	out := make([]IngredientMatch, 0, len(ingredients))
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		// quantities confuse the containment check; match on the part
		// before the first digit
		base := lower
		if idx := strings.IndexAny(lower, "0123456789"); idx >= 0 {
			base = lower[:idx]
		}
		base = strings.TrimSpace(base)

		match := IngredientMatch{Ingredient: ingredient}
		for i := range inventory {
			name := strings.ToLower(inventory[i].Name)
			if strings.Contains(lower, name) || (base != "" && strings.Contains(name, base)) {
				match.Item = &inventory[i]
				break
			}
		}
		out = append(out, match)
	}
	return out
}
