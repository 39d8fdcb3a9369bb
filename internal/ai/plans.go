package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"github.com/2beens/aresprotocol/internal/state"
)

var (
	ErrPlanSynthesis = errors.New("failed to synthesize protocol")
	ErrInvalidImage  = errors.New("invalid image")
)

const (
	planThinkingBudget = 32768
	physiqueMaxImage   = 8 << 20
)

type PlanExercise struct {
	Name         string  `json:"name"`
	Sets         float64 `json:"sets"`
	Reps         string  `json:"reps"`
	Instructions string  `json:"instructions"`
	Category     string  `json:"category"`
}

type PlanDay struct {
	DayName   string         `json:"dayName"`
	Focus     string         `json:"focus"`
	Exercises []PlanExercise `json:"exercises"`
}

type PlanMeal struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	Protein             float64 `json:"protein"`
	Carbs               float64 `json:"carbs"`
	Fats                float64 `json:"fats"`
	Fiber               float64 `json:"fiber"`
	CookingInstructions string  `json:"cookingInstructions,omitempty"`
}

type PlanResult struct {
	WorkoutPlan          []PlanDay  `json:"workoutPlan"`
	DietPlan             []PlanMeal `json:"dietPlan"`
	GoalWeight           float64    `json:"goalWeight"`
	TargetBodyFat        float64    `json:"targetBodyFat"`
	CardioRecommendation string     `json:"cardioRecommendation"`
}

// WorkoutDays converts the synthesized split; ids are assigned by the caller.
func (p *PlanResult) WorkoutDays() []state.WorkoutDay {
	days := make([]state.WorkoutDay, 0, len(p.WorkoutPlan))
	for _, d := range p.WorkoutPlan {
		day := state.WorkoutDay{
			DayName:   d.DayName,
			Focus:     d.Focus,
			Exercises: make([]state.Exercise, 0, len(d.Exercises)),
		}
		for _, e := range d.Exercises {
			day.Exercises = append(day.Exercises, state.Exercise{
				Name:         e.Name,
				Sets:         planSets(e.Sets),
				Reps:         e.Reps,
				Instructions: e.Instructions,
				Category:     e.Category,
			})
		}
		days = append(days, day)
	}
	return days
}

func planSets(sets float64) int {
	switch {
	case math.IsNaN(sets) || sets < 1:
		return 1
	case sets > state.MaxSetsPerExercise:
		return state.MaxSetsPerExercise
	}
	return int(math.Round(sets))
}

func (m PlanMeal) Meal() state.Meal {
	return state.Meal{
		Name:                m.Name,
		Calories:            m.Calories,
		Protein:             m.Protein,
		Carbs:               m.Carbs,
		Fats:                m.Fats,
		Fiber:               m.Fiber,
		CookingInstructions: m.CookingInstructions,
	}
}

func mealSchema(withInstructions bool) *genai.Schema {
	s := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     {Type: genai.TypeString},
			"calories": {Type: genai.TypeNumber},
			"protein":  {Type: genai.TypeNumber},
			"carbs":    {Type: genai.TypeNumber},
			"fats":     {Type: genai.TypeNumber},
			"fiber":    {Type: genai.TypeNumber},
		},
		Required: []string{"name", "calories", "protein", "carbs", "fats", "fiber"},
	}
	if withInstructions {
		s.Properties["cookingInstructions"] = &genai.Schema{Type: genai.TypeString}
		s.Required = append(s.Required, "cookingInstructions")
	}
	return s
}

func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"workoutPlan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"dayName": {Type: genai.TypeString},
						"focus":   {Type: genai.TypeString},
						"exercises": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"name":         {Type: genai.TypeString},
									"sets":         {Type: genai.TypeNumber},
									"reps":         {Type: genai.TypeString},
									"instructions": {Type: genai.TypeString},
									"category":     {Type: genai.TypeString},
								},
								Required: []string{"name", "sets", "reps", "instructions"},
							},
						},
					},
					Required: []string{"dayName", "focus", "exercises"},
				},
			},
			"dietPlan": {
				Type:  genai.TypeArray,
				Items: mealSchema(false),
			},
			"goalWeight":           {Type: genai.TypeNumber},
			"targetBodyFat":        {Type: genai.TypeNumber},
			"cardioRecommendation": {Type: genai.TypeString},
		},
		Required: []string{"workoutPlan", "dietPlan", "goalWeight", "targetBodyFat", "cardioRecommendation"},
	}
}

func planPrompt(p *state.UserProfile) string {
	return fmt.Sprintf(`Act as an elite sports scientist and nutritionist. Architect a scientifically-optimized fitness and nutrition protocol for a %dy/o %s %s.
PRIMARY GOAL: %s.
COMMITMENT: %d dedicated gym days per week.
BIOMETRICS: %gkg, %gcm.
PREFERENCES: Cardio: %s, Cuisine: %s.
MAINTENANCE: %g kcal.

REQUIREMENTS:
1. Create a %d-day workout split.
2. Exercises must include specific rep ranges and rest cues.
3. Include a nutrition protocol (3-5 meals) aligned with goal.
4. MUST include fiber (grams) for each meal.
5. Estimate a realistic 'goalWeight' and 'targetBodyFat' percentage for this profile.
6. Provide the plan in the strictly requested JSON format.`,
		p.Age, p.Gender, p.BodyType,
		p.Goal,
		p.GymDaysPerWeek,
		p.Weight, p.Height,
		strings.Join(p.CardioPreference, ", "), p.CuisinePreference,
		p.MaintenanceCalories,
		p.GymDaysPerWeek,
	)
}

func dietPrompt(p *state.UserProfile) string {
	return fmt.Sprintf(`Generate a daily diet plan for a user with the following profile:
Goal: %s
Weight: %gkg
Height: %gcm
Age: %d
Gender: %s
Body Type: %s
Cuisine Preference: %s
Maintenance Calories: %g
Target Protein: %gg
Target Carbs: %gg
Target Fats: %gg
Target Fiber: %gg

Provide 3-5 meals that strictly follow these macro targets.
For each meal, include detailed cooking instructions.`,
		p.Goal, p.Weight, p.Height, p.Age, p.Gender, p.BodyType, p.CuisinePreference,
		p.MaintenanceCalories, p.TargetProtein, p.TargetCarbs, p.TargetFats, p.TargetFiber,
	)
}

const physiquePrompt = `Act as an elite physique coach. Analyze the attached photo of the athlete.
Report in markdown:
- estimated body fat range
- muscle groups that are well developed
- lagging muscle groups and symmetry issues
- posture observations
- three concrete training priorities for the next block.
Be direct and clinical. Do not identify the person.`

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// ValidatePlan checks the raw plan JSON before it is decoded.
func ValidatePlan(raw string) error {
	if !gjson.Valid(raw) {
		return errors.New("response is not valid json")
	}
	result := gjson.Parse(raw)
	if !result.IsObject() {
		return errors.New("response is not a json object")
	}
	for _, key := range []string{"workoutPlan", "dietPlan", "goalWeight", "targetBodyFat", "cardioRecommendation"} {
		if !result.Get(key).Exists() {
			return fmt.Errorf("missing key %q", key)
		}
	}
	if !result.Get("workoutPlan").IsArray() || len(result.Get("workoutPlan").Array()) == 0 {
		return errors.New("workoutPlan must be a non empty array")
	}
	if !result.Get("dietPlan").IsArray() {
		return errors.New("dietPlan must be an array")
	}
	for i, day := range result.Get("workoutPlan").Array() {
		if !day.Get("exercises").IsArray() {
			return fmt.Errorf("workoutPlan.%d.exercises must be an array", i)
		}
		for j, ex := range day.Get("exercises").Array() {
			if ex.Get("name").String() == "" {
				return fmt.Errorf("workoutPlan.%d.exercises.%d has no name", i, j)
			}
		}
	}
	return nil
}

// ValidateMeals checks a raw meal array, as returned by diet regeneration.
func ValidateMeals(raw string) error {
	if !gjson.Valid(raw) {
		return errors.New("response is not valid json")
	}
	result := gjson.Parse(raw)
	if !result.IsArray() {
		return errors.New("response is not a json array")
	}
	for i, meal := range result.Array() {
		for _, key := range []string{"name", "calories", "protein", "carbs", "fats", "fiber"} {
			if !meal.Get(key).Exists() {
				return fmt.Errorf("meal %d: missing key %q", i, key)
			}
		}
	}
	return nil
}

// GenerateFitnessPlan synthesizes a workout split and diet for the profile.
// Any provider, validation or decoding failure is reported as ErrPlanSynthesis.
func (s *Service) GenerateFitnessPlan(ctx context.Context, profile *state.UserProfile) (*PlanResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: no profile", ErrPlanSynthesis)
	}

	budget := int32(planThinkingBudget)
	raw, err := s.generate(ctx, "generateFitnessPlan", Request{
		Prompt:         planPrompt(profile),
		ResponseSchema: planSchema(),
		ThinkingBudget: &budget,
		Model:          s.PlanModel,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanSynthesis, err)
	}

	raw = stripFences(raw)
	if err := ValidatePlan(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanSynthesis, err)
	}

	plan := &PlanResult{}
	if err := json.Unmarshal([]byte(raw), plan); err != nil {
		return nil, fmt.Errorf("%w: decode plan: %w", ErrPlanSynthesis, err)
	}
	return plan, nil
}

// RegenerateDiet asks for a new set of meals matching the profile's macro targets.
// Returned meals have no ids and are unchecked.
func (s *Service) RegenerateDiet(ctx context.Context, profile *state.UserProfile) ([]state.Meal, error) {
	if profile == nil {
		return nil, errors.New("no profile")
	}

	raw, err := s.generate(ctx, "regenerateDiet", Request{
		Prompt: dietPrompt(profile),
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: mealSchema(true),
		},
	})
	if err != nil {
		return nil, err
	}

	raw = stripFences(raw)
	if err := ValidateMeals(raw); err != nil {
		return nil, fmt.Errorf("invalid diet: %w", err)
	}

	var planMeals []PlanMeal
	if err := json.Unmarshal([]byte(raw), &planMeals); err != nil {
		return nil, fmt.Errorf("decode diet: %w", err)
	}

	meals := make([]state.Meal, 0, len(planMeals))
	for _, m := range planMeals {
		meals = append(meals, m.Meal())
	}
	return meals, nil
}

// AnalyzePhysique returns a markdown assessment of the photo.
func (s *Service) AnalyzePhysique(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidImage)
	}
	if len(image) > physiqueMaxImage {
		return "", fmt.Errorf("%w: too large, %d bytes", ErrInvalidImage, len(image))
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: unsupported mime type %q", ErrInvalidImage, mimeType)
	}

	return s.generate(ctx, "analyzePhysique", Request{
		Prompt: physiquePrompt,
		Images: []Image{{MimeType: mimeType, Data: image}},
	})
}
