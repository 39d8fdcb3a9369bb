package nutrition

import (
	"math"

	"github.com/2beens/aresprotocol/internal/state"
)

const (
	PoundsPerKilo   = 2.20462
	CentimetersInch = 2.54

	defaultAge             = 25
	defaultGymDaysPerWeek  = 3
	defaultWeightKg        = 75
	defaultHeightCm        = 180
	defaultWeightLb        = 165
	defaultHeightIn        = 70
	defaultTargetProtein   = 200
	defaultTargetCarbs     = 250
	defaultTargetFats      = 70
	defaultTargetFiber     = 35
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

var activityMultipliers = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

type Targets struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
	Fiber   float64 `json:"fiber"`
}

// MetricBody returns weight in kg and height in cm, with the unit system
// defaults for missing values.
func MetricBody(p *state.UserProfile) (weightKg, heightCm float64) {
	if p.UnitSystem == state.UnitSystemImperial {
		weight, height := p.Weight, p.Height
		if weight <= 0 {
			weight = defaultWeightLb
		}
		if height <= 0 {
			height = defaultHeightIn
		}
		return weight / PoundsPerKilo, height * CentimetersInch
	}

	weightKg, heightCm = p.Weight, p.Height
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	if heightCm <= 0 {
		heightCm = defaultHeightCm
	}
	return weightKg, heightCm
}

// ActivityMultiplier scales the BMR by training days a week.
func ActivityMultiplier(gymDaysPerWeek int) float64 {
	if gymDaysPerWeek <= 0 {
		gymDaysPerWeek = defaultGymDaysPerWeek
	}
	i := min(max(gymDaysPerWeek-1, 0), len(activityMultipliers)-1)
	return activityMultipliers[i]
}

// MaintenanceCalories is the Mifflin-St Jeor BMR times the activity multiplier.
func MaintenanceCalories(p *state.UserProfile) float64 {
	weight, height := MetricBody(p)
	age := p.Age
	if age <= 0 {
		age = defaultAge
	}

	bmr := 10*weight + 6.25*height - 5*float64(age)
	if p.Gender == state.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr * ActivityMultiplier(p.GymDaysPerWeek))
}

// MacroTargets splits maintenance calories by goal; weight is in kg.
func MacroTargets(goal state.Goal, weightKg, maintenance float64) Targets {
	t := Targets{
		Protein: defaultTargetProtein,
		Carbs:   defaultTargetCarbs,
		Fats:    defaultTargetFats,
		Fiber:   defaultTargetFiber,
	}

	switch goal {
	case state.GoalCutting:
		t.Protein = weightKg * 2.2
		t.Fats = weightKg * 0.7
	case state.GoalBulking:
		t.Protein = weightKg * 2.0
		t.Fats = weightKg * 0.9
	default:
		return t
	}
	t.Carbs = (maintenance - t.Protein*caloriesPerGramProtein - t.Fats*caloriesPerGramFat) / caloriesPerGramCarbs

	t.Protein = math.Round(t.Protein)
	t.Carbs = math.Round(t.Carbs)
	t.Fats = math.Round(t.Fats)
	return t
}

// Consumed sums the macros of checked meals.
func Consumed(meals []state.Meal) state.Meal {
	var total state.Meal
	for _, m := range meals {
		if !m.Checked {
			continue
		}
		total.Calories += m.Calories
		total.Protein += m.Protein
		total.Carbs += m.Carbs
		total.Fats += m.Fats
		total.Fiber += m.Fiber
	}
	return total
}
