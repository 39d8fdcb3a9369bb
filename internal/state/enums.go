package state

type BodyType string

const (
	BodyTypeEctomorph BodyType = "Ectomorph"
	BodyTypeEndomorph BodyType = "Endomorph"
	BodyTypeMesomorph BodyType = "Mesomorph"
)

func (bt BodyType) IsValid() bool {
	switch bt {
	case BodyTypeEctomorph, BodyTypeEndomorph, BodyTypeMesomorph:
		return true
	default:
		return false
	}
}

type Goal string

const (
	GoalBulking       Goal = "Bulking"
	GoalCutting       Goal = "Cutting"
	GoalMaintenance   Goal = "Maintenance"
	GoalRecomposition Goal = "Recomposition"
)

func (g Goal) IsValid() bool {
	switch g {
	case GoalBulking, GoalCutting, GoalMaintenance, GoalRecomposition:
		return true
	default:
		return false
	}
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "Metric"
	UnitSystemImperial UnitSystem = "Imperial"
)

func (us UnitSystem) IsValid() bool {
	return us == UnitSystemMetric || us == UnitSystemImperial
}

type Persona string

const (
	PersonaAres   Persona = "Ares"
	PersonaAthena Persona = "Athena"
)

func (p Persona) IsValid() bool {
	return p == PersonaAres || p == PersonaAthena
}

type SetType string

const (
	SetTypeNormal   SetType = "Normal"
	SetTypeDropset  SetType = "Dropset"
	SetTypeSuperset SetType = "Superset"
	SetTypeFailure  SetType = "Failure"
)

func (st SetType) IsValid() bool {
	switch st {
	case SetTypeNormal, SetTypeDropset, SetTypeSuperset, SetTypeFailure:
		return true
	default:
		return false
	}
}

// DayStatus can be one of:
//   - full (workout done and all meals checked)
//   - workout_only
//   - food_only
//   - missed
//   - rest
//   - sick
type DayStatus string

const (
	DayStatusFull        DayStatus = "full"
	DayStatusWorkoutOnly DayStatus = "workout_only"
	DayStatusFoodOnly    DayStatus = "food_only"
	DayStatusMissed      DayStatus = "missed"
	DayStatusRest        DayStatus = "rest"
	DayStatusSick        DayStatus = "sick"
)

func (ds DayStatus) IsValid() bool {
	switch ds {
	case DayStatusFull, DayStatusWorkoutOnly, DayStatusFoodOnly,
		DayStatusMissed, DayStatusRest, DayStatusSick:
		return true
	default:
		return false
	}
}

// IsSticky reports whether the status is set by the user and not derived.
func (ds DayStatus) IsSticky() bool {
	return ds == DayStatusRest || ds == DayStatusSick
}

type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "Chest"
	MuscleBack       MuscleGroup = "Back"
	MuscleQuads      MuscleGroup = "Quads"
	MuscleHamstrings MuscleGroup = "Hamstrings"
	MuscleShoulders  MuscleGroup = "Shoulders"
	MuscleBiceps     MuscleGroup = "Biceps"
	MuscleTriceps    MuscleGroup = "Triceps"
	MuscleCore       MuscleGroup = "Core"
	MuscleCalves     MuscleGroup = "Calves"
	MuscleGlutes     MuscleGroup = "Glutes"
)

var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleQuads, MuscleHamstrings, MuscleShoulders,
	MuscleBiceps, MuscleTriceps, MuscleCore, MuscleCalves, MuscleGlutes,
}

func (mg MuscleGroup) IsValid() bool {
	for _, m := range AllMuscleGroups {
		if m == mg {
			return true
		}
	}
	return false
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}
