package warmup

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2beens/aresprotocol/internal/state"
)

const (
	MaxSequenceLen = 5

	FullBody  = "Full Body"
	Explosive = "Explosive"
)

type SubCategory string

const (
	SubCategoryGeneral     SubCategory = "General"
	SubCategoryMobility    SubCategory = "Mobility"
	SubCategoryActivation  SubCategory = "Activation"
	SubCategoryPatternPrep SubCategory = "Pattern Prep"
	SubCategoryJointPrep   SubCategory = "Joint Prep"
	SubCategoryNeuralPrep  SubCategory = "Neural Prep"
)

type Exercise struct {
	ID              string      `json:"id" yaml:"id"`
	Name            string      `json:"name" yaml:"name"`
	PrimaryMuscle   string      `json:"primaryMuscle" yaml:"primaryMuscle"`
	SubCategory     SubCategory `json:"subCategory" yaml:"subCategory"`
	Instructions    string      `json:"instructions" yaml:"instructions"`
	Reps            string      `json:"reps,omitempty" yaml:"reps,omitempty"`
	DurationSeconds int         `json:"durationSeconds,omitempty" yaml:"durationSeconds,omitempty"`
}

//go:embed library.yaml
var libraryYAML []byte

var compoundPatterns = []string{"squat", "deadlift", "bench press", "overhead press", "row"}

// Generator builds warm-up sequences out of a fixed library; the order of the
// library decides which entry wins when several fit.
type Generator struct {
	library []Exercise
}

func NewGenerator(library []Exercise) *Generator {
	return &Generator{library: library}
}

// NewDefaultGenerator uses the embedded library.
func NewDefaultGenerator() (*Generator, error) {
	library, err := ParseLibrary(libraryYAML)
	if err != nil {
		return nil, err
	}
	return NewGenerator(library), nil
}

func ParseLibrary(data []byte) ([]Exercise, error) {
	var library []Exercise
	if err := yaml.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("parse warm-up library: %w", err)
	}
	for i, ex := range library {
		if ex.ID == "" || ex.Name == "" {
			return nil, fmt.Errorf("warm-up library entry %d: missing id or name", i)
		}
	}
	return library, nil
}

func (g *Generator) Library() []Exercise {
	return g.library
}

func (g *Generator) find(muscle string, sub SubCategory) *Exercise {
	for i := range g.library {
		if g.library[i].PrimaryMuscle == muscle && g.library[i].SubCategory == sub {
			return &g.library[i]
		}
	}
	return nil
}

// IsCompound reports whether the workout loads big movement patterns.
func IsCompound(exercises []state.Exercise) bool {
	for _, ex := range exercises {
		if ex.Sets >= 4 {
			return true
		}
		name := strings.ToLower(ex.Name)
		for _, p := range compoundPatterns {
			if strings.Contains(name, p) {
				return true
			}
		}
	}
	return false
}

// TargetMuscles returns the distinct primary muscles in first seen order.
func TargetMuscles(exercises []state.Exercise) []string {
	var muscles []string
	for _, ex := range exercises {
		if ex.Metadata == nil || ex.Metadata.PrimaryMuscle == "" {
			continue
		}
		m := string(ex.Metadata.PrimaryMuscle)
		if !slices.Contains(muscles, m) {
			muscles = append(muscles, m)
		}
	}
	return muscles
}

// Generate returns at most MaxSequenceLen warm-up drills for the workout.
func (g *Generator) Generate(exercises []state.Exercise) []Exercise {
	muscles := TargetMuscles(exercises)
	compound := IsCompound(exercises)

	var sequence []Exercise
	add := func(ex *Exercise) {
		if ex == nil {
			return
		}
		for _, s := range sequence {
			if s.ID == ex.ID {
				return
			}
		}
		sequence = append(sequence, *ex)
	}

	if compound || len(muscles) > 2 {
		add(g.find(FullBody, SubCategoryGeneral))
	}

	if len(muscles) > 0 {
		add(g.find(muscles[0], SubCategoryMobility))
	}

	for _, m := range muscles[:min(2, len(muscles))] {
		add(g.find(m, SubCategoryActivation))
	}

	if compound && len(muscles) > 0 {
		add(g.find(muscles[0], SubCategoryPatternPrep))
	}

	if len(sequence) > MaxSequenceLen {
		sequence = sequence[:MaxSequenceLen]
	}
	return sequence
}
