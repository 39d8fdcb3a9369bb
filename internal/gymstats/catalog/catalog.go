package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/2beens/aresprotocol/internal/state"
)

// minSimilarity is the levenshtein similarity a fallback match needs.
const minSimilarity = 0.85

//go:embed directory.yaml
var directoryYAML []byte

type Directory struct {
	Exercises []state.ExerciseMetadata `yaml:"exercises"`
	Recovery  []state.ExerciseMetadata `yaml:"recovery"`
}

type Catalog struct {
	directory Directory
}

func New(directory Directory) *Catalog {
	return &Catalog{directory: directory}
}

// NewDefault loads the embedded exercise directory.
func NewDefault() (*Catalog, error) {
	directory, err := ParseDirectory(directoryYAML)
	if err != nil {
		return nil, err
	}
	return New(directory), nil
}

func ParseDirectory(data []byte) (Directory, error) {
	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Directory{}, fmt.Errorf("parse exercise directory: %w", err)
	}
	for _, ex := range append(d.Exercises, d.Recovery...) {
		if ex.ID == "" || ex.Name == "" {
			return Directory{}, fmt.Errorf("exercise directory: entry without id or name")
		}
		if !ex.PrimaryMuscle.IsValid() {
			return Directory{}, fmt.Errorf("exercise directory: %s: invalid muscle %q", ex.ID, ex.PrimaryMuscle)
		}
	}
	return d, nil
}

func (c *Catalog) Exercises() []state.ExerciseMetadata {
	return c.directory.Exercises
}

func (c *Catalog) Recovery() []state.ExerciseMetadata {
	return c.directory.Recovery
}

// Merged returns the directory followed by the user's own exercises.
func (c *Catalog) Merged(userExercises []state.ExerciseMetadata) []state.ExerciseMetadata {
	merged := make([]state.ExerciseMetadata, 0, len(c.directory.Exercises)+len(userExercises))
	merged = append(merged, c.directory.Exercises...)
	return append(merged, userExercises...)
}

// Lookup finds metadata for an exercise name. The first entry whose name
// contains the query, or is contained in it, wins; otherwise the closest
// normalized name above minSimilarity.
func (c *Catalog) Lookup(name string, userExercises []state.ExerciseMetadata) (*state.ExerciseMetadata, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, false
	}

	candidates := c.Merged(userExercises)
	for i := range candidates {
		candidate := strings.ToLower(candidates[i].Name)
		if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
			return &candidates[i], true
		}
	}

	normalized := normalize(query)
	var best *state.ExerciseMetadata
	var bestScore float64
	for i := range candidates {
		score := similarity(normalized, normalize(candidates[i].Name))
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}
	if best != nil && bestScore >= minSimilarity {
		return best, true
	}
	return nil, false
}

// Search ranks directory and user exercises by fuzzy match of the query.
func (c *Catalog) Search(query string, userExercises []state.ExerciseMetadata, limit int) []state.ExerciseMetadata {
	candidates := c.Merged(userExercises)
	if strings.TrimSpace(query) == "" {
		if limit > 0 && len(candidates) > limit {
			return candidates[:limit]
		}
		return candidates
	}

	names := make([]string, len(candidates))
	for i, ex := range candidates {
		names[i] = ex.Name
	}

	matches := fuzzy.Find(query, names)
	var results []state.ExerciseMetadata
	for _, m := range matches {
		results = append(results, candidates[m.Index])
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results
}

// normalize lowercases and drops everything but letters, digits and single spaces.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
