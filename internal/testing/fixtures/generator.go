package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// BehaviourDocument mirrors a behaviour entry in a timer definition file
type BehaviourDocument struct {
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	URI      string `json:"uri,omitempty"`
	Content  string `json:"content,omitempty"`
	Times    int    `json:"times,omitempty"`
	Count    int    `json:"count,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// StepDocument mirrors a leaf or group entry in a timer definition file
type StepDocument struct {
	Label      string              `json:"label,omitempty"`
	Duration   string              `json:"duration,omitempty"`
	Type       string              `json:"type,omitempty"`
	Behaviours []BehaviourDocument `json:"behaviours,omitempty"`

	Group string         `json:"group,omitempty"`
	Loop  int            `json:"loop,omitempty"`
	Steps []StepDocument `json:"steps,omitempty"`
}

// TimerDocument mirrors a timer definition file
type TimerDocument struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Loop      int            `json:"loop"`
	Notify    bool           `json:"notify,omitempty"`
	TriggerID int            `json:"trigger_id,omitempty"`
	Start     *StepDocument  `json:"start,omitempty"`
	End       *StepDocument  `json:"end,omitempty"`
	Steps     []StepDocument `json:"steps"`
}

// TimerFileGenerator writes timer definition files for tests
type TimerFileGenerator struct {
	baseDir string
}

// NewTimerFileGenerator creates a generator rooted at baseDir
func NewTimerFileGenerator(baseDir string) *TimerFileGenerator {
	return &TimerFileGenerator{baseDir: baseDir}
}

// GetBaseDir returns the directory files are written to
func (g *TimerFileGenerator) GetBaseDir() string {
	return g.baseDir
}

// WriteTimer writes doc as <id>.json and returns the path
func (g *TimerFileGenerator) WriteTimer(doc TimerDocument) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return g.WriteRaw(fmt.Sprintf("%d.json", doc.ID), data)
}

// WriteRaw writes content verbatim, for malformed-file and YAML cases
func (g *TimerFileGenerator) WriteRaw(name string, content []byte) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(g.baseDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Workout returns a small interval workout: prepare, then a grouped
// work/rest block, with a cool-down end step.
func Workout(id int) TimerDocument {
	return TimerDocument{
		ID:     id,
		Name:   fmt.Sprintf("Workout %d", id),
		Loop:   2,
		Notify: true,
		Steps: []StepDocument{
			{
				Label:    "Prepare",
				Duration: "10s",
				Type:     "notifier",
				Behaviours: []BehaviourDocument{
					{Type: "voice", Content: "{SName} for {SDuration}"},
				},
			},
			{
				Group: "Rounds",
				Loop:  3,
				Steps: []StepDocument{
					{Label: "Work", Duration: "20s", Behaviours: []BehaviourDocument{{Type: "count", Times: 3}}},
					{Label: "Rest", Duration: "10s", Behaviours: []BehaviourDocument{{Type: "beep"}}},
				},
			},
		},
		End: &StepDocument{Label: "Cool down", Duration: "1m"},
	}
}

// Quick returns a single-step timer lasting d, handy for end-to-end runs
func Quick(id int, d string) TimerDocument {
	return TimerDocument{
		ID:    id,
		Name:  fmt.Sprintf("Quick %d", id),
		Loop:  1,
		Steps: []StepDocument{{Label: "Go", Duration: d}},
	}
}

// CleanupTestData removes all generated files
func (g *TimerFileGenerator) CleanupTestData() error {
	return os.RemoveAll(g.baseDir)
}
