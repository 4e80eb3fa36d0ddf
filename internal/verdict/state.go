package verdict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"SolarSentinel/internal/model"
)

// Entry is the last verdict seen for one project.
type Entry struct {
	Feasibility model.Feasibility `json:"feasibility"`
	ProjectIRR  *float64          `json:"project_irr"`
	NPV         float64           `json:"npv"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
}

// State is the persisted verdict history, keyed by project name.
type State struct {
	Projects  map[string]Entry `json:"projects"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// LoadState reads the verdict state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	state := &State{Projects: map[string]Entry{}}
	if filePath == "" {
		return state, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Projects == nil {
		state.Projects = map[string]Entry{}
	}
	return state, nil
}

// SaveState writes the verdict state to a JSON file. An empty path keeps the state in memory only.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	if filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
