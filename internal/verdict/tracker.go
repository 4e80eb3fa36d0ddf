// Package verdict remembers the last bankability verdict of every project so
// that a flip between evaluations can be reported.
package verdict

import (
	"log"
	"sort"
	"sync"
	"time"

	"SolarSentinel/internal/model"
)

// Change describes a verdict that differs from the previous evaluation.
type Change struct {
	Project  string
	Previous Entry
	Current  Entry
}

// Tracker handles verdict bookkeeping with concurrency safety.
type Tracker struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewTracker creates a Tracker, loading existing state from disk.
func NewTracker(filePath string) (*Tracker, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: state, filePath: filePath}, nil
}

// Observe records the metrics of a fresh evaluation. It returns the change and
// true when the project had a previous verdict and it differs from the new
// one. A first observation is never a change.
func (t *Tracker) Observe(project string, m model.Metrics) (Change, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := Entry{
		Feasibility: m.Feasibility,
		ProjectIRR:  m.ProjectIRR,
		NPV:         m.NPV,
		EvaluatedAt: time.Now(),
	}
	previous, seen := t.state.Projects[project]
	t.state.Projects[project] = current

	if err := t.save(); err != nil {
		log.Printf("[ERROR] failed to save verdict state: %v", err)
	}

	if !seen || previous.Feasibility == current.Feasibility {
		return Change{}, false
	}
	return Change{Project: project, Previous: previous, Current: current}, true
}

// Last returns the most recent verdict for project.
func (t *Tracker) Last(project string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.state.Projects[project]
	return e, ok
}

// Projects returns the tracked project names, sorted.
func (t *Tracker) Projects() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.state.Projects))
	for name := range t.state.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prune drops every project not in keep, so removed portfolio entries do not
// linger in the state file. It returns the number of entries dropped.
func (t *Tracker) Prune(keep []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	wanted := make(map[string]bool, len(keep))
	for _, name := range keep {
		wanted[name] = true
	}
	dropped := 0
	for name := range t.state.Projects {
		if !wanted[name] {
			delete(t.state.Projects, name)
			dropped++
		}
	}
	if dropped > 0 {
		if err := t.save(); err != nil {
			log.Printf("[ERROR] failed to save verdict state after prune: %v", err)
		}
	}
	return dropped
}

func (t *Tracker) save() error {
	return SaveState(t.filePath, t.state)
}
