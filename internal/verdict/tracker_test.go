package verdict

import (
	"path/filepath"
	"testing"

	"SolarSentinel/internal/model"
)

func metricsWith(f model.Feasibility, irr float64) model.Metrics {
	return model.Metrics{Feasibility: f, ProjectIRR: &irr, NPV: 1}
}

func TestTracker_Observe(t *testing.T) {
	tr, err := NewTracker(filepath.Join(t.TempDir(), "verdicts.json"))
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	steps := []struct {
		name    string
		metrics model.Metrics
		changed bool
	}{
		{"first observation", metricsWith(model.Feasible, 0.12), false},
		{"same verdict", metricsWith(model.Feasible, 0.11), false},
		{"flip to not feasible", metricsWith(model.NotFeasible, 0.06), true},
		{"flip to unknown", model.Metrics{Feasibility: model.Unknown}, true},
		{"back to feasible", metricsWith(model.Feasible, 0.10), true},
	}

	for _, s := range steps {
		change, changed := tr.Observe("Bhadla", s.metrics)
		if changed != s.changed {
			t.Fatalf("%s: changed = %v, expected %v", s.name, changed, s.changed)
		}
		if changed {
			if change.Project != "Bhadla" || change.Current.Feasibility != s.metrics.Feasibility {
				t.Errorf("%s: unexpected change %+v", s.name, change)
			}
			if change.Previous.Feasibility == change.Current.Feasibility {
				t.Errorf("%s: previous and current verdict are equal", s.name)
			}
		}
	}
}

func TestTracker_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "verdicts.json")

	tr, err := NewTracker(path)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	tr.Observe("Pavagada", metricsWith(model.Feasible, 0.13))

	reopened, err := NewTracker(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	last, ok := reopened.Last("Pavagada")
	if !ok {
		t.Fatal("expected Pavagada in reloaded state")
	}
	if last.Feasibility != model.Feasible || last.ProjectIRR == nil || *last.ProjectIRR != 0.13 {
		t.Errorf("reloaded entry = %+v", last)
	}

	if _, changed := reopened.Observe("Pavagada", metricsWith(model.NotFeasible, 0.05)); !changed {
		t.Error("expected a change against the persisted verdict")
	}
}

func TestTracker_InMemory(t *testing.T) {
	tr, err := NewTracker("")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	tr.Observe("a", metricsWith(model.Feasible, 0.1))
	if _, ok := tr.Last("a"); !ok {
		t.Error("in-memory tracker lost its entry")
	}
}

func TestTracker_Prune(t *testing.T) {
	tr, _ := NewTracker("")
	for _, name := range []string{"c", "a", "b"} {
		tr.Observe(name, metricsWith(model.Feasible, 0.1))
	}

	if got := tr.Projects(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("Projects() = %v", got)
	}
	if dropped := tr.Prune([]string{"a", "c"}); dropped != 1 {
		t.Errorf("Prune dropped %d, expected 1", dropped)
	}
	if _, ok := tr.Last("b"); ok {
		t.Error("b should have been pruned")
	}
}
