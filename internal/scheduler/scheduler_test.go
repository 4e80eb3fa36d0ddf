package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"SolarSentinel/internal/export"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/preset"
	"SolarSentinel/internal/recorder"
	"SolarSentinel/internal/verdict"
)

type fakeMessenger struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMessenger) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeMessenger) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func project(name string, tariff float64) portfolio.Project {
	params := preset.Defaults(preset.Panels[0])
	params.CUF = 0.154
	params.Tariff = tariff
	return portfolio.Project{
		Name:   name,
		Panel:  preset.Panels[0].Name,
		Land:   preset.LandRequirement(params.CapacityMW, preset.DefaultLandPerMWAcres),
		Params: params,
	}
}

func newTestScheduler(t *testing.T, src *portfolio.StaticSource) (*Scheduler, *fakeMessenger, string) {
	t.Helper()
	vt, err := verdict.NewTracker("")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	msg := &fakeMessenger{}
	dir := t.TempDir()
	s := NewScheduler(context.Background(), portfolio.NewEvaluator(src), vt, msg, recorder.NewNoopRecorder(), dir)
	return s, msg, dir
}

func TestScheduler_EvaluateExportsAndAlerts(t *testing.T) {
	src := &portfolio.StaticSource{Projects: []portfolio.Project{project("Bhadla Phase 2", 10)}}
	s, msg, dir := newTestScheduler(t, src)

	s.RunEvaluationNow()
	if len(msg.messages()) != 0 {
		t.Fatalf("first evaluation should not alert, got %v", msg.messages())
	}

	f, err := os.Open(filepath.Join(dir, "bhadla-phase-2.csv"))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	rows, err := export.Read(f)
	f.Close()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 26 {
		t.Errorf("export has %d rows, expected 26", len(rows))
	}

	// A tariff collapse flips the verdict away from Feasible.
	src.Projects[0] = project("Bhadla Phase 2", 0.5)
	s.RunEvaluationNow()

	sent := msg.messages()
	if len(sent) != 1 || !strings.Contains(sent[0], "Verdict change: Bhadla Phase 2") {
		t.Errorf("expected one verdict alert, got %v", sent)
	}
}

func TestScheduler_DigestEvaluatesWhenEmpty(t *testing.T) {
	bad := project("bad", 3.5)
	bad.Params.CUF = 0
	src := &portfolio.StaticSource{Projects: []portfolio.Project{project("good", 3.5), bad}}
	s, msg, _ := newTestScheduler(t, src)

	s.digestTask()
	sent := msg.messages()
	if len(sent) != 1 {
		t.Fatalf("expected one digest, got %d messages", len(sent))
	}
	if !strings.Contains(sent[0], "good: IRR") || !strings.Contains(sent[0], "❌ bad:") {
		t.Errorf("unexpected digest:\n%s", sent[0])
	}
}

func TestScheduler_HandleCommand(t *testing.T) {
	src := &portfolio.StaticSource{Projects: []portfolio.Project{project("alpha", 3.5), project("beta site", 4)}}
	s, _, _ := newTestScheduler(t, src)

	tests := []struct {
		command string
		want    string
	}{
		{"/portfolio", "No evaluation yet"},
		{"/project beta site", "beta site"},
		{"/project", "Usage: /project"},
		{"/project gamma", "not found"},
		{"/evaluate", "Evaluated 2 project(s)"},
		{"/portfolio", "Portfolio digest"},
		{"hello", "Available commands"},
		{"", "Available commands"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := s.HandleCommand(tt.command); !strings.Contains(got, tt.want) {
				t.Errorf("HandleCommand(%q) = %q, want substring %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestScheduler_PortfolioCommandHasNoSideEffects(t *testing.T) {
	src := &portfolio.StaticSource{Projects: []portfolio.Project{project("alpha", 10)}}
	s, msg, dir := newTestScheduler(t, src)

	if got := s.HandleCommand("/portfolio"); !strings.Contains(got, "No evaluation yet") {
		t.Errorf("unexpected reply before any evaluation: %q", got)
	}
	if sent := msg.messages(); len(sent) != 0 {
		t.Errorf("/portfolio sent %d message(s)", len(sent))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("/portfolio exported %d file(s)", len(entries))
	}
	if n := len(s.Verdicts.Projects()); n != 0 {
		t.Errorf("/portfolio observed %d verdict(s)", n)
	}

	s.HandleCommand("/evaluate")
	before := len(msg.messages())
	if got := s.HandleCommand("/portfolio"); !strings.Contains(got, "alpha: IRR") {
		t.Errorf("expected the last evaluation in the digest, got %q", got)
	}
	if after := len(msg.messages()); after != before {
		t.Errorf("/portfolio sent %d message(s) after /evaluate", after-before)
	}
}

func TestScheduler_RegisterAll(t *testing.T) {
	s, _, _ := newTestScheduler(t, &portfolio.StaticSource{})
	if err := s.RegisterAll("0 0 6 * * *", "0 0 9 * * 1"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 2 {
		t.Errorf("expected 2 cron entries, got %d", n)
	}
	if err := s.RegisterAll("not a cron", "0 0 9 * * 1"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}
