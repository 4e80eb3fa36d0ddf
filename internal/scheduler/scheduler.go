package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"SolarSentinel/internal/export"
	"SolarSentinel/internal/notifier"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/recorder"
	"SolarSentinel/internal/verdict"

	"github.com/robfig/cron/v3"
)

// Messenger delivers formatted messages to the operator.
type Messenger interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Evaluator *portfolio.Evaluator
	Verdicts  *verdict.Tracker
	Notifier  Messenger
	Recorder  recorder.Recorder
	ExportDir string
	Ctx       context.Context

	// run serializes evaluations triggered by cron and by commands.
	run  sync.Mutex
	mu   sync.Mutex
	last []portfolio.Outcome
}

// NewScheduler creates a new Scheduler. An empty exportDir disables CSV export.
func NewScheduler(ctx context.Context, ev *portfolio.Evaluator, vt *verdict.Tracker, n Messenger, rec recorder.Recorder, exportDir string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Evaluator: ev,
		Verdicts:  vt,
		Notifier:  n,
		Recorder:  rec,
		ExportDir: exportDir,
		Ctx:       ctx,
	}
}

// RegisterAll registers the evaluation and digest tasks.
func (s *Scheduler) RegisterAll(evaluateCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(evaluateCron, s.evaluateTask); err != nil {
		return fmt.Errorf("register evaluate task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunEvaluationNow executes the evaluation task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunEvaluationNow() {
	s.evaluateTask()
}

func (s *Scheduler) evaluateTask() {
	log.Println("[INFO] running portfolio evaluation")
	if _, err := s.evaluate(); err != nil {
		log.Printf("[ERROR] portfolio evaluation: %v", err)
		s.trySend(fmt.Sprintf("❌ Portfolio evaluation failed: %v", err))
	}
}

// evaluate appraises the whole portfolio, then records, exports and alerts
// on every project that produced a result.
func (s *Scheduler) evaluate() ([]portfolio.Outcome, error) {
	s.run.Lock()
	defer s.run.Unlock()

	outcomes, err := s.Evaluator.EvaluateAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		names = append(names, o.Project.Name)
		if o.Err != nil {
			continue
		}

		if err := s.Recorder.RecordEvaluation(s.Ctx, recorder.NewEvaluation(o.Project.Name, o.Project.Params, o.Result)); err != nil {
			log.Printf("[ERROR] record evaluation %q: %v", o.Project.Name, err)
		}

		if s.ExportDir != "" {
			path := filepath.Join(s.ExportDir, export.FileStem(o.Project.Name)+".csv")
			if err := export.WriteFile(path, o.Result, o.Project.Params.DiscountRate); err != nil {
				log.Printf("[ERROR] export %q: %v", o.Project.Name, err)
			}
		}

		if change, changed := s.Verdicts.Observe(o.Project.Name, o.Result.Metrics); changed {
			log.Printf("[INFO] verdict change for %q: %s -> %s", change.Project, change.Previous.Feasibility, change.Current.Feasibility)
			s.trySend(notifier.FormatVerdictChange(change))
		}
	}
	if n := s.Verdicts.Prune(names); n > 0 {
		log.Printf("[INFO] dropped %d project(s) no longer in the portfolio", n)
	}

	s.mu.Lock()
	s.last = outcomes
	s.mu.Unlock()
	return outcomes, nil
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] sending portfolio digest")
	text, err := s.digest()
	if err != nil {
		log.Printf("[ERROR] portfolio digest: %v", err)
		s.trySend(fmt.Sprintf("❌ Portfolio digest failed: %v", err))
		return
	}
	s.trySend(text)
}

// digest formats the latest evaluation, running one first if none exists.
func (s *Scheduler) digest() (string, error) {
	s.mu.Lock()
	outcomes := s.last
	s.mu.Unlock()

	if outcomes == nil {
		var err error
		if outcomes, err = s.evaluate(); err != nil {
			return "", err
		}
	}
	return notifier.FormatPortfolioDigest(digestLines(outcomes)), nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch strings.ToLower(fields[0]) {
	case "/portfolio":
		s.mu.Lock()
		outcomes := s.last
		s.mu.Unlock()
		if outcomes == nil {
			return "No evaluation yet. Run /evaluate first."
		}
		return notifier.FormatPortfolioDigest(digestLines(outcomes))
	case "/project":
		name := strings.TrimSpace(strings.TrimPrefix(command, fields[0]))
		if name == "" {
			return "Usage: /project &lt;name&gt;"
		}
		o, err := s.Evaluator.Evaluate(name)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		if o.Err != nil {
			return fmt.Sprintf("❌ %s: %v", o.Project.Name, o.Err)
		}
		return notifier.FormatProjectReport(o.Project, o.Result)
	case "/evaluate":
		outcomes, err := s.evaluate()
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ Evaluated %d project(s)", len(outcomes))
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /portfolio\n• /project &lt;name&gt;\n• /evaluate"

func digestLines(outcomes []portfolio.Outcome) []notifier.DigestLine {
	lines := make([]notifier.DigestLine, 0, len(outcomes))
	for _, o := range outcomes {
		lines = append(lines, notifier.DigestLine{Name: o.Project.Name, Result: o.Result, Err: o.Err})
	}
	return lines
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
