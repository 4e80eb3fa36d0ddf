package portfolio

import (
	"fmt"
	"log"

	"SolarSentinel/internal/appraisal"
	"SolarSentinel/internal/model"
)

// Outcome is the appraisal of one project. Err is set when the project's
// parameters were rejected; Result is nil in that case.
type Outcome struct {
	Project Project
	Result  *model.ProjectResult
	Err     error
}

// Evaluator orchestrates loading a portfolio and appraising every project.
type Evaluator struct {
	Source Source
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(src Source) *Evaluator {
	return &Evaluator{Source: src}
}

// EvaluateAll loads the portfolio and appraises each project in file order.
// A project with invalid parameters is reported in its Outcome and does not
// stop the others; only a failure to load the portfolio is returned.
func (e *Evaluator) EvaluateAll() ([]Outcome, error) {
	projects, err := e.Source.Load()
	if err != nil {
		return nil, fmt.Errorf("load portfolio from %s: %w", e.Source.Name(), err)
	}

	outcomes := make([]Outcome, 0, len(projects))
	for _, p := range projects {
		res, err := appraisal.EvaluateProject(p.Params)
		if err != nil {
			log.Printf("[WARN] project %q rejected: %v", p.Name, err)
		} else {
			for _, w := range res.Warnings {
				log.Printf("[WARN] project %q: %s", p.Name, w)
			}
		}
		outcomes = append(outcomes, Outcome{Project: p, Result: res, Err: err})
	}
	log.Printf("[INFO] evaluated %d project(s) from %s", len(outcomes), e.Source.Name())
	return outcomes, nil
}

// Evaluate loads the portfolio and appraises the project called name.
func (e *Evaluator) Evaluate(name string) (Outcome, error) {
	projects, err := e.Source.Load()
	if err != nil {
		return Outcome{}, fmt.Errorf("load portfolio from %s: %w", e.Source.Name(), err)
	}
	for _, p := range projects {
		if p.Name == name {
			res, err := appraisal.EvaluateProject(p.Params)
			return Outcome{Project: p, Result: res, Err: err}, nil
		}
	}
	return Outcome{}, fmt.Errorf("project %q not found in %s", name, e.Source.Name())
}
