package recorder

import (
	"context"
	"time"

	"SolarSentinel/internal/model"

	"github.com/google/uuid"
)

// Evaluation is one appraisal run of one project.
type Evaluation struct {
	RunID       uuid.UUID
	EvaluatedAt time.Time
	Project     string
	Params      model.ProjectParameters
	Result      *model.ProjectResult
}

// NewEvaluation stamps a result with a fresh run id and the current time.
func NewEvaluation(project string, params model.ProjectParameters, result *model.ProjectResult) *Evaluation {
	return &Evaluation{
		RunID:       uuid.New(),
		EvaluatedAt: time.Now(),
		Project:     project,
		Params:      params,
		Result:      result,
	}
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordEvaluation(ctx context.Context, ev *Evaluation) error
	Close() error
}
