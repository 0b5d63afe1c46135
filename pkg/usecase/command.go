package usecase

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/parser"
)

// CommandOutcome bundles everything one free-text command produced: the
// parse result and, when parsing succeeded, the execution results and the
// log entry they were recorded under.
type CommandOutcome struct {
	Parse   model.ParseResult       `json:"parse"`
	Results []model.ExecutionResult `json:"results,omitempty"`
	LogID   types.LogID             `json:"log_id,omitempty"`
}

// RunCommand parses a free-text command and, if it parsed into actions,
// executes the batch. Parse failures come back in the outcome, not as
// errors; only infrastructure faults return an error.
func (uc *UseCases) RunCommand(ctx context.Context, text string, ectx ExecContext) (*CommandOutcome, error) {
	pctx := parser.Context{ProjectID: ectx.ProjectID}
	if ectx.ProjectID > 0 {
		if project, err := uc.repo.Project().Get(ctx, ectx.ProjectID); err == nil {
			pctx.ProjectType = project.Type
		}
	}

	outcome := &CommandOutcome{
		Parse: parser.Parse(text, pctx),
	}
	if !outcome.Parse.Success {
		return outcome, nil
	}

	results, logID, err := uc.ExecuteActions(ctx, text, outcome.Parse.Actions, ectx)
	if err != nil {
		return nil, err
	}

	outcome.Results = results
	outcome.LogID = logID
	return outcome, nil
}
