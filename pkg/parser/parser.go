// Package parser turns short free-text estimating instructions into typed
// actions. Parsing is pattern-based and deterministic: an ordered list of
// independent detectors scans the text and each appends zero or more actions,
// so multiple intents in one sentence ("tax 7 markup 20") all fire.
package parser

import (
	"strings"

	"github.com/takeline-lab/takeline/pkg/domain/model"
)

// Version identifies the detector set and tables. Embedded in every action
// log entry so older entries remain interpretable after parser changes.
const Version = "1.4.0"

// Context carries the session state a detector may consult. Detectors are
// pure functions of (text, context).
type Context struct {
	ProjectID   int64
	ProjectType string
}

// detector inspects the lowered text and returns actions it recognized, or
// a missing-info message when it recognized an intent without enough detail.
// Detectors never see each other's output.
type detector func(lower string, pctx Context) ([]model.Action, string)

// detectors is the ordered dispatch list. Order only affects which
// missing-info message wins when several detectors ask for clarification.
var detectors = []detector{
	detectProjectCreate,
	detectSetDefaults,
	detectAddItems,
	detectGenerateDrafts,
	detectPromoteDrafts,
	detectDeleteDrafts,
	detectUpdateItem,
	detectLaborTask,
	detectDeleteItem,
	detectExport,
	detectShowIssues,
	detectOpenPlan,
}

const helpText = `I didn't recognize a command. Try something like:
  "new project Smith basement"
  "tax 7 markup 20"
  "add drywall 1050 sf at $12.99"
  "generate drafts using framing + drywall, walls 150 lf, ceiling 8 ft"
  "promote all drafts"
  "add labor task hang and finish 16 hours"
  "export categorized csv"
  "show open issues"`

// Parse runs every detector over a lower-cased copy of the input and
// aggregates the results. Identical text and context always yield an
// identical result.
func Parse(text string, pctx Context) model.ParseResult {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return model.ParseResult{Success: false, Error: helpText}
	}

	var actions []model.Action
	var missingInfo string

	for _, detect := range detectors {
		acts, missing := detect(lower, pctx)
		actions = append(actions, acts...)
		if missingInfo == "" && missing != "" {
			missingInfo = missing
		}
	}

	if len(actions) > 0 {
		return model.ParseResult{Success: true, Actions: actions}
	}
	if missingInfo != "" {
		return model.ParseResult{Success: false, MissingInfo: missingInfo}
	}
	return model.ParseResult{Success: false, Error: helpText}
}
