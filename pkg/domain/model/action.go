package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

// Action is a typed, parameterized instruction produced by the parser and
// consumed by the executor. Confidence reflects pattern specificity, not
// certainty of correctness.
type Action struct {
	Kind       types.ActionKind
	Confidence float64
	Params     ActionParams
}

// ActionParams is the closed union of per-kind parameter sets. Each
// implementation validates its required fields once, at construction,
// so handlers never re-check field presence.
type ActionParams interface {
	Kind() types.ActionKind
	Validate() error
}

// NewAction builds an Action and validates its params against the kind.
func NewAction(kind types.ActionKind, confidence float64, params ActionParams) (Action, error) {
	if !kind.IsValid() {
		return Action{}, goerr.New("invalid action kind", goerr.V("kind", kind))
	}
	if params == nil {
		return Action{}, goerr.New("action params are required", goerr.V("kind", kind))
	}
	if params.Kind() != kind {
		return Action{}, goerr.New("params do not match action kind",
			goerr.V("kind", kind), goerr.V("params_kind", params.Kind()))
	}
	if err := params.Validate(); err != nil {
		return Action{}, goerr.Wrap(err, "invalid action params", goerr.V("kind", kind))
	}
	return Action{Kind: kind, Confidence: confidence, Params: params}, nil
}

type actionEnvelope struct {
	Kind       types.ActionKind `json:"kind"`
	Confidence float64          `json:"confidence"`
	Params     json.RawMessage  `json:"params"`
}

// MarshalJSON serializes the action with its kind tag so log entries stay
// replayable across parser versions.
func (a Action) MarshalJSON() ([]byte, error) {
	params, err := json.Marshal(a.Params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{
		Kind:       a.Kind,
		Confidence: a.Confidence,
		Params:     params,
	})
}

// UnmarshalJSON restores the tagged union from its persisted form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	params, err := newParamsForKind(env.Kind)
	if err != nil {
		return err
	}
	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, params); err != nil {
			return err
		}
	}

	a.Kind = env.Kind
	a.Confidence = env.Confidence
	a.Params = params
	return nil
}

func newParamsForKind(kind types.ActionKind) (ActionParams, error) {
	switch kind {
	case types.ActionProjectCreate:
		return &CreateProjectParams{}, nil
	case types.ActionProjectSetDefaults:
		return &SetDefaultsParams{}, nil
	case types.ActionTakeoffAddItem:
		return &AddItemParams{}, nil
	case types.ActionTakeoffAddMultiple:
		return &AddMultipleParams{}, nil
	case types.ActionTakeoffUpdateItem:
		return &UpdateItemParams{}, nil
	case types.ActionTakeoffDeleteItem:
		return &DeleteItemParams{}, nil
	case types.ActionTakeoffDeleteItems:
		return &DeleteItemsParams{}, nil
	case types.ActionTakeoffGenerateDrafts:
		return &GenerateDraftsParams{}, nil
	case types.ActionTakeoffPromoteDrafts:
		return &PromoteDraftsParams{}, nil
	case types.ActionTakeoffDeleteDrafts:
		return &DeleteDraftsParams{}, nil
	case types.ActionLaborAddTaskLine:
		return &AddTaskLineParams{}, nil
	case types.ActionExportPDF, types.ActionExportCSV:
		return &ExportParams{}, nil
	case types.ActionQAShowIssues:
		return &ShowIssuesParams{}, nil
	case types.ActionPlansOpen:
		return &OpenPlanParams{}, nil
	default:
		return nil, goerr.New("unknown action kind in log entry", goerr.V("kind", kind))
	}
}
