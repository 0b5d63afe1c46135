package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/formula"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

// ResolvedAssemblies summarizes one resolver run: which assemblies matched
// and what records were written.
type ResolvedAssemblies struct {
	Matched  []string `json:"matched"`
	DraftIDs []int64  `json:"draft_ids"`
	RFIIDs   []int64  `json:"rfi_ids"`
}

// ResolveAssemblies expands the assemblies matching the given trade
// fragments into draft takeoff items, raising one RFI per distinct missing
// measurement question instead of failing. Items whose formula yields a
// non-positive quantity are dropped silently.
func (uc *UseCases) ResolveAssemblies(ctx context.Context, projectID int64, projectType string, fragments []string, vars map[string]float64) (*ResolvedAssemblies, error) {
	if uc.catalog == nil {
		return nil, goerr.Wrap(ErrNoAssemblyCatalog, "cannot resolve assemblies")
	}

	var matched []model.AssemblyDefinition
	for _, assembly := range uc.catalog.ForProjectType(projectType) {
		for _, fragment := range fragments {
			if assembly.MatchesFragment(fragment) {
				matched = append(matched, assembly)
				break
			}
		}
	}

	result := &ResolvedAssemblies{}
	askedQuestions := map[string]bool{}

	for _, assembly := range matched {
		result.Matched = append(result.Matched, assembly.Name)

		for _, item := range assembly.Items {
			eval := formula.Evaluate(item.QuantityFormula, vars)

			if len(eval.MissingVars) > 0 {
				question := fmt.Sprintf("What is %s? Needed to calculate %q for %s.",
					strings.Join(eval.MissingVars, ", "), item.Description, assembly.Name)
				if askedQuestions[question] {
					continue
				}
				askedQuestions[question] = true

				rfi, err := uc.repo.RFI().Create(ctx, &model.RFI{
					ProjectID: projectID,
					Trade:     assembly.Trade,
					Question:  question,
					Status:    types.RFIStatusOpen,
				})
				if err != nil {
					return nil, goerr.Wrap(err, "failed to create RFI",
						goerr.V(ProjectIDKey, projectID), goerr.V("assembly", assembly.ID))
				}
				result.RFIIDs = append(result.RFIIDs, rfi.ID)
				continue
			}

			if eval.Value == nil || *eval.Value <= 0 {
				continue
			}

			draft, err := uc.repo.Takeoff().Create(ctx, &model.TakeoffItem{
				ProjectID:   projectID,
				Category:    assembly.Trade,
				Description: item.Description,
				Quantity:    *eval.Value,
				Unit:        item.Unit,
				Draft:       true,
				Note:        fmt.Sprintf("from %s: %s", assembly.Name, item.QuantityFormula),
			})
			if err != nil {
				return nil, goerr.Wrap(err, "failed to create draft item",
					goerr.V(ProjectIDKey, projectID), goerr.V("assembly", assembly.ID))
			}
			result.DraftIDs = append(result.DraftIDs, draft.ID)
		}
	}

	logging.From(ctx).Debug("resolved assemblies",
		"fragments", fragments,
		"matched", result.Matched,
		"drafts", len(result.DraftIDs),
		"rfis", len(result.RFIIDs),
	)

	return result, nil
}
