package parser

import (
	"regexp"
	"strings"

	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

func mustAction(kind types.ActionKind, confidence float64, params model.ActionParams) ([]model.Action, bool) {
	action, err := model.NewAction(kind, confidence, params)
	if err != nil {
		return nil, false
	}
	return []model.Action{action}, true
}

// titleCase capitalizes the first letter of each word, turning a lowered
// description back into a presentable one.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

var (
	reProjectCreate = regexp.MustCompile(`\b(?:create|new|start)\s+(?:a\s+)?(?:new\s+)?project(?:\s+(?:called|named|for))?\s+(.+)$`)
	reProjectBare   = regexp.MustCompile(`\b(?:create|new|start)\s+(?:a\s+)?(?:new\s+)?project\s*$`)
)

// knownProjectTypes are recognized inside a project name and recorded as the
// project type for assembly filtering.
var knownProjectTypes = []string{"basement", "kitchen", "bathroom", "addition", "deck", "garage", "remodel"}

func detectProjectCreate(lower string, pctx Context) ([]model.Action, string) {
	if m := reProjectCreate.FindStringSubmatch(lower); m != nil {
		name := strings.Trim(strings.TrimSpace(m[1]), `"'`)
		if name == "" {
			return nil, "A project needs a name, e.g. \"new project Smith basement\"."
		}
		projectType := ""
		for _, pt := range knownProjectTypes {
			if strings.Contains(name, pt) {
				projectType = pt
				break
			}
		}
		acts, _ := mustAction(types.ActionProjectCreate, 0.9, &model.CreateProjectParams{
			Name:        titleCase(name),
			ProjectType: projectType,
		})
		return acts, ""
	}
	if reProjectBare.MatchString(lower) {
		return nil, "A project needs a name, e.g. \"new project Smith basement\"."
	}
	return nil, ""
}

var (
	reTax         = regexp.MustCompile(`\btax\s+(?:rate\s+)?(?:to\s+|at\s+|of\s+|=\s*)?(\d+(?:\.\d+)?)\s*%?`)
	reMarkup      = regexp.MustCompile(`\bmark\s?up\s+(?:to\s+|at\s+|of\s+|=\s*)?(\d+(?:\.\d+)?)\s*%?`)
	reLaborBurden = regexp.MustCompile(`\blabor\s+burden\s+(?:to\s+|at\s+|of\s+|=\s*)?(\d+(?:\.\d+)?)\s*%?`)
	reWaste       = regexp.MustCompile(`\bwaste\s+(?:factor\s+)?(?:to\s+|at\s+|of\s+|=\s*)?(\d+(?:\.\d+)?)\s*%?`)
)

// detectSetDefaults recognizes numeric project defaults. Several fields in
// one command still produce a single action.
func detectSetDefaults(lower string, pctx Context) ([]model.Action, string) {
	params := &model.SetDefaultsParams{}
	found := false

	if m := reTax.FindStringSubmatch(lower); m != nil {
		if v, ok := parseQuantity(m[1]); ok {
			params.TaxPercent = &v
			found = true
		}
	}
	if m := reMarkup.FindStringSubmatch(lower); m != nil {
		if v, ok := parseQuantity(m[1]); ok {
			params.MarkupPercent = &v
			found = true
		}
	}
	if m := reLaborBurden.FindStringSubmatch(lower); m != nil {
		if v, ok := parseQuantity(m[1]); ok {
			params.LaborBurdenPercent = &v
			found = true
		}
	}
	if m := reWaste.FindStringSubmatch(lower); m != nil {
		if v, ok := parseQuantity(m[1]); ok {
			params.WastePercent = &v
			found = true
		}
	}

	if !found {
		return nil, ""
	}
	acts, _ := mustAction(types.ActionProjectSetDefaults, 0.95, params)
	return acts, ""
}

var (
	reAddRest = regexp.MustCompile(`\badd\s+(.+)$`)
	reItemSeg = regexp.MustCompile(`^(.+?)\s+(\d[\d,]*(?:\.\d+)?|[a-z]+(?:[\s-][a-z]+)?)\s+((?:sq|lin|board|cubic|square|linear)\s+[a-z.]+|[a-z.]+)(?:\s+at\s+(\$?\d[\d,]*(?:\.\d{1,2})?))?$`)
)

func parseItemSegment(segment string) (model.AddItemParams, bool) {
	segment = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(segment), "and "))
	m := reItemSeg.FindStringSubmatch(segment)
	if m == nil {
		return model.AddItemParams{}, false
	}

	qty, ok := parseQuantity(m[2])
	if !ok || qty <= 0 {
		return model.AddItemParams{}, false
	}

	item := model.AddItemParams{
		Description: titleCase(strings.TrimSpace(m[1])),
		Quantity:    qty,
		Unit:        NormalizeUnit(m[3]),
		Category:    InferCategory(m[1]),
	}
	if m[4] != "" {
		if price, ok := parseMoney(m[4]); ok {
			item.UnitCost = &price
		}
	}
	return item, true
}

// detectAddItems recognizes "add <desc> <qty> <unit> [at $<price>]" and the
// comma-separated multi-item form.
func detectAddItems(lower string, pctx Context) ([]model.Action, string) {
	m := reAddRest.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	rest := m[1]
	if strings.HasPrefix(rest, "labor") {
		// labor task lines have their own detector
		return nil, ""
	}

	var items []model.AddItemParams
	for _, segment := range strings.Split(rest, ",") {
		// two items joined by "and" must be tried before the whole segment,
		// otherwise the lazy description swallows the first item
		if head, tail, found := strings.Cut(segment, " and "); found {
			h, okH := parseItemSegment(head)
			t, okT := parseItemSegment(tail)
			if okH && okT {
				items = append(items, h, t)
				continue
			}
		}
		if item, ok := parseItemSegment(segment); ok {
			items = append(items, item)
		}
	}

	switch len(items) {
	case 0:
		return nil, ""
	case 1:
		acts, _ := mustAction(types.ActionTakeoffAddItem, 0.85, &items[0])
		return acts, ""
	default:
		acts, _ := mustAction(types.ActionTakeoffAddMultiple, 0.85, &model.AddMultipleParams{Items: items})
		return acts, ""
	}
}

var (
	reDraftIntent    = regexp.MustCompile(`\b(?:generate|create|make|build)\b.*\bdrafts?\b|\bdrafts?\b.*\busing\b`)
	reDraftFragments = regexp.MustCompile(`\b(?:using|from|with)\s+([^,]+)`)
	reFragmentSplit  = regexp.MustCompile(`\s*(?:\+|&|\band\b)\s*`)
)

// detectGenerateDrafts recognizes assembly-driven draft generation together
// with any measurement values embedded in the same sentence.
func detectGenerateDrafts(lower string, pctx Context) ([]model.Action, string) {
	if !reDraftIntent.MatchString(lower) {
		return nil, ""
	}

	var fragments []string
	if m := reDraftFragments.FindStringSubmatch(lower); m != nil {
		for _, f := range reFragmentSplit.Split(m[1], -1) {
			f = strings.TrimSpace(f)
			if f != "" && f != "assemblies" && f != "assembly" {
				fragments = append(fragments, f)
			}
		}
	}
	if len(fragments) == 0 {
		return nil, "Which assemblies should I use? e.g. \"generate drafts using framing + drywall\"."
	}

	acts, _ := mustAction(types.ActionTakeoffGenerateDrafts, 0.8, &model.GenerateDraftsParams{
		Assemblies: fragments,
		Variables:  ExtractMeasurements(lower),
	})
	return acts, ""
}

var rePromoteDrafts = regexp.MustCompile(`\b(?:promote|finalize|approve)\s+(?:(all|selected)\s+)?(?:the\s+)?drafts?\b`)

func detectPromoteDrafts(lower string, pctx Context) ([]model.Action, string) {
	m := rePromoteDrafts.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	scope := types.ScopeAll
	if m[1] == "selected" {
		scope = types.ScopeSelected
	}
	acts, _ := mustAction(types.ActionTakeoffPromoteDrafts, 0.95, &model.PromoteDraftsParams{Scope: scope})
	return acts, ""
}

var reDeleteDrafts = regexp.MustCompile(`\b(?:delete|remove|clear|discard)\s+(?:(all|selected)\s+)?(?:the\s+)?drafts?\b`)

func detectDeleteDrafts(lower string, pctx Context) ([]model.Action, string) {
	m := reDeleteDrafts.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	scope := types.ScopeAll
	if m[1] == "selected" {
		scope = types.ScopeSelected
	}
	acts, _ := mustAction(types.ActionTakeoffDeleteDrafts, 0.95, &model.DeleteDraftsParams{Scope: scope})
	return acts, ""
}

var (
	reUpdateQty   = regexp.MustCompile(`\b(?:update|change|set)\s+(.+?)\s+(?:qty|quantity)\s+(?:to\s+)?(\d[\d,]*(?:\.\d+)?)`)
	reUpdatePrice = regexp.MustCompile(`\bprice\s+(?:of|for)\s+(.+?)\s+(?:to\s+|at\s+)?(\$?\d[\d,]*(?:\.\d{1,2})?)`)
)

func detectUpdateItem(lower string, pctx Context) ([]model.Action, string) {
	if m := reUpdateQty.FindStringSubmatch(lower); m != nil {
		if qty, ok := parseQuantity(m[2]); ok {
			acts, _ := mustAction(types.ActionTakeoffUpdateItem, 0.85, &model.UpdateItemParams{
				Match:    strings.TrimSpace(m[1]),
				Quantity: &qty,
			})
			return acts, ""
		}
	}
	if m := reUpdatePrice.FindStringSubmatch(lower); m != nil {
		if price, ok := parseMoney(m[2]); ok {
			acts, _ := mustAction(types.ActionTakeoffUpdateItem, 0.85, &model.UpdateItemParams{
				Match:    strings.TrimSpace(m[1]),
				UnitCost: &price,
			})
			return acts, ""
		}
	}
	return nil, ""
}

var reLaborTask = regexp.MustCompile(`\b(?:add\s+)?labor(?:\s+task)?\s+(?:for\s+)?(.+?)\s+(\d+(?:\.\d+)?|[a-z]+(?:[\s-][a-z]+)?)\s*(?:hours|hrs|hr)\b(?:\s+at\s+(\$?\d[\d,]*(?:\.\d{1,2})?)(?:\s*/\s*hr)?)?`)

func detectLaborTask(lower string, pctx Context) ([]model.Action, string) {
	m := reLaborTask.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	hours, ok := parseQuantity(m[2])
	if !ok || hours <= 0 {
		return nil, ""
	}
	params := &model.AddTaskLineParams{
		Description: titleCase(strings.TrimSpace(m[1])),
		Hours:       hours,
	}
	if m[3] != "" {
		if rate, ok := parseMoney(m[3]); ok {
			params.Rate = &rate
		}
	}
	acts, _ := mustAction(types.ActionLaborAddTaskLine, 0.85, params)
	return acts, ""
}

var reDeleteItem = regexp.MustCompile(`\b(?:delete|remove)\s+(?:the\s+)?(.*)$`)

// detectDeleteItem refuses to guess a destructive target: "delete item" with
// nothing identifying the item asks for clarification instead.
func detectDeleteItem(lower string, pctx Context) ([]model.Action, string) {
	m := reDeleteItem.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	target := strings.TrimSpace(m[1])
	if strings.Contains(target, "draft") {
		// handled by the draft detector
		return nil, ""
	}
	target = strings.TrimSpace(strings.TrimPrefix(target, "item"))
	target = strings.TrimSpace(strings.TrimPrefix(target, "line"))
	if target == "" || target == "s" {
		return nil, "Which item should I delete? Include part of its description, e.g. \"delete drywall\"."
	}
	acts, _ := mustAction(types.ActionTakeoffDeleteItem, 0.85, &model.DeleteItemParams{Match: target})
	return acts, ""
}

var (
	reExportish   = regexp.MustCompile(`\b(?:export|generate|print|send|download)\b`)
	rePDF         = regexp.MustCompile(`\bpdf\b`)
	reCSV         = regexp.MustCompile(`\bcsv\b`)
	reCategorized = regexp.MustCompile(`\bcategor(?:y|ized|ies)\b|\bby\s+category\b`)
)

func detectExport(lower string, pctx Context) ([]model.Action, string) {
	if !reExportish.MatchString(lower) {
		return nil, ""
	}
	var actions []model.Action
	if rePDF.MatchString(lower) {
		if acts, ok := mustAction(types.ActionExportPDF, 0.9, &model.ExportParams{Format: "pdf"}); ok {
			actions = append(actions, acts...)
		}
	}
	if reCSV.MatchString(lower) {
		if acts, ok := mustAction(types.ActionExportCSV, 0.95, &model.ExportParams{
			Format:      "csv",
			Categorized: reCategorized.MatchString(lower),
		}); ok {
			actions = append(actions, acts...)
		}
	}
	return actions, ""
}

var reShowIssues = regexp.MustCompile(`\b(?:show|list|review|summarize)\b.*\b(?:issues|rfis?|open\s+questions)\b|\bopen\s+issues\b|\bwhat(?:'s|\s+is)\s+missing\b`)

func detectShowIssues(lower string, pctx Context) ([]model.Action, string) {
	if !reShowIssues.MatchString(lower) {
		return nil, ""
	}
	acts, _ := mustAction(types.ActionQAShowIssues, 0.95, &model.ShowIssuesParams{})
	return acts, ""
}

var reOpenPlan = regexp.MustCompile(`\b(?:open|view)\s+(?:the\s+)?plans?\b(?:\s+(?:called|named|for)?\s*(.+))?$`)

func detectOpenPlan(lower string, pctx Context) ([]model.Action, string) {
	m := reOpenPlan.FindStringSubmatch(lower)
	if m == nil {
		return nil, ""
	}
	name := strings.Trim(strings.TrimSpace(m[1]), `"'`)
	if name == "" {
		return nil, "Which plan file should I open? e.g. \"open plan first floor\"."
	}
	acts, _ := mustAction(types.ActionPlansOpen, 0.9, &model.OpenPlanParams{Name: name})
	return acts, ""
}
