package pipeline

import "healthcli/internal/health"

// Handler carries the per-metric transformation rules. Decode runs on
// every normalized fragment before merging; Aggregate runs once on the
// fully merged table. Metrics without special rules use the passthrough
// handler.
type Handler interface {
	// Decode applies the metric's enum mapping rules.
	Decode(t health.Table) health.Table
	// Aggregate applies the metric's post-merge rule.
	Aggregate(t health.Table) health.Table
}

// passthrough is the handler for metrics without decode or aggregate
// rules.
type passthrough struct{}

func (passthrough) Decode(t health.Table) health.Table    { return t }
func (passthrough) Aggregate(t health.Table) health.Table { return t }

// enumHandler decodes a fixed list of enum rules and aggregates nothing.
type enumHandler struct {
	rules []EnumRule
}

func (h enumHandler) Decode(t health.Table) health.Table {
	for _, rule := range h.rules {
		t = decodeEnum(t, rule)
	}
	return t
}

func (h enumHandler) Aggregate(t health.Table) health.Table { return t }

// handlers maps metric IDs to their rules. Lookups for unknown IDs fall
// back to the passthrough handler.
var handlers = map[string]Handler{
	"sleep_stage":            enumHandler{rules: []EnumRule{sleepStageRule}},
	"ecg":                    enumHandler{rules: []EnumRule{ecgSymptomsRule, ecgClassificationRule}},
	"food_intake":            enumHandler{rules: []EnumRule{foodMealTypeRule}},
	"respiratory_rate":       enumHandler{rules: []EnumRule{respiratoryOutlierRule}},
	"exercise":               enumHandler{rules: []EnumRule{exerciseTypeRule}},
	"sleep_goal":             sleepGoalHandler{},
	"sleep_snoring":          snoringHandler{},
	"mean_arterial_pressure": arterialPressureHandler{},
}

// HandlerFor returns the handler registered for a metric ID.
func HandlerFor(metricID string) Handler {
	if h, ok := handlers[metricID]; ok {
		return h
	}
	return passthrough{}
}
