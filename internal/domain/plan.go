package domain

import "time"

// PlanItem is one allocated task in a daily plan. Position is 1-based and
// dense in selection order.
type PlanItem struct {
	TaskID      string
	Title       string
	PlannedMin  int
	RequiredMin int
	Position    int
}

// DailyPlan is the allocation decision for one calendar day. CapMin is nil
// when the capacity was "whatever remains" rather than an explicit budget.
// A plan is created lazily on first computation and may be overwritten by a
// same-day refresh; each overwrite that changes the plan appends an
// immutable PlanRevision.
type DailyPlan struct {
	Day             string
	CapMin          *int
	TotalPlannedMin int
	Items           []PlanItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SameAllocation reports whether two plans allocate identically: same cap,
// same items in the same order. Timestamps are ignored. A refresh that
// yields the same allocation is a no-op and records no revision.
func (p *DailyPlan) SameAllocation(other *DailyPlan) bool {
	if other == nil {
		return false
	}
	if (p.CapMin == nil) != (other.CapMin == nil) {
		return false
	}
	if p.CapMin != nil && *p.CapMin != *other.CapMin {
		return false
	}
	if len(p.Items) != len(other.Items) {
		return false
	}
	for i, item := range p.Items {
		o := other.Items[i]
		if item.TaskID != o.TaskID || item.PlannedMin != o.PlannedMin ||
			item.RequiredMin != o.RequiredMin || item.Position != o.Position {
			return false
		}
	}
	return true
}

// PlanRevision is an append-only before/after audit record written when a
// same-day plan refresh changes the allocation. Before and After hold the
// JSON-encoded plans.
type PlanRevision struct {
	ID        string
	Day       string
	Before    string
	After     string
	ChangedAt time.Time
}
