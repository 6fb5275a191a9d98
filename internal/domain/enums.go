package domain

// RiskLevel classifies whether a task is on track to meet its deadline.
// The zero value means the classification does not apply yet (the task
// has a planned start date in the future) and is displayed as "not started".
type RiskLevel string

const (
	RiskNotStarted RiskLevel = ""
	RiskOK         RiskLevel = "ok"
	RiskWarn       RiskLevel = "warn"
	RiskLate       RiskLevel = "late"
)

type TaskStatus string

const (
	TaskOpen     TaskStatus = "open"
	TaskDone     TaskStatus = "done"
	TaskArchived TaskStatus = "archived"
)
