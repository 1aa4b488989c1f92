package models

import "time"

// Issue statuses.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

// Priorities, shared by issues and action items.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// PriorityRank orders priorities for sorting; unknown values sort last.
func PriorityRank(p string) int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// StatusGroup maps the coarse list filter onto concrete statuses:
// "resolved" covers finished issues, anything else means active ones.
func StatusGroup(filter string) []string {
	if filter == "resolved" {
		return []string{StatusResolved, StatusClosed}
	}
	return []string{StatusOpen, StatusInProgress}
}

type Issue struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ResolutionPlan   string    `json:"resolutionPlan"`
	WorkPerformed    string    `json:"workPerformed"`
	Roadblocks       string    `json:"roadblocks"`
	Priority         string    `json:"priority"`
	Status           string    `json:"status"`
	Archived         bool      `json:"archived"`
	CategoryID       *string   `json:"categoryId,omitempty"`
	ExternalTicketID *string   `json:"externalTicketId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// List/detail decorations, populated by joins.
	Category    *Category    `json:"category,omitempty"`
	LatestNote  *Note        `json:"latestNote,omitempty"`
	NoteCount   int          `json:"noteCount"`
	Notes       []Note       `json:"notes,omitempty"`
	ActionItems []ActionItem `json:"actionItems,omitempty"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
