package models

import "time"

// EmailTemplate is a reusable email skeleton. Variables maps placeholder
// names to example values. At most one template is the default.
type EmailTemplate struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Subject   string            `json:"subject"`
	Content   string            `json:"content"`
	Variables map[string]string `json:"variables"`
	IsDefault bool              `json:"isDefault"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// EmailDraft is a composed email, optionally derived from a template and
// linked to the issues it covers.
type EmailDraft struct {
	ID         string    `json:"id"`
	TemplateID *string   `json:"templateId,omitempty"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	Recipients []string  `json:"recipients"`
	IssueIDs   []string  `json:"issueIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Template *EmailTemplate `json:"template,omitempty"`
	Issues   []Issue        `json:"issues,omitempty"`
}
