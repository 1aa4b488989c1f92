package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issueId"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment upload states. Created UPLOADING, flipped to AVAILABLE once the
// blob store accepted the bytes, or to DELETED when the upload failed.
const (
	AttachmentUploading = "UPLOADING"
	AttachmentAvailable = "AVAILABLE"
	AttachmentDeleted   = "DELETED"
)

type Attachment struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"noteId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"storageKey"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
