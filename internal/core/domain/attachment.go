package domain

import "time"

// FileAttachment is an uploaded file. It is created before the message that
// carries it exists (MessageID nil), then linked atomically when the message
// is sent. Uploads that are never linked remain orphaned; cleanup is out of
// scope for the engine.
type FileAttachment struct {
	AttachmentID string    `json:"attachmentID"` // Primary Key (UUID)
	FileName     string    `json:"fileName"`     // Original client filename
	StoragePath  string    `json:"-"`            // Opaque path into the file store
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	UploadedBy   string    `json:"uploadedBy"` // EmployeeID Reference
	MessageID    *string   `json:"messageID,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
