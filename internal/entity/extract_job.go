package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractJob represents one extraction run over a source file.
type ExtractJob struct {
	ID           uuid.UUID  `json:"id"`
	FileID       uuid.UUID  `json:"file_id"`
	Format       string     `json:"format"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	OCRText      *string    `json:"ocr_text,omitempty"`
	Method       *string    `json:"method,omitempty"`
	RecordCount  int        `json:"record_count"`
}
