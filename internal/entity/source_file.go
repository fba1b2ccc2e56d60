package entity

import (
	"time"

	"github.com/google/uuid"
)

// SourceFile represents an ingested certificate file for data transfer
// between layers.
type SourceFile struct {
	ID          uuid.UUID `json:"id"`
	SourcePath  string    `json:"source_path"`
	ContentHash []byte    `json:"content_hash"`
	FileExt     string    `json:"file_ext"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
