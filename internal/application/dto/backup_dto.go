package dto

import "time"

// BackupResponse metadatos de un respaldo en disco. El contenido es opaco
// para el core.
type BackupResponse struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
