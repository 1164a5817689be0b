package model

import "time"

// ProcessLog records the outcome of processing one uploaded file.
// Rows are written once and never updated.
type ProcessLog struct {
	ID                int64     `json:"id"`
	OriginalFilename  string    `json:"original_filename"`
	ProcessedFilename string    `json:"processed_filename"`
	QRCount           int       `json:"qr_count"`
	FillColor         string    `json:"fill_color"`
	FillShape         string    `json:"fill_shape"`
	Opacity           float64   `json:"opacity"`
	OutputFormat      string    `json:"output_format"`
	ProcessedAt       time.Time `json:"processed_at"`
}

// ProcessedImage summarizes one processed file in a batch response.
type ProcessedImage struct {
	OriginalFilename  string `json:"original_filename"`
	ProcessedFilename string `json:"processed_filename"`
	QRCount           int    `json:"qr_count"`
}

// ProcessResponse is the metadata attached to a processing response.
// Archive is set only when several files were bundled into a zip.
type ProcessResponse struct {
	Images  []ProcessedImage `json:"images"`
	Archive *string          `json:"archive"`
}
