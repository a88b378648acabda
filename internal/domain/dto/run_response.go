package dto

import (
	"time"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// RunResponse summarizes the latest report run.
type RunResponse struct {
	RunID        string    `json:"run_id" example:"6f1c2f9e-3b7a-4f47-9a55-0c1c8a3e2b10"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DurationMS   int64     `json:"duration_ms"`
	InputFiles   []string  `json:"input_files"`
	LoadedFiles  []string  `json:"loaded_files"`
	SkippedFiles []string  `json:"skipped_files"`
	RowsCombined int       `json:"rows_combined"`
	ReportRows   int       `json:"report_rows"`
	OutputFile   string    `json:"output_file" example:"buyerSellerData.csv"`
}

// NewRunResponse converts a run summary; file lists are never null in JSON.
func NewRunResponse(r *models.Run) RunResponse {
	return RunResponse{
		RunID:        r.ID,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		DurationMS:   r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
		InputFiles:   nonNil(r.InputFiles),
		LoadedFiles:  nonNil(r.LoadedFiles),
		SkippedFiles: nonNil(r.SkippedFiles),
		RowsCombined: r.RowsCombined,
		ReportRows:   r.ReportRows,
		OutputFile:   r.OutputFile,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
