package models

import "time"

// ImportSummary descreve uma carga concluída (já commitada).
type ImportSummary struct {
	RunID      string    `json:"run_id"`
	Table      string    `json:"table"`
	Source     string    `json:"source"`
	Deleted    int64     `json:"deleted"`
	Count      int       `json:"count"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func (s ImportSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
