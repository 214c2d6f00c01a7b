package dto

import "github.com/studypulse/studypulse-api/internal/models"

// SessionCreateRequest schedules a new study session.
type SessionCreateRequest struct {
	Subject   string `json:"subject" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	Duration  int    `json:"duration" validate:"required,min=5"`
	Topic     string `json:"topic" validate:"required,min=3"`
}

// SessionCompleteRequest closes a session after the timer stops. Elapsed time
// is reported in seconds, as counted by the one-second timer tick.
type SessionCompleteRequest struct {
	ElapsedSeconds int `json:"elapsed_seconds" validate:"required,min=1"`
}

// PlannerResponse is the study planner page payload.
type PlannerResponse struct {
	Sessions     []models.StudySession      `json:"sessions"`
	History      []models.StudyHistoryEntry `json:"history"`
	TotalMinutes int                        `json:"total_minutes"`
}
