// Package store implements persisted collections: named slots holding one
// JSON-serialized collection each. A slot is overwritten whole on every save;
// readers observe a new value only on their own next load.
package store

import (
	"context"
	"errors"
)

// Slot keys. The key space is global to the deployment; absence of a key is a
// valid state meaning "use seed data".
const (
	KeySubjects      = "student_subjects"
	KeyHistoricalGPA = "student_historical_gpa"
	KeyAssignments   = "assignments"
	KeyAttendance    = "attendanceData"
	KeyStudySessions = "study_sessions"
	KeyStudyHistory  = "study_history"
)

// ErrSlotMissing indicates the slot has never been written.
var ErrSlotMissing = errors.New("slot missing")

// SlotStore reads and writes raw slot payloads.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// Publisher receives a change notification after a slot is overwritten.
type Publisher interface {
	Publish(ctx context.Context, key string)
}
