package models

// AttendanceRecord tracks per-subject class attendance counts.
// Invariant enforced at the write path: Attended+Late+Absent must not exceed
// TotalClasses.
type AttendanceRecord struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TotalClasses int    `json:"totalClasses"`
	Attended     int    `json:"attended"`
	Late         int    `json:"late"`
	Absent       int    `json:"absent"`
}

// Consistent reports whether the per-status counts fit inside the total.
func (r AttendanceRecord) Consistent() bool {
	return r.Attended+r.Late+r.Absent <= r.TotalClasses
}
