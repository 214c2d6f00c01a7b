package models

// Productivity levels recorded against completed study time.
const (
	ProductivityHigh   = "high"
	ProductivityMedium = "medium"
	ProductivityLow    = "low"
)

// StudySession is a planned block of study time. Duration is in minutes.
type StudySession struct {
	ID        int    `json:"id"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
	Topic     string `json:"topic"`
	Completed bool   `json:"completed"`
}

// StudyHistoryEntry records study time actually spent. Entries are created
// when a planned session completes, with the duration taken from the elapsed
// timer and productivity defaulted to high.
type StudyHistoryEntry struct {
	ID           int    `json:"id"`
	Subject      string `json:"subject"`
	Date         string `json:"date"`
	Duration     int    `json:"duration"`
	Productivity string `json:"productivity"`
}

// ValidProductivity reports whether p is one of the three known levels.
func ValidProductivity(p string) bool {
	switch p {
	case ProductivityHigh, ProductivityMedium, ProductivityLow:
		return true
	default:
		return false
	}
}
