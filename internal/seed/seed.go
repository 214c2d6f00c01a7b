// Package seed holds the default collection contents served when a slot has
// never been written.
package seed

import (
	"github.com/studypulse/studypulse-api/internal/models"
)

// Subjects returns the fixed enrollment list. Subjects start with no grades
// and are never deleted.
func Subjects() []models.Subject {
	names := []string{
		"Data Structures & Algorithms",
		"Computer Organization",
		"Software Engineering",
		"Database Systems",
		"Operating Systems",
		"Computer Networks",
		"Machine Learning",
		"Web Development",
		"Cybersecurity",
		"Cloud Computing",
		"Mobile App Development",
		"Artificial Intelligence",
	}

	subjects := make([]models.Subject, 0, len(names))
	for i, name := range names {
		subjects = append(subjects, models.Subject{ID: i + 1, Name: name, Grades: []models.GradeEntry{}})
	}

	return subjects
}

// HistoricalGPA returns the empty starting series; points are appended as
// grades are recorded.
func HistoricalGPA() []models.HistoricalGPAPoint {
	return []models.HistoricalGPAPoint{}
}

// Assignments returns the starter coursework list.
func Assignments() []models.Assignment {
	return []models.Assignment{
		{
			ID:             1,
			Title:          "Mathematics Homework 3.4",
			Description:    "Complete exercises 1-15, show all work",
			Subject:        "Mathematics",
			DueDate:        "2023-11-20",
			Status:         models.AssignmentStatusPending,
			Priority:       models.AssignmentPriorityHigh,
			EstimatedHours: 2,
		},
		{
			ID:             2,
			Title:          "Physics Lab Report",
			Description:    "Write up results from the pendulum experiment",
			Subject:        "Physics",
			DueDate:        "2023-11-22",
			Status:         models.AssignmentStatusInProgress,
			Priority:       models.AssignmentPriorityMedium,
			EstimatedHours: 3,
		},
		{
			ID:             3,
			Title:          "History Essay",
			Description:    "Research paper on the Industrial Revolution",
			Subject:        "History",
			DueDate:        "2023-11-25",
			Status:         models.AssignmentStatusInProgress,
			Priority:       models.AssignmentPriorityHigh,
			EstimatedHours: 5,
		},
		{
			ID:             4,
			Title:          "English Reading",
			Description:    "Read chapters 5-8 of To Kill a Mockingbird",
			Subject:        "English",
			DueDate:        "2023-11-18",
			Status:         models.AssignmentStatusCompleted,
			Priority:       models.AssignmentPriorityMedium,
			EstimatedHours: 2,
		},
		{
			ID:             5,
			Title:          "Biology Worksheet",
			Description:    "Complete the cell structure diagram and questions",
			Subject:        "Biology",
			DueDate:        "2023-11-19",
			Status:         models.AssignmentStatusCompleted,
			Priority:       models.AssignmentPriorityLow,
			EstimatedHours: 1,
		},
	}
}

// Attendance returns one record per seeded subject. Counts are fixed rather
// than generated so that attended+late+absent never exceeds the class total.
// Classes not yet held carry no mark, which leaves room for new marks.
func Attendance() []models.AttendanceRecord {
	attended := []int{38, 36, 33, 39, 31, 35, 37, 39, 29, 34, 36, 32}
	late := []int{1, 2, 3, 0, 4, 2, 1, 0, 5, 3, 2, 4}
	absent := []int{0, 1, 2, 0, 3, 1, 1, 0, 4, 2, 1, 3}

	subjects := Subjects()
	records := make([]models.AttendanceRecord, 0, len(subjects))
	for i, subject := range subjects {
		records = append(records, models.AttendanceRecord{
			ID:           subject.ID,
			Name:         subject.Name,
			TotalClasses: 40,
			Attended:     attended[i],
			Late:         late[i],
			Absent:       absent[i],
		})
	}

	return records
}

// StudySessions returns the starter planner entries.
func StudySessions() []models.StudySession {
	return []models.StudySession{
		{ID: 1, Subject: "Mathematics", Date: "2023-11-18", StartTime: "18:00", Duration: 45, Topic: "Calculus - Derivatives", Completed: false},
		{ID: 2, Subject: "Physics", Date: "2023-11-19", StartTime: "16:30", Duration: 60, Topic: "Fluid Mechanics", Completed: true},
		{ID: 3, Subject: "History", Date: "2023-11-20", StartTime: "19:00", Duration: 30, Topic: "Industrial Revolution Research", Completed: false},
	}
}

// StudyHistory returns the starter record of study time already spent.
func StudyHistory() []models.StudyHistoryEntry {
	return []models.StudyHistoryEntry{
		{ID: 1, Subject: "Mathematics", Date: "2023-11-15", Duration: 120, Productivity: models.ProductivityHigh},
		{ID: 2, Subject: "Physics", Date: "2023-11-15", Duration: 90, Productivity: models.ProductivityMedium},
		{ID: 3, Subject: "History", Date: "2023-11-14", Duration: 60, Productivity: models.ProductivityMedium},
		{ID: 4, Subject: "English", Date: "2023-11-14", Duration: 45, Productivity: models.ProductivityLow},
		{ID: 5, Subject: "Chemistry", Date: "2023-11-13", Duration: 75, Productivity: models.ProductivityHigh},
		{ID: 6, Subject: "Mathematics", Date: "2023-11-13", Duration: 60, Productivity: models.ProductivityMedium},
		{ID: 7, Subject: "Physics", Date: "2023-11-12", Duration: 90, Productivity: models.ProductivityHigh},
		{ID: 8, Subject: "Biology", Date: "2023-11-12", Duration: 45, Productivity: models.ProductivityLow},
	}
}
