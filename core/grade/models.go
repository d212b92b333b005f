package grade

import (
	"time"

	"github.com/darasa-app/backend/core"
)

// Grade values are whole marks on a 1..10 scale.
const (
	MinValue = 1
	MaxValue = 10
)

// Grade is a single mark a student received in a course.
type Grade struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	StudentID int       `json:"student_id"`
	Value     int       `json:"value"`
	Date      time.Time `json:"date"`
}

// History is one recorded value of a grade over its lifetime.
type History struct {
	ID      int       `json:"id"`
	GradeID int       `json:"grade_id"`
	Value   int       `json:"value"`
	Date    time.Time `json:"date"`
}

// ValueValid reports whether v is on the grading scale.
func ValueValid(v int) bool {
	return v >= MinValue && v <= MaxValue
}

// Convert maps a raw grades row (id, course_id, student_id, value, date) to a
// Grade.
func Convert(values []interface{}) (Grade, error) {
	row := core.NewRow(values)
	grd := Grade{
		ID:        row.Int(0),
		CourseID:  row.Int(1),
		StudentID: row.Int(2),
		Value:     row.Int(3),
		Date:      row.Time(4),
	}
	return grd, row.Err()
}

// ConvertHistory maps a raw grade_history row (id, grade_id, value, date) to
// a History.
func ConvertHistory(values []interface{}) (History, error) {
	row := core.NewRow(values)
	hist := History{
		ID:      row.Int(0),
		GradeID: row.Int(1),
		Value:   row.Int(2),
		Date:    row.Time(3),
	}
	return hist, row.Err()
}
