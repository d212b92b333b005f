package course

import (
	"github.com/darasa-app/backend/core"
)

// Course is a teacher-owned course students enroll into.
type Course struct {
	ID          int    `json:"id"`
	TeacherID   int    `json:"teacher_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Convert maps a raw courses row (id, teacher_id, name, description) to a
// Course.
func Convert(values []interface{}) (Course, error) {
	row := core.NewRow(values)
	crs := Course{
		ID:          row.Int(0),
		TeacherID:   row.Int(1),
		Name:        row.String(2),
		Description: row.String(3),
	}
	return crs, row.Err()
}

// Result is the outcome of an enrollment mutation.
type Result struct {
	OK      bool   `json:"is_success"`
	Message string `json:"message,omitempty"`
}
