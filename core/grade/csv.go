package grade

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// BulkUploadFromCSV imports grades from newline-delimited comma-separated
// rows of the form `courseId,studentId,value,date`. The result is
// index-aligned with the input lines: a line that fails parsing, references
// a missing student/course, names a non-student account, or carries an
// out-of-range value yields a nil slot, and the rest are inserted via
// AddGrades. An empty upload is rejected before any line is read.
func (svc *Service) BulkUploadFromCSV(ctx context.Context, upload io.Reader, size int64) ([]*Grade, error) {
	if upload == nil || size == 0 {
		return nil, core.NewValidationError(errors.New("uploaded file is empty"),
			core.FieldError{Field: "file", Error: "file is required and cannot be empty"})
	}

	result := make([]*Grade, 0)
	var pending []Grade
	pendingAt := make(map[int]bool) // result index -> awaiting insert

	scanner := bufio.NewScanner(upload)
	for lineNo := 0; scanner.Scan(); lineNo++ {
		grd, err := svc.parseLine(ctx, lineNo, scanner.Text())
		if err != nil {
			return nil, err
		}
		if grd == nil {
			result = append(result, nil)
			continue
		}
		pendingAt[len(result)] = true
		result = append(result, grd)
		pending = append(pending, *grd)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading upload")
	}

	inserted, err := svc.AddGrades(ctx, pending)
	if err != nil {
		return nil, err
	}

	// realign generated ids onto the original line positions
	next := 0
	for i := range result {
		if pendingAt[i] {
			result[i] = inserted[next]
			next++
		}
	}
	return result, nil
}

// parseLine yields nil (and no error) when the line fails any structural,
// referential or range check. Directory lookup failures abort the import.
func (svc *Service) parseLine(ctx context.Context, lineNo int, line string) (*Grade, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		svc.log.Debug("bulk upload: skipping malformed line", "line", lineNo)
		return nil, nil
	}

	studentID, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		svc.log.Debug("bulk upload: bad student id", "line", lineNo, "field", fields[1])
		return nil, nil
	}
	courseID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		svc.log.Debug("bulk upload: bad course id", "line", lineNo, "field", fields[0])
		return nil, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		svc.log.Debug("bulk upload: bad value", "line", lineNo, "field", fields[2])
		return nil, nil
	}
	date, ok := parseDate(strings.TrimSpace(fields[3]))
	if !ok {
		svc.log.Debug("bulk upload: bad date", "line", lineNo, "field", fields[3])
		return nil, nil
	}

	student, err := svc.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || !student.IsStudent() {
		svc.log.Debug("bulk upload: no such student", "line", lineNo, "student_id", studentID)
		return nil, nil
	}
	crs, err := svc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if crs == nil {
		svc.log.Debug("bulk upload: no such course", "line", lineNo, "course_id", courseID)
		return nil, nil
	}
	if !ValueValid(value) {
		svc.log.Debug("bulk upload: value out of range", "line", lineNo, "value", value)
		return nil, nil
	}

	return &Grade{CourseID: courseID, StudentID: studentID, Value: value, Date: date}, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
