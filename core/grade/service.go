package grade

import (
	"context"
	"time"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/course"
	"github.com/darasa-app/backend/core/user"
)

const (
	gradesTable  = "grades"
	historyTable = "grade_history"
)

// UserDirectory resolves student accounts during bulk import.
type UserDirectory interface {
	GetByID(ctx context.Context, id int) (*user.User, error)
}

// CourseDirectory resolves courses during bulk import.
type CourseDirectory interface {
	GetByID(ctx context.Context, id int) (*course.Course, error)
}

// Service manages grades and their per-grade value history.
type Service struct {
	gw      core.Gateway
	users   UserDirectory
	courses CourseDirectory
	log     core.Logger
}

func NewService(gw core.Gateway, users UserDirectory, courses CourseDirectory, log core.Logger) *Service {
	return &Service{gw: gw, users: users, courses: courses, log: log}
}

// GetGrades lists every grade given in courseID.
func (svc *Service) GetGrades(ctx context.Context, courseID int) ([]Grade, error) {
	return core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM grades WHERE course_id = $1", Convert,
		core.P("course_id", courseID))
}

// GetGradesByStudent lists studentID's grades across all courses.
func (svc *Service) GetGradesByStudent(ctx context.Context, studentID int) ([]Grade, error) {
	return core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM grades WHERE student_id = $1", Convert,
		core.P("student_id", studentID))
}

// GetStudentGradesAtCourse lists studentID's grades in courseID.
func (svc *Service) GetStudentGradesAtCourse(ctx context.Context, studentID, courseID int) ([]Grade, error) {
	return core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM grades WHERE student_id = $1 AND course_id = $2", Convert,
		core.P("student_id", studentID), core.P("course_id", courseID))
}

// GetAverageGrade returns the arithmetic mean of studentID's grade values
// across all courses, or 0 if the student has none.
func (svc *Service) GetAverageGrade(ctx context.Context, studentID int) (float64, error) {
	grades, err := svc.GetGradesByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if len(grades) == 0 {
		return 0, nil
	}
	var sum int
	for _, grd := range grades {
		sum += grd.Value
	}
	return float64(sum) / float64(len(grades)), nil
}

// GetGradeHistory lists the recorded values of gradeID, oldest first.
func (svc *Service) GetGradeHistory(ctx context.Context, gradeID int) ([]History, error) {
	return core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM grade_history WHERE grade_id = $1", ConvertHistory,
		core.P("grade_id", gradeID))
}

// EditGrade rewrites a stored grade. The incoming value/date is appended to
// the grade's history before the update, so the history keeps the submitted
// value even when no grade row matches.
func (svc *Service) EditGrade(ctx context.Context, grd Grade) (bool, error) {
	if !ValueValid(grd.Value) {
		return false, nil
	}
	if err := svc.recordHistory(ctx, grd.ID, grd.Value, grd.Date); err != nil {
		return false, err
	}
	return svc.gw.Update(ctx, gradesTable,
		core.P("id", grd.ID),
		core.P("student_id", grd.StudentID),
		core.P("course_id", grd.CourseID),
		core.P("value", grd.Value),
		core.P("date", grd.Date),
	)
}

// AddGrades inserts each valid grade and appends its initial history row. The
// result is index-aligned with the input: invalid values yield a nil slot.
func (svc *Service) AddGrades(ctx context.Context, grades []Grade) ([]*Grade, error) {
	result := make([]*Grade, 0, len(grades))
	for _, grd := range grades {
		if !ValueValid(grd.Value) {
			result = append(result, nil)
			continue
		}
		id, ok, err := core.InsertWithReturn[int](ctx, svc.gw, gradesTable, "id",
			core.P("student_id", grd.StudentID),
			core.P("course_id", grd.CourseID),
			core.P("value", grd.Value),
			core.P("date", grd.Date),
		)
		if err != nil {
			return nil, err
		}
		if ok {
			grd.ID = id
			if err = svc.recordHistory(ctx, id, grd.Value, grd.Date); err != nil {
				return nil, err
			}
		}
		inserted := grd
		result = append(result, &inserted)
	}
	return result, nil
}

// DeleteGrade removes the grade row with the given id.
func (svc *Service) DeleteGrade(ctx context.Context, gradeID int) (bool, error) {
	return svc.gw.Delete(ctx, gradesTable, core.P("id", gradeID))
}

func (svc *Service) recordHistory(ctx context.Context, gradeID, value int, date time.Time) error {
	_, err := svc.gw.Insert(ctx, historyTable,
		core.P("grade_id", gradeID),
		core.P("value", value),
		core.P("date", date),
	)
	return err
}
