package course

import (
	"context"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
)

const (
	coursesTable = "courses"
	linksTable   = "course_student_links"
)

// Service manages courses and their enrollment links.
type Service struct {
	gw core.Gateway
}

func NewService(gw core.Gateway) *Service {
	return &Service{gw: gw}
}

// GetCourses lists the courses visible to usr: enrolled courses for a student,
// owned courses for a teacher.
func (svc *Service) GetCourses(ctx context.Context, usr user.User) ([]Course, error) {
	if usr.IsStudent() {
		return core.ReadListOfType(ctx, svc.gw,
			"SELECT courses.* FROM courses "+
				"JOIN course_student_links ON courses.id = course_student_links.course_id "+
				"WHERE course_student_links.student_id = $1",
			Convert, core.P("student_id", usr.ID))
	}
	return core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM courses WHERE teacher_id = $1", Convert,
		core.P("teacher_id", usr.ID))
}

// GetByID returns the course with the given id, or nil if absent.
func (svc *Service) GetByID(ctx context.Context, id int) (*Course, error) {
	return core.ReadObjectOfType(ctx, svc.gw,
		"SELECT * FROM courses WHERE id = $1", Convert, core.P("id", id))
}

// AddCourse inserts crs and returns it with the generated id filled in. The
// id stays zero if the store produced none.
func (svc *Service) AddCourse(ctx context.Context, crs Course) (Course, error) {
	id, ok, err := core.InsertWithReturn[int](ctx, svc.gw, coursesTable, "id",
		core.P("teacher_id", crs.TeacherID),
		core.P("name", crs.Name),
		core.P("description", crs.Description),
	)
	if err != nil {
		return crs, err
	}
	if ok {
		crs.ID = id
	}
	return crs, nil
}

// EditCourse overwrites crs's stored fields.
func (svc *Service) EditCourse(ctx context.Context, crs Course) (bool, error) {
	return svc.gw.Update(ctx, coursesTable,
		core.P("id", crs.ID),
		core.P("teacher_id", crs.TeacherID),
		core.P("name", crs.Name),
		core.P("description", crs.Description),
	)
}

// DeleteCourse removes the course and its enrollment links. The result
// reflects the course-row deletion only.
func (svc *Service) DeleteCourse(ctx context.Context, courseID int) (bool, error) {
	if _, err := svc.gw.Delete(ctx, linksTable, core.P("course_id", courseID)); err != nil {
		return false, err
	}
	return svc.gw.Delete(ctx, coursesTable, core.P("id", courseID))
}

// AddStudent enrolls studentID into courseID, rejecting duplicates.
func (svc *Service) AddStudent(ctx context.Context, courseID, studentID int) (Result, error) {
	exists, err := svc.gw.ContainsAny(ctx, linksTable,
		core.P("course_id", courseID), core.P("student_id", studentID))
	if err != nil {
		return Result{}, err
	}
	if exists {
		return Result{Message: "Student already in course"}, nil
	}
	ok, err := svc.gw.Insert(ctx, linksTable,
		core.P("course_id", courseID), core.P("student_id", studentID))
	if err != nil {
		return Result{}, err
	}
	return Result{OK: ok}, nil
}

// RemoveStudent drops studentID's enrollment link for courseID.
func (svc *Service) RemoveStudent(ctx context.Context, courseID, studentID int) (bool, error) {
	return svc.gw.Delete(ctx, linksTable,
		core.P("course_id", courseID), core.P("student_id", studentID))
}

// GetTeacherID returns the owning teacher's id, or 0 if the course is absent.
func (svc *Service) GetTeacherID(ctx context.Context, courseID int) (int, error) {
	row, err := svc.gw.ReadRow(ctx,
		"SELECT teacher_id FROM courses WHERE id = $1", core.P("id", courseID))
	if err != nil || row == nil {
		return 0, err
	}
	r := core.NewRow(row)
	teacherID := r.Int(0)
	return teacherID, r.Err()
}
