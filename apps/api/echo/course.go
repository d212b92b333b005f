package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core/course"
	"github.com/darasa-app/backend/core/user"
)

type courseApi struct {
	svc   *course.Service
	users *user.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, users *user.Service) {
	api := courseApi{svc: svc, users: users}

	cg := g.Group("/course", jwt)
	cg.GET("/get-courses", api.getCourses)
	cg.GET("/get-course-by-id/:courseId", api.getCourseByID)
	cg.GET("/get-students-in-course/:courseId", api.getStudentsInCourse)

	// teacher-only endpoints
	tg := cg.Group("", teacherMiddleware())
	tg.POST("/add-course", api.addCourse)
	tg.PUT("/edit-course", api.editCourse)
	tg.DELETE("/delete-course/:courseId", api.deleteCourse)
	tg.POST("/add-student-to-course", api.addStudents)
	tg.POST("/remove-student-from-course", api.removeStudents)
}

func (api *courseApi) getCourses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	usr, err := api.users.GetByID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	if usr == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user token.")
	}

	courses, err := api.svc.GetCourses(ctx.Request().Context(), *usr)
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) getCourseByID(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseId")
	if err != nil {
		return err
	}
	crs, err := api.svc.GetByID(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if crs == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found.")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) getStudentsInCourse(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseId")
	if err != nil {
		return err
	}
	students, err := api.users.GetStudentsInCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "listing course students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *courseApi) addCourse(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data course.Course
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Course")
	}

	// the owner is always the caller
	data.TeacherID = claims.UserID
	crs, err := api.svc.AddCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) editCourse(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data course.Course
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Course")
	}

	data.TeacherID = claims.UserID
	ok, err := api.svc.EditCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "editing course")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to edit course.")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *courseApi) deleteCourse(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseId")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to delete course.")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *courseApi) addStudents(ctx echo.Context) error {
	data, err := api.bindManagedEnrollment(ctx)
	if err != nil {
		return err
	}
	for _, studentID := range data.StudentIDs {
		if _, err = api.svc.AddStudent(ctx.Request().Context(), data.CourseID, studentID); err != nil {
			return errors.Wrap(err, "enrolling student")
		}
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *courseApi) removeStudents(ctx echo.Context) error {
	data, err := api.bindManagedEnrollment(ctx)
	if err != nil {
		return err
	}
	for _, studentID := range data.StudentIDs {
		ok, err := api.svc.RemoveStudent(ctx.Request().Context(), data.CourseID, studentID)
		if err != nil {
			return errors.Wrap(err, "unenrolling student")
		}
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove student from course.")
		}
	}
	return ctx.NoContent(http.StatusOK)
}

// bindManagedEnrollment binds an EnrollmentRequest and checks that the caller
// owns the course.
func (api *courseApi) bindManagedEnrollment(ctx echo.Context) (EnrollmentRequest, error) {
	var data EnrollmentRequest
	claims, err := getContextClaims(ctx)
	if err != nil {
		return data, err
	}
	if err = ctx.Bind(&data); err != nil {
		return data, errors.Wrap(err, "binding to EnrollmentRequest")
	}
	if err = data.Validate(); err != nil {
		return data, err
	}

	teacherID, err := api.svc.GetTeacherID(ctx.Request().Context(), data.CourseID)
	if err != nil {
		return data, errors.Wrap(err, "finding course teacher")
	}
	if teacherID != claims.UserID {
		return data, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to manage this course.")
	}
	return data, nil
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
