package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/grade"
)

type gradeApi struct {
	svc *grade.Service
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *grade.Service) {
	api := gradeApi{svc: svc}

	gg := g.Group("/grade", jwt)
	gg.GET("/student/:studentId", api.getGradesByStudent)
	gg.GET("/student/:studentId/course/:courseId", api.getStudentGradesAtCourse)
	gg.GET("/average/:studentId", api.getAverageGrade)
	gg.GET("/history/:gradeId", api.getGradeHistory)

	// teacher-only endpoints
	tg := gg.Group("", teacherMiddleware())
	tg.GET("/get-grades/:courseId", api.getGrades)
	tg.POST("/add-grades", api.addGrades)
	tg.POST("/edit-grade", api.editGrade)
	tg.DELETE("/delete-grade/:gradeId", api.deleteGrade)
	tg.POST("/bulk-upload", api.bulkUpload)
}

func (api *gradeApi) getGrades(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseId")
	if err != nil {
		return err
	}
	grades, err := api.svc.GetGrades(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "listing grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) addGrades(ctx echo.Context) error {
	var data []grade.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade list")
	}
	added, err := api.svc.AddGrades(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding grades")
	}
	return ctx.JSON(http.StatusOK, added)
}

func (api *gradeApi) editGrade(ctx echo.Context) error {
	var data grade.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade")
	}
	ok, err := api.svc.EditGrade(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "editing grade")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to edit grade.")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *gradeApi) deleteGrade(ctx echo.Context) error {
	gradeID, err := pathID(ctx, "gradeId")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteGrade(ctx.Request().Context(), gradeID)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to delete grade.")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *gradeApi) bulkUpload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(errors.New("uploaded file is empty"),
			core.FieldError{Field: "file", Error: "file is required and cannot be empty"})
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = f.Close() }()

	result, err := api.svc.BulkUploadFromCSV(ctx.Request().Context(), f, fh.Size)
	if err != nil {
		return errors.Wrap(err, "importing grades")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (api *gradeApi) getGradesByStudent(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	grades, err := api.svc.GetGradesByStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "listing student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) getStudentGradesAtCourse(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	courseID, err := pathID(ctx, "courseId")
	if err != nil {
		return err
	}
	grades, err := api.svc.GetStudentGradesAtCourse(ctx.Request().Context(), studentID, courseID)
	if err != nil {
		return errors.Wrap(err, "listing student course grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) getAverageGrade(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	avg, err := api.svc.GetAverageGrade(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "averaging student grades")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"average": avg})
}

func (api *gradeApi) getGradeHistory(ctx echo.Context) error {
	gradeID, err := pathID(ctx, "gradeId")
	if err != nil {
		return err
	}
	history, err := api.svc.GetGradeHistory(ctx.Request().Context(), gradeID)
	if err != nil {
		return errors.Wrap(err, "listing grade history")
	}
	return ctx.JSON(http.StatusOK, history)
}
