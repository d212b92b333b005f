package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
	testutil "github.com/darasa-app/backend/tests"
)

func courseRow(id, teacherID int64, name, desc string) []interface{} {
	return []interface{}{id, teacherID, name, desc}
}

func TestGetCoursesByRole(t *testing.T) {
	enrolledQuery := "SELECT courses.* FROM courses " +
		"JOIN course_student_links ON courses.id = course_student_links.course_id " +
		"WHERE course_student_links.student_id = $1"
	ownedQuery := "SELECT * FROM courses WHERE teacher_id = $1"

	gw := &testutil.FakeGateway{Rows: map[string][][]interface{}{
		enrolledQuery: {courseRow(1, 9, "Hisabati", "Algebra I")},
		ownedQuery: {
			courseRow(1, 9, "Hisabati", "Algebra I"),
			courseRow(2, 9, "Fizikia", "Mechanics"),
		},
	}}
	svc := NewService(gw)
	ctx := context.Background()

	courses, err := svc.GetCourses(ctx, user.User{ID: 4, Role: user.RoleStudent})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Hisabati", courses[0].Name)

	courses, err = svc.GetCourses(ctx, user.User{ID: 9, Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestGetByIDAbsent(t *testing.T) {
	svc := NewService(&testutil.FakeGateway{})

	crs, err := svc.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, crs)
}

func TestAddCourse(t *testing.T) {
	gw := &testutil.FakeGateway{
		InsertReturningFn: func(table, outputColumn string, values ...core.Param) (interface{}, error) {
			return int64(7), nil
		},
	}
	svc := NewService(gw)

	crs, err := svc.AddCourse(context.Background(), Course{TeacherID: 9, Name: "Hisabati", Description: "Algebra I"})
	require.NoError(t, err)
	assert.Equal(t, 7, crs.ID)

	inserts := gw.CallsTo("InsertReturning")
	require.Len(t, inserts, 1)
	assert.Equal(t, "courses", inserts[0].Table)
	assert.Equal(t, "id", inserts[0].Column)
	assert.Equal(t, 9, testutil.ParamValue(inserts[0].Params, "teacher_id"))
}

func TestDeleteCourseRemovesLinksFirst(t *testing.T) {
	gw := &testutil.FakeGateway{}
	svc := NewService(gw)

	ok, err := svc.DeleteCourse(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	deletes := gw.CallsTo("Delete")
	require.Len(t, deletes, 2)
	assert.Equal(t, "course_student_links", deletes[0].Table)
	assert.Equal(t, 3, testutil.ParamValue(deletes[0].Params, "course_id"))
	assert.Equal(t, "courses", deletes[1].Table)
	assert.Equal(t, 3, testutil.ParamValue(deletes[1].Params, "id"))
}

func TestAddStudent(t *testing.T) {
	t.Run("already enrolled", func(t *testing.T) {
		gw := &testutil.FakeGateway{
			ContainsAnyFn: func(string, ...core.Param) (bool, error) { return true, nil },
		}
		svc := NewService(gw)

		res, err := svc.AddStudent(context.Background(), 3, 4)
		require.NoError(t, err)
		assert.False(t, res.OK)
		assert.Equal(t, "Student already in course", res.Message)
		assert.Empty(t, gw.CallsTo("Insert"))
	})

	t.Run("ok", func(t *testing.T) {
		gw := &testutil.FakeGateway{}
		svc := NewService(gw)

		res, err := svc.AddStudent(context.Background(), 3, 4)
		require.NoError(t, err)
		assert.True(t, res.OK)

		inserts := gw.CallsTo("Insert")
		require.Len(t, inserts, 1)
		assert.Equal(t, "course_student_links", inserts[0].Table)
		assert.Equal(t, 3, testutil.ParamValue(inserts[0].Params, "course_id"))
		assert.Equal(t, 4, testutil.ParamValue(inserts[0].Params, "student_id"))
	})
}

func TestGetTeacherID(t *testing.T) {
	gw := &testutil.FakeGateway{Rows: map[string][][]interface{}{
		"SELECT teacher_id FROM courses WHERE id = $1": {{int64(9)}},
	}}
	svc := NewService(gw)

	teacherID, err := svc.GetTeacherID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 9, teacherID)

	teacherID, err = NewService(&testutil.FakeGateway{}).GetTeacherID(context.Background(), 404)
	require.NoError(t, err)
	assert.Zero(t, teacherID)
}
