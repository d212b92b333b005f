package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-app/backend/core"
)

func TestBuildInsert(t *testing.T) {
	query := buildInsert("grades", []core.Param{
		core.P("student_id", 1),
		core.P("course_id", 2),
		core.P("value", 8),
	})
	assert.Equal(t, "INSERT INTO grades (student_id, course_id, value) VALUES ($1, $2, $3)", query)
}

func TestBuildWhere(t *testing.T) {
	where := buildWhere([]core.Param{
		core.P("course_id", 2),
		core.P("student_id", 1),
	})
	assert.Equal(t, "course_id = $1 AND student_id = $2", where)

	assert.Equal(t, "id = $1", buildWhere([]core.Param{core.P("id", 9)}))
}

func TestBindValue(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"nil", nil, nil},
		{"string", "hello", "hello"},
		{"bool", true, true},
		{"int", 7, int64(7)},
		{"int16", int16(1), int64(1)},
		{"int64", int64(42), int64(42)},
		{"float64", 1.5, 1.5},
		{"time", now, now},
		{"bytes", []byte("raw"), []byte("raw")},
		{"uuid", id, id.String()},
		{"decimal", decimal.New(125, -2), "1.25"},
		{"duration", 90 * time.Minute, "1h30m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bindValue(core.P("p", tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindValueUnsupportedType(t *testing.T) {
	type odd struct{ X int }

	_, err := bindValue(core.P("payload", odd{X: 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported parameter type")
	assert.Contains(t, err.Error(), "payload")

	_, err = bindAll([]core.Param{core.P("ok", 1), core.P("bad", odd{})})
	assert.Error(t, err)
}
