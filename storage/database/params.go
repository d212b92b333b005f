package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/darasa-app/backend/core"
)

// bindValue maps a parameter's runtime type to a value the driver can bind.
// The switch is exhaustive on the supported native column types; anything else
// is an explicit error rather than a silently dropped parameter.
func bindValue(p core.Param) (interface{}, error) {
	switch v := p.Value.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case bool:
		return v, nil
	case int:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case time.Time:
		return v, nil
	case []byte:
		return v, nil
	case uuid.UUID:
		return v.String(), nil
	case decimal.Decimal:
		return v.String(), nil
	case time.Duration:
		// bound as a postgres interval literal
		return v.String(), nil
	default:
		return nil, errors.Errorf("unsupported parameter type %T for %q", p.Value, p.Name)
	}
}

func bindAll(params []core.Param) ([]interface{}, error) {
	args := make([]interface{}, 0, len(params))
	for _, p := range params {
		arg, err := bindValue(p)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}
