package testutil

import (
	"context"

	"github.com/darasa-app/backend/core"
)

// GatewayCall records one invocation of a FakeGateway method.
type GatewayCall struct {
	Method string
	Table  string
	Query  string
	Column string
	Params []core.Param
}

// FakeGateway is a scriptable core.Gateway for service tests. Read queries
// resolve against Rows; write methods report success unless an override
// function is set. Every invocation is appended to Calls.
type FakeGateway struct {
	Calls []GatewayCall

	// Rows maps a query string to the rows it yields.
	Rows map[string][][]interface{}

	InsertFn          func(table string, values ...core.Param) (bool, error)
	InsertReturningFn func(table, outputColumn string, values ...core.Param) (interface{}, error)
	UpdateFn          func(table string, matchKey core.Param, values ...core.Param) (bool, error)
	DeleteFn          func(table string, matchProps ...core.Param) (bool, error)
	ContainsAnyFn     func(table string, matchProps ...core.Param) (bool, error)
	ReadRowFn         func(query string, params ...core.Param) ([]interface{}, error)
	ReadRowsFn        func(query string, params ...core.Param) ([][]interface{}, error)
}

var _ core.Gateway = (*FakeGateway)(nil)

func (gw *FakeGateway) record(call GatewayCall) {
	gw.Calls = append(gw.Calls, call)
}

// CallsTo returns the recorded calls for one method, in order.
func (gw *FakeGateway) CallsTo(method string) []GatewayCall {
	var calls []GatewayCall
	for _, call := range gw.Calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (gw *FakeGateway) Insert(_ context.Context, table string, values ...core.Param) (bool, error) {
	gw.record(GatewayCall{Method: "Insert", Table: table, Params: values})
	if gw.InsertFn != nil {
		return gw.InsertFn(table, values...)
	}
	return true, nil
}

func (gw *FakeGateway) InsertReturning(_ context.Context, table, outputColumn string, values ...core.Param) (interface{}, error) {
	gw.record(GatewayCall{Method: "InsertReturning", Table: table, Column: outputColumn, Params: values})
	if gw.InsertReturningFn != nil {
		return gw.InsertReturningFn(table, outputColumn, values...)
	}
	return nil, nil
}

func (gw *FakeGateway) Update(_ context.Context, table string, matchKey core.Param, values ...core.Param) (bool, error) {
	gw.record(GatewayCall{Method: "Update", Table: table, Params: append([]core.Param{matchKey}, values...)})
	if gw.UpdateFn != nil {
		return gw.UpdateFn(table, matchKey, values...)
	}
	return true, nil
}

func (gw *FakeGateway) Delete(_ context.Context, table string, matchProps ...core.Param) (bool, error) {
	gw.record(GatewayCall{Method: "Delete", Table: table, Params: matchProps})
	if gw.DeleteFn != nil {
		return gw.DeleteFn(table, matchProps...)
	}
	return true, nil
}

func (gw *FakeGateway) ContainsAny(_ context.Context, table string, matchProps ...core.Param) (bool, error) {
	gw.record(GatewayCall{Method: "ContainsAny", Table: table, Params: matchProps})
	if gw.ContainsAnyFn != nil {
		return gw.ContainsAnyFn(table, matchProps...)
	}
	return false, nil
}

func (gw *FakeGateway) ReadRow(_ context.Context, query string, params ...core.Param) ([]interface{}, error) {
	gw.record(GatewayCall{Method: "ReadRow", Query: query, Params: params})
	if gw.ReadRowFn != nil {
		return gw.ReadRowFn(query, params...)
	}
	rows := gw.Rows[query]
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (gw *FakeGateway) ReadRows(_ context.Context, query string, params ...core.Param) ([][]interface{}, error) {
	gw.record(GatewayCall{Method: "ReadRows", Query: query, Params: params})
	if gw.ReadRowsFn != nil {
		return gw.ReadRowsFn(query, params...)
	}
	return gw.Rows[query], nil
}

func (gw *FakeGateway) Execute(_ context.Context, query string) (int64, error) {
	gw.record(GatewayCall{Method: "Execute", Query: query})
	return 0, nil
}

// ParamValue returns the value bound under name, or nil if absent.
func ParamValue(params []core.Param, name string) interface{} {
	for _, p := range params {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}
