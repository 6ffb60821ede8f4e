package sqlite

import (
	"fmt"
	"strings"
	"time"

	"todo-store/internal/query"
)

// CompileFilter renders a query expression as a parameterised WHERE clause
// body. Unset columns are NULL in SQL, which already gives comparisons
// against them a non-true result.
func CompileFilter(e query.Expr) (string, []interface{}, error) {
	var args []interface{}
	clause, err := compile(e, &args)
	if err != nil {
		return "", nil, err
	}
	return clause, args, nil
}

func compile(e query.Expr, args *[]interface{}) (string, error) {
	switch n := e.(type) {
	case query.Compare:
		if !n.Field.Valid() {
			return "", fmt.Errorf("unknown field %q", n.Field)
		}
		value, err := columnValue(n.Field, n.Value)
		if err != nil {
			return "", err
		}
		*args = append(*args, value)
		return fmt.Sprintf("%s %s ?", n.Field, n.Op), nil
	case query.NotNull:
		if !n.Field.Valid() {
			return "", fmt.Errorf("unknown field %q", n.Field)
		}
		return fmt.Sprintf("%s IS NOT NULL", n.Field), nil
	case query.And:
		return compileGroup(n, " AND ", "1 = 1", args)
	case query.Or:
		return compileGroup(n, " OR ", "1 = 0", args)
	default:
		return "", fmt.Errorf("unsupported filter node %T", e)
	}
}

func compileGroup(children []query.Expr, sep, empty string, args *[]interface{}) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		part, err := compile(child, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func columnValue(f query.Field, v interface{}) (interface{}, error) {
	switch f {
	case query.FieldDateStart, query.FieldDateEnd:
		if t, ok := v.(time.Time); ok {
			return FormatTimeForDB(t), nil
		}
	case query.FieldNumber:
		if n, ok := v.(int); ok {
			return int64(n), nil
		}
	case query.FieldIsActive:
		if b, ok := v.(bool); ok {
			return FormatBoolPtrForDB(&b), nil
		}
	case query.FieldID, query.FieldTaskName:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) does not fit field %s", v, v, f)
}
