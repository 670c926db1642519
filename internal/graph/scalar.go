package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Decimal is the input scalar for prices. It keeps the caller's value as a
// numeric string; the service layer parses and range-checks it.
type Decimal struct {
	Value string
}

func (Decimal) ImplementsGraphQLType(name string) bool {
	return name == "Decimal"
}

// UnmarshalGraphQL accepts query literals (int32, float64, string) and JSON
// variables (float64, string).
func (d *Decimal) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		d.Value = v
	case float64:
		d.Value = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		d.Value = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int32:
		d.Value = strconv.FormatInt(int64(v), 10)
	case int64:
		d.Value = strconv.FormatInt(v, 10)
	case int:
		d.Value = strconv.Itoa(v)
	case json.Number:
		d.Value = v.String()
	default:
		return fmt.Errorf("Decimal: expected a number or numeric string, got %T", input)
	}
	return nil
}
