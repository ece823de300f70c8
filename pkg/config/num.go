package config

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// Num is a lenient integer option. It accepts numbers and strings with a leading
// integer ("12", "12px", 7.9), anything else marks it invalid so Clamp falls back to the default.
type Num struct {
	Value int
	Valid bool
}

// N makes a valid Num
func N(v int) Num { return Num{Value: v, Valid: true} }

// Int returns the numeric value
func (n Num) Int() int { return n.Value }

// Clamp replaces an invalid value with def and limits the result to [lo, hi]
func (n *Num) Clamp(def, lo, hi int) {
	if !n.Valid {
		n.Value = def
	}
	n.Value = min(max(n.Value, lo), hi)
	n.Valid = true
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *Num) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*n = Num{}
		return nil
	}
	*n = parseNum(value.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler
func (n *Num) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case int64:
		*n = N(int(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			*n = Num{}
			return nil
		}
		*n = N(int(math.Trunc(val)))
	case string:
		*n = parseNum(val)
	default:
		*n = Num{}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Num) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal num: %w", err)
	}
	switch val := v.(type) {
	case float64:
		*n = N(int(math.Trunc(val)))
	case string:
		*n = parseNum(val)
	default:
		*n = Num{}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(n.Value)), nil
}

// JSONSchema describes Num as an integer
func (Num) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer"}
}

func parseNum(s string) Num {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return Num{}
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return Num{}
	}
	return N(v)
}
