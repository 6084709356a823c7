package normalize

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"inventory-manager/core/utils"

	"github.com/mitchellh/mapstructure"
)

// Record is one raw agent-supplied entry of a section.
type Record map[string]any

// FieldMap renames a raw field.
type FieldMap struct {
	From string
	To   string
}

// ApplyMapping returns a copy of r where every present From field is copied to To.
// Absent origins are skipped; untouched fields are carried over unchanged.
func ApplyMapping(r Record, mapping []FieldMap) Record {
	out := make(Record, len(r)+len(mapping))
	for k, v := range r {
		out[k] = v
	}
	for _, m := range mapping {
		if v, ok := r[m.From]; ok {
			out[m.To] = v
		}
	}
	return out
}

// DateOrder is the component order a reformatted date is emitted in.
type DateOrder int

const (
	// DateOrderYMD emits YYYY-MM-DD.
	DateOrderYMD DateOrder = iota
	// DateOrderYDM emits YYYY-DD-MM. OS install dates and battery dates use it.
	DateOrderYDM
)

var datePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ReformatDate re-emits a DD/MM/YYYY value in the requested order.
// The match is positional only: "13/45/2020" still reformats.
// The second return value is false when the value does not match, in which case
// the field must be dropped.
func ReformatDate(value any, order DateOrder) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	if order == DateOrderYDM {
		return m[3] + "-" + m[1] + "-" + m[2], true
	}
	return m[3] + "-" + m[2] + "-" + m[1], true
}

// CoerceNumericOrDefault returns value when it parses as a non-negative number.
func CoerceNumericOrDefault(value any, def float64) float64 {
	f, ok := utils.ToFloat(value)
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// speedBitsThreshold separates Mb/s values from bits/s values.
const speedBitsThreshold = 100000

// NormalizeSpeed returns a port speed in Mb/s. Values above 100000 are taken as
// bits/s and divided by 1,000,000. Non-numeric input yields 0.
func NormalizeSpeed(value any) int {
	f := CoerceNumericOrDefault(value, 0)
	if f > speedBitsThreshold {
		f = f / 1000000
	}
	return int(f)
}

// String returns the trimmed string form of a field, or "" when absent.
func String(r Record, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	return strings.TrimSpace(utils.ToString(v))
}

// FirstNonEmpty returns the first non-empty field among keys.
func FirstNonEmpty(r Record, keys ...string) string {
	for _, key := range keys {
		if s := String(r, key); s != "" {
			return s
		}
	}
	return ""
}

// Int returns a non-negative integer field or def.
func Int(r Record, key string, def int) int {
	v, ok := r[key]
	if !ok {
		return def
	}
	return int(CoerceNumericOrDefault(v, float64(def)))
}

// Bool reads agent booleans ("1", 1, true, "true").
func Bool(r Record, key string) bool {
	v, ok := r[key]
	if !ok {
		return false
	}
	return utils.ToBool(v)
}

// ZeroToEmpty maps the "0" sentinel some agents send for unknown values to "".
func ZeroToEmpty(s string) string {
	if s == "0" {
		return ""
	}
	return s
}

// Decode weakly decodes a raw record into a struct tagged with `mapstructure`.
// Fields that cannot be converted are left at their zero value; the returned
// error only lists them and callers are free to ignore it.
func Decode(r Record, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook:       trimStringsHook,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]any(r))
}

func trimStringsHook(from reflect.Kind, to reflect.Kind, data any) (any, error) {
	if from == reflect.String {
		return strings.TrimSpace(data.(string)), nil
	}
	return data, nil
}
