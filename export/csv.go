package export

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Field is one named column value of a record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is an ordered row. The first record's field names form the header.
type Record []Field

// Header returns the column names in order.
func (r Record) Header() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// EncodeCSV renders records as comma separated text with rows joined by
// "\n" and no trailing newline. Zero records encode to "".
func EncodeCSV(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	header := records[0].Header()

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, rec := range records {
		byName := make(map[string]interface{}, len(rec))
		for _, f := range rec {
			byName[f.Name] = f.Value
		}
		cells := make([]string, len(header))
		for i, h := range header {
			cells[i] = FormatValue(byName[h])
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// FormatValue renders a single cell. Nil is empty, strings are quoted only
// when they contain a comma, quote or newline, and composite values are
// JSON encoded and always quoted.
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		if strings.ContainsAny(s, ",\"\n") {
			return quote(s)
		}
		return s
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return quote(fmt.Sprint(rv.Interface()))
		}
		return quote(string(data))
	}
	return fmt.Sprint(rv.Interface())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
