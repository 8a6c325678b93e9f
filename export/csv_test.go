package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSVEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeCSV(nil))
	assert.Equal(t, "", EncodeCSV([]Record{}))
}

func TestEncodeCSVHeaderAndRows(t *testing.T) {
	records := []Record{
		{{"Name", "Masala Dosa"}, {"Price", 120.5}, {"Qty", 2}, {"Note", nil}},
		{{"Name", "Chai"}, {"Price", 30.0}, {"Qty", 1}, {"Note", "less sugar"}},
	}
	want := "Name,Price,Qty,Note\nMasala Dosa,120.5,2,\nChai,30,1,less sugar"
	assert.Equal(t, want, EncodeCSV(records))
}

func TestFormatValue(t *testing.T) {
	name := "Asha"
	var missing *string
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"nil pointer", missing, ""},
		{"pointer", &name, "Asha"},
		{"plain string", "paid", "paid"},
		{"comma", "Dosa, plain", `"Dosa, plain"`},
		{"quote", `6" pizza`, `"6"" pizza"`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 99.99, "99.99"},
		{"whole float", 150.0, "150"},
		{"object", map[string]string{"table_number": "T1"}, `"{""table_number"":""T1""}"`},
		{"slice", []int{1, 2}, `"[1,2]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestEncodeCSVRoundTripsSpecialCharacters(t *testing.T) {
	values := []string{
		"comma, inside",
		`she said "hi"`,
		"multi\nline",
		`all, of "it"` + "\nhere",
	}
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{{"ID", i}, {"Value", v}}
	}

	r := csv.NewReader(strings.NewReader(EncodeCSV(records)))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(values)+1)
	assert.Equal(t, []string{"ID", "Value"}, rows[0])
	for i, v := range values {
		assert.Equal(t, v, rows[i+1][1])
	}
}

func TestEncodeCSVUsesFirstRecordColumns(t *testing.T) {
	records := []Record{
		{{"A", 1}, {"B", 2}},
		{{"B", 4}, {"C", 5}, {"A", 3}},
	}
	assert.Equal(t, "A,B\n1,2\n3,4", EncodeCSV(records))
}
