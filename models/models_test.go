package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_UnmarshalKeepsDocumentOrder(t *testing.T) {
	var row Row
	err := json.Unmarshal([]byte(`{"ĐƠN HÀNG":"ORD1","KHÁCH HÀNG":"An","MÃ HÀNG":"P1"}`), &row)
	require.NoError(t, err)

	assert.Equal(t, []string{"ĐƠN HÀNG", "KHÁCH HÀNG", "MÃ HÀNG"}, row.Keys())
	assert.Equal(t, "An", row.Value(ColCustomer))
}

func TestRow_UnmarshalValueKinds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		key     string
		want    string
		present bool
	}{
		{name: "string", input: `{"a":"x"}`, key: "a", want: "x", present: true},
		{name: "number keeps literal", input: `{"a":12.50}`, key: "a", want: "12.50", present: true},
		{name: "bool", input: `{"a":true}`, key: "a", want: "true", present: true},
		{name: "null is blank", input: `{"a":null}`, key: "a", want: "", present: true},
		{name: "nested kept as text", input: `{"a":[1,2]}`, key: "a", want: "[1,2]", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row Row
			require.NoError(t, json.Unmarshal([]byte(tt.input), &row))
			got, ok := row.Get(tt.key)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRow_UnmarshalRejectsNonObject(t *testing.T) {
	var row Row
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &row))
}

func TestRow_MarshalInInsertionOrder(t *testing.T) {
	row := NewRow("z", "1", "a", "2")
	row.Set("z", "3")

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"3","a":"2"}`, string(data))
}

func TestRow_Project(t *testing.T) {
	row := NewRow(ColOrder, "ORD1", ColProductCode, "P1")
	assert.Equal(t, []string{"P1", "", "ORD1"}, row.Project([]string{ColProductCode, ColColor, ColOrder}))
}

func TestDistinctProductCodes(t *testing.T) {
	rows := []Row{
		NewRow(ColProductCode, "P1"),
		NewRow(ColProductCode, "P2"),
		NewRow(ColProductCode, "P1"),
		NewRow(ColColor, "red"),
		NewRow(ColProductCode, ""),
	}
	assert.Equal(t, 3, DistinctProductCodes(rows))
	assert.Equal(t, 0, DistinctProductCodes(nil))
}

func TestResultEnvelopesFlatten(t *testing.T) {
	data, err := json.Marshal(ExportResult{
		ActionResult:  Success("ok"),
		FileURL:       "/reports/a.xlsx",
		SheetsCreated: 2,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"ok","file_url":"/reports/a.xlsx","sheets_created":2}`, string(data))
}
