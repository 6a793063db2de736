package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    string
		wantErr string
	}{
		{name: "time", value: time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC), want: "2024-03-09"},
		{name: "time keeps its calendar day", value: time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), want: "2024-03-09"},
		{name: "bytes", value: []byte("2024-01-01"), want: "2024-01-01"},
		{name: "string", value: "2023-12-31", want: "2023-12-31"},
		{name: "datetime string is truncated", value: "2024-01-01 08:15:00", want: "2024-01-01"},
		{name: "datetime bytes are truncated", value: []byte("2024-01-01T08:15:00Z"), want: "2024-01-01"},
		{name: "null", value: nil, wantErr: "cannot scan NULL"},
		{name: "garbage", value: "01/02/2024", wantErr: "cannot parse"},
		{name: "unsupported type", value: int64(20240101), wantErr: "cannot scan int64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &got))
	assert.Equal(t, "2024-02-29", got.String())

	for _, bad := range []string{`20240101`, `"2023-02-29"`, `"2024/01/01"`, `""`} {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(bad), &d), bad)
	}
}

func TestDate_Value(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", v)
}

func TestNewCaseDetail(t *testing.T) {
	start, err := ParseDate("2024-01-01")
	require.NoError(t, err)

	caseFields := CaseLawyerRow{CaseID: 3, CaseName: "Smith v. Jones", ClientName: "Jones Co", CaseStatus: "Open", StartDate: start}

	t.Run("empty input means no case", func(t *testing.T) {
		assert.Nil(t, NewCaseDetail(nil))
		assert.Nil(t, NewCaseDetail([]CaseLawyerRow{}))
	})

	t.Run("unassigned case has no lawyers", func(t *testing.T) {
		detail := NewCaseDetail([]CaseLawyerRow{caseFields})
		require.NotNil(t, detail)
		assert.Equal(t, int64(3), detail.Case.ID)
		assert.Equal(t, "Smith v. Jones", detail.Case.Name)
		assert.NotNil(t, detail.Lawyers)
		assert.Empty(t, detail.Lawyers)
		assert.Zero(t, detail.TotalHours())
	})

	t.Run("rows with a null lawyer are skipped", func(t *testing.T) {
		lawyerID, first, last, role, hours := int64(1), "Ada", "Lovelace", "Lead", 3.5
		assigned := caseFields
		assigned.LawyerID = &lawyerID
		assigned.FirstName = &first
		assigned.LastName = &last
		assigned.Role = &role
		assigned.BillableHours = &hours

		otherID, otherHours := int64(2), 1.25
		partial := caseFields
		partial.LawyerID = &otherID
		partial.BillableHours = &otherHours

		detail := NewCaseDetail([]CaseLawyerRow{assigned, caseFields, partial})
		require.NotNil(t, detail)
		require.Len(t, detail.Lawyers, 2)

		assert.Equal(t, AssignedLawyer{LawyerID: 1, FirstName: "Ada", LastName: "Lovelace", Role: "Lead", BillableHours: 3.5}, detail.Lawyers[0])
		assert.Equal(t, int64(2), detail.Lawyers[1].LawyerID)
		assert.Equal(t, "", detail.Lawyers[1].Role)
		assert.InDelta(t, 4.75, detail.TotalHours(), 1e-9)
	})
}

func TestLawyer_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Lawyer{FirstName: "Ada", LastName: "Lovelace"}.FullName())
}
