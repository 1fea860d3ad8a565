package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Consistent(t *testing.T) {
	d := newFullData(3, 1, 2, 1)
	d.groups = []ColumnSpan{{Start: 0, End: 1}}
	g, _, _ := newTestGrid(t, d)
	assert.Empty(t, g.Validate())
}

func TestValidate_InvalidColumnCount(t *testing.T) {
	g, _, _ := newTestGrid(t, newFullData(0, 0, 1))
	issues := g.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "[ERROR] grid: column count 0 must be positive", issues[0].String())
}

func TestValidate_ClampedValues(t *testing.T) {
	d := newFullData(3, 5, 2, -1)
	d.frozenRows = 2
	d.groups = []ColumnSpan{{Start: 2, End: 1}}
	d.widths[1] = -1
	g, _, _ := newTestGrid(t, d)

	var got []string
	for _, is := range g.Validate() {
		got = append(got, is.String())
	}
	assert.Equal(t, []string{
		"[WARN] grid: frozen column count 5 outside 0..3",
		"[WARN] section 1: row count -1 treated as 0",
		"[WARN] section 1: frozen row count 2 outside 0..0",
		"[ERROR] groupings: index out of range: grouping 0 [2,1] is reversed",
		"[WARN] column B: width -1 is not a finite non-negative number",
	}, got)
}

func TestValidate_MissingGeometry(t *testing.T) {
	g, err := New(newFakeData(2, 1))
	require.NoError(t, err)
	issues := g.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].String(), "no geometry provider")
}
