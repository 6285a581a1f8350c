package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColLetter(t *testing.T) {
	testCases := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{5, "E"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, colLetter(tc.col), "col %d", tc.col)
	}
}

func TestA1ToRowCol(t *testing.T) {
	testCases := []struct {
		a1  string
		row int
		col int
	}{
		{"A1", 1, 1},
		{"E5", 5, 5},
		{"K12", 12, 11},
		{"AA10", 10, 27},
		{" e5 ", 5, 5},
	}

	for _, tc := range testCases {
		row, col, err := a1ToRowCol(tc.a1)
		require.NoError(t, err, "a1 %q", tc.a1)
		assert.Equal(t, tc.row, row)
		assert.Equal(t, tc.col, col)
	}

	for _, bad := range []string{"", "5", "E", "E0", "5E"} {
		_, _, err := a1ToRowCol(bad)
		assert.Error(t, err, "a1 %q", bad)
	}
}

func TestIsRunFlag(t *testing.T) {
	for _, s := range []string{"RUN", "run", " on ", "1", "TRUE", "yes"} {
		assert.True(t, isRunFlag(s), "flag %q", s)
	}
	for _, s := range []string{"", "0", "off", "done", "FALSE"} {
		assert.False(t, isRunFlag(s), "flag %q", s)
	}
}
