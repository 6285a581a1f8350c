package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// colLetter converts a 1-based column number to its letter form
// (1 -> "A", 27 -> "AA").
func colLetter(col int) string {
	var b strings.Builder
	for col > 0 {
		col--
		b.WriteByte(byte('A' + col%26))
		col /= 26
	}
	// The loop emits letters least-significant first.
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}

// a1ToRowCol parses an A1 cell reference ("E5") into 1-based row and column.
func a1ToRowCol(a1 string) (row, col int, err error) {
	a1 = strings.ToUpper(strings.TrimSpace(a1))
	i := 0
	for i < len(a1) && a1[i] >= 'A' && a1[i] <= 'Z' {
		col = col*26 + int(a1[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(a1) {
		return 0, 0, fmt.Errorf("not an A1 reference: %q", a1)
	}
	row, err = strconv.Atoi(a1[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("not an A1 reference: %q", a1)
	}
	return row, col, nil
}
