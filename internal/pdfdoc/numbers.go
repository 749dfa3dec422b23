package pdfdoc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	noteRefPattern = regexp.MustCompile(`^\d{1,2}(\.\d)?$`)
	numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	nilLiterals    = map[string]bool{"-": true, "–": true, "—": true, "nil": true}
)

const footnoteTrimSet = "*#†‡ \t"

// ParseNumber converts an Indian-format financial cell to a float.
// Parenthesised values are negative; a bare dash or "Nil" means zero.
// The second return value reports whether the cell held a number at all.
func ParseNumber(s string) (float64, bool) {
	s = strings.Trim(s, footnoteTrimSet)
	if s == "" {
		return 0, false
	}
	if nilLiterals[strings.ToLower(s)] {
		return 0, true
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// IsNoteRef reports whether a cell looks like a note reference such as
// "24" or "2.1" rather than a monetary value.
func IsNoteRef(s string) bool {
	return noteRefPattern.MatchString(strings.TrimSpace(s))
}

// IsNumericCell reports whether a cell parses as a monetary value once
// formatting is stripped. Note references are excluded: a short integer
// in a middle column is a pointer into the notes, not an amount.
func IsNumericCell(s string) bool {
	s = strings.Trim(s, footnoteTrimSet)
	if s == "" {
		return false
	}
	if nilLiterals[strings.ToLower(s)] {
		return true
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return numericPattern.MatchString(s)
}
