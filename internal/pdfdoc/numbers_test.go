package pdfdoc

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1,234.56", 1234.56, true},
		{"12,34,567.89", 1234567.89, true},
		{"(123.45)", -123.45, true},
		{"(1,000)", -1000, true},
		{"-", 0, true},
		{"–", 0, true},
		{"Nil", 0, true},
		{"NIL", 0, true},
		{"0.01", 0.01, true},
		{"1234.56*", 1234.56, true},
		{"", 0, false},
		{"Revenue", 0, false},
		{"31 March 2024", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsNoteRef(t *testing.T) {
	refs := []string{"24", "2", "2.1", "31.2", " 15 "}
	for _, s := range refs {
		if !IsNoteRef(s) {
			t.Errorf("IsNoteRef(%q) = false, want true", s)
		}
	}

	notRefs := []string{"1,234", "123", "2.15", "24a", "(24)", ""}
	for _, s := range notRefs {
		if IsNoteRef(s) {
			t.Errorf("IsNoteRef(%q) = true, want false", s)
		}
	}
}

func TestIsNumericCell(t *testing.T) {
	numeric := []string{"1,234.56", "(500)", "-", "Nil", "0", "12 345"}
	for _, s := range numeric {
		if !IsNumericCell(s) {
			t.Errorf("IsNumericCell(%q) = false, want true", s)
		}
	}

	nonNumeric := []string{"", "Total expenses", "Note 24", "FY 2023-24"}
	for _, s := range nonNumeric {
		if IsNumericCell(s) {
			t.Errorf("IsNumericCell(%q) = true, want false", s)
		}
	}
}
