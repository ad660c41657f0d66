package msgfmt

import "strings"

// NumeralSpec describes how a locale writes numbers: a digit
// transliteration table plus separator characters. The zero value is the
// English-like default, ASCII digits with a "." decimal point and no
// grouping.
type NumeralSpec struct {
	// Digits holds the locale's digits for 0-9 in order. Empty means ASCII.
	Digits string
	// DecimalSep separates the integer and fraction parts. Empty means ".".
	DecimalSep string
	// GroupSep separates thousand groups in the integer part. Empty means
	// no grouping is inserted.
	GroupSep string
}

func (s NumeralSpec) decimalSep() string {
	if s.DecimalSep == "" {
		return "."
	}
	return s.DecimalSep
}

func (s NumeralSpec) digitRunes() []rune {
	if s.Digits == "" {
		return nil
	}
	runes := []rune(s.Digits)
	if len(runes) != 10 {
		return nil
	}
	return runes
}

// Format renders a canonical number string (ASCII digits, optional leading
// sign, "." decimal point) in the locale's digit set and separators. Input
// that is not a canonical number is returned unchanged.
func (s NumeralSpec) Format(canonical string) string {
	intPart, fracPart, negative, ok := splitCanonical(canonical)
	if !ok {
		return canonical
	}

	if s.GroupSep != "" && len(intPart) > 3 {
		var grouped strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				grouped.WriteString(s.GroupSep)
			}
			grouped.WriteRune(digit)
		}
		intPart = grouped.String()
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteString(s.decimalSep())
		b.WriteString(fracPart)
	}

	result := b.String()
	if digits := s.digitRunes(); digits != nil {
		var t strings.Builder
		for _, r := range result {
			if r >= '0' && r <= '9' {
				t.WriteRune(digits[r-'0'])
				continue
			}
			t.WriteRune(r)
		}
		result = t.String()
	}
	return result
}

// Parse converts a locale-formatted numeral back to canonical form: group
// separators are removed, the decimal separator becomes "." and locale
// digits map back to ASCII. Runes outside the locale's number alphabet pass
// through unchanged, so non-numeric input degrades to identity.
func (s NumeralSpec) Parse(localized string) string {
	digits := s.digitRunes()
	decimal := s.decimalSep()
	group := s.GroupSep

	var b strings.Builder
	rest := localized
	for len(rest) > 0 {
		if group != "" && strings.HasPrefix(rest, group) {
			rest = rest[len(group):]
			continue
		}
		if decimal != "." && strings.HasPrefix(rest, decimal) {
			b.WriteByte('.')
			rest = rest[len(decimal):]
			continue
		}

		r := []rune(rest)[0]
		mapped := r
		for i, d := range digits {
			if d == r {
				mapped = rune('0' + i)
				break
			}
		}
		b.WriteRune(mapped)
		rest = rest[len(string(r)):]
	}
	return b.String()
}

// splitCanonical validates and splits a canonical number string.
func splitCanonical(canonical string) (intPart, fracPart string, negative, ok bool) {
	if canonical == "" {
		return "", "", false, false
	}

	rest := canonical
	if rest[0] == '-' || rest[0] == '+' {
		negative = rest[0] == '-'
		rest = rest[1:]
	}

	intPart = rest
	if idx := strings.IndexByte(rest, '.'); idx >= 0 {
		intPart = rest[:idx]
		fracPart = rest[idx+1:]
		if fracPart == "" {
			return "", "", false, false
		}
	}
	if intPart == "" {
		return "", "", false, false
	}

	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return "", "", false, false
		}
	}
	return intPart, fracPart, negative, true
}
