package domain

import (
	"strconv"
	"strings"
)

// DisplayValue renders the metric value for display according to its
// declared format.
func (m Metric) DisplayValue() string {
	switch m.Format {
	case FormatCurrency:
		return "$" + groupThousands(m.Value, 2)
	case FormatPercentage:
		return shortestFloat(m.Value) + "%"
	default:
		return groupThousands(m.Value, -1)
	}
}

// DisplayChange renders the change fraction as a signed percentage line,
// "N/A" when there is no comparison.
func (m Metric) DisplayChange() string {
	if m.Change == 0 {
		return "N/A"
	}
	if m.Change > 0 {
		return "+" + shortestFloat(m.Change) + "%"
	}
	return shortestFloat(m.Change) + "%"
}

// shortestFloat renders a float with the shortest exact decimal
// representation, so 53000 stays "53000" and 0.045 stays "0.045".
func shortestFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// groupThousands formats with comma thousands separators. digits fixes the
// fractional width; -1 keeps the shortest exact representation, so whole
// numbers render without a decimal point.
func groupThousands(f float64, digits int) string {
	s := strconv.FormatFloat(f, 'f', digits, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
