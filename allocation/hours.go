package allocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseHours converts an hour text value to decimal hours. An empty value
// is zero; a value containing ":" is read as "H:MM" (h + m/60), with either
// component failing to parse yielding zero; anything else is read as a
// plain number, defaulting to zero on failure.
func ParseHours(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH != nil || errM != nil {
			return decimal.Zero
		}
		return decimal.NewFromInt(int64(h)).
			Add(decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(60)))
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatHours renders decimal hours as "H:MM", rounded to the nearest
// minute. Negative input renders as "0:00".
func FormatHours(d decimal.Decimal) string {
	total := d.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
