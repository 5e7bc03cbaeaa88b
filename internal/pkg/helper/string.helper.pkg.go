package helper

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ParseAmount reads a form amount; anything unparsable or negative is 0.
// Fractions are truncated, the currency has no minor unit.
func ParseAmount(payload string) int64 {
	payload = strings.TrimSpace(strings.ReplaceAll(payload, ",", ""))
	if payload == "" {
		return 0
	}
	if v, err := strconv.ParseInt(payload, 10, 64); err == nil {
		return lo.Ternary(v < 0, int64(0), v)
	}
	f, err := strconv.ParseFloat(payload, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// ValueOrNA is used for receipt and summary cells.
func ValueOrNA(value string) string {
	return lo.Ternary(strings.TrimSpace(value) == "", "N/A", value)
}
