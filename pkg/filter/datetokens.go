package filter

import (
	"strconv"
	"time"

	"github.com/opencost/filterkit/pkg/util/formatutil"
)

// DateToken is a literal substring of a date pattern and the renderer producing its
// replacement from a date.
type DateToken struct {
	Pattern string
	render  func(time.Time) string
}

// Render returns the token's text for t, using t's own location.
func (dt DateToken) Render(t time.Time) string {
	return dt.render(t)
}

// dateTokens is scanned in order when a pattern is compiled. A token whose pattern is a
// substring of another token's pattern MUST come after it (YYYY before YY, MM before M),
// otherwise the shorter token claims part of the longer one. Re-check those containment
// relationships before reordering or adding entries.
var dateTokens = []DateToken{
	{Pattern: "YYYY", render: func(t time.Time) string { return formatutil.PadZero(t.Year(), 4) }},
	{Pattern: "YY", render: func(t time.Time) string {
		year := formatutil.PadZero(t.Year(), 4)
		return year[len(year)-2:]
	}},
	{Pattern: "MM", render: func(t time.Time) string { return formatutil.PadZero(int(t.Month()), 2) }},
	{Pattern: "M", render: func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{Pattern: "DD", render: func(t time.Time) string { return formatutil.PadZero(t.Day(), 2) }},
	{Pattern: "D", render: func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{Pattern: "HH", render: func(t time.Time) string { return formatutil.PadZero(t.Hour(), 2) }},
	{Pattern: "H", render: func(t time.Time) string { return strconv.Itoa(t.Hour()) }},
	{Pattern: "hh", render: func(t time.Time) string { return formatutil.PadZero(clockHour(t), 2) }},
	{Pattern: "h", render: func(t time.Time) string { return strconv.Itoa(clockHour(t)) }},
	{Pattern: "mm", render: func(t time.Time) string { return formatutil.PadZero(t.Minute(), 2) }},
	{Pattern: "m", render: func(t time.Time) string { return strconv.Itoa(t.Minute()) }},
	{Pattern: "ss", render: func(t time.Time) string { return formatutil.PadZero(t.Second(), 2) }},
	{Pattern: "s", render: func(t time.Time) string { return strconv.Itoa(t.Second()) }},
}

// invalidDateText is rendered for every token when the input does not resolve to a date.
const invalidDateText = "NaN"

// DateTokens returns a copy of the ordered token table.
func DateTokens() []DateToken {
	tokens := make([]DateToken, len(dateTokens))
	copy(tokens, dateTokens)
	return tokens
}

// clockHour is the hour on a 12 hour clock, 1 through 12.
func clockHour(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}
