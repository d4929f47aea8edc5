package filter

import (
	"math"
	"reflect"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// maxEpochMillis bounds the epoch millisecond values accepted as dates: +/- 100,000,000
// days around the epoch. Anything beyond is an invalid date.
const maxEpochMillis = 8.64e15

// claim is a range of a date pattern owned by a single token.
type claim struct {
	start, end int
	token      DateToken
}

// datePattern is a date pattern compiled against the token table.
type datePattern struct {
	pattern string
	claims  []claim
}

// compileDatePattern walks the token table in order, and for each token claims the first
// occurrence of its text that does not overlap a range claimed by an earlier token.
func compileDatePattern(pattern string) *datePattern {
	dp := &datePattern{pattern: pattern}

	for _, token := range dateTokens {
		start := dp.findUnclaimed(token.Pattern)
		if start < 0 {
			continue
		}

		dp.claims = append(dp.claims, claim{
			start: start,
			end:   start + len(token.Pattern),
			token: token,
		})
	}

	slices.SortFunc(dp.claims, func(a, b claim) int {
		return a.start - b.start
	})

	return dp
}

func (dp *datePattern) findUnclaimed(text string) int {
	from := 0
	for from+len(text) <= len(dp.pattern) {
		i := strings.Index(dp.pattern[from:], text)
		if i < 0 {
			return -1
		}

		start := from + i
		if !dp.overlaps(start, start+len(text)) {
			return start
		}
		from = start + 1
	}
	return -1
}

func (dp *datePattern) overlaps(start, end int) bool {
	for _, c := range dp.claims {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

// render substitutes each claimed range with its token's text. Unclaimed text, including
// repeated occurrences of an already claimed token, is copied verbatim.
func (dp *datePattern) render(t time.Time, valid bool) string {
	if len(dp.claims) == 0 {
		return dp.pattern
	}

	var sb strings.Builder
	cursor := 0
	for _, c := range dp.claims {
		sb.WriteString(dp.pattern[cursor:c.start])
		if valid {
			sb.WriteString(c.token.Render(t))
		} else {
			sb.WriteString(invalidDateText)
		}
		cursor = c.end
	}
	sb.WriteString(dp.pattern[cursor:])

	return sb.String()
}

// Date returns a filter rendering a date through pattern, e.g. "YYYY-MM-DD HH:mm". The
// pattern is compiled once, here. Each call resolves its argument to a date: processor,
// when not nil, is applied first; numbers are then read as epoch milliseconds in the local
// time zone and time.Time values are rendered in their own location. Anything else is an
// invalid date and every token renders as "NaN".
//
// Only one occurrence of each token is substituted: "YYYY/YYYY" renders as "2020/20YY",
// because the second YYYY is left to the two digit year token. A token only claims text
// that is contiguous in the pattern, never text joined across a range claimed by an earlier
// token: in "DMMD" the month takes "MM", "DD" is not present and the leading "D" is the
// day, so January 5th renders as "501D".
func Date(pattern string, processor Processor[any]) Filter[any, string] {
	dp := compileDatePattern(pattern)

	return func(that any) string {
		value := that
		if processor != nil {
			value = processor(that)
		}

		t, ok := resolveDate(value)
		return dp.render(t, ok)
	}
}

// resolveDate interprets a value as a date. The second return is false for invalid dates.
func resolveDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	}

	if value == nil {
		return time.Time{}, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromEpochMillis(float64(rv.Int()), rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt64 {
			return time.Time{}, false
		}
		return fromEpochMillis(float64(rv.Uint()), int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, false
		}
		return fromEpochMillis(f, int64(f))
	}

	return time.Time{}, false
}

func fromEpochMillis(f float64, ms int64) (time.Time, bool) {
	if math.Abs(f) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
