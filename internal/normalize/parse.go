package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first forms come before month-first
// ones because the source exports use Indian date conventions.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// text renders a raw value as trimmed text. ok is false when the value is
// absent or blank.
func text(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		s = t
	case []byte:
		s = string(t)
	case time.Time:
		s = t.Format("2006-01-02")
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func parseDate(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		t = t.UTC()
		return &t
	}
	s, ok := text(v)
	if !ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseInt reads a leading integer the way loose spreadsheet values need:
// "5", "5th" and "05" all yield 5. Zero and garbage yield nil.
func parseInt(v any) *int {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int16:
		n = int(t)
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	default:
		s, ok := text(v)
		if !ok {
			return nil
		}
		end := 0
		for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
			end++
		}
		parsed, err := strconv.Atoi(s[:end])
		if err != nil {
			return nil
		}
		n = parsed
	}
	if n == 0 {
		return nil
	}
	return &n
}

func parseFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		s, ok := text(v)
		if !ok {
			return nil
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	return &f
}

func parseBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	s, ok := text(v)
	if !ok {
		return false
	}
	switch strings.ToUpper(s) {
	case "YES", "TRUE", "1", "Y":
		return true
	}
	return false
}
