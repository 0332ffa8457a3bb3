package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// safeInt parses an arbitrary value as an integer, falling back to def.
// Strings are parsed from their first whitespace-separated token, so "3 dagen"
// reads as 3.
func safeInt(v any, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		fields := strings.Fields(t)
		if len(fields) == 0 {
			return def
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// normalizeString lowercases and trims an arbitrary value.
func normalizeString(v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// splitList accepts a list of arbitrary values or a comma/semicolon separated
// string and returns the cleaned, lowercased, non-empty entries.
func splitList(v any) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		parts = t
	case []any:
		for _, e := range t {
			parts = append(parts, normalizeString(e))
		}
	case string:
		parts = strings.Split(strings.ReplaceAll(t, ";", ","), ",")
	default:
		return nil
	}

	var out []string
	for _, p := range parts {
		if cleaned := normalizeString(p); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// toBool interprets the loose truthy values the front-ends send.
func toBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t == 1
	case float64:
		return t == 1
	case string:
		switch normalizeString(t) {
		case "1", "true", "yes", "ja", "y", "on":
			return true
		}
		return false
	default:
		return false
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
