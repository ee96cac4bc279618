package fixture

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	keysID          = []string{"id"}
	keysDate        = []string{"date"}
	keysTime        = []string{"time", "kickOffTime", "kickoff_time"}
	keysHomeTeam    = []string{"home_team", "homeTeam"}
	keysAwayTeam    = []string{"away_team", "awayTeam"}
	keysCompetition = []string{"competition"}
	keysVenue       = []string{"venue"}
	keysOpposition  = []string{"opposition"}
	keysLocation    = []string{"location"}
	keysScore       = []string{"score"}
	keysCompleted   = []string{"is_completed", "isCompleted"}
	keysHomeScore   = []string{"home_score", "homeScore"}
	keysAwayScore   = []string{"away_score", "awayScore"}
	keysSeason      = []string{"season"}
	keysTicketLink  = []string{"ticket_link", "ticketLink"}
	keysSource      = []string{"source"}
)

var (
	dateLayouts = []string{dateLayout, "02/01/2006", "2/1/2006", "02-01-2006", "2006/01/02"}
	timeLayouts = []string{"15:04", "15:04:05", "15.04", "3:04pm", "3:04 pm", "3pm", "3 pm"}
)

func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func present(raw map[string]any, keys ...string) bool {
	_, ok := lookup(raw, keys...)
	return ok
}

func lookupString(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	s, _ := stringValue(v)
	return s
}

func lookupStringPtr(raw map[string]any, keys ...string) *string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	s, ok := stringValue(v)
	if !ok {
		return nil
	}
	return &s
}

func lookupInt(raw map[string]any, keys ...string) *int {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	n, ok := intValue(v)
	if !ok {
		return nil
	}
	return &n
}

func lookupBool(raw map[string]any, keys ...string) *bool {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	b, ok := boolValue(v)
	if !ok {
		return nil
	}
	return &b
}

func stringValue(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value), true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	default:
		return "", false
	}
}

func intValue(v any) (int, bool) {
	var n float64
	switch value := v.(type) {
	case int:
		n = float64(value)
	case int64:
		n = float64(value)
	case float64:
		n = value
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		n = float64(parsed)
	default:
		return 0, false
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func boolValue(v any) (bool, bool) {
	switch value := v.(type) {
	case bool:
		return value, true
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	case float64:
		switch value {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	case int:
		switch value {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// normalizeDate returns the ISO date and, when the input carried a
// timestamp, the HH:MM portion of it.
func normalizeDate(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(dateLayout), t.Format("15:04")
	}
	if len(raw) > 10 && (raw[10] == 'T' || raw[10] == ' ') {
		datePart, clock := raw[:10], normalizeTime(raw[11:])
		if d, _ := normalizeDate(datePart); d != "" {
			return d, clock
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout), ""
		}
	}
	return raw, ""
}

func normalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if len(raw) > 8 {
		if t, err := time.Parse("15:04:05Z07:00", raw); err == nil {
			return t.Format("15:04")
		}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.ToLower(raw)); err == nil {
			return t.Format("15:04")
		}
	}
	return raw
}
