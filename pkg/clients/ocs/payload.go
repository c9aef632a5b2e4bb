package ocs

import "strconv"

// Helpers for reading the generic value tree the envelope decoder yields.
// Every leaf is a string (the decoder never casts), so numeric and boolean
// fields are parsed here, leniently: the backend is not under our control.

func dataMap(env *Envelope) map[string]any {
	m, ok := env.Data.(map[string]any)
	if !ok {
		return map[string]any{}
	}

	return m
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	switch stringField(m, key) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// stringList normalizes the three serializations a multi-valued field can
// have after XML conversion: absent, a single bare string, or a list. The
// result is always a non-nil slice preserving backend order.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))

		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return []string{}
	}
}

func parseQuota(v any) *Quota {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}

	q := &Quota{}
	q.Free, _ = strconv.ParseInt(stringField(m, "free"), 10, 64)
	q.Used, _ = strconv.ParseInt(stringField(m, "used"), 10, 64)
	q.Total, _ = strconv.ParseInt(stringField(m, "total"), 10, 64)
	q.Relative, _ = strconv.ParseFloat(stringField(m, "relative"), 64)

	return q
}
