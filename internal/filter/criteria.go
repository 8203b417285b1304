package filter

// Criteria is a sparse set of search values. Nested groups are plain maps.
type Criteria map[string]any

// Lookup walks path through nested maps. It reports false as soon as a key
// is missing or an intermediate value is not a map.
func (c Criteria) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur any = c
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Criteria:
		return m, true
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}
