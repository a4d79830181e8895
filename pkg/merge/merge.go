// FILE: pkg/merge/merge.go
// PURPOSE: Field-level combinators for folding oracle patches into records

package merge

// Text overwrites the existing scalar only when the proposed value is
// present and non-empty. Existing data is never cleared.
func Text(existing, proposed *string) *string {
	if proposed == nil || *proposed == "" {
		return existing
	}
	v := *proposed
	return &v
}

// Union merges a proposed list into the existing one, preserving the
// existing order and de-duplicating. An empty proposal keeps the
// existing list untouched.
func Union(existing, proposed []string) []string {
	if len(proposed) == 0 {
		return existing
	}

	seen := make(map[string]struct{}, len(existing)+len(proposed))
	result := make([]string, 0, len(existing)+len(proposed))

	for _, v := range existing {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	for _, v := range proposed {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
