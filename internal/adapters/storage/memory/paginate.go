package memory

import "strings"

// paginate corta la página pedida (page base 1). Fuera de rango => vacío.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// containsFold: ILIKE '%q%' del lado de memoria.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}
