package parse

import (
	"strings"

	"github.com/samber/lo"
)

// List returns items of <inp> split by <delim> with surrounding space trimmed.
//
// Empty items are dropped. Returns nil if <inp> has no items.
func List(inp, delim string) []string {
	if delim == "" {
		return lo.Ternary(strings.TrimSpace(inp) == "", nil, []string{strings.TrimSpace(inp)})
	}
	items := lo.Map(strings.Split(inp, delim), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	items = lo.Compact(items)
	return lo.Ternary(len(items) == 0, nil, items)
}

// LastPathItem returns last item in <path> split by <delim> or <path> if <delim> is empty or last item is empty
func LastPathItem(path, delim string) string {
	if delim == "" {
		return path
	}
	item, _ := lo.Last(strings.Split(path, delim))
	return lo.Ternary(item == "", path, item)
}
