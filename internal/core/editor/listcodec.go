package editor

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// EncodeList joins items for display in a single text input.
func EncodeList(items []string) string {
	return strings.Join(items, ", ")
}

// DecodeList splits comma-separated text into trimmed, non-empty items.
// Order is preserved and duplicates are kept.
func DecodeList(text string) []string {
	parts := lo.Map(strings.Split(text, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}

// NormalizeList accepts either raw text or an already decoded list.
// Lists pass through unchanged; text goes through DecodeList.
func NormalizeList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return DecodeList(v)
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		return lo.Map(v, func(item any, _ int) string {
			if s, ok := item.(string); ok {
				return s
			}
			return fmt.Sprint(item)
		})
	default:
		return DecodeList(fmt.Sprint(v))
	}
}
