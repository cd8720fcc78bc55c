package catalog

import "github.com/idlab-discover/dcat-explorer-cli/internal/dcat"

// Items extracts result.items from a decoded response. A missing or
// malformed envelope is an empty result set, not an error.
func Items(body any) []any {
	root, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	result, ok := root["result"].(map[string]any)
	if !ok {
		return nil
	}
	switch v := result["items"]; dcat.Classify(v) {
	case dcat.List:
		return v.([]any)
	case dcat.Object:
		// single-item endpoints occasionally inline the item
		return []any{v}
	default:
		return nil
	}
}
