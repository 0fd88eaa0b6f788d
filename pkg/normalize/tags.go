package normalize

import (
	"regexp"
	"strings"
)

var (
	tagSplitPattern = regexp.MustCompile(`[\s/\\|,;:]+`)
	tagCleanPattern = regexp.MustCompile(`[^\w\s\-_]`)
)

// Tags turns free-text attribute values into a comma-separated Shopify tag
// list: tokens are split on whitespace and major separators, stripped of
// special characters (hyphen and underscore survive as connectors),
// lowercased, deduplicated preserving order. Single-character tokens are
// dropped as noise.
func Tags(values ...string) string {
	var tags []string
	seen := make(map[string]struct{})

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		for _, part := range tagSplitPattern.Split(value, -1) {
			tag := strings.TrimSpace(tagCleanPattern.ReplaceAllString(part, ""))
			tag = strings.ToLower(tag)
			if len(tag) < 2 {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return strings.Join(tags, ", ")
}
