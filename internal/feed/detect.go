package feed

import "strings"

// DetectSupplier matches a feed file name against each supplier's configured
// keywords (lowercase substring match) and returns the supplier key, or ""
// when no supplier matches. Iteration over supplierKeywords follows the
// given supplier order for determinism.
func DetectSupplier(filename string, suppliers []string, keywords map[string][]string) string {
	name := strings.ToLower(filename)
	for _, supplier := range suppliers {
		for _, kw := range keywords[supplier] {
			if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
				return supplier
			}
		}
	}
	return ""
}
