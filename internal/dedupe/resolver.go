// Package dedupe resolves duplicate-title collisions in mapped rows so the
// export satisfies Shopify's uniqueness constraints: every Handle distinct,
// every Option1 Value empty.
package dedupe

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/etecplus/datafeeds/pkg/normalize"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// ErrHandleSpaceExhausted is returned when disambiguation cannot produce a
// unique handle. Hitting it means an internal invariant is broken; the
// resolver never emits colliding handles instead.
var ErrHandleSpaceExhausted = errors.New("handle disambiguation exhausted")

const maxHandleAttempts = 100000

// Resolve rewrites titles, handles, and option values so that no two rows in
// the result share a Handle. Rows sharing a Title are ranked ascending by
// cost (unparsable cost ranks last); the cheapest keeps the original title,
// the rest are retitled "<title> (n)" with n starting at 2. Every row's
// Option1 Value is set to the empty string regardless of grouping.
//
// Row order is preserved. The second return is the number of retitled rows.
func Resolve(rows []domain.MappedRow) ([]domain.MappedRow, int, error) {
	out := make([]domain.MappedRow, len(rows))
	for i := range rows {
		out[i] = rows[i].Clone()
	}

	// Group by exact original title, preserving first-seen group order so
	// handle assignment is deterministic.
	groups := make(map[string][]int)
	var order []string
	for i := range out {
		title := out[i].Title()
		if _, ok := groups[title]; !ok {
			order = append(order, title)
		}
		groups[title] = append(groups[title], i)
	}

	seen := make(map[string]struct{}, len(out))
	retitled := 0

	for _, title := range order {
		ranked := rankByCost(out, groups[title])
		for rank, idx := range ranked {
			row := out[idx]
			if rank > 0 {
				row.Set(domain.FieldTitle, fmt.Sprintf("%s (%d)", title, rank+1))
				retitled++
			}

			handle, err := uniqueHandle(Slugify(row.Title()), seen)
			if err != nil {
				return nil, 0, err
			}
			seen[handle] = struct{}{}
			row.Set(domain.FieldHandle, handle)
			row.Set(domain.FieldOption1Value, "")
		}
	}

	return out, retitled, nil
}

// rankByCost orders group member indexes ascending by cost. The sort is
// stable, so equal costs and unparsable costs keep their input order.
func rankByCost(rows []domain.MappedRow, idxs []int) []int {
	ranked := append([]int(nil), idxs...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return costOf(rows[ranked[a]]) < costOf(rows[ranked[b]])
	})
	return ranked
}

func costOf(row domain.MappedRow) float64 {
	v, ok := normalize.Cost(row.Get(domain.FieldCostPerItem))
	if !ok {
		return math.Inf(1)
	}
	return v
}

// uniqueHandle returns base if free, otherwise the first "base-n" (n from 2)
// not yet taken. Collisions can occur even after title renumbering when a
// source title already carries a matching numeric suffix.
func uniqueHandle(base string, seen map[string]struct{}) (string, error) {
	if _, taken := seen[base]; !taken {
		return base, nil
	}
	for n := 2; n <= maxHandleAttempts; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := seen[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: base %q", ErrHandleSpaceExhausted, base)
}

// Slugify transforms free text into a lowercase, hyphen-separated, URL-safe
// identifier: non-alphanumeric runs become single hyphens, with no leading or
// trailing hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
