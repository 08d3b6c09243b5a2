package matching

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// fingerprint hashes every tunable that can change a score: the weight
// entries in table order and the full scoring configuration. Map-valued
// settings are written in sorted key order.
func fingerprint(weights *WeightTable, sc ScoringConfig) string {
	d := xxhash.New()
	put := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	for _, e := range weights.entries {
		put("w", string(e.Dimension), num(e.Weight))
	}
	put("s", num(sc.RoleLevelStep), num(sc.SameCountryScore), num(sc.CrossCountryScore), num(sc.NeutralScore))

	levels := make([]RoleLevel, 0, len(sc.AssessmentEmphasis))
	for lvl := range sc.AssessmentEmphasis {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	for _, lvl := range levels {
		put(append([]string{"l", strconv.Itoa(int(lvl))}, dimensionNames(sc.AssessmentEmphasis[lvl])...)...)
	}

	divisions := make([]string, 0, len(sc.DivisionEmphasis))
	for div := range sc.DivisionEmphasis {
		divisions = append(divisions, div)
	}
	sort.Strings(divisions)
	for _, div := range divisions {
		put(append([]string{"d", div}, dimensionNames(sc.DivisionEmphasis[div])...)...)
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

func dimensionNames(dims []AssessmentDimension) []string {
	out := make([]string, len(dims))
	for i, dim := range dims {
		out[i] = string(dim)
	}
	return out
}
