package matching

import (
	"math"
	"sort"
	"strings"

	"talent-match-workers/internal/common/optional"
	"talent-match-workers/internal/models"
)

// languageAliases maps ISO codes and common native spellings onto one name.
var languageAliases = map[string]string{
	"en": "english", "eng": "english", "anglais": "english", "inglés": "english", "englisch": "english",
	"fr": "french", "fra": "french", "fre": "french", "français": "french", "francais": "french",
	"it": "italian", "ita": "italian", "italiano": "italian",
	"de": "german", "deu": "german", "ger": "german", "deutsch": "german", "allemand": "german",
	"es": "spanish", "spa": "spanish", "español": "spanish", "espanol": "spanish",
	"zh": "mandarin", "chinese": "mandarin", "中文": "mandarin", "普通话": "mandarin",
	"ja": "japanese", "jpn": "japanese", "日本語": "japanese",
	"ar": "arabic", "ara": "arabic", "العربية": "arabic",
	"ru": "russian", "rus": "russian", "русский": "russian",
	"pt": "portuguese", "por": "portuguese", "português": "portuguese",
	"ko": "korean", "kor": "korean", "한국어": "korean",
}

// NormalizeTalent never fails: unrecognized values are kept as unknown
// categories and blank fields become absent.
func NormalizeTalent(r models.TalentRecord) Talent {
	t := Talent{
		ID:              strings.TrimSpace(r.ID),
		CurrentLevel:    normalizeLevel(r.RoleLevel),
		CurrentLocation: parsePlace(r.CurrentLocation),
		Mobility:        ParseMobility(r.Preferences.Mobility),
		Divisions:       normalizeSet(r.Divisions, normalizeTag),
		Languages:       normalizeSet(r.Languages, normalizeLanguage),
		Assessments:     normalizeAssessments(r.AssessmentScores),
	}

	levels := make(map[RoleLevel]struct{}, len(r.Preferences.TargetRoleLevels))
	for _, raw := range r.Preferences.TargetRoleLevels {
		if lvl, ok := ParseRoleLevel(raw); ok {
			levels[lvl] = struct{}{}
		}
	}
	for lvl := range levels {
		t.TargetLevels = append(t.TargetLevels, lvl)
	}
	sort.Slice(t.TargetLevels, func(i, j int) bool { return t.TargetLevels[i] < t.TargetLevels[j] })

	for _, raw := range r.Preferences.TargetLocations {
		if p := parsePlace(raw); !p.Empty() {
			t.TargetLocations = append(t.TargetLocations, p)
		}
	}

	if r.YearsInLuxury != nil {
		t.YearsInLuxury = optional.Some(max(*r.YearsInLuxury, 0))
	}

	return t
}

func NormalizeOpportunity(r models.OpportunityRecord) Opportunity {
	o := Opportunity{
		ID:                strings.TrimSpace(r.ID),
		Level:             normalizeLevel(r.RoleLevel),
		Division:          tagValue(r.Division),
		Location:          Place{City: textValue(r.Location.City), Country: textValue(r.Location.Country)},
		RequiredLanguages: normalizeSet(r.RequiredLanguages, normalizeLanguage),
	}
	if r.MinExperienceYears != nil {
		o.MinExperienceYears = optional.Some(max(*r.MinExperienceYears, 0))
	}
	return o
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTag folds "Leather Goods" and "leather-goods" into "leather_goods".
func normalizeTag(s string) string {
	s = normalizeText(s)
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

// NormalizeDivision returns the comparable form of a division tag.
func NormalizeDivision(s string) string {
	return normalizeTag(s)
}

func tagValue(s string) optional.Value[string] {
	if s = normalizeTag(s); s == "" {
		return optional.None[string]()
	}
	return optional.Some(s)
}

func normalizeLanguage(s string) string {
	s = normalizeText(s)
	if canonical, ok := languageAliases[s]; ok {
		return canonical
	}
	return s
}

func textValue(s string) optional.Value[string] {
	if s = normalizeText(s); s == "" {
		return optional.None[string]()
	}
	return optional.Some(s)
}

func normalizeLevel(raw string) LevelCategory {
	c := LevelCategory{Raw: normalizeText(raw)}
	if lvl, ok := ParseRoleLevel(raw); ok {
		c.Level = optional.Some(lvl)
	}
	return c
}

// parsePlace reads "city" or "city, region, country". The last segment is
// taken as the country when there is more than one.
func parsePlace(raw string) Place {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = normalizeText(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return Place{}
	case 1:
		return Place{City: optional.Some(parts[0])}
	default:
		return Place{City: optional.Some(parts[0]), Country: optional.Some(parts[len(parts)-1])}
	}
}

// normalizeSet maps, drops blanks, dedupes and sorts.
func normalizeSet(in []string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = norm(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// normalizeAssessments keeps recognized, finite scores clamped to [0,100].
// When several raw names map to one dimension, the exact canonical name wins,
// otherwise the highest score is kept.
func normalizeAssessments(in map[string]float64) map[AssessmentDimension]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[AssessmentDimension]float64, len(in))
	exact := make(map[AssessmentDimension]bool, len(in))
	for name, score := range in {
		dim, ok := ParseAssessmentDimension(name)
		if !ok || math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		score = clampScore(score)
		switch {
		case name == string(dim):
			out[dim] = score
			exact[dim] = true
		case exact[dim]:
		default:
			if prev, seen := out[dim]; !seen || score > prev {
				out[dim] = score
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 100)
}
