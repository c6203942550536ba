package extract

import (
	"regexp"
	"strings"
	"sync"
)

// labelPatterns are the three extraction shapes tried for one label synonym,
// in this exact order:
//
//	label : value   (colon-delimited)
//	label value     (space-delimited)
//	label - value   (dash-delimited)
//
// The first shape that matches anywhere in the text wins for that synonym.
type labelPatterns struct {
	colon *regexp.Regexp
	space *regexp.Regexp
	dash  *regexp.Regexp
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]labelPatterns{}
)

func patternsFor(synonym string) labelPatterns {
	patternMu.Lock()
	defer patternMu.Unlock()
	if p, ok := patternCache[synonym]; ok {
		return p
	}
	q := regexp.QuoteMeta(synonym)
	p := labelPatterns{
		colon: regexp.MustCompile(`(?i)\b` + q + `\s*:\s*([^\n]+)`),
		// the space shape must not swallow the colon/dash delimiters of the
		// other shapes, so the value may not start with ':' or '-'
		space: regexp.MustCompile(`(?i)\b` + q + `[ \t]+([^\s:\-][^\n]*)`),
		dash:  regexp.MustCompile(`(?i)\b` + q + `\s*-\s*([^\n]+)`),
	}
	patternCache[synonym] = p
	return p
}

// findLabeled tries every synonym in declared order against the text and
// returns the first non-empty match. Synonym list order is the tie-break
// policy: put the most specific wording first.
func findLabeled(text string, synonyms []string) (value, label string, ok bool) {
	for _, syn := range synonyms {
		p := patternsFor(syn)
		for _, re := range []*regexp.Regexp{p.colon, p.space, p.dash} {
			if m := re.FindStringSubmatch(text); m != nil {
				v := strings.TrimSpace(m[1])
				if v != "" {
					return v, syn, true
				}
			}
		}
	}
	return "", "", false
}

var reDateToken = regexp.MustCompile(`\d{2}[.\-/]\d{2}[.\-/]\d{4}|\d{4}-\d{2}-\d{2}`)

// findLabeledDate behaves like findLabeled but additionally requires a
// date-shaped token inside the matched value, and returns just that token.
// A synonym whose value carries no date is treated as not found, so the
// search continues down the synonym list.
func findLabeledDate(text string, synonyms []string) (value, label string, ok bool) {
	for _, syn := range synonyms {
		p := patternsFor(syn)
		for _, re := range []*regexp.Regexp{p.colon, p.space, p.dash} {
			if m := re.FindStringSubmatch(text); m != nil {
				if d := reDateToken.FindString(m[1]); d != "" {
					return d, syn, true
				}
			}
		}
	}
	return "", "", false
}

// findLabeledAmount behaves like findLabeled but requires the value to parse
// as a monetary amount AND to lead with the number itself. The second rule
// keeps a bare synonym such as "razem" from swallowing the longer-labelled
// line of another field: in "Razem netto 300,00" the space shape would
// otherwise capture "netto 300,00" and record the net total as whatever
// field "razem" belongs to.
func findLabeledAmount(text string, synonyms []string) (amount float64, raw, label string, ok bool) {
	for _, syn := range synonyms {
		p := patternsFor(syn)
		for _, re := range []*regexp.Regexp{p.colon, p.space, p.dash} {
			if m := re.FindStringSubmatch(text); m != nil && leadsWithNumber(m[1]) {
				if v, err := ParseAmount(m[1]); err == nil {
					return v, strings.TrimSpace(m[1]), syn, true
				}
			}
		}
	}
	return 0, "", "", false
}

func leadsWithNumber(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// findLabeledTaxID behaves like findLabeled but requires the value to reduce
// to a well-formed Polish NIP (exactly ten digits). Anything else is treated
// as not found and the next synonym is tried.
func findLabeledTaxID(text string, synonyms []string) (nip, label string, ok bool) {
	for _, syn := range synonyms {
		p := patternsFor(syn)
		for _, re := range []*regexp.Regexp{p.colon, p.space, p.dash} {
			if m := re.FindStringSubmatch(text); m != nil {
				if id, valid := NormalizeNIP(m[1]); valid {
					return id, syn, true
				}
			}
		}
	}
	return "", "", false
}
