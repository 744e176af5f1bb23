package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// suffixRule rewrites a word ending in from into one ending in to.
type suffixRule struct {
	from, to string
}

var uncountable = map[string]struct{}{
	"advice": {}, "aircraft": {}, "bison": {}, "data": {}, "deer": {},
	"equipment": {}, "evidence": {}, "feedback": {}, "fish": {},
	"furniture": {}, "hardware": {}, "information": {}, "luggage": {},
	"means": {}, "media": {}, "metadata": {}, "money": {}, "moose": {},
	"news": {}, "police": {}, "research": {}, "rice": {}, "series": {},
	"sheep": {}, "software": {}, "species": {}, "staff": {}, "traffic": {},
}

// singular -> plural; the inverse table is built in init.
var irregular = map[string]string{
	"analysis":    "analyses",
	"appendix":    "appendices",
	"axis":        "axes",
	"cache":       "caches",
	"calf":        "calves",
	"canoe":       "canoes",
	"cause":       "causes",
	"child":       "children",
	"clause":      "clauses",
	"cookie":      "cookies",
	"crisis":      "crises",
	"criterion":   "criteria",
	"diagnosis":   "diagnoses",
	"echo":        "echoes",
	"elf":         "elves",
	"foot":        "feet",
	"goose":       "geese",
	"half":        "halves",
	"hero":        "heroes",
	"house":       "houses",
	"hypothesis":  "hypotheses",
	"index":       "indices",
	"knife":       "knives",
	"leaf":        "leaves",
	"life":        "lives",
	"loaf":        "loaves",
	"man":         "men",
	"matrix":      "matrices",
	"mouse":       "mice",
	"movie":       "movies",
	"ox":          "oxen",
	"parenthesis": "parentheses",
	"pause":       "pauses",
	"person":      "people",
	"potato":      "potatoes",
	"quiz":        "quizzes",
	"self":        "selves",
	"shelf":       "shelves",
	"shoe":        "shoes",
	"synopsis":    "synopses",
	"thesis":      "theses",
	"thief":       "thieves",
	"toe":         "toes",
	"tomato":      "tomatoes",
	"tooth":       "teeth",
	"use":         "uses",
	"vertex":      "vertices",
	"veto":        "vetoes",
	"wife":        "wives",
	"wolf":        "wolves",
	"woman":       "women",
}

var irregularSingular map[string]string

// Checked in order; the first matching suffix wins.
var singularRules = []suffixRule{
	{"sses", "ss"},
	{"shes", "sh"},
	{"ches", "ch"},
	{"xes", "x"},
	{"zzes", "zz"},
	{"uses", "us"},
	{"ies", "y"},
	{"ss", "ss"},
	{"us", "us"},
	{"is", "is"},
	{"s", ""},
}

var pluralRules = []suffixRule{
	{"ss", "sses"},
	{"sh", "shes"},
	{"ch", "ches"},
	{"x", "xes"},
	{"z", "zes"},
	{"us", "uses"},
	{"s", "ses"},
}

// Irregular forms at least this long also match as a suffix, so
// "warehouses" inflects like "houses".
const minSuffixIrregular = 5

func init() {
	irregularSingular = make(map[string]string, len(irregular))
	for one, many := range irregular {
		irregularSingular[many] = one
	}
}

// Singular inflects the last word of an identifier to its singular form,
// keeping the rest of the identifier and the word's casing:
// "items" -> "item", "lineItems" -> "lineItem", "order_categories" ->
// "order_category", "People" -> "Person".
func Singular(s string) string {
	return inflectLastWord(s, singularWord)
}

// Plural is the inverse of Singular: "item" -> "items", "lineItem" ->
// "lineItems", "Person" -> "People".
func Plural(s string) string {
	return inflectLastWord(s, pluralWord)
}

func singularWord(w string) string {
	if _, ok := uncountable[w]; ok {
		return w
	}

	if one, ok := lookupIrregular(w, irregularSingular); ok {
		return one
	}

	// "ties", "pies": too short for the ies -> y rule
	if strings.HasSuffix(w, "ies") && len(w) <= 4 {
		return strings.TrimSuffix(w, "s")
	}

	for _, rule := range singularRules {
		if strings.HasSuffix(w, rule.from) {
			return strings.TrimSuffix(w, rule.from) + rule.to
		}
	}

	return w
}

func pluralWord(w string) string {
	if _, ok := uncountable[w]; ok {
		return w
	}

	if many, ok := lookupIrregular(w, irregular); ok {
		return many
	}

	if strings.HasSuffix(w, "y") && len(w) > 1 && !isVowel(w[len(w)-2]) {
		return strings.TrimSuffix(w, "y") + "ies"
	}

	for _, rule := range pluralRules {
		if strings.HasSuffix(w, rule.from) {
			return strings.TrimSuffix(w, rule.from) + rule.to
		}
	}

	return w + "s"
}

func lookupIrregular(w string, table map[string]string) (string, bool) {
	if out, ok := table[w]; ok {
		return out, true
	}

	best := ""
	for from := range table {
		if len(from) >= minSuffixIrregular && len(from) > len(best) && strings.HasSuffix(w, from) {
			best = from
		}
	}

	if best == "" {
		return "", false
	}

	return strings.TrimSuffix(w, best) + table[best], true
}

func inflectLastWord(s string, inflect func(string) string) string {
	if s == "" {
		return s
	}

	start := lastWordStart(s)
	head, word := s[:start], s[start:]

	if word == "" {
		return s
	}

	out := inflect(strings.ToLower(word))

	switch {
	case isAllUpper(word):
		out = strings.ToUpper(out)
	case startsUpper(word):
		out = upperFirst(out)
	}

	return head + out
}

// lastWordStart returns the byte offset of the last word of s, using the
// same boundaries as Tokenize.
func lastWordStart(s string) int {
	runes := []rune(s)

	for i := len(runes) - 1; i > 0; i-- {
		if isSeparator(runes[i-1]) || startsToken(runes, i) {
			return len(string(runes[:i]))
		}
	}

	return 0
}

func isAllUpper(s string) bool {
	hasLetter := false

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}

		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}

	return hasLetter && utf8.RuneCountInString(s) > 1
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
