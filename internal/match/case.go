package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits an identifier into words.
// Separators (_, -, space) always split; case changes split camelCase and
// the end of an acronym.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "line_items" -> ["line", "items"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// NormalizeIdent folds an identifier to lower case without separators, so
// "sample_int", "sampleInt" and "SampleInt" compare equal.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// ToPascal joins the words of s with each word's first letter upper-cased.
// "sample_int" and "sampleInt" both become "SampleInt".
func ToPascal(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, tok := range Tokenize(s) {
		b.WriteString(upperFirst(tok))
	}

	return b.String()
}

// ToCamel is ToPascal with the first word lower-cased: "SampleInt" becomes
// "sampleInt", "ID" becomes "id" and "URLPath" becomes "urlPath".
func ToCamel(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder

	b.Grow(len(s))
	b.WriteString(strings.ToLower(tokens[0]))

	for _, tok := range tokens[1:] {
		b.WriteString(upperFirst(tok))
	}

	return b.String()
}

// ToSnake lower-cases the words of s and joins them with underscores.
func ToSnake(s string) string {
	tokens := Tokenize(s)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}

	return strings.Join(tokens, "_")
}

// Capitalize derives a type name from a field name.
// Underscore-separated names get every word capitalized and the separators
// dropped ("order_item" -> "OrderItem"); any other name only gets its first
// letter upper-cased ("lineItem" -> "LineItem").
func Capitalize(s string) string {
	if !strings.Contains(s, "_") {
		return upperFirst(s)
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, word := range strings.Split(s, "_") {
		b.WriteString(upperFirst(word))
	}

	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new word starts at runes[i], i > 0.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID": lower followed by upper
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the last upper of an acronym belongs to the next word
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
