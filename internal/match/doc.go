// Package match provides the name transforms used to pair source keys with
// struct fields and to derive type names from list field names.
//
// Key functions:
//   - Tokenize, NormalizeIdent: split and fold identifiers for comparison
//   - ToPascal, ToCamel, ToSnake, Capitalize: case transforms
//   - Singular, Plural: English inflection of the last word of an identifier
//   - Levenshtein, Similarity: edit distance used to rank suggestions
package match
