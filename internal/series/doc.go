// Package series classifies task names into model series.
//
// A Classifier holds an ordered list of Rules. Each rule is a regular
// expression searched anywhere in the task name; the first rule that matches
// decides the series. A rule either names its series explicitly or returns
// the text it matched (the first capture group when the pattern has one).
//
// DefaultRules returns the built-in table. Rule order matters: more specific
// patterns come before general ones, and a broad early rule shadows narrower
// rules listed after it.
package series
