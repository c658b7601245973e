package model

import "strings"

// NoValue is the value stored for an ESPN table body that contains no cells.
const NoValue = "no value"

// Record is a single key-value unit extracted by a site parser.
//
// The key carries provenance only: either a table ordinal (nhl) or the
// normalized source URL (espn, hockeyref). The statistics themselves live
// in Value as unparsed text. Records are never mutated after construction.
type Record struct {
	// Key is the provenance key with every "." replaced by "_".
	Key string `json:"key" bson:"key"`

	// Value is the extracted table content.
	Value string `json:"value" bson:"value"`
}

// NewRecord creates a Record, normalizing the key with NormalizeKey.
func NewRecord(key, value string) Record {
	return Record{Key: NormalizeKey(key), Value: value}
}

// Document returns the record as the single-entry mapping that is written
// to the datastore, e.g. {"https://www_example_com/": "..."}.
func (r Record) Document() map[string]string {
	return map[string]string{r.Key: r.Value}
}

// NormalizeKey replaces every "." with "_".
// Document stores treat dots in field names as path separators, so keys
// derived from URLs must not contain them.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}
