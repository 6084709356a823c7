// Package normalize holds the stateless value helpers shared by every asset
// normalizer: field renaming, date reformatting, numeric coercion and weak decoding
// of raw agent records. None of them fail on bad input; values degrade to a default
// or are omitted.
package normalize
