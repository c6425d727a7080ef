// Package yaml wraps [github.com/goccy/go-yaml] with JSON schema validation
// and errors that annotate the offending source.
package yaml
