// Package config loads, validates and writes the folio configuration file.
//
// Documents are validated against a JSON schema reflected from [Config]
// before they are decoded. Checks the schema cannot express (CEL compilation,
// key bind conflicts) run after decoding and report the offending field.
package config

//go:generate sh -c "cd ../.. && go run ./internal/schemagen -o pkg/config/config.v1beta1.json"
