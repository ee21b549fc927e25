// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support for path navigation. Root path expressions are converted
// to YAML path format internally; numeric segments become sequence indexes.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var m Manifest
//	err := parser.Parse(data, &m, ".providers")
//
// Path Conversion:
//   - "." or "" -> unmarshal entire document
//   - ".key" -> "$.key"
//   - ".providers.library" -> "$.providers.library"
//   - ".datasets.0.name" -> "$.datasets[0].name"
//
// The flatten marker "[]" is not supported and fails with ErrFlattenUnsupported.
package yaml
