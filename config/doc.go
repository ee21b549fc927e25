// Package config provides the decoding pipeline shared by datasets and manifests.
//
// The package uses an interface-based design with four extension points:
//   - Parser: decodes raw data into a target, with root path navigation
//   - DataFetcher: retrieves raw data (file, embedded filesystem, memory)
//   - Validator: validates the target after parsing
//   - Defaulter: applies default values before validation
//
// # Path Navigation
//
// Provider accepts a root path expression that selects part of the
// document before it is decoded:
//
//	".entries"                  -> doc["entries"]
//	".hits.hits[]._source"      -> doc["hits"]["hits"][*]["_source"]
//	"."                         -> entire document
//
// Parser implementations handle path navigation. The JSON parser in
// config/parser/json supports the full grammar; the YAML parser in
// config/parser/yaml supports dotted paths through goccy/go-yaml PathString.
//
// # Example
//
//	var books []Book
//	provider := config.Provider(&books, ".entries")
//	result, err := provider(jsonparser.NewParser(), fetcher)
package config
