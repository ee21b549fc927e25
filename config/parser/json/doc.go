// Package json provides a JSON parser implementation for the config package.
//
// Documents are decoded with github.com/goccy/go-json into a generic tree of
// map[string]any, []any, string, float64, bool and nil. The root path is then
// resolved with package rootpath, including the "[]" flatten marker.
//
// Usage:
//
//	parser := json.NewParser()
//	var tree any
//	err := parser.Parse(data, &tree, ".hits.hits[]._source")
//
// A target other than *any receives the selected subtree re-encoded and
// decoded into its own type:
//
//	var books []Book
//	err := parser.Parse(data, &books, ".entries")
package json
