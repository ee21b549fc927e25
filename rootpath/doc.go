// Package rootpath implements the root path mini-language used to locate the
// working collection inside a decoded JSON document.
//
// Grammar:
//
//	RootPath := "." | "." Segment ("." Segment)* | RootPath "[]" RootPath
//
// A path walks the document one segment at a time, looking segments up as
// mapping keys or, on sequences, as decimal indexes:
//
//	"."                     -> the whole document
//	".entries"              -> doc["entries"]
//	".data.items.0"         -> doc["data"]["items"][0]
//
// At most one flatten marker "[]" is allowed. The left side must resolve to a
// sequence; the right side is then walked from every element and the results
// are collected in order:
//
//	".hits.hits[]._source"  -> [h["_source"] for h in doc["hits"]["hits"]]
//
// Expressions are validated before any traversal. Every non-empty side must
// start with ".", the expression must not end with "." (unless it is exactly
// "."), must not contain ".." and must not contain more than one "[]".
// Malformed expressions fail with ErrMalformedRoot, classified as a
// configuration error.
package rootpath
