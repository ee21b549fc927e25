// Package fault defines the error classes shared by the dataset packages.
//
// Errors are created by the package that detects them and then classified with
// github.com/cockroachdb/errors marks, so callers can branch on the class
// without losing the precise message:
//
//	if errors.Is(err, fault.ErrConfiguration) {
//	    // malformed root, unsupported format, bad declaration
//	}
//
// Two classes exist:
//   - ErrConfiguration: raised while a provider type is being declared
//   - ErrWiring: raised when the bindings of a provider type are materialized
//
// Lookup errors and exhausted picks are deliberately left unclassified.
package fault
