// Package dataset loads structured datasets from files.
//
// The format is chosen by file extension; only JSON is registered by default
// and any other extension fails with ErrUnsupportedFormat, classified as a
// configuration error. The root path is validated before the file is read.
// Read errors, decode errors and lookup errors are returned as they are.
package dataset
