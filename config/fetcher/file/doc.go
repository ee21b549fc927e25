// Package file provides file-based DataFetcher implementations for the config package.
//
// Data is read from the operating system filesystem or from any fs.FS, for
// example an embed.FS carrying dataset fixtures. The file is read at
// construction time and cached, so every Fetch returns the same bytes even if
// the file changes afterwards. Datasets are loaded once per process.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("testdata/books.json")()
//	if err != nil {
//	    // file not found, permission denied, path is a directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Construction returns an error if the file cannot be read or is a directory
//   - Errors include the file path
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
