// Package manifest declares provider types in YAML instead of code.
//
// A manifest lists, per provider type, the datasets to attach:
//
//	providers:
//	  library:
//	    datasets:
//	      - name: books
//	        file: books.json
//	        root: .entries
//	        picker: book
//
// Relative file names are resolved against the manifest's directory. The root
// defaults to "." and is checked when the manifest is loaded. Methods with
// code bodies cannot be expressed in YAML; pass them to Types as extra
// provider options keyed by type name.
package manifest
