// Package provider attaches named datasets to provider types and binds them
// into generator methods.
//
// A provider type is declared in one registration pass. Datasets are loaded
// eagerly, so a malformed root path or an unreadable file fails while the type
// is being declared:
//
//	library, err := provider.NewType("library",
//	    provider.WithDataset("books", "testdata/books.json",
//	        provider.Root(".entries"), provider.PickerMethod("book")),
//	    provider.WithDataset("movies", "testdata/movies.json", provider.Root(".entries")),
//	    provider.WithMethod("book_or_movie", bookOrMovie, provider.Bind("books", "movies")),
//	    provider.WithMethod("book_from_1954", anyBook,
//	        provider.Bind("books"), provider.Match(publishedIn(1954))),
//	)
//
// Decorators are applied in list order, innermost first: Match narrows the
// datasets bound by the Bind decorators listed before it. Match without a
// preceding Bind is a wiring error.
//
// Bindings are resolved once, by Materialize or by the first call to New.
// Resolution fails with a wiring error when a method names an unknown dataset.
// After a successful resolution the registration table is released: datasets
// not bound to any method are no longer referenced by the type.
//
// Every bound method body receives its dataset tuple, in declaration order,
// followed by the caller's arguments:
//
//	func bookOrMovie(p *provider.Provider, args []any, opts ...picker.Option) (any, error) {
//	    both, err := provider.Concat(args[0], args[1])
//	    if err != nil {
//	        return nil, err
//	    }
//	    return p.Pick(both, opts...)
//	}
//
// Types and providers are meant to be declared and instantiated during
// single-threaded setup; they are not safe for concurrent use.
package provider
