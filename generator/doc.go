// Package generator hosts provider instances behind one seeded random source.
//
// A Generator is the value callers ask for fake data:
//
//	gen := generator.New(generator.WithSeed(42))
//
//	err := gen.AddProvider(libraryType)
//	if err != nil {
//		return err
//	}
//
//	book, err := gen.Generate("book")
//
// Providers added later shadow methods of the same name added earlier.
// Every provider draws from the generator's source, so a fixed seed replays
// the same picks. A Generator is not safe for concurrent use.
//
// NewModule exposes a Generator to Fx under a name tag, in the same way other
// named modules are wired into the application.
package generator
