// Package fakedata wires dataset-backed fake-data generators into an Fx application.
//
// Provider types are declared with package provider, or in YAML with package
// manifest, and served through named generators:
//
//	app := fakedata.NewApp(
//		fakedata.WithLogLevel("info"),
//		fakedata.WithManifest("fake", "datasets/library.yaml", generator.WithSeed(42)),
//		fakedata.WithModules(myModule),
//	)
//
// Modules receive the generator with the `name:"fake"` tag.
package fakedata
