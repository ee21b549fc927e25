package provider_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/0xalexb/hjarta-fakedata/dataset"
	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/logging"
	"github.com/0xalexb/hjarta-fakedata/picker"
	"github.com/0xalexb/hjarta-fakedata/provider"
	"github.com/0xalexb/hjarta-fakedata/random"
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	booksFile  = "../testdata/books.json"
	moviesFile = "../testdata/movies.json"
	alertsFile = "../testdata/alerts.json"
)

func writeJSON(t *testing.T, name, content string) string {
	t.Helper()

	fpath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0o600))

	return fpath
}

func quiet() provider.Option {
	return provider.WithLogger(logging.Discard())
}

// capture records the arguments a method body receives.
func capture(received *[]any) provider.Body {
	return func(_ *provider.Provider, args []any, _ ...picker.Option) (any, error) {
		*received = args

		return nil, nil
	}
}

func pickFirst(p *provider.Provider, args []any, opts ...picker.Option) (any, error) {
	return p.Pick(args[0], opts...)
}

func isEven(entry any) bool {
	n, ok := entry.(float64)

	return ok && int(n)%2 == 0
}

func yearIs(year float64) picker.Match {
	return func(entry any) bool {
		record, ok := entry.(map[string]any)

		return ok && record["year"] == year
	}
}

func TestBind_PrependsDatasetsBeforeCallerArguments(t *testing.T) {
	t.Parallel()

	var received []any

	typ, err := provider.NewType("numbers",
		quiet(),
		provider.WithDataset("a", writeJSON(t, "a.json", `[1, 2]`)),
		provider.WithDataset("b", writeJSON(t, "b.json", `[3, 4]`)),
		provider.WithMethod("both", capture(&received), provider.Bind("a", "b")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	_, err = p.Invoke("both", []any{"x"})
	require.NoError(t, err)

	assert.Equal(t, []any{
		[]any{float64(1), float64(2)},
		[]any{float64(3), float64(4)},
		"x",
	}, received)
}

func TestBind_RepeatedDecoratorsAppendInOrder(t *testing.T) {
	t.Parallel()

	var received []any

	typ, err := provider.NewType("numbers",
		quiet(),
		provider.WithDataset("a", writeJSON(t, "a.json", `[1]`)),
		provider.WithDataset("b", writeJSON(t, "b.json", `[2]`)),
		provider.WithMethod("m", capture(&received), provider.Bind("b"), provider.Bind("a")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	_, err = p.Generate("m")
	require.NoError(t, err)

	assert.Equal(t, []any{[]any{float64(2)}, []any{float64(1)}}, received)
}

func TestMatch_NarrowsCopyOfBoundDataset(t *testing.T) {
	t.Parallel()

	var narrowedArgs, plainArgs []any

	typ, err := provider.NewType("numbers",
		quiet(),
		provider.WithDataset("a", writeJSON(t, "a.json", `[1, 2, 3, 4]`)),
		provider.WithMethod("even", capture(&narrowedArgs), provider.Bind("a"), provider.Match(isEven)),
		provider.WithMethod("all", capture(&plainArgs), provider.Bind("a")),
	)
	require.NoError(t, err)

	bound, err := typ.Materialize()
	require.NoError(t, err)

	datasets, ok := bound.Datasets("even")
	require.True(t, ok)
	assert.Equal(t, []dataset.Dataset{[]any{float64(2), float64(4)}}, datasets)

	variant, ok := bound.Variant("even")
	require.True(t, ok)
	assert.Equal(t, provider.BoundNarrowed, variant)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	_, err = p.Generate("even")
	require.NoError(t, err)

	_, err = p.Generate("all")
	require.NoError(t, err)

	assert.Equal(t, []any{[]any{float64(2), float64(4)}}, narrowedArgs)
	assert.Equal(t, []any{[]any{float64(1), float64(2), float64(3), float64(4)}}, plainArgs)
}

func TestMatch_NarrowsEveryBoundDataset(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("numbers",
		quiet(),
		provider.WithDataset("a", writeJSON(t, "a.json", `[1, 2, 3]`)),
		provider.WithDataset("b", writeJSON(t, "b.json", `[4, 5, 6]`)),
		provider.WithMethod("even", pickFirst, provider.Bind("a", "b"), provider.Match(isEven)),
	)
	require.NoError(t, err)

	bound, err := typ.Materialize()
	require.NoError(t, err)

	datasets, ok := bound.Datasets("even")
	require.True(t, ok)
	assert.Equal(t, []dataset.Dataset{
		[]any{float64(2)},
		[]any{float64(4), float64(6)},
	}, datasets)
}

func TestMatch_WithoutBindingIsWiringError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		decorators []provider.Decorator
	}{
		{name: "match alone", decorators: []provider.Decorator{provider.Match(isEven)}},
		{name: "match before bind", decorators: []provider.Decorator{provider.Match(isEven), provider.Bind("books")}},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			typ, err := provider.NewType("library",
				quiet(),
				provider.WithDataset("books", booksFile, provider.Root(".entries")),
				provider.WithMethod("book", pickFirst, testInfo.decorators...),
			)
			require.NoError(t, err, "wiring is checked at materialization, not declaration")

			p, err := typ.New(random.New(1))
			require.ErrorIs(t, err, provider.ErrMatchWithoutBinding)
			assert.True(t, fault.IsWiring(err))
			assert.Contains(t, err.Error(), "match requires dataset binding first")
			assert.Nil(t, p)
		})
	}
}

func TestMatch_NonSequenceDatasetIsWiringError(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("doc", booksFile),
		provider.WithMethod("m", pickFirst, provider.Bind("doc"), provider.Match(isEven)),
	)
	require.NoError(t, err)

	_, err = typ.Materialize()
	require.ErrorIs(t, err, provider.ErrNotSequence)
	assert.True(t, fault.IsWiring(err))
}

func TestBind_UnknownDatasetIsWiringError(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries")),
		provider.WithMethod("book", pickFirst, provider.Bind("movie")),
	)
	require.NoError(t, err)

	for range 2 {
		p, err := typ.New(random.New(1))
		require.ErrorIs(t, err, provider.ErrDatasetNotFound)
		assert.True(t, fault.IsWiring(err))
		assert.Equal(t, "dataset not found: 'movie'", err.Error())
		assert.Nil(t, p)
	}

	assert.False(t, typ.Materialized())
	assert.Equal(t, []string{"books"}, typ.Datasets(), "failed resolution keeps the table")
}

func TestNewType_MalformedRoot(t *testing.T) {
	t.Parallel()

	for _, root := range []string{"entries.", "ent..ries", ".entries[]genre", "entries[].genre"} {
		t.Run(root, func(t *testing.T) {
			t.Parallel()

			typ, err := provider.NewType("library",
				quiet(),
				provider.WithDataset("books", moviesFile, provider.Root(root)),
			)
			require.ErrorIs(t, err, rootpath.ErrMalformedRoot)
			assert.True(t, fault.IsConfiguration(err))
			assert.Contains(t, err.Error(), "malformed root: "+root)
			assert.Nil(t, typ)
		})
	}
}

func TestNewType_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	fpath := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(fpath, []byte("title\nOdyssey\n"), 0o600))

	_, err := provider.NewType("library", quiet(), provider.WithDataset("books", fpath))
	require.ErrorIs(t, err, dataset.ErrUnsupportedFormat)
	assert.True(t, fault.IsConfiguration(err))
	assert.Contains(t, err.Error(), "csv")
}

func TestNewType_InvalidDeclarations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typeName string
		opts     []provider.Option
		wantErr  error
	}{
		{
			name:     "empty type name",
			typeName: "",
			wantErr:  provider.ErrInvalidDeclaration,
		},
		{
			name:     "empty dataset name",
			typeName: "library",
			opts:     []provider.Option{provider.WithDataset("", booksFile)},
			wantErr:  provider.ErrInvalidDeclaration,
		},
		{
			name:     "method without body",
			typeName: "library",
			opts:     []provider.Option{provider.WithMethod("book", nil)},
			wantErr:  provider.ErrInvalidDeclaration,
		},
		{
			name:     "method without name",
			typeName: "library",
			opts:     []provider.Option{provider.WithMethod("", pickFirst)},
			wantErr:  provider.ErrInvalidDeclaration,
		},
		{
			name:     "duplicate method",
			typeName: "library",
			opts: []provider.Option{
				provider.WithMethod("book", pickFirst),
				provider.WithMethod("book", pickFirst),
			},
			wantErr: provider.ErrDuplicateMethod,
		},
		{
			name:     "picker shadowing method",
			typeName: "library",
			opts: []provider.Option{
				provider.WithMethod("book", pickFirst),
				provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
			},
			wantErr: provider.ErrDuplicateMethod,
		},
		{
			name:     "method shadowing picker",
			typeName: "library",
			opts: []provider.Option{
				provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
				provider.WithMethod("book", pickFirst),
			},
			wantErr: provider.ErrDuplicateMethod,
		},
		{
			name:     "picker on non-sequence dataset",
			typeName: "library",
			opts: []provider.Option{
				provider.WithDataset("doc", booksFile, provider.PickerMethod("doc")),
			},
			wantErr: provider.ErrNotSequence,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]provider.Option{quiet()}, testInfo.opts...)

			typ, err := provider.NewType(testInfo.typeName, opts...)
			require.ErrorIs(t, err, testInfo.wantErr)
			assert.True(t, fault.IsConfiguration(err))
			assert.Nil(t, typ)
		})
	}
}

func TestNewType_InvalidDecorators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		decorators []provider.Decorator
		contains   string
	}{
		{
			name:       "nil match predicate",
			decorators: []provider.Decorator{provider.Bind("books"), provider.Match(nil)},
			contains:   "match predicate is nil",
		},
		{
			name:       "zero decorator",
			decorators: []provider.Decorator{provider.Bind("books"), {}},
			contains:   "unknown decorator",
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			typ, err := provider.NewType("library",
				quiet(),
				provider.WithDataset("books", booksFile, provider.Root(".entries")),
				provider.WithMethod("book", pickFirst, testInfo.decorators...),
			)
			require.ErrorIs(t, err, provider.ErrInvalidDeclaration)
			assert.True(t, fault.IsConfiguration(err))
			assert.Contains(t, err.Error(), testInfo.contains)
			assert.Nil(t, typ)
		})
	}
}

func TestAttach_LastWriteWins(t *testing.T) {
	t.Parallel()

	var received []any

	var buf bytes.Buffer

	typ, err := provider.NewType("numbers",
		provider.WithLogger(logging.NewLogger(logging.LoggerConfig{Level: "warn"}, &buf)),
		provider.WithDataset("a", writeJSON(t, "first.json", `[1]`)),
		provider.WithDataset("a", writeJSON(t, "second.json", `[2]`)),
		provider.WithMethod("m", capture(&received), provider.Bind("a")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	_, err = p.Generate("m")
	require.NoError(t, err)

	assert.Equal(t, []any{[]any{float64(2)}}, received)
	assert.Contains(t, buf.String(), "dataset replaced")
}

func TestPickerMethod_PicksFromDataset(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
	)
	require.NoError(t, err)

	books, err := dataset.Load(booksFile, ".entries")
	require.NoError(t, err)

	p, err := typ.New(random.New(3))
	require.NoError(t, err)

	variant, ok := mustMaterialize(t, typ).Variant("book")
	require.True(t, ok)
	assert.Equal(t, provider.Picker, variant)

	for range 20 {
		book, err := p.Generate("book")
		require.NoError(t, err)
		assert.Contains(t, books, book)
	}
}

func TestPickerMethod_ForwardsPickOptions(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(3))
	require.NoError(t, err)

	petrarca := func(entry any) bool {
		record, ok := entry.(map[string]any)

		return ok && record["author"] == "Francesco Petrarca"
	}

	_, err = p.Generate("book", picker.WithMatch(petrarca), picker.WithMaxAttempts(1))
	require.ErrorIs(t, err, picker.ErrExhaustedAttempts)
	assert.Contains(t, err.Error(), "run out of attempts")

	book, err := p.Generate("book", picker.WithMatch(yearIs(1954)))
	require.NoError(t, err)
	assert.Equal(t, "The Caves of Steel", book.(map[string]any)["title"])
}

func TestPickerMethod_RejectsArguments(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(3))
	require.NoError(t, err)

	_, err = p.Invoke("book", []any{1})
	require.ErrorIs(t, err, provider.ErrUnexpectedArguments)
}

func TestProvider_UnknownMethod(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("empty", quiet())
	require.NoError(t, err)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	assert.False(t, p.Has("book"))

	_, err = p.Generate("book")
	require.ErrorIs(t, err, provider.ErrUnknownMethod)
	assert.Contains(t, err.Error(), "empty.book")
}

func TestEndToEnd_NarrowedBooksOnlyReturnMatches(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", writeJSON(t, "books.json",
			`{"entries": [{"title": "X", "year": 1954}, {"title": "Y"}]}`), provider.Root(".entries")),
		provider.WithMethod("book_made_in_1954", pickFirst, provider.Bind("books"), provider.Match(yearIs(1954))),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(2024))
	require.NoError(t, err)

	for range 50 {
		book, err := p.Generate("book_made_in_1954")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "X", "year": float64(1954)}, book)
	}
}

func TestEndToEnd_BookOrMovieBefore(t *testing.T) {
	t.Parallel()

	bookOrMovie := func(p *provider.Provider, args []any, opts ...picker.Option) (any, error) {
		both, err := provider.Concat(args[0], args[1])
		if err != nil {
			return nil, err
		}

		if len(args) > 2 {
			before, _ := args[2].(float64)
			opts = append(opts, picker.WithMatch(func(entry any) bool {
				record, ok := entry.(map[string]any)
				year, hasYear := record["year"].(float64)

				return ok && hasYear && year < before
			}))
		}

		return p.Pick(both, opts...)
	}

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
		provider.WithDataset("movies", moviesFile, provider.Root(".entries"), provider.PickerMethod("movie")),
		provider.WithMethod("book_or_movie", bookOrMovie, provider.Bind("books", "movies")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(99))
	require.NoError(t, err)

	for range 30 {
		entry, err := p.Invoke("book_or_movie", []any{float64(1975)})
		require.NoError(t, err)

		year := entry.(map[string]any)["year"].(float64)
		assert.Less(t, year, float64(1975))
	}

	assert.Equal(t, []string{"book", "movie", "book_or_movie"}, p.Methods())
}

func TestEndToEnd_FlattenedAlerts(t *testing.T) {
	t.Parallel()

	microsoft := regexp.MustCompile(`(?i)microsoft`)

	ruleNames := func(p *provider.Provider, args []any, opts ...picker.Option) (any, error) {
		alert, err := p.Pick(args[0], opts...)
		if err != nil {
			return nil, err
		}

		name := alert.(map[string]any)["kibana.alert.rule.name"]

		return map[string]any{"kibana.alert.rule.name": name}, nil
	}

	typ, err := provider.NewType("alerts",
		quiet(),
		provider.WithDataset("alerts", alertsFile, provider.Root(".hits.hits[]._source"), provider.PickerMethod("alert")),
		provider.WithMethod("microsoft_rule_names", ruleNames,
			provider.Bind("alerts"),
			provider.Match(func(entry any) bool {
				name, _ := entry.(map[string]any)["kibana.alert.rule.name"].(string)

				return microsoft.MatchString(name)
			}),
		),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(5))
	require.NoError(t, err)

	for range 20 {
		result, err := p.Generate("microsoft_rule_names")
		require.NoError(t, err)

		name := result.(map[string]any)["kibana.alert.rule.name"].(string)
		assert.True(t, strings.Contains(strings.ToLower(name), "microsoft"), name)
	}

	alert, err := p.Generate("alert")
	require.NoError(t, err)
	assert.Contains(t, alert, "kibana.alert.rule.name")
}

func TestDeterminism_SameSeedSameSelections(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library",
		quiet(),
		provider.WithDataset("books", booksFile, provider.Root(".entries"), provider.PickerMethod("book")),
	)
	require.NoError(t, err)

	sequence := func() []any {
		p, err := typ.New(random.New(77))
		require.NoError(t, err)

		out := make([]any, 0, 10)

		for range 10 {
			book, err := p.Generate("book")
			require.NoError(t, err)

			out = append(out, book)
		}

		return out
	}

	assert.Equal(t, sequence(), sequence())
}

func TestMaterialize_OnceAndReleasesTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	typ, err := provider.NewType("library",
		provider.WithLogger(logging.NewLogger(logging.LoggerConfig{Level: "debug"}, &buf)),
		provider.WithDataset("books", booksFile, provider.Root(".entries")),
		provider.WithDataset("unused", moviesFile, provider.Root(".entries")),
		provider.WithMethod("book", pickFirst, provider.Bind("books")),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"books", "unused"}, typ.Datasets())
	assert.False(t, typ.Materialized())

	first, err := typ.New(random.New(1))
	require.NoError(t, err)

	second, err := typ.New(random.New(1))
	require.NoError(t, err)

	assert.True(t, typ.Materialized())
	assert.Empty(t, typ.Datasets())
	assert.Equal(t, 1, strings.Count(buf.String(), "bindings materialized"))
	assert.Equal(t, 1, strings.Count(buf.String(), "registration table released"))

	bound1 := mustMaterialize(t, typ)
	bound2 := mustMaterialize(t, typ)
	assert.Same(t, bound1, bound2)

	_, err = first.Generate("book")
	require.NoError(t, err)

	_, err = second.Generate("book")
	require.NoError(t, err)
}

func TestMaterialize_RejectsLateDeclarations(t *testing.T) {
	t.Parallel()

	typ, err := provider.NewType("library", quiet())
	require.NoError(t, err)

	_, err = typ.Materialize()
	require.NoError(t, err)

	err = typ.Attach("books", booksFile)
	require.ErrorIs(t, err, provider.ErrAlreadyMaterialized)
	assert.True(t, fault.IsConfiguration(err))

	err = typ.Method("book", pickFirst)
	require.ErrorIs(t, err, provider.ErrAlreadyMaterialized)
}

func TestAttach_FromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"names.json": &fstest.MapFile{Data: []byte(`{"names": ["ada", "grace", "barbara"]}`)},
	}

	typ, err := provider.NewType("people",
		quiet(),
		provider.WithDataset("names", "names.json",
			provider.FromFS(fsys), provider.Root(".names"), provider.PickerMethod("name")),
	)
	require.NoError(t, err)

	p, err := typ.New(random.New(1))
	require.NoError(t, err)

	name, err := p.Generate("name")
	require.NoError(t, err)
	assert.Contains(t, []any{"ada", "grace", "barbara"}, name)
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unbound", provider.Unbound.String())
	assert.Equal(t, "bound", provider.Bound.String())
	assert.Equal(t, "bound+narrowed", provider.BoundNarrowed.String())
	assert.Equal(t, "picker", provider.Picker.String())
	assert.Equal(t, "unknown", provider.Variant(42).String())
}

func TestSequenceAndConcat(t *testing.T) {
	t.Parallel()

	joined, err := provider.Concat([]any{1}, []any{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, joined)

	_, err = provider.Concat([]any{1}, map[string]any{})
	require.ErrorIs(t, err, provider.ErrNotSequence)

	_, err = provider.Sequence("scalar")
	require.ErrorIs(t, err, provider.ErrNotSequence)
}

func mustMaterialize(t *testing.T, typ *provider.Type) *provider.BoundMethods {
	t.Helper()

	bound, err := typ.Materialize()
	require.NoError(t, err)

	return bound
}
