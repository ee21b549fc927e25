package json

import (
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/cockroachdb/errors"
	gojson "github.com/goccy/go-json"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// Parser implements config.Parser for JSON documents.
type Parser struct{}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data, selects the subtree addressed by path and stores it in target.
// The path is validated before the document is decoded.
func (p *Parser) Parse(data []byte, target any, path string) error {
	root, err := rootpath.Parse(path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return ErrEmptyData
	}

	var tree any

	err = gojson.Unmarshal(data, &tree)
	if err != nil {
		return errors.Wrap(err, "unmarshal error")
	}

	selected, err := root.Resolve(tree)
	if err != nil {
		return err
	}

	if generic, ok := target.(*any); ok {
		*generic = selected

		return nil
	}

	return assign(selected, target)
}

func assign(value any, target any) error {
	encoded, err := gojson.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "re-encoding selected value")
	}

	err = gojson.Unmarshal(encoded, target)
	if err != nil {
		return errors.Wrapf(err, "decoding into %T", target)
	}

	return nil
}
