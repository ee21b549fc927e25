package yaml

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-fakedata/fault"
	"github.com/0xalexb/hjarta-fakedata/rootpath"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
)

var (
	// ErrEmptyData is returned when the input data is empty.
	ErrEmptyData = errors.New("empty data")
	// ErrPathNotFound is returned when the specified path is not found in the YAML document.
	ErrPathNotFound = errors.New("path not found")
	// ErrFlattenUnsupported is returned for root paths containing the flatten marker.
	ErrFlattenUnsupported = errors.New("flatten marker not supported for yaml")
)

// Parser implements config.Parser for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals the part selected by path into the target.
func (p *Parser) Parse(data []byte, target any, path string) error {
	root, err := rootpath.Parse(path)
	if err != nil {
		return err
	}

	if root.Flattens() {
		return fault.Configuration(fmt.Errorf("%w: %s", ErrFlattenUnsupported, root))
	}

	if len(data) == 0 {
		return ErrEmptyData
	}

	if root.IsIdentity() {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return errors.Wrap(err, "unmarshal error")
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(root.Segments()))
	if err != nil {
		return errors.Wrapf(err, "invalid path %q", root)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}

		return errors.Wrapf(err, "reading path %q", root)
	}

	return nil
}

// convertToYAMLPath converts root path segments to goccy/go-yaml PathString format.
// Examples:
//   - ["key"] -> "$.key"
//   - ["datasets", "0", "name"] -> "$.datasets[0].name"
func convertToYAMLPath(segments []string) string {
	var builder strings.Builder

	builder.WriteString("$")

	for _, segment := range segments {
		if index, err := strconv.Atoi(segment); err == nil && index >= 0 {
			builder.WriteString("[" + segment + "]")

			continue
		}

		builder.WriteString("." + segment)
	}

	return builder.String()
}
