package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasupgrade/oaserrors"
	"go.yaml.in/yaml/v4"
)

// MaxInputSize is the largest input Load and LoadReader will read.
const MaxInputSize = 64 << 20

// Loaded is a decoded document together with what was learned while loading it.
type Loaded struct {
	// Document is the decoded tree
	Document Document
	// Format is the detected source format
	Format Format
	// SourcePath is the file path, or "" when loaded from bytes or a reader
	SourcePath string
	// RawVersion is the version string found in the document
	RawVersion string
	// Version is the detected version series
	Version Version
	// Size is the number of input bytes
	Size int64
}

// Load reads and decodes a JSON or YAML file.
func Load(path string) (*Loaded, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is user supplied by design of a CLI tool
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, path)
	if err != nil {
		return nil, err
	}
	loaded, err := LoadBytes(data, path)
	if err != nil {
		return nil, err
	}
	loaded.SourcePath = path
	return loaded, nil
}

// LoadReader reads and decodes a JSON or YAML document from r.
func LoadReader(r io.Reader) (*Loaded, error) {
	data, err := readLimited(r, "")
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, "")
}

// LoadBytes decodes a JSON or YAML document. pathHint is used only for
// format detection and error messages and may be empty.
func LoadBytes(data []byte, pathHint string) (*Loaded, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: pathHint, Message: "document is empty"}
	}

	format := DetectFormat(pathHint, data)

	var raw any
	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &raw); err != nil {
			// Some ".json" files are really YAML; give YAML a chance before failing.
			if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
				return nil, &oaserrors.ParseError{Path: pathHint, Message: "invalid JSON", Cause: err}
			}
			format = FormatYAML
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &oaserrors.ParseError{Path: pathHint, Message: "invalid YAML", Cause: err}
		}
		format = FormatYAML
	}

	doc, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{
			Path:    pathHint,
			Message: fmt.Sprintf("document root must be an object, got %T", raw),
		}
	}

	version, rawVersion := DetectVersion(doc)
	return &Loaded{
		Document:   doc,
		Format:     format,
		RawVersion: rawVersion,
		Version:    version,
		Size:       int64(len(data)),
	}, nil
}

func readLimited(r io.Reader, path string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read input", Cause: err}
	}
	if len(data) > MaxInputSize {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("input exceeds %s", FormatBytes(MaxInputSize)),
		}
	}
	return data, nil
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number so
// integers beyond 2^53 survive until Normalize converts them.
func decodeJSON(data []byte, v *any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}
