package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Marshal serializes a document. JSON output is indented with two spaces
// and does not escape HTML characters; anything other than FormatJSON is
// written as YAML. Object keys come out in lexical order in both formats.
func Marshal(doc Document, format Format) ([]byte, error) {
	if format == FormatJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshaling to json: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling to yaml: %w", err)
	}
	return data, nil
}
