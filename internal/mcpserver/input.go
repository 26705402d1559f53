package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasupgrade/document"
)

// specInput represents the ways an OAS document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// load decodes the document named by s.
func (s specInput) load() (*document.Loaded, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	case s.File != "":
		return document.Load(s.File)
	case s.Content != "":
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content is %s, exceeding the %s limit",
				document.FormatBytes(int64(len(s.Content))), document.FormatBytes(cfg.MaxInlineSize))
		}
		return document.LoadBytes([]byte(s.Content), "")
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
}
