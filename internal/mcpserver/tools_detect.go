package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasupgrade/document"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type detectInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to inspect"`
}

type detectOutput struct {
	Version    string `json:"version"`
	RawVersion string `json:"raw_version"`
	Format     string `json:"format"`
}

func handleDetectVersion(_ context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
	loaded, err := input.Spec.load()
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}
	if loaded.Version == document.VersionUnknown {
		return errResult(fmt.Errorf("unrecognized OpenAPI version %q", loaded.RawVersion)), detectOutput{}, nil
	}

	return nil, detectOutput{
		Version:    loaded.Version.String(),
		RawVersion: loaded.RawVersion,
		Format:     string(loaded.Format),
	}, nil
}
