package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/oasupgrade/document"
	"github.com/erraggy/oasupgrade/internal/fileutil"
	"github.com/erraggy/oasupgrade/upgrader"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type upgradeInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to upgrade"`
	Target string    `json:"target,omitempty" jsonschema:"Target OAS version (3.0\\, 3.1 or latest). Defaults to OASUPGRADE_DEFAULT_TARGET or latest."`
	Output string    `json:"output,omitempty" jsonschema:"File path to write the upgraded document. If omitted the document is returned inline."`
}

type upgradeIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Context  string `json:"context,omitempty"`
}

type upgradeOutput struct {
	SourceVersion string         `json:"source_version"`
	TargetVersion string         `json:"target_version"`
	Steps         []string       `json:"steps,omitempty"`
	Success       bool           `json:"success"`
	IssueCount    int            `json:"issue_count"`
	Issues        []upgradeIssue `json:"issues,omitempty"`
	WrittenTo     string         `json:"written_to,omitempty"`
	Document      string         `json:"document,omitempty"`
}

func handleUpgrade(_ context.Context, _ *mcp.CallToolRequest, input upgradeInput) (*mcp.CallToolResult, upgradeOutput, error) {
	loaded, err := input.Spec.load()
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}

	target := input.Target
	if target == "" {
		target = cfg.DefaultTarget
	}

	result, err := upgrader.UpgradeWithOptions(
		upgrader.WithDocument(loaded.Document),
		upgrader.WithInPlace(true),
		upgrader.WithTargetVersion(target),
		upgrader.WithIncludeInfo(cfg.IncludeInfo),
	)
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}

	output := upgradeOutput{
		SourceVersion: result.SourceVersion,
		TargetVersion: result.TargetVersion,
		Steps:         result.Steps,
		Success:       result.Success,
		IssueCount:    len(result.Issues),
	}

	output.Issues = makeSlice[upgradeIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, upgradeIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
			Context:  issue.Context,
		})
	}

	data, err := document.Marshal(result.Document, loaded.Format)
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), upgradeOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
