// Package oasupgrade upgrades Swagger 2.0 and OpenAPI 3.0 documents to
// OpenAPI 3.0 and 3.1.
//
// The upgrade works on decoded JSON-like trees rather than typed models, so
// unknown fields and extensions pass through untouched. It is a fixed
// pipeline of rule-based rewrites:
//
//	Swagger 2.0 --(2.0 -> 3.0)--> OpenAPI 3.0.4 --(3.0 -> 3.1)--> OpenAPI 3.1.1
//
// # Packages
//
//   - document: load, detect, copy and marshal document trees
//   - upgrader: the upgrade steps, the reusable Upgrader and its options
//   - oaserrors: error types for use with errors.Is and errors.As
//
// The oasupgrade command (cmd/oasupgrade) wraps the library as a CLI and as
// an MCP server.
//
// # Quick Start
//
// Upgrade a file to the latest supported version:
//
//	import "github.com/erraggy/oasupgrade/upgrader"
//
//	result, err := upgrader.UpgradeWithOptions(
//		upgrader.WithFilePath("swagger.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s -> %s (%d warnings)\n",
//		result.SourceVersion, result.TargetVersion, result.WarningCount)
//
// Write the result back in the source format:
//
//	import "github.com/erraggy/oasupgrade/document"
//
//	data, err := document.Marshal(result.Document, result.SourceFormat)
//
// Run a single step on a tree you already decoded:
//
//	doc, issues := upgrader.FromTwoToThree(doc)
//
// # Command Line
//
//	oasupgrade upgrade swagger.yaml -o openapi.yaml
//	oasupgrade upgrade --target 3.0 --format json swagger.yaml
//	oasupgrade detect openapi.json
//	oasupgrade mcp
//
// # Not Included
//
// oasupgrade does not validate documents, resolve external references or
// downgrade documents. Output key order is lexical, not source order.
package oasupgrade
