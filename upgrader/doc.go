// Package upgrader upgrades Swagger 2.0 and OpenAPI 3.0 documents to
// OpenAPI 3.0 and 3.1.
//
// Documents are JSON-like trees (map[string]any) as produced by encoding/json
// or a YAML decoder. The upgrade is a sequence of steps, each a rule-based
// rewrite of the tree:
//
//   - 2.0 -> 3.0 ([FromTwoToThree]): host, basePath and schemes become
//     servers; definitions, global parameters, responses and
//     securityDefinitions move under components; body and formData
//     parameters become request bodies; collectionFormat becomes
//     style/explode; response schemas move under content; oauth2 flows
//     are renamed; every $ref is rewritten to its components location.
//   - 3.0 -> 3.1 ([FromThreeToThreeOne]): nullable becomes a "null" type,
//     boolean exclusive bounds become numeric, schema examples become
//     arrays, binary string formats become contentEncoding and
//     contentMediaType, and x-webhooks becomes webhooks.
//
// Each step reports [Issue] values: Info for choices the upgrader made,
// Warning for lossy rewrites and Critical for constructs that could not be
// carried over. Issue paths use the dotted form
// "paths./pets.get.parameters[0]".
//
// # Quick Start
//
// Upgrade a file to the latest supported version:
//
//	result, err := upgrader.UpgradeWithOptions(
//	    upgrader.WithFilePath("swagger.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
//
// Or reuse an [Upgrader] for several documents:
//
//	u := upgrader.New()
//	u.TargetVersion = "3.0"
//	result, err := u.Upgrade(doc)
//
// The step functions mutate their argument; [Upgrader.Upgrade] works on a
// deep copy unless InPlace is set. Running a step on a document it does not
// apply to leaves the document unchanged, so running a step twice is the
// same as running it once.
package upgrader
