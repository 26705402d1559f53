// Package document holds the JSON-like tree that the upgrader rewrites.
//
// A [Document] is a decoded Swagger 2.0 or OpenAPI 3.x document held as plain
// maps, slices and scalars, exactly as a JSON or YAML decoder produces it.
// The package does not model OpenAPI objects as Go types: it only provides
// what rewriting such a tree needs.
//
//   - [Load], [LoadBytes] and [LoadReader] decode JSON or YAML input
//   - [DetectVersion] and [ParseVersion] classify the document version
//   - [Map], [Slice], [String] and friends are nil-safe accessors
//   - [DeepCopy] and [Normalize] copy and clean decoded values
//   - [Marshal] writes a document back out as JSON or YAML
//
// Example:
//
//	loaded, err := document.Load("swagger.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(loaded.Version) // "2.0"
package document
