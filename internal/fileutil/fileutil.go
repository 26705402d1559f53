// Package fileutil holds file conventions shared by the CLI and MCP server.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for upgraded documents, which
// may describe internal APIs (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
