// ABOUTME: SQLite layout for collections and the schema version ledger
// ABOUTME: Each collection is a key/value table holding JSON documents
package sqlite

import (
	"fmt"
	"regexp"
)

// metaSchema records which schema versions have been applied
const metaSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// collectionTable is the layout of every collection table
const collectionTable = `
CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

var collectionName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// tableName quotes a collection name for use as an identifier
func tableName(collection string) (string, error) {
	if !collectionName.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return `"` + collection + `"`, nil
}
