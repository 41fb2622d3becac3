// Package fileid provides deterministic identifiers for corpus documents and chunks.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

const prefix = "corpus:"

// DocID returns a stable document ID for the given corpus path.
// Same path always yields the same ID.
func DocID(path string) string {
	normalized := filepath.Clean(path)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:8])
}

// ChunkID returns a stable ID for the index-th chunk of a document.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s:%d", docID, index)
}

// PointID returns a deterministic UUID for a chunk ID, suitable as a vector
// store point ID. Re-running the offline indexer over the same corpus upserts
// the same points instead of duplicating them.
func PointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}
