package fileid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDocID_deterministic(t *testing.T) {
	if DocID("/data/corpus.txt") != DocID("/data/corpus.txt") {
		t.Error("same path should give same ID")
	}
	if DocID("/data/corpus.txt") == DocID("/data/other.txt") {
		t.Error("different paths should give different IDs")
	}
	if !strings.HasPrefix(DocID("/data/corpus.txt"), prefix) {
		t.Errorf("missing prefix: %q", DocID("/data/corpus.txt"))
	}
}

func TestDocID_normalized(t *testing.T) {
	if DocID("/data/corpus.txt") != DocID("/data/./corpus.txt") {
		t.Error("paths with . should normalize to same ID")
	}
}

func TestChunkID(t *testing.T) {
	id := ChunkID("corpus:abcd", 3)
	if id != "corpus:abcd:3" {
		t.Errorf("got %q", id)
	}
}

func TestPointID(t *testing.T) {
	a := PointID("corpus:abcd:0")
	b := PointID("corpus:abcd:0")
	c := PointID("corpus:abcd:1")
	if a != b {
		t.Error("same chunk ID should give same point ID")
	}
	if a == c {
		t.Error("different chunk IDs should give different point IDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("point ID is not a valid UUID: %q", a)
	}
}
