package vector

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func chunk(id, text string) *models.Chunk {
	return &models.Chunk{ID: id, Source: "doc.txt", Text: text}
}

func TestMemoryIndex_SearchRanksExactMatchFirst(t *testing.T) {
	idx := NewMemoryIndex(3)
	ctx := context.Background()
	err := idx.Add(ctx,
		[]*models.Chunk{chunk("a", "alpha"), chunk("b", "beta"), chunk("c", "gamma")},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := idx.Search(ctx, []float32{2, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "a" {
		t.Errorf("expected exact match first, got %s", results[0].Chunk.ID)
	}
	if math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Errorf("identical direction should score 1.0, got %f", results[0].Score)
	}
}

func TestMemoryIndex_KLimitsResults(t *testing.T) {
	idx := NewMemoryIndex(2)
	ctx := context.Background()
	idx.Add(ctx,
		[]*models.Chunk{chunk("a", ""), chunk("b", ""), chunk("c", "")},
		[][]float32{{1, 0}, {0.9, 0.1}, {0, 1}},
	)
	results, err := idx.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "a" || results[1].Chunk.ID != "b" {
		t.Errorf("got order %s, %s", results[0].Chunk.ID, results[1].Chunk.ID)
	}
}

func TestMemoryIndex_FewerThanK(t *testing.T) {
	idx := NewMemoryIndex(2)
	ctx := context.Background()
	idx.Add(ctx, []*models.Chunk{chunk("only", "x")}, [][]float32{{1, 0}})
	results, err := idx.Search(ctx, []float32{0, 1}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected all stored vectors when k exceeds size, got %d", len(results))
	}
}

func TestMemoryIndex_TiesKeepInsertionOrder(t *testing.T) {
	idx := NewMemoryIndex(2)
	ctx := context.Background()
	var chunks []*models.Chunk
	var vecs [][]float32
	for i := 0; i < 5; i++ {
		chunks = append(chunks, chunk(fmt.Sprintf("c%d", i), ""))
		vecs = append(vecs, []float32{1, 0})
	}
	idx.Add(ctx, chunks, vecs)
	results, _ := idx.Search(ctx, []float32{1, 0}, 5)
	for i, r := range results {
		if want := fmt.Sprintf("c%d", i); r.Chunk.ID != want {
			t.Errorf("position %d: got %s, want %s", i, r.Chunk.ID, want)
		}
	}
}

func TestMemoryIndex_DimensionMismatch(t *testing.T) {
	idx := NewMemoryIndex(3)
	ctx := context.Background()
	if err := idx.Add(ctx, []*models.Chunk{chunk("a", "")}, [][]float32{{1, 0}}); err == nil {
		t.Error("expected error adding wrong-dimension vector")
	}
	if _, err := idx.Search(ctx, []float32{1, 0}, 1); err == nil {
		t.Error("expected error searching with wrong-dimension query")
	}
}

func TestMemoryIndex_RebuildGivesSameRanking(t *testing.T) {
	ctx := context.Background()
	chunks := []*models.Chunk{chunk("a", ""), chunk("b", ""), chunk("c", "")}
	vecs := [][]float32{{1, 0}, {0.7, 0.7}, {0, 1}}
	query := []float32{0.9, 0.1}

	idx := NewMemoryIndex(2)
	idx.Add(ctx, chunks, vecs)
	first, err := idx.Search(ctx, query, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	idx.Reset()
	idx.Add(ctx, chunks, vecs)
	second, err := idx.Search(ctx, query, 3)
	if err != nil {
		t.Fatalf("Search after rebuild: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Chunk.ID != second[i].Chunk.ID || first[i].Score != second[i].Score {
			t.Errorf("position %d differs after rebuild: %s/%f vs %s/%f",
				i, first[i].Chunk.ID, first[i].Score, second[i].Chunk.ID, second[i].Score)
		}
	}
}

func TestMemoryIndex_Reset(t *testing.T) {
	idx := NewMemoryIndex(2)
	ctx := context.Background()
	idx.Add(ctx, []*models.Chunk{chunk("a", "")}, [][]float32{{1, 0}})
	idx.Reset()
	if n, _ := idx.Size(ctx); n != 0 {
		t.Errorf("expected empty index after Reset, size=%d", n)
	}
	results, err := idx.Search(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search on empty index: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty index should return no results, got %d", len(results))
	}
}
