package vector

import (
	"context"
	"fmt"
	"os"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/hyperjump/kotae/internal/errs"
	"github.com/hyperjump/kotae/internal/fileid"
	"github.com/hyperjump/kotae/internal/models"
)

// Payload keys stored alongside each point.
const (
	payloadChunkID    = "chunk_id"
	payloadSource     = "source"
	payloadChunkIndex = "chunk_index"
	payloadText       = "text"
)

// QdrantIndex is a persistent vector index backed by a Qdrant collection over
// gRPC. The request path only searches it; population happens through the
// offline index command.
type QdrantIndex struct {
	conn        *grpc.ClientConn
	points      qdrant.PointsClient
	collections qdrant.CollectionsClient
	collection  string
	apiKey      string
}

// NewQdrantIndex connects to the Qdrant gRPC endpoint. The optional API key
// is read from the given environment variable and sent as request metadata.
func NewQdrantIndex(addr, apiKeyEnv, collection string) (*QdrantIndex, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errs.Upstream("qdrant", err)
	}
	return &QdrantIndex{
		conn:        conn,
		points:      qdrant.NewPointsClient(conn),
		collections: qdrant.NewCollectionsClient(conn),
		collection:  collection,
		apiKey:      os.Getenv(apiKeyEnv),
	}, nil
}

func (q *QdrantIndex) withAuth(ctx context.Context) context.Context {
	if q.apiKey == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "api-key", q.apiKey)
}

// EnsureCollection creates the collection with cosine distance if it does not
// exist yet. Called by the offline indexer before upserting.
func (q *QdrantIndex) EnsureCollection(ctx context.Context, dimensions int) error {
	ctx = q.withAuth(ctx)
	_, err := q.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{CollectionName: q.collection})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return errs.Upstream("qdrant", err)
	}
	_, err = q.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return errs.Upstream("qdrant", err)
	}
	return nil
}

// Add upserts chunks as points. Point IDs are derived from chunk IDs, so
// re-indexing the same corpus overwrites in place instead of duplicating.
func (q *QdrantIndex) Add(ctx context.Context, chunks []*models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, ch := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(fileid.PointID(ch.ID)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: map[string]*qdrant.Value{
				payloadChunkID:    {Kind: &qdrant.Value_StringValue{StringValue: ch.ID}},
				payloadSource:     {Kind: &qdrant.Value_StringValue{StringValue: ch.Source}},
				payloadChunkIndex: {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(ch.Index)}},
				payloadText:       {Kind: &qdrant.Value_StringValue{StringValue: ch.Text}},
			},
		}
	}
	resp, err := q.points.Upsert(q.withAuth(ctx), &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points:         points,
	})
	if err != nil {
		return errs.Upstream("qdrant", err)
	}
	st := resp.GetResult().GetStatus()
	if st != qdrant.UpdateStatus_Acknowledged && st != qdrant.UpdateStatus_Completed {
		return errs.UpstreamStatus("qdrant", 0, fmt.Sprintf("unexpected upsert status %v", st))
	}
	return nil
}

// Search runs a top-k cosine similarity query against the collection.
func (q *QdrantIndex) Search(ctx context.Context, query []float32, k int) ([]*models.ScoredChunk, error) {
	resp, err := q.points.Search(q.withAuth(ctx), &qdrant.SearchPoints{
		CollectionName: q.collection,
		Vector:         query,
		Limit:          uint64(k),
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, errs.Upstream("qdrant", err)
	}
	hits := resp.GetResult()
	results := make([]*models.ScoredChunk, 0, len(hits))
	for _, p := range hits {
		payload := p.GetPayload()
		results = append(results, &models.ScoredChunk{
			Chunk: &models.Chunk{
				ID:     payload[payloadChunkID].GetStringValue(),
				Source: payload[payloadSource].GetStringValue(),
				Text:   payload[payloadText].GetStringValue(),
				Index:  int(payload[payloadChunkIndex].GetIntegerValue()),
			},
			Score: float64(p.GetScore()),
		})
	}
	return results, nil
}

// Size returns the exact point count of the collection.
func (q *QdrantIndex) Size(ctx context.Context) (int, error) {
	exact := true
	resp, err := q.points.Count(q.withAuth(ctx), &qdrant.CountPoints{
		CollectionName: q.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, errs.Upstream("qdrant", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Close closes the gRPC connection.
func (q *QdrantIndex) Close() error { return q.conn.Close() }
