package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/pkg/config"
)

const ideaMapping = `{
	"mappings": {
		"properties": {
			"id":          {"type": "keyword"},
			"title":       {"type": "text"},
			"description": {"type": "text"},
			"category":    {"type": "keyword"},
			"status":      {"type": "keyword"},
			"created_by":  {"type": "keyword"},
			"created_at":  {"type": "date"}
		}
	}
}`

// IdeaDocument is the indexed projection of an idea
type IdeaDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewIdeaDocument projects an idea into its search document
func NewIdeaDocument(idea *entities.Idea) IdeaDocument {
	doc := IdeaDocument{
		ID:          idea.ID.String(),
		Title:       idea.Title,
		Description: idea.Description,
		Status:      string(idea.Status),
		CreatedBy:   idea.CreatedBy.String(),
		CreatedAt:   idea.CreatedAt.UTC(),
	}
	if idea.Category != nil {
		doc.Category = *idea.Category
	}
	return doc
}

// Query narrows a full-text search
type Query struct {
	Text   string
	Status *entities.IdeaStatus
	Limit  int
	Offset int
}

// IdeaIndex keeps ideas searchable in Elasticsearch
type IdeaIndex struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger

	// newBackOff builds the retry policy of index writes
	newBackOff func() backoff.BackOff
}

// NewIdeaIndex connects to the configured cluster
func NewIdeaIndex(cfg *config.SearchConfig, logger *zap.Logger) (*IdeaIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return newIdeaIndex(client, cfg.Index, logger), nil
}

func newIdeaIndex(client *elasticsearch.Client, index string, logger *zap.Logger) *IdeaIndex {
	return &IdeaIndex{
		client: client,
		index:  index,
		logger: logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
	}
}

// EnsureIndex creates the index with its mapping when missing
func (x *IdeaIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists request failed: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("index exists check failed: %s", res.Status())
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(ideaMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index failed: %s", res.String())
	}

	x.logger.Info("✅ Search index created", zap.String("index", x.index))
	return nil
}

// Index writes the idea document, retrying transient failures
func (x *IdeaIndex) Index(ctx context.Context, idea *entities.Idea) error {
	body, err := json.Marshal(NewIdeaDocument(idea))
	if err != nil {
		return fmt.Errorf("failed to marshal document for indexing: %w", err)
	}

	op := func() error {
		res, err := x.client.Index(
			x.index,
			bytes.NewReader(body),
			x.client.Index.WithDocumentID(idea.ID.String()),
			x.client.Index.WithContext(ctx),
		)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		return responseError(res, "index")
	}

	return backoff.Retry(op, backoff.WithContext(x.newBackOff(), ctx))
}

// Delete removes the idea document; a missing document is not an error
func (x *IdeaIndex) Delete(ctx context.Context, id uuid.UUID) error {
	op := func() error {
		res, err := x.client.Delete(x.index, id.String(), x.client.Delete.WithContext(ctx))
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode == http.StatusNotFound {
			return nil
		}
		return responseError(res, "delete")
	}

	return backoff.Retry(op, backoff.WithContext(x.newBackOff(), ctx))
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string       `json:"_id"`
			Source IdeaDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns matching idea ids in relevance order and the total hit count
func (x *IdeaIndex) Search(ctx context.Context, q Query) ([]uuid.UUID, int64, error) {
	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal search query: %w", err)
	}

	opts := []func(*esapi.SearchRequest){
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
		x.client.Search.WithTrackTotalHits(true),
	}
	if q.Limit > 0 {
		opts = append(opts, x.client.Search.WithSize(q.Limit))
	}
	if q.Offset > 0 {
		opts = append(opts, x.client.Search.WithFrom(q.Offset))
	}

	res, err := x.client.Search(opts...)
	if err != nil {
		return nil, 0, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result searchResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue // Skip documents not keyed by idea id
		}
		ids = append(ids, id)
	}
	return ids, result.Hits.Total.Value, nil
}

func buildQuery(q Query) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     q.Text,
					"fields":    []string{"title^2", "description", "category"},
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if q.Status != nil {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"status": string(*q.Status)}},
		}
	}
	return map[string]interface{}{"query": map[string]interface{}{"bool": boolQuery}}
}

// responseError turns an error reply into an error; 4xx other than 429 are permanent
func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	b, _ := io.ReadAll(res.Body)
	err := fmt.Errorf("elasticsearch %s failed: %s %s", op, res.Status(), strings.TrimSpace(string(b)))
	if res.StatusCode < 500 && res.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(err)
	}
	return err
}
