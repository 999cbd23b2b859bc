package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *IdeaIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the client refuses servers that do not identify as Elasticsearch
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	x := newIdeaIndex(client, "ideas", zap.NewNop())
	x.newBackOff = func() backoff.BackOff { return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2) }
	return x
}

func TestIdeaIndex_Search(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	status := entities.IdeaStatusUnderReview

	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ideas/_search", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("size"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw, _ := json.Marshal(body)
		assert.Contains(t, string(raw), `"status":"under_review"`)
		assert.Contains(t, string(raw), `"query":"solar panels"`)

		_, _ = io.WriteString(w, `{"hits":{"total":{"value":7},"hits":[
			{"_id":"`+first.String()+`","_source":{"title":"a"}},
			{"_id":"not-a-uuid","_source":{}},
			{"_id":"`+second.String()+`","_source":{"title":"b"}}]}}`)
	})

	ids, total, err := x.Search(context.Background(), Query{Text: "solar panels", Status: &status, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}

func TestIdeaIndex_IndexRetriesServerErrors(t *testing.T) {
	var calls int32
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/ideas/_doc/"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":"busy"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	idea := &entities.Idea{ID: uuid.New(), Title: "t", Status: entities.IdeaStatusDraft, CreatedAt: time.Now()}
	require.NoError(t, x.Index(context.Background(), idea))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdeaIndex_IndexDoesNotRetryBadRequest(t *testing.T) {
	var calls int32
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"mapper_parsing_exception"}`)
	})

	err := x.Index(context.Background(), &entities.Idea{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdeaIndex_DeleteMissingIsFine(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	assert.NoError(t, x.Delete(context.Background(), uuid.New()))
}

func TestNewIdeaDocument(t *testing.T) {
	category := "energy"
	idea := &entities.Idea{ID: uuid.New(), Title: "t", Category: &category, Status: entities.IdeaStatusApproved}
	doc := NewIdeaDocument(idea)
	assert.Equal(t, "energy", doc.Category)
	assert.Equal(t, "approved", doc.Status)
}
