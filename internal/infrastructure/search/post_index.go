// Package search keeps published posts in Elasticsearch for full text
// search.
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

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

const postMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "title":        {"type": "text"},
      "content":      {"type": "text"},
      "status":       {"type": "keyword"},
      "author_id":    {"type": "keyword"},
      "tags":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "view_count":   {"type": "long"},
      "published_at": {"type": "date"},
      "created_at":   {"type": "date"},
      "updated_at":   {"type": "date"}
    }
  }
}`

type PostIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	return &PostIndex{es: es, index: index}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *PostIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("check index %s: %w", x.index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = x.es.Indices.Create(x.index,
		x.es.Indices.Create.WithContext(c),
		x.es.Indices.Create.WithBody(strings.NewReader(postMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (x *PostIndex) Index(ctx context.Context, p application.PostView) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index post", res)
	}
	return nil
}

// Remove deletes the document. A missing document is not an error.
func (x *PostIndex) Remove(ctx context.Context, id entity.PostID) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id.String()}
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("remove post", res)
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source application.PostView `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search matches every term of q against title, tags and content, with
// title weighted highest. Only published posts are returned.
func (x *PostIndex) Search(ctx context.Context, q string, pg application.Pagination) (application.Page[application.PostSummary], error) {
	body, err := json.Marshal(searchQuery(q, pg))
	if err != nil {
		return application.Page[application.PostSummary]{}, err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
		x.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return application.Page[application.PostSummary]{}, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return application.Page[application.PostSummary]{}, responseError("search posts", res)
	}
	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return application.Page[application.PostSummary]{}, fmt.Errorf("decode search response: %w", err)
	}
	out := make([]application.PostSummary, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		out = append(out, h.Source.Summary())
	}
	return application.NewPage(out, sr.Hits.Total.Value, pg), nil
}

func searchQuery(q string, pg application.Pagination) map[string]any {
	return map[string]any{
		"from": pg.Offset(),
		"size": pg.Limit,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":    q,
						"fields":   []string{"title^3", "tags^2", "content"},
						"operator": "and",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": string(entity.PostStatusPublished)},
				},
			},
		},
		"sort": []any{"_score", map[string]any{"published_at": "desc"}},
	}
}

func responseError(op string, res *esapi.Response) error {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("%s: %s: %s", op, res.Status(), strings.TrimSpace(string(b)))
}

var _ application.PostIndex = (*PostIndex)(nil)
