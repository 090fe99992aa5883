package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"paymux/internal/domain/payment"

	"github.com/opensearch-project/opensearch-go"
)

var _ payment.Indexer = (*Indexer)(nil)

// Indexer mirrors payment events into OpenSearch. Documents are keyed by
// event ID, so replaying an event overwrites instead of duplicating.
type Indexer struct {
	client *opensearch.Client
	index  string
}

func NewIndexer(ctx context.Context, urls []string, index string) (*Indexer, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	idx := &Indexer{client: client, index: index}

	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *Indexer) ensureIndex(ctx context.Context) error {
	// HEAD /{index}
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil // already exists
	}
	// Create index with a simple mapping.
	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":   map[string]any{"type": "keyword"},
				"token":      map[string]any{"type": "keyword"},
				"buy_order":  map[string]any{"type": "text"},
				"tenant_id":  map[string]any{"type": "keyword"},
				"kind":       map[string]any{"type": "keyword"},
				"created_at": map[string]any{"type": "date"},
				"data":       map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0, // dev-friendly; change in prod
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

// internal doc stored in OpenSearch
type osPaymentEventDoc struct {
	EventID   string                   `json:"event_id"`
	Token     string                   `json:"token"`
	BuyOrder  string                   `json:"buy_order"`
	TenantID  string                   `json:"tenant_id"`
	Kind      payment.PaymentEventKind `json:"kind"`
	Data      json.RawMessage          `json:"data,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

func (s *Indexer) IndexEvent(ctx context.Context, ev payment.PaymentEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	doc := osPaymentEventDoc{
		EventID:   ev.EventID,
		Token:     ev.Token,
		BuyOrder:  ev.BuyOrder,
		TenantID:  ev.TenantID,
		Kind:      ev.Kind,
		Data:      ev.Data,
		CreatedAt: ev.CreatedAt.UTC(),
	}
	payload, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(ev.EventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (s *Indexer) SearchEvents(ctx context.Context, query payment.SearchQuery) ([]payment.PaymentEvent, error) {
	filters := make([]map[string]any, 0, 3)
	if len(query.TenantIDs) > 0 {
		vals := make([]string, 0, len(query.TenantIDs))
		for _, id := range query.TenantIDs {
			if id != "" {
				vals = append(vals, id)
			}
		}
		if len(vals) > 0 {
			filters = append(filters, map[string]any{
				"terms": map[string]any{"tenant_id": vals},
			})
		}
	}
	if len(query.Kinds) > 0 {
		vals := make([]string, 0, len(query.Kinds))
		for _, k := range query.Kinds {
			if k != "" {
				vals = append(vals, string(k))
			}
		}
		if len(vals) > 0 {
			filters = append(filters, map[string]any{
				"terms": map[string]any{"kind": vals},
			})
		}
	}
	if query.TimeFrom != nil || query.TimeTo != nil {
		rng := map[string]any{}
		if query.TimeFrom != nil {
			rng["gte"] = query.TimeFrom.UTC()
		}
		if query.TimeTo != nil {
			rng["lt"] = query.TimeTo.UTC()
		}
		filters = append(filters, map[string]any{
			"range": map[string]any{"created_at": rng},
		})
	}

	boolQuery := map[string]any{
		"filter": filters,
	}
	if query.Text != "" {
		boolQuery["must"] = []map[string]any{
			{"match": map[string]any{"buy_order": query.Text}},
		}
	}

	size := query.Limit
	if size <= 0 || size > 500 {
		size = 500
	}

	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": boolQuery,
		},
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": "desc"}},
		},
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	out := make([]payment.PaymentEvent, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc osPaymentEventDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		evtID := doc.EventID
		if evtID == "" {
			evtID = h.ID
		}
		out = append(out, payment.PaymentEvent{
			EventID: evtID,
			NewPaymentEvent: payment.NewPaymentEvent{
				Token:     doc.Token,
				BuyOrder:  doc.BuyOrder,
				TenantID:  doc.TenantID,
				Kind:      doc.Kind,
				Data:      doc.Data,
				CreatedAt: doc.CreatedAt,
			},
		})
	}
	return out, nil
}
