package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/models"
)

// DefaultSearchLimit applies when a query names no limit.
const DefaultSearchLimit = 100

// MaxSearchLimit caps a single search.
const MaxSearchLimit = 500

// OpportunitySearch finds candidate opportunities in elasticsearch. Scoring
// stays with the match engine; the search only narrows the candidate set.
type OpportunitySearch struct {
	es    *elasticsearch.Client
	index string
}

func NewOpportunitySearch(es *elasticsearch.Client, index string) *OpportunitySearch {
	return &OpportunitySearch{es: es, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.OpportunityRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *OpportunitySearch) Find(ctx context.Context, q SearchQuery) ([]models.OpportunityRecord, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(BuildSearchBody(q)); err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("encode query: %w", err))
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&body),
		s.es.Search.WithTrackTotalHits(false),
	)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search %s: %s", s.index, res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("decode response: %w", err))
	}

	out := make([]models.OpportunityRecord, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// BuildSearchBody renders q as an elasticsearch bool query. Results are
// sorted by id so repeated searches return the same candidates.
func BuildSearchBody(q SearchQuery) map[string]interface{} {
	var filters []interface{}
	if divisions := nonBlank(q.Divisions, strings.ToLower); len(divisions) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"division": divisions},
		})
	}
	if country := strings.TrimSpace(q.Country); country != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"location.country": strings.ToLower(country)},
		})
	}
	if levels := nonBlank(q.RoleLevels, strings.ToUpper); len(levels) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"roleLevel": levels},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(filters) > 0 {
		query = map[string]interface{}{"bool": map[string]interface{}{"filter": filters}}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	return map[string]interface{}{
		"size":  limit,
		"query": query,
		"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
	}
}

func nonBlank(in []string, fold func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, fold(v))
		}
	}
	return out
}
