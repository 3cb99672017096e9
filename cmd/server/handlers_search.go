package main

import (
	"log"
	"net/http"
	"sort"

	"examsearch/internal/retriever"
	"examsearch/internal/vector"
)

// ========== Search Endpoints ==========

type SearchResponse struct {
	Query   string             `json:"query"`
	Filter  retriever.Filter   `json:"filter"`
	Results []retriever.Result `json:"results"`
}

type StatsResponse struct {
	Problems int        `json:"problems"`
	Sources  []string   `json:"sources"`
	Tags     []TagCount `json:"tags"`
	Dim      int        `json:"vector_dim"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func filterFromRequest(r *http.Request) retriever.Filter {
	q := r.URL.Query()
	return retriever.Filter{
		Source:   q.Get("source"),
		Tags:     listParam(r, "tags"),
		Concepts: listParam(r, "concepts"),
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	query := r.URL.Query().Get("q")
	filter := filterFromRequest(r)

	results := s.retriever.Search(query, filter)
	if results == nil {
		results = []retriever.Result{}
	}

	jsonResp(w, SearchResponse{Query: query, Filter: filter, Results: results})
}

func (s *Server) handleKeyword(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	query := r.URL.Query().Get("q")
	filter := filterFromRequest(r)

	results, err := s.retriever.KeywordSearch(query, filter)
	if err != nil {
		log.Printf("Keyword search failed for %q: %v", query, err)
		jsonErr(w, "Keyword search failed", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []retriever.Result{}
	}

	jsonResp(w, SearchResponse{Query: query, Filter: filter, Results: results})
}

// ========== Stats ==========

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	c := s.retriever.Corpus()
	var tags []TagCount
	for tag, n := range c.TagCounts() {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	sources := c.Sources()
	if sources == nil {
		sources = []string{}
	}
	if tags == nil {
		tags = []TagCount{}
	}

	jsonResp(w, StatsResponse{
		Problems: c.Len(),
		Sources:  sources,
		Tags:     tags,
		Dim:      vector.Dim,
	})
}
