package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/joeyheath65/NetTools/internal/domain"
	"github.com/joeyheath65/NetTools/internal/repository"
)

// SearchService defines the inventory operations the search handlers need
type SearchService interface {
	Search(ctx context.Context, filter repository.SiteFilter) ([]domain.Site, error)
	SearchStores(ctx context.Context, term string) ([]domain.Site, error)
}

// Search groups search handlers for testability
type Search struct {
	svc SearchService
}

func NewSearch(svc SearchService) *Search {
	return &Search{svc: svc}
}

// SearchHandler handles GET /api/search.
//
// Query parameters: store (exact store number), vlan (exact VLAN
// number), ip (SVI address substring), city (street address substring).
// Set parameters combine with logical AND; a request with no parameters
// set is rejected with 400.
func (s *Search) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var filter repository.SiteFilter
	q := r.URL.Query()

	if raw := q.Get("store"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(w, "Invalid store number")
			return
		}
		filter.StoreNumber = &n
	}
	if raw := q.Get("vlan"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(w, "Invalid VLAN number")
			return
		}
		filter.VLANNumber = &n
	}
	filter.IPSubstring = q.Get("ip")
	filter.AddressSubstring = q.Get("city")

	sites, err := s.svc.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]StoreResponse, 0, len(sites))
	for _, site := range sites {
		response = append(response, toStoreResponse(site))
	}

	writeJSON(w, http.StatusOK, response)
}

// SearchStoresHandler handles GET /api/stores/search.
//
// Query parameter q matches against store name and address.
func (s *Search) SearchStoresHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeBadRequest(w, "Search term is required")
		return
	}

	sites, err := s.svc.SearchStores(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]StoreResponse, 0, len(sites))
	for _, site := range sites {
		response = append(response, toStoreResponse(site))
	}

	writeJSON(w, http.StatusOK, response)
}
