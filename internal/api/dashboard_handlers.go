package api

import (
	"context"
	"net/http"

	"github.com/joeyheath65/NetTools/internal/domain"
)

// DashboardService defines the inventory operations the dashboard
// handler needs
type DashboardService interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

// Dashboard groups dashboard handlers for testability
type Dashboard struct {
	svc DashboardService
}

func NewDashboard(svc DashboardService) *Dashboard {
	return &Dashboard{svc: svc}
}

type DashboardResponse struct {
	TotalStores   int             `json:"totalStores"`
	TotalVLANs    int             `json:"totalVLANs"`
	TotalSwitches int             `json:"totalSwitches"`
	MinStore      int             `json:"minStore"`
	MaxStore      int             `json:"maxStore"`
	RecentStores  []StoreResponse `json:"recentStores"`
}

// DashboardHandler handles GET /api/dashboard.
//
// Response: 200 OK with inventory-wide totals, the store number range
// and the most recently added stores.
func (d *Dashboard) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := d.svc.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	recent := make([]StoreResponse, 0, len(stats.RecentStores))
	for _, site := range stats.RecentStores {
		recent = append(recent, toStoreResponse(site))
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		TotalStores:   stats.TotalStores,
		TotalVLANs:    stats.TotalVLANs,
		TotalSwitches: stats.TotalSwitches,
		MinStore:      stats.MinStoreNumber,
		MaxStore:      stats.MaxStoreNumber,
		RecentStores:  recent,
	})
}
