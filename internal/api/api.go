// Package api exposes the inventory service over HTTP. Handlers are
// grouped per resource behind narrow service interfaces so each group
// can be tested against a stub.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joeyheath65/NetTools/internal/inventory"
)

// API holds the inventory service the handler groups share
type API struct {
	svc *inventory.Service
}

// NewAPI creates a new API instance over the inventory service
func NewAPI(svc *inventory.Service) *API {
	return &API{svc: svc}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: "nettools"})
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Get("/", a.healthHandler)

	stores := NewStores(a.svc)
	search := NewSearch(a.svc)
	switchIPs := NewSwitchIPs(a.svc)
	r.Route("/api/stores", func(r chi.Router) {
		r.Get("/", stores.ListStoresHandler)
		r.Post("/", stores.CreateStoreHandler)
		r.Get("/search", search.SearchStoresHandler)
		r.Route("/{storeNumber}", func(r chi.Router) {
			r.Get("/", stores.GetStoreHandler)
			r.Put("/", stores.UpdateStoreHandler)
			r.Delete("/", stores.DeleteStoreHandler)
			r.Get("/details", stores.GetStoreDetailsHandler)
			r.Get("/management", stores.GetStoreManagementHandler)
			r.Get("/vlans", stores.GetStoreVLANsHandler)
			r.Get("/switch-ips", switchIPs.ListSwitchIPsHandler)
			r.Post("/switch-ips", switchIPs.AddSwitchIPHandler)
			r.Get("/switch-ips/{ipAddress}", switchIPs.GetSwitchIPHandler)
			r.Put("/switch-ips/{ipAddress}", switchIPs.UpdateSwitchIPHandler)
			r.Delete("/switch-ips/{ipAddress}", switchIPs.DeleteSwitchIPHandler)
		})
	})

	vlans := NewVLANs(a.svc)
	r.Route("/api/vlans", func(r chi.Router) {
		r.Get("/", vlans.ListVLANsHandler)
		r.Post("/", vlans.CreateVLANHandler)
		r.Route("/{storeNumber}/{vlanNumber}", func(r chi.Router) {
			r.Get("/", vlans.GetVLANHandler)
			r.Put("/", vlans.UpdateVLANHandler)
			r.Delete("/", vlans.DeleteVLANHandler)
		})
	})

	r.Get("/api/switch-ips/all", switchIPs.ListAllSwitchIPsHandler)
	r.Get("/api/search", search.SearchHandler)

	dashboard := NewDashboard(a.svc)
	r.Get("/api/dashboard", dashboard.DashboardHandler)
}
