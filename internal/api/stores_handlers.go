package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/joeyheath65/NetTools/internal/domain"
	"github.com/joeyheath65/NetTools/internal/inventory"
)

// StoresService defines the inventory operations the store handlers need
type StoresService interface {
	ListStoreSummaries(ctx context.Context) ([]domain.StoreSummary, error)
	ProvisionStore(ctx context.Context, req inventory.ProvisionRequest) (domain.SiteDetails, error)
	GetSite(ctx context.Context, storeNumber int) (domain.Site, error)
	UpdateSite(ctx context.Context, storeNumber int, req inventory.UpdateSiteRequest) (domain.Site, error)
	DeleteStore(ctx context.Context, storeNumber int) error
	GetCompleteSiteInfo(ctx context.Context, storeNumber int) (domain.SiteDetails, error)
	GetSiteManagement(ctx context.Context, storeNumber int) (domain.NetworkManagement, error)
	ListSiteVLANs(ctx context.Context, storeNumber int) ([]domain.VLANConfig, error)
}

// Stores groups store handlers for testability
type Stores struct {
	svc StoresService
}

func NewStores(svc StoresService) *Stores {
	return &Stores{svc: svc}
}

type CreateStoreRequest struct {
	StoreNumber int     `json:"store_number"`
	SiteName    string  `json:"site_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type UpdateStoreRequest struct {
	SiteName  string  `json:"site_name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StoreResponse struct {
	SiteID      string  `json:"site_id"`
	StoreNumber int     `json:"store_number"`
	SiteName    string  `json:"site_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type StoreSummaryResponse struct {
	StoreResponse
	WirelessPlatform string `json:"wireless_platform"`
	BusinessUnit     string `json:"business_unit"`
}

type ManagementResponse struct {
	WirelessPlatform string   `json:"wireless_platform"`
	BusinessUnit     string   `json:"business_unit"`
	RequiredServices []string `json:"required_services"`
}

type StoreDetailsResponse struct {
	Store      StoreResponse      `json:"store"`
	VLANs      []VLANResponse     `json:"vlans"`
	SwitchIPs  []SwitchIPResponse `json:"switch_ips"`
	Management ManagementResponse `json:"management"`
}

func toStoreResponse(s domain.Site) StoreResponse {
	return StoreResponse{
		SiteID:      s.SiteID,
		StoreNumber: s.StoreNumber,
		SiteName:    s.SiteName,
		Address:     s.Address,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
	}
}

func toStoreDetailsResponse(d domain.SiteDetails) StoreDetailsResponse {
	resp := StoreDetailsResponse{
		Store:     toStoreResponse(d.Site),
		VLANs:     make([]VLANResponse, 0, len(d.VLANs)),
		SwitchIPs: make([]SwitchIPResponse, 0, len(d.SwitchIPs)),
		Management: ManagementResponse{
			WirelessPlatform: d.Management.WirelessPlatform,
			BusinessUnit:     d.Management.BusinessUnit,
			RequiredServices: d.Management.RequiredServices,
		},
	}
	for _, v := range d.VLANs {
		resp.VLANs = append(resp.VLANs, toVLANResponse(v))
	}
	for _, sw := range d.SwitchIPs {
		resp.SwitchIPs = append(resp.SwitchIPs, toSwitchIPResponse(sw))
	}
	return resp
}

// ListStoresHandler handles GET /api/stores.
//
// Response: 200 OK with every store joined with its management platform
// fields, ordered by store number.
func (s *Stores) ListStoresHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.svc.ListStoreSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]StoreSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		response = append(response, StoreSummaryResponse{
			StoreResponse:    toStoreResponse(sum.Site),
			WirelessPlatform: sum.WirelessPlatform,
			BusinessUnit:     sum.BusinessUnit,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// CreateStoreHandler handles POST /api/stores.
//
// Request: JSON body with store_number, site_name, address, latitude,
// longitude. Provisions the full default configuration for the store.
// Response: 201 Created with the complete provisioned configuration,
// 400 for invalid input, 409 when the store number is taken.
func (s *Stores) CreateStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	details, err := s.svc.ProvisionStore(r.Context(), inventory.ProvisionRequest{
		StoreNumber: req.StoreNumber,
		SiteName:    req.SiteName,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStoreDetailsResponse(details))
}

// GetStoreHandler handles GET /api/stores/{storeNumber}
func (s *Stores) GetStoreHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	site, err := s.svc.GetSite(r.Context(), storeNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(site))
}

// UpdateStoreHandler handles PUT /api/stores/{storeNumber}.
//
// Request: JSON body with site_name, address, latitude, longitude.
// The store number and site ID are immutable.
func (s *Stores) UpdateStoreHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	site, err := s.svc.UpdateSite(r.Context(), storeNumber, inventory.UpdateSiteRequest{
		SiteName:  req.SiteName,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(site))
}

// DeleteStoreHandler handles DELETE /api/stores/{storeNumber}.
//
// Removes the store and every dependent VLAN, switch IP, management and
// service record.
func (s *Stores) DeleteStoreHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.svc.DeleteStore(r.Context(), storeNumber); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Store deleted successfully"})
}

// GetStoreDetailsHandler handles GET /api/stores/{storeNumber}/details.
//
// Response: 200 OK with the store, its VLAN configs, switch IPs and
// management record in one document.
func (s *Stores) GetStoreDetailsHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	details, err := s.svc.GetCompleteSiteInfo(r.Context(), storeNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoreDetailsResponse(details))
}

// GetStoreManagementHandler handles GET /api/stores/{storeNumber}/management
func (s *Stores) GetStoreManagementHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	nm, err := s.svc.GetSiteManagement(r.Context(), storeNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ManagementResponse{
		WirelessPlatform: nm.WirelessPlatform,
		BusinessUnit:     nm.BusinessUnit,
		RequiredServices: nm.RequiredServices,
	})
}

// GetStoreVLANsHandler handles GET /api/stores/{storeNumber}/vlans
func (s *Stores) GetStoreVLANsHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	vlans, err := s.svc.ListSiteVLANs(r.Context(), storeNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]VLANResponse, 0, len(vlans))
	for _, v := range vlans {
		response = append(response, toVLANResponse(v))
	}

	writeJSON(w, http.StatusOK, response)
}
