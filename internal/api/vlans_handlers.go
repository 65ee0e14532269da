package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/joeyheath65/NetTools/internal/domain"
	"github.com/joeyheath65/NetTools/internal/inventory"
)

// VLANsService defines the inventory operations the VLAN handlers need
type VLANsService interface {
	ListAllVLANs(ctx context.Context) ([]domain.StoreVLAN, error)
	GetVLAN(ctx context.Context, storeNumber, vlanNumber int) (domain.VLANConfig, error)
	UpsertVLAN(ctx context.Context, storeNumber int, req inventory.VLANRequest) (domain.VLANConfig, error)
	UpdateVLAN(ctx context.Context, storeNumber, vlanNumber int, req inventory.VLANRequest) (domain.VLANConfig, error)
	DeleteVLAN(ctx context.Context, storeNumber, vlanNumber int) error
}

// VLANs groups VLAN handlers for testability
type VLANs struct {
	svc VLANsService
}

func NewVLANs(svc VLANsService) *VLANs {
	return &VLANs{svc: svc}
}

type VLANRequestBody struct {
	StoreNumber int    `json:"store_number,omitempty"`
	VLANNumber  int    `json:"vlan_number"`
	SVIName     string `json:"svi_name"`
	IPAddress   string `json:"ip_address"`
	Netmask     string `json:"netmask"`
	Gateway     string `json:"gateway"`
}

type VLANResponse struct {
	ID         int64  `json:"id"`
	SiteID     string `json:"site_id"`
	VLANNumber int    `json:"vlan_number"`
	SVIName    string `json:"svi_name"`
	IPAddress  string `json:"ip_address"`
	Netmask    string `json:"netmask"`
	Gateway    string `json:"gateway"`
}

type StoreVLANResponse struct {
	StoreNumber int `json:"store_number"`
	VLANResponse
}

func toVLANResponse(v domain.VLANConfig) VLANResponse {
	return VLANResponse{
		ID:         v.ID,
		SiteID:     v.SiteID,
		VLANNumber: v.VLANNumber,
		SVIName:    v.SVIName,
		IPAddress:  v.IPAddress,
		Netmask:    v.Netmask,
		Gateway:    v.Gateway,
	}
}

// ListVLANsHandler handles GET /api/vlans.
//
// Response: 200 OK with every VLAN config across all stores, each joined
// with its owning store number.
func (v *VLANs) ListVLANsHandler(w http.ResponseWriter, r *http.Request) {
	vlans, err := v.svc.ListAllVLANs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]StoreVLANResponse, 0, len(vlans))
	for _, sv := range vlans {
		response = append(response, StoreVLANResponse{
			StoreNumber:  sv.StoreNumber,
			VLANResponse: toVLANResponse(sv.VLANConfig),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// CreateVLANHandler handles POST /api/vlans.
//
// Request: JSON body with store_number, vlan_number, svi_name,
// ip_address, netmask, gateway. Creates or replaces the VLAN config for
// the (store, VLAN) pair.
// Response: 201 Created with the stored config.
func (v *VLANs) CreateVLANHandler(w http.ResponseWriter, r *http.Request) {
	var req VLANRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if req.StoreNumber <= 0 {
		writeBadRequest(w, "store_number is required")
		return
	}

	vlan, err := v.svc.UpsertVLAN(r.Context(), req.StoreNumber, inventory.VLANRequest{
		VLANNumber: req.VLANNumber,
		SVIName:    req.SVIName,
		IPAddress:  req.IPAddress,
		Netmask:    req.Netmask,
		Gateway:    req.Gateway,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVLANResponse(vlan))
}

// GetVLANHandler handles GET /api/vlans/{storeNumber}/{vlanNumber}
func (v *VLANs) GetVLANHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	vlanNumber, err := vlanNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	vlan, err := v.svc.GetVLAN(r.Context(), storeNumber, vlanNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVLANResponse(vlan))
}

// UpdateVLANHandler handles PUT /api/vlans/{storeNumber}/{vlanNumber}.
//
// Request: JSON body with svi_name, ip_address, netmask, gateway.
// Unlike POST /api/vlans this fails with 404 when the VLAN was never
// configured for the store.
func (v *VLANs) UpdateVLANHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	vlanNumber, err := vlanNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req VLANRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	vlan, err := v.svc.UpdateVLAN(r.Context(), storeNumber, vlanNumber, inventory.VLANRequest{
		VLANNumber: vlanNumber,
		SVIName:    req.SVIName,
		IPAddress:  req.IPAddress,
		Netmask:    req.Netmask,
		Gateway:    req.Gateway,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVLANResponse(vlan))
}

// DeleteVLANHandler handles DELETE /api/vlans/{storeNumber}/{vlanNumber}
func (v *VLANs) DeleteVLANHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	vlanNumber, err := vlanNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := v.svc.DeleteVLAN(r.Context(), storeNumber, vlanNumber); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "VLAN deleted successfully"})
}
