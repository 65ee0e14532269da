package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joeyheath65/NetTools/internal/domain"
)

// SwitchIPsService defines the inventory operations the switch IP
// handlers need
type SwitchIPsService interface {
	ListSiteSwitchIPs(ctx context.Context, storeNumber int) ([]domain.SwitchIP, error)
	ListAllSwitchIPs(ctx context.Context) ([]domain.StoreSwitchIP, error)
	GetSwitchIP(ctx context.Context, storeNumber int, ipAddress string) (domain.SwitchIP, error)
	AddSwitchIP(ctx context.Context, storeNumber int, ipAddress, switchType string) (domain.SwitchIP, error)
	UpdateSwitchIP(ctx context.Context, storeNumber int, oldIP, newIP, switchType string) error
	DeleteSwitchIP(ctx context.Context, storeNumber int, ipAddress string) error
}

// SwitchIPs groups switch IP handlers for testability
type SwitchIPs struct {
	svc SwitchIPsService
}

func NewSwitchIPs(svc SwitchIPsService) *SwitchIPs {
	return &SwitchIPs{svc: svc}
}

type AddSwitchIPRequest struct {
	SwitchIP   string `json:"switch_ip"`
	SwitchType string `json:"switch_type"`
}

type UpdateSwitchIPRequest struct {
	NewIP      string `json:"new_ip"`
	SwitchType string `json:"switch_type"`
}

type SwitchIPResponse struct {
	ID         int64  `json:"id"`
	SiteID     string `json:"site_id"`
	SwitchIP   string `json:"switch_ip"`
	SwitchType string `json:"switch_type"`
}

type StoreSwitchIPResponse struct {
	StoreNumber int `json:"store_number"`
	SwitchIPResponse
}

func toSwitchIPResponse(s domain.SwitchIP) SwitchIPResponse {
	return SwitchIPResponse{
		ID:         s.ID,
		SiteID:     s.SiteID,
		SwitchIP:   s.SwitchIP,
		SwitchType: s.SwitchType,
	}
}

// isDottedQuad reports whether s is four dot-separated octets in
// [0, 255]. Derived management addresses carry zero-padded octets
// (e.g. 10.1.06.30), which net.ParseIP rejects, so octets are parsed
// directly.
func isDottedQuad(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		octet := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
			octet = octet*10 + int(c-'0')
		}
		if octet > 255 {
			return false
		}
	}
	return true
}

// ListSwitchIPsHandler handles GET /api/stores/{storeNumber}/switch-ips
func (s *SwitchIPs) ListSwitchIPsHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ips, err := s.svc.ListSiteSwitchIPs(r.Context(), storeNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]SwitchIPResponse, 0, len(ips))
	for _, ip := range ips {
		response = append(response, toSwitchIPResponse(ip))
	}

	writeJSON(w, http.StatusOK, response)
}

// ListAllSwitchIPsHandler handles GET /api/switch-ips/all.
//
// Response: 200 OK with every switch IP across all stores, each joined
// with its owning store number.
func (s *SwitchIPs) ListAllSwitchIPsHandler(w http.ResponseWriter, r *http.Request) {
	ips, err := s.svc.ListAllSwitchIPs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]StoreSwitchIPResponse, 0, len(ips))
	for _, ip := range ips {
		response = append(response, StoreSwitchIPResponse{
			StoreNumber:      ip.StoreNumber,
			SwitchIPResponse: toSwitchIPResponse(ip.SwitchIP),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// AddSwitchIPHandler handles POST /api/stores/{storeNumber}/switch-ips.
//
// Request: JSON body with switch_ip and optional switch_type.
// Response: 201 Created with the stored record.
func (s *SwitchIPs) AddSwitchIPHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req AddSwitchIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if !isDottedQuad(req.SwitchIP) {
		writeBadRequest(w, "Invalid IPv4 address format")
		return
	}

	ip, err := s.svc.AddSwitchIP(r.Context(), storeNumber, req.SwitchIP, req.SwitchType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSwitchIPResponse(ip))
}

// GetSwitchIPHandler handles GET /api/stores/{storeNumber}/switch-ips/{ipAddress}
func (s *SwitchIPs) GetSwitchIPHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ipAddress := chi.URLParam(r, "ipAddress")
	if !isDottedQuad(ipAddress) {
		writeBadRequest(w, "Invalid IPv4 address format")
		return
	}

	ip, err := s.svc.GetSwitchIP(r.Context(), storeNumber, ipAddress)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSwitchIPResponse(ip))
}

// UpdateSwitchIPHandler handles PUT /api/stores/{storeNumber}/switch-ips/{ipAddress}.
//
// Request: JSON body with new_ip and optional switch_type. Rekeys the
// record from the path address to new_ip. Returns 409 when new_ip is
// already bound to the store.
func (s *SwitchIPs) UpdateSwitchIPHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	oldIP := chi.URLParam(r, "ipAddress")

	var req UpdateSwitchIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if !isDottedQuad(oldIP) || !isDottedQuad(req.NewIP) {
		writeBadRequest(w, "Invalid IPv4 address format")
		return
	}

	if err := s.svc.UpdateSwitchIP(r.Context(), storeNumber, oldIP, req.NewIP, req.SwitchType); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Switch IP updated successfully"})
}

// DeleteSwitchIPHandler handles DELETE /api/stores/{storeNumber}/switch-ips/{ipAddress}
func (s *SwitchIPs) DeleteSwitchIPHandler(w http.ResponseWriter, r *http.Request) {
	storeNumber, err := storeNumberParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ip := chi.URLParam(r, "ipAddress")
	if !isDottedQuad(ip) {
		writeBadRequest(w, "Invalid IPv4 address format")
		return
	}

	if err := s.svc.DeleteSwitchIP(r.Context(), storeNumber, ip); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Switch IP deleted successfully"})
}
