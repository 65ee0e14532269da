// Package inventory composes the repositories and the address allocator
// into the multi-record operations other tools consume: provisioning a
// complete store, cascading deletion, joined site views, and search.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joeyheath65/NetTools/internal/allocator"
	"github.com/joeyheath65/NetTools/internal/domain"
	"github.com/joeyheath65/NetTools/internal/repository"
)

// Options tunes the provisioning defaults. Zero values fall back to the
// standard nine-VLAN set, the DNS/DHCP/RADIUS1 service bindings and the
// Mist/Store management platform.
type Options struct {
	VLANs            []int
	DefaultServices  []string
	WirelessPlatform string
	BusinessUnit     string
}

// Service orchestrates inventory operations over the storage layer
type Service struct {
	db               *sql.DB
	sites            repository.SiteRepository
	vlans            repository.VLANRepository
	switchIPs        repository.SwitchIPRepository
	netmgmt          repository.NetworkManagementRepository
	vlanSet          []int
	defaultServices  []string
	wirelessPlatform string
	businessUnit     string
}

// NewService creates a new inventory service
func NewService(db *sql.DB, opts Options) *Service {
	vlanSet := opts.VLANs
	if len(vlanSet) == 0 {
		vlanSet = allocator.DefaultVLANs()
	}
	services := opts.DefaultServices
	if len(services) == 0 {
		services = []string{"DNS", "DHCP", "RADIUS1"}
	}
	platform := opts.WirelessPlatform
	if platform == "" {
		platform = "Mist"
	}
	unit := opts.BusinessUnit
	if unit == "" {
		unit = "Store"
	}

	return &Service{
		db:               db,
		sites:            repository.NewSiteRepository(db),
		vlans:            repository.NewVLANRepository(db),
		switchIPs:        repository.NewSwitchIPRepository(db),
		netmgmt:          repository.NewNetworkManagementRepository(db),
		vlanSet:          vlanSet,
		defaultServices:  services,
		wirelessPlatform: platform,
		businessUnit:     unit,
	}
}

// Close releases the prepared statements held by the service's
// repositories. The database handle itself stays with the caller.
func (s *Service) Close() error {
	return s.sites.Close()
}

// ProvisionRequest carries the caller-supplied attributes for a new store
type ProvisionRequest struct {
	StoreNumber int
	SiteName    string
	Address     string
	Latitude    float64
	Longitude   float64
}

// ProvisionStore creates a site with its full default configuration: one
// Site record, one VLANConfig per allocation-set VLAN with a derived SVI
// address, two switch management IPs off the VLAN 60 base, a management
// record, and the default required-service bindings.
//
// The whole sequence runs in one transaction. Any failure rolls the site
// back entirely; a partially provisioned store never becomes visible.
func (s *Service) ProvisionStore(ctx context.Context, req ProvisionRequest) (domain.SiteDetails, error) {
	if req.StoreNumber < 1 || req.StoreNumber > allocator.MaxStoreNumber {
		return domain.SiteDetails{}, fmt.Errorf("%w: store number %d out of range [1, %d]",
			repository.ErrInvalidInput, req.StoreNumber, allocator.MaxStoreNumber)
	}
	if req.SiteName == "" {
		return domain.SiteDetails{}, fmt.Errorf("%w: site name is required", repository.ErrInvalidInput)
	}

	exists, err := s.sites.ExistsByStoreNumber(ctx, req.StoreNumber)
	if err != nil {
		return domain.SiteDetails{}, err
	}
	if exists {
		return domain.SiteDetails{}, fmt.Errorf("%w: store number %d already exists",
			repository.ErrConstraintViolation, req.StoreNumber)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.SiteDetails{}, fmt.Errorf("failed to begin provisioning transaction: %w",
			errors.Join(repository.ErrStorageUnavailable, err))
	}
	defer tx.Rollback()

	siteRepo := repository.NewSiteRepository(tx)
	vlanRepo := repository.NewVLANRepository(tx)
	switchRepo := repository.NewSwitchIPRepository(tx)
	netmgmtRepo := repository.NewNetworkManagementRepository(tx)

	site := domain.Site{
		SiteID:      uuid.NewString(),
		StoreNumber: req.StoreNumber,
		SiteName:    req.SiteName,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	details := domain.SiteDetails{}

	details.Site, err = siteRepo.Save(ctx, site)
	if err != nil {
		return domain.SiteDetails{}, fmt.Errorf("provisioning store %d: %w", req.StoreNumber, err)
	}

	for _, vlanNumber := range s.vlanSet {
		ip, err := allocator.DeriveIP(req.StoreNumber, vlanNumber)
		if err != nil {
			return domain.SiteDetails{}, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
		}

		vlan, err := vlanRepo.Upsert(ctx, domain.VLANConfig{
			SiteID:     site.SiteID,
			VLANNumber: vlanNumber,
			SVIName:    allocator.SVIName(vlanNumber),
			IPAddress:  ip,
			Netmask:    allocator.Netmask,
			Gateway:    ip,
		})
		if err != nil {
			return domain.SiteDetails{}, fmt.Errorf("provisioning VLAN %d for store %d: %w", vlanNumber, req.StoreNumber, err)
		}
		details.VLANs = append(details.VLANs, vlan)
	}

	firstSwitch, secondSwitch, err := allocator.SwitchManagementIPs(req.StoreNumber)
	if err != nil {
		return domain.SiteDetails{}, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	for _, ip := range []string{firstSwitch, secondSwitch} {
		switchIP, err := switchRepo.Upsert(ctx, domain.SwitchIP{
			SiteID:   site.SiteID,
			SwitchIP: ip,
		})
		if err != nil {
			return domain.SiteDetails{}, fmt.Errorf("provisioning switch IP %s for store %d: %w", ip, req.StoreNumber, err)
		}
		details.SwitchIPs = append(details.SwitchIPs, switchIP)
	}

	details.Management, err = netmgmtRepo.Upsert(ctx, domain.NetworkManagement{
		SiteID:           site.SiteID,
		WirelessPlatform: s.wirelessPlatform,
		BusinessUnit:     s.businessUnit,
		RequiredServices: s.defaultServices,
	})
	if err != nil {
		return domain.SiteDetails{}, fmt.Errorf("provisioning management record for store %d: %w", req.StoreNumber, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.SiteDetails{}, fmt.Errorf("failed to commit provisioning: %w",
			errors.Join(repository.ErrStorageUnavailable, err))
	}

	return details, nil
}

// ListSites returns every site ordered by store number
func (s *Service) ListSites(ctx context.Context) ([]domain.Site, error) {
	return s.sites.FindAll(ctx)
}

// ListStoreSummaries returns every site joined with its management
// platform fields
func (s *Service) ListStoreSummaries(ctx context.Context) ([]domain.StoreSummary, error) {
	return s.sites.FindAllSummaries(ctx)
}

// GetSite returns one site by store number
func (s *Service) GetSite(ctx context.Context, storeNumber int) (domain.Site, error) {
	return s.sites.FindByStoreNumber(ctx, storeNumber)
}

// GetSiteManagement returns the management record for a store, with
// platform defaults applied when none was recorded
func (s *Service) GetSiteManagement(ctx context.Context, storeNumber int) (domain.NetworkManagement, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.NetworkManagement{}, err
	}

	nm, err := s.netmgmt.FindBySite(ctx, site.SiteID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NetworkManagement{
			SiteID:           site.SiteID,
			WirelessPlatform: s.wirelessPlatform,
			BusinessUnit:     s.businessUnit,
		}, nil
	}
	return nm, err
}

// UpdateSiteRequest carries the mutable site attributes
type UpdateSiteRequest struct {
	SiteName  string
	Address   string
	Latitude  float64
	Longitude float64
}

// UpdateSite updates name, address and coordinates of an existing store
func (s *Service) UpdateSite(ctx context.Context, storeNumber int, req UpdateSiteRequest) (domain.Site, error) {
	if req.SiteName == "" {
		return domain.Site{}, fmt.Errorf("%w: site name is required", repository.ErrInvalidInput)
	}

	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.Site{}, err
	}

	site.SiteName = req.SiteName
	site.Address = req.Address
	site.Latitude = req.Latitude
	site.Longitude = req.Longitude

	return s.sites.Save(ctx, site)
}

// DeleteStore removes a store and every dependent record. The child
// tables are cleared explicitly inside one transaction rather than
// relying on the engine's cascade configuration, so no orphaned VLAN,
// switch or service row can survive the site.
func (s *Service) DeleteStore(ctx context.Context, storeNumber int) error {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w",
			errors.Join(repository.ErrStorageUnavailable, err))
	}
	defer tx.Rollback()

	// children first, site last
	for _, table := range []string{"required_services", "network_management", "switch_ips", "vlan_configs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE site_id = ?", site.SiteID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table,
				errors.Join(repository.ErrStorageUnavailable, err))
		}
	}

	if err := repository.NewSiteRepository(tx).DeleteByID(ctx, site.SiteID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w",
			errors.Join(repository.ErrStorageUnavailable, err))
	}

	return nil
}

// GetCompleteSiteInfo returns the joined Site + VLANs + switch IPs +
// management view for a store
func (s *Service) GetCompleteSiteInfo(ctx context.Context, storeNumber int) (domain.SiteDetails, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.SiteDetails{}, err
	}

	details := domain.SiteDetails{Site: site}

	details.VLANs, err = s.vlans.FindBySite(ctx, site.SiteID)
	if err != nil {
		return domain.SiteDetails{}, err
	}

	details.SwitchIPs, err = s.switchIPs.FindBySite(ctx, site.SiteID)
	if err != nil {
		return domain.SiteDetails{}, err
	}

	details.Management, err = s.netmgmt.FindBySite(ctx, site.SiteID)
	if errors.Is(err, repository.ErrNotFound) {
		details.Management = domain.NetworkManagement{
			SiteID:           site.SiteID,
			WirelessPlatform: s.wirelessPlatform,
			BusinessUnit:     s.businessUnit,
		}
	} else if err != nil {
		return domain.SiteDetails{}, err
	}

	return details, nil
}

// ListAllVLANs returns every VLAN config joined with its store number
func (s *Service) ListAllVLANs(ctx context.Context) ([]domain.StoreVLAN, error) {
	return s.vlans.FindAllWithStoreNumbers(ctx)
}

// ListSiteVLANs returns the VLAN configs for one store
func (s *Service) ListSiteVLANs(ctx context.Context, storeNumber int) ([]domain.VLANConfig, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return nil, err
	}
	return s.vlans.FindBySite(ctx, site.SiteID)
}

// GetVLAN returns one VLAN config keyed by (store number, VLAN number)
func (s *Service) GetVLAN(ctx context.Context, storeNumber, vlanNumber int) (domain.VLANConfig, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.VLANConfig{}, err
	}
	return s.vlans.FindBySiteAndVLAN(ctx, site.SiteID, vlanNumber)
}

// VLANRequest carries the caller-supplied VLAN attributes
type VLANRequest struct {
	VLANNumber int
	SVIName    string
	IPAddress  string
	Netmask    string
	Gateway    string
}

// UpsertVLAN creates or replaces a VLAN config for a store. Direct edits
// to the stored address are permitted; the allocator only governs
// addresses derived at provisioning time.
func (s *Service) UpsertVLAN(ctx context.Context, storeNumber int, req VLANRequest) (domain.VLANConfig, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.VLANConfig{}, err
	}

	return s.vlans.Upsert(ctx, domain.VLANConfig{
		SiteID:     site.SiteID,
		VLANNumber: req.VLANNumber,
		SVIName:    req.SVIName,
		IPAddress:  req.IPAddress,
		Netmask:    req.Netmask,
		Gateway:    req.Gateway,
	})
}

// UpdateVLAN replaces an existing VLAN config; unlike UpsertVLAN it fails
// with NotFound when the VLAN was never configured
func (s *Service) UpdateVLAN(ctx context.Context, storeNumber, vlanNumber int, req VLANRequest) (domain.VLANConfig, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.VLANConfig{}, err
	}

	if _, err := s.vlans.FindBySiteAndVLAN(ctx, site.SiteID, vlanNumber); err != nil {
		return domain.VLANConfig{}, err
	}

	return s.vlans.Upsert(ctx, domain.VLANConfig{
		SiteID:     site.SiteID,
		VLANNumber: vlanNumber,
		SVIName:    req.SVIName,
		IPAddress:  req.IPAddress,
		Netmask:    req.Netmask,
		Gateway:    req.Gateway,
	})
}

// DeleteVLAN removes one VLAN config keyed by (store number, VLAN number)
func (s *Service) DeleteVLAN(ctx context.Context, storeNumber, vlanNumber int) error {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return err
	}
	return s.vlans.DeleteBySiteAndVLAN(ctx, site.SiteID, vlanNumber)
}

// ListSiteSwitchIPs returns the switch IPs for one store
func (s *Service) ListSiteSwitchIPs(ctx context.Context, storeNumber int) ([]domain.SwitchIP, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return nil, err
	}
	return s.switchIPs.FindBySite(ctx, site.SiteID)
}

// ListAllSwitchIPs returns every switch IP joined with its store number
func (s *Service) ListAllSwitchIPs(ctx context.Context) ([]domain.StoreSwitchIP, error) {
	return s.switchIPs.FindAllWithStoreNumbers(ctx)
}

// GetSwitchIP returns one switch IP keyed by (store number, address)
func (s *Service) GetSwitchIP(ctx context.Context, storeNumber int, ipAddress string) (domain.SwitchIP, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.SwitchIP{}, err
	}
	return s.switchIPs.FindBySiteAndIP(ctx, site.SiteID, ipAddress)
}

// AddSwitchIP binds a switch management address to a store
func (s *Service) AddSwitchIP(ctx context.Context, storeNumber int, ipAddress, switchType string) (domain.SwitchIP, error) {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return domain.SwitchIP{}, err
	}
	return s.switchIPs.Upsert(ctx, domain.SwitchIP{
		SiteID:     site.SiteID,
		SwitchIP:   ipAddress,
		SwitchType: switchType,
	})
}

// UpdateSwitchIP replaces the address or type of an existing switch IP
func (s *Service) UpdateSwitchIP(ctx context.Context, storeNumber int, oldIP, newIP, switchType string) error {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return err
	}
	return s.switchIPs.Rekey(ctx, site.SiteID, oldIP, newIP, switchType)
}

// DeleteSwitchIP removes one switch IP keyed by (store number, address)
func (s *Service) DeleteSwitchIP(ctx context.Context, storeNumber int, ipAddress string) error {
	site, err := s.sites.FindByStoreNumber(ctx, storeNumber)
	if err != nil {
		return err
	}
	return s.switchIPs.DeleteBySiteAndIP(ctx, site.SiteID, ipAddress)
}

// Search finds sites matching the AND-combination of the set filters.
// An empty filter is rejected rather than scanning the whole inventory.
func (s *Service) Search(ctx context.Context, filter repository.SiteFilter) ([]domain.Site, error) {
	return s.sites.FindByFilter(ctx, filter)
}

// SearchStores finds sites whose name or address contains the term
func (s *Service) SearchStores(ctx context.Context, term string) ([]domain.Site, error) {
	return s.sites.Search(ctx, term)
}

// Dashboard returns inventory-wide aggregate statistics
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	var err error

	stats.TotalStores, err = s.sites.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats.TotalVLANs, err = s.vlans.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats.TotalSwitches, err = s.switchIPs.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats.MinStoreNumber, stats.MaxStoreNumber, err = s.sites.StoreNumberRange(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats.RecentStores, err = s.sites.FindRecent(ctx, 5)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	return stats, nil
}
