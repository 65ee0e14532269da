package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/joeyheath65/NetTools/internal/repository"
	"github.com/joeyheath65/NetTools/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, testName string) *Service {
	t.Helper()
	db, cleanup := testutil.SetupTestDBWithMigrations(t, testName)
	t.Cleanup(cleanup)
	return NewService(db, Options{})
}

func provisionStore42(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
		StoreNumber: 42,
		SiteName:    "Store 42",
		Address:     "123 Main St",
		Latitude:    29.1,
		Longitude:   -98.2,
	})
	require.NoError(t, err)
}

func TestService_ProvisionStore(t *testing.T) {
	svc := setupService(t, "TestService_ProvisionStore")

	details, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
		StoreNumber: 42,
		SiteName:    "Store 42",
		Address:     "123 Main St",
		Latitude:    29.1,
		Longitude:   -98.2,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, details.Site.SiteID)
	assert.Equal(t, 42, details.Site.StoreNumber)

	// exactly one site, nine VLANs, two switch IPs, three services
	require.Len(t, details.VLANs, 9)
	require.Len(t, details.SwitchIPs, 2)
	require.Len(t, details.Management.RequiredServices, 3)

	for i, vlan := range details.VLANs {
		assert.Equal(t, (i+1)*10, vlan.VLANNumber)
		assert.Equal(t, "255.255.255.0", vlan.Netmask)
		assert.Equal(t, vlan.IPAddress, vlan.Gateway, "the SVI is its own gateway")
	}

	// derived addresses for store 42
	assert.Equal(t, "10.4.21.1", details.VLANs[0].IPAddress)
	assert.Equal(t, "10.4.29.1", details.VLANs[8].IPAddress)
	assert.Equal(t, "10.4.26.30", details.SwitchIPs[0].SwitchIP)
	assert.Equal(t, "10.4.26.41", details.SwitchIPs[1].SwitchIP)

	assert.ElementsMatch(t, []string{"DNS", "DHCP", "RADIUS1"}, details.Management.RequiredServices)
	assert.Equal(t, "Mist", details.Management.WirelessPlatform)
	assert.Equal(t, "Store", details.Management.BusinessUnit)

	// joined view returns everything too
	info, err := svc.GetCompleteSiteInfo(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, info.VLANs, 9)
	assert.Len(t, info.SwitchIPs, 2)
	assert.Len(t, info.Management.RequiredServices, 3)
}

func TestService_ProvisionStore_InvalidStoreNumber(t *testing.T) {
	svc := setupService(t, "TestService_ProvisionStore_InvalidStoreNumber")

	for _, storeNumber := range []int{0, -1, 1000} {
		_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
			StoreNumber: storeNumber,
			SiteName:    "Bad Store",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrInvalidInput))
	}

	// nothing was written
	sites, err := svc.ListSites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestService_ProvisionStore_DuplicateStore(t *testing.T) {
	svc := setupService(t, "TestService_ProvisionStore_DuplicateStore")
	provisionStore42(t, svc)

	_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
		StoreNumber: 42,
		SiteName:    "Store 42 Again",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))

	// the original store is intact and complete
	info, err := svc.GetCompleteSiteInfo(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Store 42", info.Site.SiteName)
	assert.Len(t, info.VLANs, 9)
}

func TestService_ProvisionStore_RollbackOnFailure(t *testing.T) {
	// A VLAN set containing an unallocatable slot must fail provisioning
	// before commit, leaving no site behind.
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestService_ProvisionStore_RollbackOnFailure")
	t.Cleanup(cleanup)

	svc := NewService(db, Options{VLANs: []int{10, 20, 95}})

	_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
		StoreNumber: 42,
		SiteName:    "Store 42",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrInvalidInput))

	_, err = svc.GetSite(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound), "no partial site may survive a failed provisioning")
}

func TestService_DeleteStore_Cascades(t *testing.T) {
	svc := setupService(t, "TestService_DeleteStore_Cascades")
	provisionStore42(t, svc)

	require.NoError(t, svc.DeleteStore(context.Background(), 42))

	_, err := svc.GetSite(context.Background(), 42)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	// no orphaned children remain
	vlans, err := svc.ListAllVLANs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, vlans)

	switchIPs, err := svc.ListAllSwitchIPs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, switchIPs)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalStores)
	assert.Zero(t, stats.TotalVLANs)
	assert.Zero(t, stats.TotalSwitches)
}

func TestService_DeleteStore_NotFound(t *testing.T) {
	svc := setupService(t, "TestService_DeleteStore_NotFound")

	err := svc.DeleteStore(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestService_UpdateSite(t *testing.T) {
	svc := setupService(t, "TestService_UpdateSite")
	provisionStore42(t, svc)

	updated, err := svc.UpdateSite(context.Background(), 42, UpdateSiteRequest{
		SiteName:  "Store 42 West",
		Address:   "456 Elm St",
		Latitude:  30.0,
		Longitude: -97.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Store 42 West", updated.SiteName)
	assert.Equal(t, "456 Elm St", updated.Address)

	// store number and site_id are untouched
	site, err := svc.GetSite(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, updated.SiteID, site.SiteID)
}

func TestService_UpsertVLAN_Idempotent(t *testing.T) {
	svc := setupService(t, "TestService_UpsertVLAN_Idempotent")
	provisionStore42(t, svc)

	// direct edit of a provisioned VLAN replaces the derived address
	vlan, err := svc.UpsertVLAN(context.Background(), 42, VLANRequest{
		VLANNumber: 10,
		SVIName:    "vlan10_svi",
		IPAddress:  "192.168.10.1",
		Netmask:    "255.255.255.0",
		Gateway:    "192.168.10.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "192.168.10.1", vlan.IPAddress)

	vlans, err := svc.ListSiteVLANs(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, vlans, 9, "upsert replaces, never duplicates")

	// other VLANs keep their derived addresses
	assert.Equal(t, "10.4.22.1", vlans[1].IPAddress)
}

func TestService_UpdateVLAN_NotFound(t *testing.T) {
	svc := setupService(t, "TestService_UpdateVLAN_NotFound")
	provisionStore42(t, svc)

	_, err := svc.UpdateVLAN(context.Background(), 42, 100, VLANRequest{
		SVIName:   "vlan100_svi",
		IPAddress: "10.0.0.1",
		Netmask:   "255.255.255.0",
		Gateway:   "10.0.0.1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestService_SwitchIPOperations(t *testing.T) {
	svc := setupService(t, "TestService_SwitchIPOperations")
	provisionStore42(t, svc)

	added, err := svc.AddSwitchIP(context.Background(), 42, "10.4.26.50", "")
	require.NoError(t, err)
	assert.Equal(t, "access", added.SwitchType)

	ips, err := svc.ListSiteSwitchIPs(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, ips, 3)

	require.NoError(t, svc.UpdateSwitchIP(context.Background(), 42, "10.4.26.50", "10.4.26.51", "core"))

	got, err := svc.GetSwitchIP(context.Background(), 42, "10.4.26.51")
	require.NoError(t, err)
	assert.Equal(t, "core", got.SwitchType)

	require.NoError(t, svc.DeleteSwitchIP(context.Background(), 42, "10.4.26.51"))

	_, err = svc.GetSwitchIP(context.Background(), 42, "10.4.26.51")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestService_Search(t *testing.T) {
	svc := setupService(t, "TestService_Search")
	provisionStore42(t, svc)

	_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
		StoreNumber: 7,
		SiteName:    "Store 7",
		Address:     "9 Oak Ave, Austin, TX",
	})
	require.NoError(t, err)

	// store number filter
	store := 42
	results, err := svc.Search(context.Background(), repository.SiteFilter{StoreNumber: &store})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].StoreNumber)

	// IP substring matches derived VLAN addresses
	results, err = svc.Search(context.Background(), repository.SiteFilter{IPSubstring: "10.0.7"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].StoreNumber)

	// filters AND together
	vlan := 10
	results, err = svc.Search(context.Background(), repository.SiteFilter{
		VLANNumber:       &vlan,
		AddressSubstring: "Austin",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].StoreNumber)

	// no filters is a degenerate query
	_, err = svc.Search(context.Background(), repository.SiteFilter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrInvalidInput))
}

func TestService_SearchStores(t *testing.T) {
	svc := setupService(t, "TestService_SearchStores")
	provisionStore42(t, svc)

	results, err := svc.SearchStores(context.Background(), "Main")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].StoreNumber)

	results, err = svc.SearchStores(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_Dashboard(t *testing.T) {
	svc := setupService(t, "TestService_Dashboard")

	for _, n := range []int{5, 42, 310} {
		_, err := svc.ProvisionStore(context.Background(), ProvisionRequest{
			StoreNumber: n,
			SiteName:    "Store",
		})
		require.NoError(t, err)
	}

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalStores)
	assert.Equal(t, 27, stats.TotalVLANs)
	assert.Equal(t, 6, stats.TotalSwitches)
	assert.Equal(t, 5, stats.MinStoreNumber)
	assert.Equal(t, 310, stats.MaxStoreNumber)
	require.Len(t, stats.RecentStores, 3)
	assert.Equal(t, 310, stats.RecentStores[0].StoreNumber)
}
