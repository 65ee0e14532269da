package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/joeyheath65/NetTools/internal/domain"
	"github.com/joeyheath65/NetTools/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSite(t *testing.T, repo SiteRepository, storeNumber int, siteID string) {
	t.Helper()
	_, err := repo.Save(context.Background(), domain.Site{
		SiteID:      siteID,
		StoreNumber: storeNumber,
		SiteName:    "Seed Store",
		Address:     "1 Seed Way",
	})
	require.NoError(t, err)
}

func TestVLANRepository_Upsert(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_Upsert")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewVLANRepository(db)

	vlan := domain.VLANConfig{
		SiteID:     "site-42",
		VLANNumber: 10,
		SVIName:    "vlan10_svi",
		IPAddress:  "10.4.21.1",
		Netmask:    "255.255.255.0",
		Gateway:    "10.4.21.1",
	}

	saved, err := repo.Upsert(context.Background(), vlan)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "10.4.21.1", saved.IPAddress)
}

func TestVLANRepository_Upsert_Idempotent(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_Upsert_Idempotent")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewVLANRepository(db)

	vlan := domain.VLANConfig{
		SiteID:     "site-42",
		VLANNumber: 10,
		SVIName:    "vlan10_svi",
		IPAddress:  "10.4.21.1",
		Netmask:    "255.255.255.0",
		Gateway:    "10.4.21.1",
	}

	_, err := repo.Upsert(context.Background(), vlan)
	require.NoError(t, err)

	// Same natural key, different address: exactly one record remains,
	// reflecting the latest value
	vlan.IPAddress = "10.9.91.1"
	vlan.Gateway = "10.9.91.1"
	saved, err := repo.Upsert(context.Background(), vlan)
	require.NoError(t, err)
	assert.Equal(t, "10.9.91.1", saved.IPAddress)

	count, err := repo.CountBySite(context.Background(), "site-42")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVLANRepository_Upsert_InvalidInput(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_Upsert_InvalidInput")
	defer cleanup()

	repo := NewVLANRepository(db)

	_, err := repo.Upsert(context.Background(), domain.VLANConfig{SiteID: "s", VLANNumber: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestVLANRepository_FindBySite(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_FindBySite")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewVLANRepository(db)

	for _, n := range []int{30, 10, 20} {
		_, err := repo.Upsert(context.Background(), domain.VLANConfig{
			SiteID:     "site-42",
			VLANNumber: n,
			IPAddress:  "10.4.20.1",
			Netmask:    "255.255.255.0",
			Gateway:    "10.4.20.1",
		})
		require.NoError(t, err)
	}

	vlans, err := repo.FindBySite(context.Background(), "site-42")
	require.NoError(t, err)
	require.Len(t, vlans, 3)
	assert.Equal(t, 10, vlans[0].VLANNumber)
	assert.Equal(t, 30, vlans[2].VLANNumber)
}

func TestVLANRepository_FindBySiteAndVLAN_NotFound(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_FindBySiteAndVLAN_NotFound")
	defer cleanup()

	repo := NewVLANRepository(db)

	_, err := repo.FindBySiteAndVLAN(context.Background(), "missing", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestVLANRepository_FindAllWithStoreNumbers(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_FindAllWithStoreNumbers")
	defer cleanup()

	sites := NewSiteRepository(db)
	seedSite(t, sites, 2, "site-2")
	seedSite(t, sites, 1, "site-1")

	repo := NewVLANRepository(db)
	for _, siteID := range []string{"site-2", "site-1"} {
		_, err := repo.Upsert(context.Background(), domain.VLANConfig{
			SiteID:     siteID,
			VLANNumber: 10,
			IPAddress:  "10.0.11.1",
			Netmask:    "255.255.255.0",
			Gateway:    "10.0.11.1",
		})
		require.NoError(t, err)
	}

	vlans, err := repo.FindAllWithStoreNumbers(context.Background())
	require.NoError(t, err)
	require.Len(t, vlans, 2)
	assert.Equal(t, 1, vlans[0].StoreNumber)
	assert.Equal(t, 2, vlans[1].StoreNumber)
}

func TestVLANRepository_DeleteBySiteAndVLAN(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestVLANRepository_DeleteBySiteAndVLAN")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewVLANRepository(db)

	_, err := repo.Upsert(context.Background(), domain.VLANConfig{
		SiteID:     "site-42",
		VLANNumber: 10,
		IPAddress:  "10.4.21.1",
		Netmask:    "255.255.255.0",
		Gateway:    "10.4.21.1",
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBySiteAndVLAN(context.Background(), "site-42", 10))

	err = repo.DeleteBySiteAndVLAN(context.Background(), "site-42", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
