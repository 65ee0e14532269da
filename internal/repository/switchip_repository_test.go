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

func TestSwitchIPRepository_Upsert(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_Upsert")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewSwitchIPRepository(db)

	saved, err := repo.Upsert(context.Background(), domain.SwitchIP{
		SiteID:   "site-42",
		SwitchIP: "10.4.26.30",
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "access", saved.SwitchType, "switch type defaults to access")

	// Same key replaces, never duplicates
	saved, err = repo.Upsert(context.Background(), domain.SwitchIP{
		SiteID:     "site-42",
		SwitchIP:   "10.4.26.30",
		SwitchType: "core",
	})
	require.NoError(t, err)
	assert.Equal(t, "core", saved.SwitchType)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSwitchIPRepository_FindBySite(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_FindBySite")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewSwitchIPRepository(db)

	for _, ip := range []string{"10.4.26.41", "10.4.26.30"} {
		_, err := repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-42", SwitchIP: ip})
		require.NoError(t, err)
	}

	ips, err := repo.FindBySite(context.Background(), "site-42")
	require.NoError(t, err)
	require.Len(t, ips, 2)
	assert.Equal(t, "10.4.26.30", ips[0].SwitchIP)
	assert.Equal(t, "10.4.26.41", ips[1].SwitchIP)
}

func TestSwitchIPRepository_Rekey(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_Rekey")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewSwitchIPRepository(db)

	_, err := repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-42", SwitchIP: "10.4.26.30"})
	require.NoError(t, err)

	require.NoError(t, repo.Rekey(context.Background(), "site-42", "10.4.26.30", "10.4.26.35", "core"))

	found, err := repo.FindBySiteAndIP(context.Background(), "site-42", "10.4.26.35")
	require.NoError(t, err)
	assert.Equal(t, "core", found.SwitchType)

	_, err = repo.FindBySiteAndIP(context.Background(), "site-42", "10.4.26.30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSwitchIPRepository_Rekey_Conflict(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_Rekey_Conflict")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewSwitchIPRepository(db)

	for _, ip := range []string{"10.4.26.30", "10.4.26.41"} {
		_, err := repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-42", SwitchIP: ip})
		require.NoError(t, err)
	}

	err := repo.Rekey(context.Background(), "site-42", "10.4.26.30", "10.4.26.41", "access")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
}

func TestSwitchIPRepository_DeleteBySiteAndIP(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_DeleteBySiteAndIP")
	defer cleanup()

	seedSite(t, NewSiteRepository(db), 42, "site-42")
	repo := NewSwitchIPRepository(db)

	_, err := repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-42", SwitchIP: "10.4.26.30"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBySiteAndIP(context.Background(), "site-42", "10.4.26.30"))

	err = repo.DeleteBySiteAndIP(context.Background(), "site-42", "10.4.26.30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSwitchIPRepository_FindAllWithStoreNumbers(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestSwitchIPRepository_FindAllWithStoreNumbers")
	defer cleanup()

	sites := NewSiteRepository(db)
	seedSite(t, sites, 9, "site-9")
	seedSite(t, sites, 3, "site-3")

	repo := NewSwitchIPRepository(db)
	_, err := repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-9", SwitchIP: "10.0.96.30"})
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), domain.SwitchIP{SiteID: "site-3", SwitchIP: "10.0.36.30"})
	require.NoError(t, err)

	ips, err := repo.FindAllWithStoreNumbers(context.Background())
	require.NoError(t, err)
	require.Len(t, ips, 2)
	assert.Equal(t, 3, ips[0].StoreNumber)
	assert.Equal(t, 9, ips[1].StoreNumber)
}
