package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joeyheath65/NetTools/internal/domain"
)

const siteColumns = "site_id, store_number, site_name, address, latitude, longitude"

// SiteFilter narrows a site search. Nil/empty fields are ignored; set
// fields combine with logical AND.
type SiteFilter struct {
	StoreNumber      *int
	VLANNumber       *int
	IPSubstring      string
	AddressSubstring string
}

// Empty reports whether no filter field is set
func (f SiteFilter) Empty() bool {
	return f.StoreNumber == nil && f.VLANNumber == nil && f.IPSubstring == "" && f.AddressSubstring == ""
}

// SiteRepository defines domain-specific operations for sites
type SiteRepository interface {
	Repository[domain.Site, string]
	FindByStoreNumber(ctx context.Context, storeNumber int) (domain.Site, error)
	ExistsByStoreNumber(ctx context.Context, storeNumber int) (bool, error)
	Search(ctx context.Context, term string) ([]domain.Site, error)
	FindByFilter(ctx context.Context, filter SiteFilter) ([]domain.Site, error)
	FindAllSummaries(ctx context.Context) ([]domain.StoreSummary, error)
	Count(ctx context.Context) (int, error)
	StoreNumberRange(ctx context.Context) (min int, max int, err error)
	FindRecent(ctx context.Context, limit int) ([]domain.Site, error)
	Close() error
}

// siteRepositoryImpl implements SiteRepository
type siteRepositoryImpl struct {
	db    DBTX
	stmts *PreparedStatementCache
}

// NewSiteRepository creates a new site repository. When backed by a plain
// *sql.DB the store-number lookup path uses a prepared statement cache;
// transaction-scoped repositories query directly.
func NewSiteRepository(db DBTX) SiteRepository {
	r := &siteRepositoryImpl{db: db}
	if sqlDB, ok := db.(*sql.DB); ok {
		r.stmts = NewPreparedStatementCache(sqlDB)
	}
	return r
}

// Close releases the cached prepared statements. Transaction-scoped
// repositories hold none and return nil.
func (r *siteRepositoryImpl) Close() error {
	if r.stmts == nil {
		return nil
	}
	return r.stmts.Close()
}

func validateSite(s domain.Site) error {
	if s.SiteID == "" {
		return fmt.Errorf("%w: site ID is required", ErrInvalidInput)
	}
	if s.StoreNumber <= 0 {
		return fmt.Errorf("%w: store number must be positive", ErrInvalidInput)
	}
	if s.SiteName == "" {
		return fmt.Errorf("%w: site name is required", ErrInvalidInput)
	}
	return nil
}

// Save creates or updates a site
func (r *siteRepositoryImpl) Save(ctx context.Context, site domain.Site) (domain.Site, error) {
	if err := validateSite(site); err != nil {
		return domain.Site{}, err
	}

	exists, err := r.ExistsByID(ctx, site.SiteID)
	if err != nil {
		return domain.Site{}, err
	}
	if exists {
		return r.updateSite(ctx, site)
	}
	return r.createSite(ctx, site)
}

// createSite inserts a new site into the database
func (r *siteRepositoryImpl) createSite(ctx context.Context, s domain.Site) (domain.Site, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE store_number = ?", s.StoreNumber).Scan(&count)
	if err != nil {
		return domain.Site{}, storageFailure("failed to check for duplicate store number", err)
	}
	if count > 0 {
		return domain.Site{}, fmt.Errorf("%w: store number %d already exists", ErrConstraintViolation, s.StoreNumber)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sites (site_id, store_number, site_name, address, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.SiteID, s.StoreNumber, s.SiteName, s.Address, s.Latitude, s.Longitude)
	if err != nil {
		return domain.Site{}, storageFailure("failed to create site", err)
	}

	return s, nil
}

// updateSite updates an existing site in the database
func (r *siteRepositoryImpl) updateSite(ctx context.Context, s domain.Site) (domain.Site, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE store_number = ? AND site_id != ?", s.StoreNumber, s.SiteID).Scan(&count)
	if err != nil {
		return domain.Site{}, storageFailure("failed to check for duplicate store number", err)
	}
	if count > 0 {
		return domain.Site{}, fmt.Errorf("%w: store number %d already exists", ErrConstraintViolation, s.StoreNumber)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE sites
		SET store_number = ?, site_name = ?, address = ?, latitude = ?, longitude = ?, updated_at = CURRENT_TIMESTAMP
		WHERE site_id = ?`,
		s.StoreNumber, s.SiteName, s.Address, s.Latitude, s.Longitude, s.SiteID)
	if err != nil {
		return domain.Site{}, storageFailure("failed to update site", err)
	}

	return s, nil
}

// FindByID finds a site by its opaque site ID
func (r *siteRepositoryImpl) FindByID(ctx context.Context, siteID string) (domain.Site, error) {
	var site domain.Site
	err := r.db.QueryRowContext(ctx, `
		SELECT `+siteColumns+`
		FROM sites WHERE site_id = ?`, siteID).Scan(
		&site.SiteID, &site.StoreNumber, &site.SiteName, &site.Address,
		&site.Latitude, &site.Longitude)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Site{}, fmt.Errorf("%w: site %q", ErrNotFound, siteID)
		}
		return domain.Site{}, storageFailure("failed to find site", err)
	}
	return site, nil
}

// FindByStoreNumber finds a site by its human-facing store number. This is
// the hottest lookup in the API surface, so it goes through the prepared
// statement cache when one is available.
func (r *siteRepositoryImpl) FindByStoreNumber(ctx context.Context, storeNumber int) (domain.Site, error) {
	query := "SELECT " + siteColumns + " FROM sites WHERE store_number = ?"

	var row *sql.Row
	if r.stmts != nil {
		stmt, err := r.stmts.Get(query)
		if err != nil {
			return domain.Site{}, storageFailure("failed to prepare site lookup", err)
		}
		row = stmt.QueryRowContext(ctx, storeNumber)
	} else {
		row = r.db.QueryRowContext(ctx, query, storeNumber)
	}

	var site domain.Site
	err := row.Scan(&site.SiteID, &site.StoreNumber, &site.SiteName, &site.Address,
		&site.Latitude, &site.Longitude)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Site{}, fmt.Errorf("%w: store %d", ErrNotFound, storeNumber)
		}
		return domain.Site{}, storageFailure("failed to find site", err)
	}
	return site, nil
}

// FindAll finds all sites ordered by store number
func (r *siteRepositoryImpl) FindAll(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+siteColumns+`
		FROM sites ORDER BY store_number`)
	if err != nil {
		return nil, storageFailure("failed to find sites", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

// Search finds sites whose name or address contains the given term
func (r *siteRepositoryImpl) Search(ctx context.Context, term string) ([]domain.Site, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+siteColumns+`
		FROM sites
		WHERE site_name LIKE ? OR address LIKE ?
		ORDER BY store_number`, pattern, pattern)
	if err != nil {
		return nil, storageFailure("failed to search sites", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

// FindAllSummaries lists every site joined with its management platform
// fields, with platform defaults applied where no management row exists
func (r *siteRepositoryImpl) FindAllSummaries(ctx context.Context) ([]domain.StoreSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.site_id, s.store_number, s.site_name, s.address, s.latitude, s.longitude,
		       COALESCE(nm.wireless_platform, 'Mist'), COALESCE(nm.business_unit, 'Store')
		FROM sites s
		LEFT JOIN network_management nm ON s.site_id = nm.site_id
		ORDER BY s.store_number`)
	if err != nil {
		return nil, storageFailure("failed to list store summaries", err)
	}
	defer rows.Close()

	var summaries []domain.StoreSummary
	for rows.Next() {
		var sm domain.StoreSummary
		err := rows.Scan(&sm.SiteID, &sm.StoreNumber, &sm.SiteName, &sm.Address,
			&sm.Latitude, &sm.Longitude, &sm.WirelessPlatform, &sm.BusinessUnit)
		if err != nil {
			return nil, storageFailure("failed to scan store summary", err)
		}
		summaries = append(summaries, sm)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating store summaries", err)
	}

	return summaries, nil
}

// FindByFilter finds sites matching every set filter field. VLAN and IP
// criteria join through vlan_configs, so a site matches when any of its
// VLANs satisfies them.
func (r *siteRepositoryImpl) FindByFilter(ctx context.Context, filter SiteFilter) ([]domain.Site, error) {
	if filter.Empty() {
		return nil, fmt.Errorf("%w: at least one search filter is required", ErrInvalidInput)
	}

	query := `
		SELECT DISTINCT s.site_id, s.store_number, s.site_name, s.address, s.latitude, s.longitude
		FROM sites s
		LEFT JOIN vlan_configs v ON s.site_id = v.site_id
		WHERE 1=1`
	var args []any

	if filter.StoreNumber != nil {
		query += " AND s.store_number = ?"
		args = append(args, *filter.StoreNumber)
	}
	if filter.VLANNumber != nil {
		query += " AND v.vlan_number = ?"
		args = append(args, *filter.VLANNumber)
	}
	if filter.IPSubstring != "" {
		query += " AND v.ip_address LIKE ?"
		args = append(args, "%"+filter.IPSubstring+"%")
	}
	if filter.AddressSubstring != "" {
		query += " AND s.address LIKE ?"
		args = append(args, "%"+filter.AddressSubstring+"%")
	}

	query += " ORDER BY s.store_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageFailure("failed to filter sites", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

// DeleteByID deletes a site by its site ID
func (r *siteRepositoryImpl) DeleteByID(ctx context.Context, siteID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sites WHERE site_id = ?", siteID)
	if err != nil {
		return storageFailure("failed to delete site", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: site %q", ErrNotFound, siteID)
	}

	return nil
}

// ExistsByID checks if a site exists by its site ID
func (r *siteRepositoryImpl) ExistsByID(ctx context.Context, siteID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE site_id = ?", siteID).Scan(&count)
	if err != nil {
		return false, storageFailure("failed to check site existence", err)
	}
	return count > 0, nil
}

// ExistsByStoreNumber checks if a site exists by its store number
func (r *siteRepositoryImpl) ExistsByStoreNumber(ctx context.Context, storeNumber int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE store_number = ?", storeNumber).Scan(&count)
	if err != nil {
		return false, storageFailure("failed to check site existence", err)
	}
	return count > 0, nil
}

// Count returns the total number of sites
func (r *siteRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites").Scan(&count)
	if err != nil {
		return 0, storageFailure("failed to count sites", err)
	}
	return count, nil
}

// StoreNumberRange returns the smallest and largest store numbers, or
// zeros when no sites exist.
func (r *siteRepositoryImpl) StoreNumberRange(ctx context.Context) (int, int, error) {
	var min, max sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT MIN(store_number), MAX(store_number) FROM sites").Scan(&min, &max)
	if err != nil {
		return 0, 0, storageFailure("failed to get store number range", err)
	}
	return int(min.Int64), int(max.Int64), nil
}

// FindRecent returns the most recently added sites, newest store number first
func (r *siteRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+siteColumns+`
		FROM sites ORDER BY store_number DESC LIMIT ?`, limit)
	if err != nil {
		return nil, storageFailure("failed to find recent sites", err)
	}
	defer rows.Close()

	return scanSites(rows)
}

func scanSites(rows *sql.Rows) ([]domain.Site, error) {
	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		err := rows.Scan(&site.SiteID, &site.StoreNumber, &site.SiteName, &site.Address,
			&site.Latitude, &site.Longitude)
		if err != nil {
			return nil, storageFailure("failed to scan site", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating sites", err)
	}

	return sites, nil
}
