package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joeyheath65/NetTools/internal/domain"
)

const switchIPColumns = "id, site_id, switch_ip, switch_type"

// SwitchIPRepository defines domain-specific operations for switch
// management addresses
type SwitchIPRepository interface {
	// Upsert creates or replaces the record keyed by (site_id, switch_ip)
	Upsert(ctx context.Context, ip domain.SwitchIP) (domain.SwitchIP, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.SwitchIP, error)
	FindBySiteAndIP(ctx context.Context, siteID, switchIP string) (domain.SwitchIP, error)
	FindAllWithStoreNumbers(ctx context.Context) ([]domain.StoreSwitchIP, error)
	// Rekey replaces an existing switch IP with a new address and type
	Rekey(ctx context.Context, siteID, oldIP, newIP, switchType string) error
	DeleteBySiteAndIP(ctx context.Context, siteID, switchIP string) error
	Count(ctx context.Context) (int, error)
}

// switchIPRepositoryImpl implements SwitchIPRepository
type switchIPRepositoryImpl struct {
	db DBTX
}

// NewSwitchIPRepository creates a new switch IP repository
func NewSwitchIPRepository(db DBTX) SwitchIPRepository {
	return &switchIPRepositoryImpl{db: db}
}

// Upsert creates or replaces a switch IP record
func (r *switchIPRepositoryImpl) Upsert(ctx context.Context, ip domain.SwitchIP) (domain.SwitchIP, error) {
	if ip.SiteID == "" {
		return domain.SwitchIP{}, fmt.Errorf("%w: site ID is required", ErrInvalidInput)
	}
	if ip.SwitchIP == "" {
		return domain.SwitchIP{}, fmt.Errorf("%w: switch IP is required", ErrInvalidInput)
	}
	if ip.SwitchType == "" {
		ip.SwitchType = "access"
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO switch_ips (site_id, switch_ip, switch_type)
		VALUES (?, ?, ?)
		ON CONFLICT (site_id, switch_ip) DO UPDATE SET
			switch_type = excluded.switch_type,
			updated_at = CURRENT_TIMESTAMP`,
		ip.SiteID, ip.SwitchIP, ip.SwitchType)
	if err != nil {
		return domain.SwitchIP{}, storageFailure("failed to upsert switch IP", err)
	}

	return r.FindBySiteAndIP(ctx, ip.SiteID, ip.SwitchIP)
}

// FindBySite finds all switch IPs for a site, ordered by address
func (r *switchIPRepositoryImpl) FindBySite(ctx context.Context, siteID string) ([]domain.SwitchIP, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+switchIPColumns+`
		FROM switch_ips WHERE site_id = ? ORDER BY switch_ip`, siteID)
	if err != nil {
		return nil, storageFailure("failed to find switch IPs", err)
	}
	defer rows.Close()

	var ips []domain.SwitchIP
	for rows.Next() {
		var ip domain.SwitchIP
		if err := rows.Scan(&ip.ID, &ip.SiteID, &ip.SwitchIP, &ip.SwitchType); err != nil {
			return nil, storageFailure("failed to scan switch IP", err)
		}
		ips = append(ips, ip)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating switch IPs", err)
	}

	return ips, nil
}

// FindBySiteAndIP finds one switch IP by its natural key
func (r *switchIPRepositoryImpl) FindBySiteAndIP(ctx context.Context, siteID, switchIP string) (domain.SwitchIP, error) {
	var ip domain.SwitchIP
	err := r.db.QueryRowContext(ctx, `
		SELECT `+switchIPColumns+`
		FROM switch_ips WHERE site_id = ? AND switch_ip = ?`, siteID, switchIP).Scan(
		&ip.ID, &ip.SiteID, &ip.SwitchIP, &ip.SwitchType)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.SwitchIP{}, fmt.Errorf("%w: switch IP %s for site %q", ErrNotFound, switchIP, siteID)
		}
		return domain.SwitchIP{}, storageFailure("failed to find switch IP", err)
	}
	return ip, nil
}

// FindAllWithStoreNumbers lists every switch IP joined with its owning
// store number
func (r *switchIPRepositoryImpl) FindAllWithStoreNumbers(ctx context.Context) ([]domain.StoreSwitchIP, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.store_number, si.id, si.site_id, si.switch_ip, si.switch_type
		FROM switch_ips si
		JOIN sites s ON si.site_id = s.site_id
		ORDER BY s.store_number, si.switch_ip`)
	if err != nil {
		return nil, storageFailure("failed to list switch IPs", err)
	}
	defer rows.Close()

	var ips []domain.StoreSwitchIP
	for rows.Next() {
		var ip domain.StoreSwitchIP
		if err := rows.Scan(&ip.StoreNumber, &ip.ID, &ip.SiteID, &ip.SwitchIP.SwitchIP, &ip.SwitchType); err != nil {
			return nil, storageFailure("failed to scan switch IP", err)
		}
		ips = append(ips, ip)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating switch IPs", err)
	}

	return ips, nil
}

// Rekey replaces the address (and type) of an existing switch IP record
func (r *switchIPRepositoryImpl) Rekey(ctx context.Context, siteID, oldIP, newIP, switchType string) error {
	if newIP == "" {
		return fmt.Errorf("%w: switch IP is required", ErrInvalidInput)
	}
	if switchType == "" {
		switchType = "access"
	}

	if newIP != oldIP {
		var count int
		err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM switch_ips WHERE site_id = ? AND switch_ip = ?", siteID, newIP).Scan(&count)
		if err != nil {
			return storageFailure("failed to check for duplicate switch IP", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: switch IP %s already exists for site %q", ErrConstraintViolation, newIP, siteID)
		}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE switch_ips
		SET switch_ip = ?, switch_type = ?, updated_at = CURRENT_TIMESTAMP
		WHERE site_id = ? AND switch_ip = ?`,
		newIP, switchType, siteID, oldIP)
	if err != nil {
		return storageFailure("failed to update switch IP", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: switch IP %s for site %q", ErrNotFound, oldIP, siteID)
	}

	return nil
}

// DeleteBySiteAndIP deletes one switch IP by its natural key
func (r *switchIPRepositoryImpl) DeleteBySiteAndIP(ctx context.Context, siteID, switchIP string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM switch_ips WHERE site_id = ? AND switch_ip = ?", siteID, switchIP)
	if err != nil {
		return storageFailure("failed to delete switch IP", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: switch IP %s for site %q", ErrNotFound, switchIP, siteID)
	}

	return nil
}

// Count returns the total number of switch IPs
func (r *switchIPRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM switch_ips").Scan(&count)
	if err != nil {
		return 0, storageFailure("failed to count switch IPs", err)
	}
	return count, nil
}
