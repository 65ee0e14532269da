package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joeyheath65/NetTools/internal/domain"
)

const vlanColumns = "id, site_id, vlan_number, svi_name, ip_address, netmask, gateway"

// VLANRepository defines domain-specific operations for VLAN configurations
type VLANRepository interface {
	// Upsert creates or replaces the VLAN config keyed by (site_id, vlan_number).
	// Re-submitting the same key with new attributes replaces the prior record.
	Upsert(ctx context.Context, vlan domain.VLANConfig) (domain.VLANConfig, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.VLANConfig, error)
	FindBySiteAndVLAN(ctx context.Context, siteID string, vlanNumber int) (domain.VLANConfig, error)
	FindAllWithStoreNumbers(ctx context.Context) ([]domain.StoreVLAN, error)
	DeleteBySiteAndVLAN(ctx context.Context, siteID string, vlanNumber int) error
	CountBySite(ctx context.Context, siteID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// vlanRepositoryImpl implements VLANRepository
type vlanRepositoryImpl struct {
	db DBTX
}

// NewVLANRepository creates a new VLAN config repository
func NewVLANRepository(db DBTX) VLANRepository {
	return &vlanRepositoryImpl{db: db}
}

func validateVLAN(v domain.VLANConfig) error {
	if v.SiteID == "" {
		return fmt.Errorf("%w: site ID is required", ErrInvalidInput)
	}
	if v.VLANNumber <= 0 {
		return fmt.Errorf("%w: VLAN number must be positive", ErrInvalidInput)
	}
	if v.IPAddress == "" {
		return fmt.Errorf("%w: IP address is required", ErrInvalidInput)
	}
	if v.Netmask == "" {
		return fmt.Errorf("%w: netmask is required", ErrInvalidInput)
	}
	if v.Gateway == "" {
		return fmt.Errorf("%w: gateway is required", ErrInvalidInput)
	}
	return nil
}

// Upsert creates or replaces a VLAN configuration
func (r *vlanRepositoryImpl) Upsert(ctx context.Context, v domain.VLANConfig) (domain.VLANConfig, error) {
	if err := validateVLAN(v); err != nil {
		return domain.VLANConfig{}, err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vlan_configs (site_id, vlan_number, svi_name, ip_address, netmask, gateway)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (site_id, vlan_number) DO UPDATE SET
			svi_name = excluded.svi_name,
			ip_address = excluded.ip_address,
			netmask = excluded.netmask,
			gateway = excluded.gateway,
			updated_at = CURRENT_TIMESTAMP`,
		v.SiteID, v.VLANNumber, v.SVIName, v.IPAddress, v.Netmask, v.Gateway)
	if err != nil {
		return domain.VLANConfig{}, storageFailure("failed to upsert VLAN config", err)
	}

	return r.FindBySiteAndVLAN(ctx, v.SiteID, v.VLANNumber)
}

// FindBySite finds all VLAN configs for a site, ordered by VLAN number
func (r *vlanRepositoryImpl) FindBySite(ctx context.Context, siteID string) ([]domain.VLANConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vlanColumns+`
		FROM vlan_configs WHERE site_id = ? ORDER BY vlan_number`, siteID)
	if err != nil {
		return nil, storageFailure("failed to find VLAN configs", err)
	}
	defer rows.Close()

	var vlans []domain.VLANConfig
	for rows.Next() {
		var v domain.VLANConfig
		err := rows.Scan(&v.ID, &v.SiteID, &v.VLANNumber, &v.SVIName,
			&v.IPAddress, &v.Netmask, &v.Gateway)
		if err != nil {
			return nil, storageFailure("failed to scan VLAN config", err)
		}
		vlans = append(vlans, v)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating VLAN configs", err)
	}

	return vlans, nil
}

// FindBySiteAndVLAN finds one VLAN config by its natural key
func (r *vlanRepositoryImpl) FindBySiteAndVLAN(ctx context.Context, siteID string, vlanNumber int) (domain.VLANConfig, error) {
	var v domain.VLANConfig
	err := r.db.QueryRowContext(ctx, `
		SELECT `+vlanColumns+`
		FROM vlan_configs WHERE site_id = ? AND vlan_number = ?`, siteID, vlanNumber).Scan(
		&v.ID, &v.SiteID, &v.VLANNumber, &v.SVIName,
		&v.IPAddress, &v.Netmask, &v.Gateway)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.VLANConfig{}, fmt.Errorf("%w: VLAN %d for site %q", ErrNotFound, vlanNumber, siteID)
		}
		return domain.VLANConfig{}, storageFailure("failed to find VLAN config", err)
	}
	return v, nil
}

// FindAllWithStoreNumbers lists every VLAN config joined with its owning
// store number, ordered by store then VLAN
func (r *vlanRepositoryImpl) FindAllWithStoreNumbers(ctx context.Context) ([]domain.StoreVLAN, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.store_number, v.id, v.site_id, v.vlan_number, v.svi_name, v.ip_address, v.netmask, v.gateway
		FROM vlan_configs v
		JOIN sites s ON v.site_id = s.site_id
		ORDER BY s.store_number, v.vlan_number`)
	if err != nil {
		return nil, storageFailure("failed to list VLAN configs", err)
	}
	defer rows.Close()

	var vlans []domain.StoreVLAN
	for rows.Next() {
		var v domain.StoreVLAN
		err := rows.Scan(&v.StoreNumber, &v.ID, &v.SiteID, &v.VLANNumber, &v.SVIName,
			&v.IPAddress, &v.Netmask, &v.Gateway)
		if err != nil {
			return nil, storageFailure("failed to scan VLAN config", err)
		}
		vlans = append(vlans, v)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating VLAN configs", err)
	}

	return vlans, nil
}

// DeleteBySiteAndVLAN deletes one VLAN config by its natural key
func (r *vlanRepositoryImpl) DeleteBySiteAndVLAN(ctx context.Context, siteID string, vlanNumber int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vlan_configs WHERE site_id = ? AND vlan_number = ?", siteID, vlanNumber)
	if err != nil {
		return storageFailure("failed to delete VLAN config", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: VLAN %d for site %q", ErrNotFound, vlanNumber, siteID)
	}

	return nil
}

// CountBySite returns the number of VLAN configs for a site
func (r *vlanRepositoryImpl) CountBySite(ctx context.Context, siteID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vlan_configs WHERE site_id = ?", siteID).Scan(&count)
	if err != nil {
		return 0, storageFailure("failed to count VLAN configs", err)
	}
	return count, nil
}

// Count returns the total number of VLAN configs
func (r *vlanRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vlan_configs").Scan(&count)
	if err != nil {
		return 0, storageFailure("failed to count VLAN configs", err)
	}
	return count, nil
}
