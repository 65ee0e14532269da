package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joeyheath65/NetTools/internal/domain"
)

// NetworkManagementRepository defines operations for per-site operational
// metadata and its required-service bindings
type NetworkManagementRepository interface {
	// Upsert creates or replaces the one-to-one management record for a site
	Upsert(ctx context.Context, nm domain.NetworkManagement) (domain.NetworkManagement, error)
	// FindBySite returns the management record with its required services
	FindBySite(ctx context.Context, siteID string) (domain.NetworkManagement, error)
	// AddRequiredService binds a service name to a site; re-adding the same
	// name is a no-op rather than an error
	AddRequiredService(ctx context.Context, siteID, serviceName string) error
	ListRequiredServices(ctx context.Context, siteID string) ([]string, error)
}

// netmgmtRepositoryImpl implements NetworkManagementRepository
type netmgmtRepositoryImpl struct {
	db DBTX
}

// NewNetworkManagementRepository creates a new network management repository
func NewNetworkManagementRepository(db DBTX) NetworkManagementRepository {
	return &netmgmtRepositoryImpl{db: db}
}

// Upsert creates or replaces the management record for a site
func (r *netmgmtRepositoryImpl) Upsert(ctx context.Context, nm domain.NetworkManagement) (domain.NetworkManagement, error) {
	if nm.SiteID == "" {
		return domain.NetworkManagement{}, fmt.Errorf("%w: site ID is required", ErrInvalidInput)
	}
	if nm.WirelessPlatform == "" {
		nm.WirelessPlatform = "Mist"
	}
	if nm.BusinessUnit == "" {
		nm.BusinessUnit = "Store"
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO network_management (site_id, wireless_platform, business_unit)
		VALUES (?, ?, ?)
		ON CONFLICT (site_id) DO UPDATE SET
			wireless_platform = excluded.wireless_platform,
			business_unit = excluded.business_unit,
			updated_at = CURRENT_TIMESTAMP`,
		nm.SiteID, nm.WirelessPlatform, nm.BusinessUnit)
	if err != nil {
		return domain.NetworkManagement{}, storageFailure("failed to upsert network management", err)
	}

	for _, service := range nm.RequiredServices {
		if err := r.AddRequiredService(ctx, nm.SiteID, service); err != nil {
			return domain.NetworkManagement{}, err
		}
	}

	return r.FindBySite(ctx, nm.SiteID)
}

// FindBySite returns the management record for a site, including its
// required services
func (r *netmgmtRepositoryImpl) FindBySite(ctx context.Context, siteID string) (domain.NetworkManagement, error) {
	var nm domain.NetworkManagement
	err := r.db.QueryRowContext(ctx, `
		SELECT site_id, wireless_platform, business_unit
		FROM network_management WHERE site_id = ?`, siteID).Scan(
		&nm.SiteID, &nm.WirelessPlatform, &nm.BusinessUnit)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NetworkManagement{}, fmt.Errorf("%w: network management for site %q", ErrNotFound, siteID)
		}
		return domain.NetworkManagement{}, storageFailure("failed to find network management", err)
	}

	services, err := r.ListRequiredServices(ctx, siteID)
	if err != nil {
		return domain.NetworkManagement{}, err
	}
	nm.RequiredServices = services

	return nm, nil
}

// AddRequiredService binds a service name to a site
func (r *netmgmtRepositoryImpl) AddRequiredService(ctx context.Context, siteID, serviceName string) error {
	if serviceName == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO required_services (site_id, service_name)
		VALUES (?, ?)
		ON CONFLICT (site_id, service_name) DO NOTHING`,
		siteID, serviceName)
	if err != nil {
		return storageFailure("failed to add required service", err)
	}
	return nil
}

// ListRequiredServices returns the service names bound to a site
func (r *netmgmtRepositoryImpl) ListRequiredServices(ctx context.Context, siteID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT service_name FROM required_services WHERE site_id = ? ORDER BY service_name", siteID)
	if err != nil {
		return nil, storageFailure("failed to list required services", err)
	}
	defer rows.Close()

	var services []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageFailure("failed to scan required service", err)
		}
		services = append(services, name)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure("error iterating required services", err)
	}

	return services, nil
}
