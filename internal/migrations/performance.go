package migrations

import (
	"database/sql"
)

// GetPerformanceMigrations returns performance optimization migrations
func GetPerformanceMigrations() []Migration {
	return []Migration{
		{
			Version: 10,
			Name:    "add_performance_indices",
			Up: func(tx *sql.Tx) error {
				indices := []string{
					"CREATE INDEX IF NOT EXISTS idx_sites_store_number ON sites(store_number)",
					"CREATE INDEX IF NOT EXISTS idx_vlan_configs_site_id ON vlan_configs(site_id)",
					"CREATE INDEX IF NOT EXISTS idx_vlan_configs_ip_address ON vlan_configs(ip_address)",
					"CREATE INDEX IF NOT EXISTS idx_switch_ips_site_id ON switch_ips(site_id)",
					"CREATE INDEX IF NOT EXISTS idx_required_services_site_id ON required_services(site_id)",
				}

				for _, indexSQL := range indices {
					if _, err := tx.Exec(indexSQL); err != nil {
						return err
					}
				}

				return nil
			},
			Down: func(tx *sql.Tx) error {
				indices := []string{
					"DROP INDEX IF EXISTS idx_sites_store_number",
					"DROP INDEX IF EXISTS idx_vlan_configs_site_id",
					"DROP INDEX IF EXISTS idx_vlan_configs_ip_address",
					"DROP INDEX IF EXISTS idx_switch_ips_site_id",
					"DROP INDEX IF EXISTS idx_required_services_site_id",
				}

				for _, dropSQL := range indices {
					if _, err := tx.Exec(dropSQL); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
