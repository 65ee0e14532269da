package migrations

import (
	"database/sql"
)

// GetInitialMigrations returns the migrations that create the inventory schema.
//
// The schema keeps every child table referentially bound to sites with
// ON DELETE CASCADE as a backstop; the service layer still performs
// cascading deletes explicitly so completeness does not depend on the
// engine's cascade configuration.
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_inventory_tables",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE IF NOT EXISTS sites (
						site_id TEXT PRIMARY KEY,
						store_number INTEGER NOT NULL UNIQUE CHECK (store_number > 0),
						site_name TEXT NOT NULL,
						address TEXT NOT NULL DEFAULT '',
						latitude REAL NOT NULL DEFAULT 0,
						longitude REAL NOT NULL DEFAULT 0,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE IF NOT EXISTS vlan_configs (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						site_id TEXT NOT NULL,
						vlan_number INTEGER NOT NULL,
						svi_name TEXT NOT NULL DEFAULT '',
						ip_address TEXT NOT NULL,
						netmask TEXT NOT NULL,
						gateway TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (site_id, vlan_number),
						FOREIGN KEY (site_id) REFERENCES sites(site_id) ON DELETE CASCADE
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE IF NOT EXISTS switch_ips (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						site_id TEXT NOT NULL,
						switch_ip TEXT NOT NULL,
						switch_type TEXT NOT NULL DEFAULT 'access',
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (site_id, switch_ip),
						FOREIGN KEY (site_id) REFERENCES sites(site_id) ON DELETE CASCADE
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE IF NOT EXISTS network_management (
						site_id TEXT PRIMARY KEY,
						wireless_platform TEXT NOT NULL DEFAULT 'Mist',
						business_unit TEXT NOT NULL DEFAULT 'Store',
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						FOREIGN KEY (site_id) REFERENCES sites(site_id) ON DELETE CASCADE
					)
				`)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					CREATE TABLE IF NOT EXISTS required_services (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						site_id TEXT NOT NULL,
						service_name TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (site_id, service_name),
						FOREIGN KEY (site_id) REFERENCES sites(site_id) ON DELETE CASCADE
					)
				`)
				return err
			},
			Down: func(tx *sql.Tx) error {
				// Drop children before sites due to foreign key constraints
				for _, table := range []string{"required_services", "network_management", "switch_ips", "vlan_configs", "sites"} {
					if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
