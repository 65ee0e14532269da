package domain

// Site represents a physical store location in the inventory
type Site struct {
	SiteID      string  // Opaque unique identifier, immutable once created
	StoreNumber int     // Human-facing store number, unique
	SiteName    string  // Store name
	Address     string  // Street address
	Latitude    float64 // Location latitude
	Longitude   float64 // Location longitude
}

// VLANConfig represents one subnet assignment within a site
type VLANConfig struct {
	ID         int64  // Unique identifier
	SiteID     string // Foreign key to Site
	VLANNumber int    // VLAN number from the allocation set (10, 20, ..., 90)
	SVIName    string // SVI interface name (e.g., "vlan10_svi")
	IPAddress  string // Derived SVI address
	Netmask    string // Subnet mask
	Gateway    string // Gateway address (the SVI is its own gateway)
}

// SwitchIP represents a management-plane address for switching gear at a site
type SwitchIP struct {
	ID         int64  // Unique identifier
	SiteID     string // Foreign key to Site
	SwitchIP   string // Management IP address
	SwitchType string // Switch role (e.g., "access")
}

// NetworkManagement holds per-site operational metadata
type NetworkManagement struct {
	SiteID           string   // One-to-one with Site
	WirelessPlatform string   // Wireless vendor platform (default "Mist")
	BusinessUnit     string   // Owning business unit (default "Store")
	RequiredServices []string // Service names the site depends on (DNS, DHCP, ...)
}

// StoreSummary is a site joined with its management platform fields
type StoreSummary struct {
	Site
	WirelessPlatform string
	BusinessUnit     string
}

// SiteDetails is the joined view of a site with all of its child records
type SiteDetails struct {
	Site       Site
	VLANs      []VLANConfig
	SwitchIPs  []SwitchIP
	Management NetworkManagement
}

// StoreVLAN is a VLAN configuration joined with its owning store number
type StoreVLAN struct {
	StoreNumber int
	VLANConfig
}

// StoreSwitchIP is a switch IP joined with its owning store number
type StoreSwitchIP struct {
	StoreNumber int
	SwitchIP
}

// DashboardStats aggregates inventory-wide counts for the dashboard view
type DashboardStats struct {
	TotalStores    int
	TotalVLANs     int
	TotalSwitches  int
	MinStoreNumber int
	MaxStoreNumber int
	RecentStores   []Site
}
