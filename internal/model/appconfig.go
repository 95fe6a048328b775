package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Stock catalog used for new projects, in metres.
	CatalogMetres []float64 `json:"catalog_metres"`

	// Defaults applied to new bar marks
	DefaultDiameter  int    `json:"default_diameter"`
	DefaultRebarType string `json:"default_rebar_type"`

	// Minimum remnant length (metres) recorded in the offcut ledger
	MinOffcutMetres float64 `json:"min_offcut_metres"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the standard supplier
// catalog and sensible bar-mark defaults.
func DefaultAppConfig() AppConfig {
	catalog := DefaultCatalog()
	metres := make([]float64, len(catalog))
	for i, s := range catalog {
		metres[i] = float64(s)
	}
	return AppConfig{
		CatalogMetres:    metres,
		DefaultDiameter:  12,
		DefaultRebarType: string(RebarHD),
		MinOffcutMetres:  MinOffcutLength,
		RecentProjects:   []string{},
		Theme:            "system",
	}
}

// Catalog converts the configured stock lengths into a Catalog value.
// An empty configuration falls back to the default catalog.
func (c AppConfig) Catalog() Catalog {
	if len(c.CatalogMetres) == 0 {
		return DefaultCatalog()
	}
	catalog := make(Catalog, 0, len(c.CatalogMetres))
	for _, m := range c.CatalogMetres {
		if m > 0 {
			catalog = append(catalog, StockLength(m))
		}
	}
	if len(catalog) == 0 {
		return DefaultCatalog()
	}
	return catalog
}
