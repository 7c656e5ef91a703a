package config

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		Profile: "DEFAULT",
		Output: &OutputConfig{
			Format: "table",
			Color:  "auto",
		},
		Scan: &ScanConfig{
			IncludeCompartments: []string{},
			ExcludeCompartments: []string{},
			Domains:             []string{},
		},
	}
}
