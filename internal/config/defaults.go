package config

// Default returns the configuration used for unset keys and written to a
// newly created config file
func Default() Config {
	return Config{
		Core: Core{
			HomeFallback: true,
			Restore: Restore{
				Verbose: false,
			},
			Empty: Empty{
				Exclude: ExcludeConfig{
					Files: []string{
						// macOS folder view metadata
						".DS_Store",
					},
					Patterns: []string{},
					Globs:    []string{},
				},
			},
		},
		Logging: Logging{
			Enabled: false,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
