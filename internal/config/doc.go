// Package config provides centralized configuration management for the
// energy report pipeline. It handles loading configuration from multiple
// sources, validation, and resolves every artifact path a run writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ENERGY_* for namespacing:
//
//	ENERGY_CONFIG_FILE=/etc/energyreport.yaml
//	ENERGY_INPUT_DIR=data
//	ENERGY_INPUT_VALUE_COLUMN=Energy_kwh
//	ENERGY_OUTPUT_DIR=output
//	ENERGY_AGGREGATION_GROUP_BY=season
//	ENERGY_LOGGING_LEVEL=debug
//
// Only variables that are set override lower layers.
//
// # Path Management
//
// Paths is derived from the output configuration:
//
//	paths := cfg.Paths()
//	if err := paths.EnsureDirectories(cfg.Output.ChartsEnabled); err != nil {
//	    return err
//	}
//	fmt.Println(paths.SummaryCSV)
//
// # Validation
//
// Configuration is validated at load time with go-playground/validator
// struct tags; the input timezone must also resolve with time.LoadLocation.
package config
