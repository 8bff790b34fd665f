// Package config handles loading and validating evobridge configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields and polling bounds
//   - Default value handling
//
// Security Considerations:
//   - Vendor and broker credentials should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - Vendor credentials are overwritten with a redaction placeholder as
//     soon as the cloud session is established
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Vendor.EffectiveScanInterval())
package config
