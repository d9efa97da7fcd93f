// Package files provides file system discovery and writing utilities.
//
// Discovery lists input files by extension in a stable, name-sorted order.
// Manager writes whole files under a base directory, creating parent
// directories as needed.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.FindByExtensions("data", []string{".csv", ".xlsx"})
//
//	manager := files.NewManager("output", logger)
//	err = manager.WriteFile("summary.txt", report)
package files
