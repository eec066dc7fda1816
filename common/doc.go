// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Voice Intelligence application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application metadata, file names, window sizes, event names,
//     and settings store keys shared with the content view
//   - Errors: sentinel errors for consistent error handling across packages
//   - Interfaces: the Logger abstraction injected into the shell core
//   - Logger: leveled logging to stdout and a rotated log file
//   - Utils: config/data directory helpers
//
// # Usage
//
//	common.LogInfo("Starting %s", common.AppName)
//
//	log := common.GetLogger().Named("tray")
//	log.Warn("could not set icon: %v", err)
//
//	if errors.Is(err, common.ErrKeyNotFound) {
//	    // no key stored for this provider
//	}
package common
