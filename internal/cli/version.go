package cli

import "runtime/debug"

// buildVersion derives a version string from the binary's embedded build
// metadata.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if v := info.Main.Version; v != "" {
		return v
	}
	return "(devel)"
}
