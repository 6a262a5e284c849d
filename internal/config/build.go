package config

// Release builds stamp these with -ldflags "-X yrweather/internal/config.version=1.4.0";
// local builds keep the placeholders.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// NewBuildInfo returns the stamped build metadata.
func NewBuildInfo() BuildInfo {
	return BuildInfo{Version: version, Commit: commit, BuildTime: buildTime}
}

// UserAgentSuffix names this client and its version, e.g. "yrweather/1.4.0".
// It is appended to the operator's User-Agent so MET Norway can tell client
// releases apart.
func (b BuildInfo) UserAgentSuffix() string {
	return "yrweather/" + b.Version
}
