package version

// Version is overridden at build time via -ldflags.
var Version = "1.0.0"

func GetCurrentVersion() string {
	return Version
}
