package cli

// BuildVersion and BuildInfo are set by the linker during build.
var (
	BuildVersion = "v0-unofficial"
	BuildInfo    = "unknown"
)
