package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/blackwell-systems/dotgen/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/blackwell-systems/dotgen/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/blackwell-systems/dotgen/internal/version.Date={{.Date}}
)
