package version

// Build information set by ldflags
var (
	Version = "dev"     // -X attachmint/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X attachmint/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X attachmint/internal/version.Date={{.Date}}
)
