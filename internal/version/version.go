package version

// Version is the current github2range version. Bump it on every release.
const Version = "1.0.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}

// UserAgent is sent on every GitHub and webhook request.
func UserAgent() string {
	return "github2range/" + Version
}
