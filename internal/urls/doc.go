// Package urls provides centralized constants for all documentation URLs used
// throughout the application.
//
// All documentation URLs are defined here as exported constants and can be
// updated in a single location before release.
//
// Usage:
//
//	import "github.com/muurk/uvcctl/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.Troubleshooting)
package urls
