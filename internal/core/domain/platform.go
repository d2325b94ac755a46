package domain

import "fmt"

// Platform identifies a supported publishing platform.
// It is a closed set: fetcher dispatch goes through ParsePlatform so an
// unrecognised configuration value surfaces as ErrUnsupportedPlatform
// instead of silently falling through a string comparison.
type Platform string

const (
	// PlatformSubstack is a Substack publication.
	PlatformSubstack Platform = "substack"

	// PlatformMedium is a Medium profile or publication.
	PlatformMedium Platform = "medium"
)

// IsValid returns true if the platform is recognised.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformSubstack, PlatformMedium:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Platform) String() string {
	return string(p)
}

// ParsePlatform converts a configuration tag into a Platform.
// Returns ErrUnsupportedPlatform for unknown tags.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
	return p, nil
}
