package savestate

import (
	"errors"
	"os"
	"path/filepath"
)

// PathProvider exposes the host's protected storage locations.
type PathProvider interface {
	// InternalStorage is the app-private, writable files directory (Android).
	InternalStorage() string
	// ExternalStorage is the app-private Library directory (iOS); internal storage there is read only.
	ExternalStorage() string
}

var ErrNoStorage = errors.New("savestate: no protected storage directory")

// Dir picks the protected storage directory for the given GOOS.
// Android uses internal storage, iOS uses external storage, anything else falls back
// to the user's config directory.
func Dir(goos string, p PathProvider) (string, error) {
	var dir string
	switch goos {
	case "android":
		if p != nil {
			dir = p.InternalStorage()
		}
	case "ios":
		if p != nil {
			dir = p.ExternalStorage()
		}
	default:
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "hw3d-demo")
	}
	if dir == "" {
		return "", ErrNoStorage
	}
	return dir, nil
}

// StaticPaths is a PathProvider with fixed directories, set by the native shell at startup.
type StaticPaths struct {
	Internal string
	External string
}

func (p StaticPaths) InternalStorage() string { return p.Internal }
func (p StaticPaths) ExternalStorage() string { return p.External }
