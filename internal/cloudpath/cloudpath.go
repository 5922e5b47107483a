// Package cloudpath keeps cover-image references valid when the catalog
// file travels between machines through a personal cloud-sync folder.
// It infers a sync root from an absolute path, converts absolute paths
// to root-relative form for storage, and rebuilds absolute paths on
// whatever machine the catalog is opened on.
package cloudpath

import (
	"path/filepath"
	"strings"
)

// StoreExt is the extension of the catalog's backing file. A path ending
// in it is the store itself, whose parent directory anchors relative
// asset paths.
const StoreExt = ".db"

// Keywords are the folder names of known cloud-sync providers. Matching
// is a case-insensitive substring test on each path segment, so a
// provider name appearing anywhere in a segment counts. That is
// intentionally permissive and can misfire on purely local folders such
// as "My Dropbox Archive"; the ambiguity is inherited from the data
// already stored by existing catalogs and is left as-is.
var Keywords = []string{
	"OneDrive",
	"Google Drive",
	"Mon Google Drive",
	"Dropbox",
	"iCloud",
}

// Location classifies where a path lives.
type Location int

const (
	// None is the classification of an empty path.
	None Location = iota
	// Local is a machine-specific path outside any known sync folder.
	Local
	// Synced is a path inside (or relative to) a cloud-sync folder.
	Synced
)

func (l Location) String() string {
	switch l {
	case Synced:
		return "synced"
	case Local:
		return "local"
	default:
		return "none"
	}
}

// segments splits a path on both separator styles, so paths captured on
// Windows remain scannable on other systems.
func segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// matchesKeyword reports whether the segment contains any provider name,
// ignoring case.
func matchesKeyword(segment string) bool {
	lower := strings.ToLower(segment)
	for _, kw := range Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// containsKeyword reports whether any segment of the path matches a
// provider name.
func containsKeyword(path string) bool {
	for _, seg := range segments(path) {
		if matchesKeyword(seg) {
			return true
		}
	}
	return false
}

// SyncRoot infers the storage root for the given path.
//
// A path ending in StoreExt is the store file itself: its parent
// directory is the root. Otherwise the first segment matching a
// provider name ends the root prefix. With no match the immediate
// parent directory is returned and the path is treated as purely local.
func SyncRoot(path string) string {
	if path == "" {
		return ""
	}
	if strings.EqualFold(filepath.Ext(path), StoreExt) {
		return filepath.Dir(path)
	}

	segs := segments(path)
	for i, seg := range segs {
		if !matchesKeyword(seg) {
			continue
		}
		root := strings.Join(segs[:i+1], string(filepath.Separator))
		// Preserve the leading separator of rooted paths.
		if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
			root = string(filepath.Separator) + root
		}
		return root
	}
	return filepath.Dir(path)
}

// ToStorable converts an absolute asset path into the form persisted in
// the store: relative to the sync root of the store file. When the
// relative computation is impossible (different volumes), only the base
// name is kept. That is a documented degraded mode, not an error.
func ToStorable(absPath, storePath string) string {
	if absPath == "" {
		return ""
	}
	if !filepath.IsAbs(absPath) && !looksAbsolute(absPath) {
		// Already in storable form.
		return absPath
	}
	root := SyncRoot(storePath)
	if root == "" {
		return absPath
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return filepath.Base(absPath)
	}
	return rel
}

// ToAbsolute resolves a stored asset path against the store file opened
// on the current machine.
//
// A relative stored path joins onto the store's sync root. An absolute
// path containing a provider name was captured under another machine's
// sync root: the suffix after the matching segment is re-rooted under
// the current one. Any other absolute path is returned unchanged; it is
// machine-specific and not portable.
func ToAbsolute(stored, storePath string) string {
	if stored == "" {
		return ""
	}
	root := SyncRoot(storePath)

	if !filepath.IsAbs(stored) && !looksAbsolute(stored) {
		return filepath.Join(root, filepath.FromSlash(stored))
	}

	segs := segments(stored)
	for i, seg := range segs {
		if matchesKeyword(seg) {
			suffix := segs[i+1:]
			return filepath.Join(append([]string{root}, suffix...)...)
		}
	}
	return stored
}

// looksAbsolute catches absolute forms filepath.IsAbs does not know on
// this platform: Windows drive letters and rooted backslash paths.
func looksAbsolute(path string) bool {
	if strings.HasPrefix(path, "\\") {
		return true
	}
	return len(path) >= 2 && path[1] == ':'
}

// Classify reports where the path lives: None for empty input, Synced
// for relative paths and paths matching a provider name, Local for
// everything else. Pure computation, no filesystem access.
func Classify(path string) Location {
	if path == "" {
		return None
	}
	if !filepath.IsAbs(path) && !looksAbsolute(path) {
		return Synced
	}
	if containsKeyword(path) {
		return Synced
	}
	return Local
}
