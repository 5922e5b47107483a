package cloudpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncRoot(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "empty path",
			path: "",
			want: "",
		},
		{
			name: "store file anchors at its parent",
			path: "/home/marie/OneDrive/livres/bibliotheque.db",
			want: "/home/marie/OneDrive/livres",
		},
		{
			name: "provider segment ends the prefix",
			path: "/home/marie/OneDrive/livres/covers",
			want: "/home/marie/OneDrive",
		},
		{
			name: "provider match is case-insensitive",
			path: "/home/marie/onedrive/covers",
			want: "/home/marie/onedrive",
		},
		{
			name: "no provider falls back to parent dir",
			path: "/home/marie/books/covers",
			want: "/home/marie/books",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyncRoot(tt.path))
		})
	}
}

func TestToStorable(t *testing.T) {
	store := "/home/marie/Dropbox/livres/bibliotheque.db"

	tests := []struct {
		name string
		abs  string
		want string
	}{
		{
			name: "empty input stays empty",
			abs:  "",
			want: "",
		},
		{
			name: "inside the root becomes relative",
			abs:  "/home/marie/Dropbox/livres/covers/front.jpg",
			want: filepath.Join("covers", "front.jpg"),
		},
		{
			name: "already relative passes through",
			abs:  "covers/front.jpg",
			want: "covers/front.jpg",
		},
		{
			name: "outside the root climbs with dot-dot",
			abs:  "/home/marie/pictures/front.jpg",
			want: filepath.Join("..", "..", "pictures", "front.jpg"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToStorable(tt.abs, store))
		})
	}
}

func TestToAbsolute(t *testing.T) {
	store := "/home/marie/Dropbox/livres/bibliotheque.db"

	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{
			name:   "empty input stays empty",
			stored: "",
			want:   "",
		},
		{
			name:   "relative joins onto the root",
			stored: "covers/front.jpg",
			want:   "/home/marie/Dropbox/livres/covers/front.jpg",
		},
		{
			name:   "foreign sync root is re-rooted",
			stored: `C:\Users\marie\Dropbox\covers\front.jpg`,
			want:   filepath.Join("/home/marie/Dropbox/livres", "covers", "front.jpg"),
		},
		{
			name:   "machine-specific absolute path unchanged",
			stored: "/mnt/archive/front.jpg",
			want:   "/mnt/archive/front.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToAbsolute(tt.stored, store))
		})
	}
}

// A cover stored on one machine resolves on another machine whose sync
// folder lives somewhere else entirely.
func TestCrossMachineRoundTrip(t *testing.T) {
	machineA := "/home/marie/OneDrive/livres/bibliotheque.db"
	machineB := "/Users/marie/OneDrive/livres/bibliotheque.db"

	stored := ToStorable("/home/marie/OneDrive/livres/covers/front.jpg", machineA)
	assert.Equal(t, filepath.Join("covers", "front.jpg"), stored)

	resolved := ToAbsolute(stored, machineB)
	assert.Equal(t, "/Users/marie/OneDrive/livres/covers/front.jpg", resolved)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Location
	}{
		{name: "empty", path: "", want: None},
		{name: "relative is portable", path: "covers/front.jpg", want: Synced},
		{name: "provider folder", path: "/home/marie/OneDrive/livres/b.db", want: Synced},
		{name: "provider substring in a segment", path: "/home/marie/My Dropbox Archive/b.db", want: Synced},
		{name: "windows icloud path", path: `C:\Users\marie\iCloudDrive\b.db`, want: Synced},
		{name: "plain local path", path: "/home/marie/books/b.db", want: Local},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}
