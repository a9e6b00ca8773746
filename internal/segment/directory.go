package segment

import (
	"context"

	"cart-offer/internal/model"
)

// mapDirectory implements Directory using a map for O(1) lookups.
type mapDirectory struct {
	segments map[int64]string
}

// NewMapDirectory creates a directory holding a copy of segments.
func NewMapDirectory(segments map[int64]string) Directory {
	d := newMapDirectory(len(segments))
	for userID, seg := range segments {
		d.add(userID, seg)
	}
	return d
}

// DefaultDirectory returns the mapping used when no directory file is configured.
func DefaultDirectory() Directory {
	return NewMapDirectory(map[int64]string{
		1: "p1",
		2: "p2",
		3: "p3",
	})
}

func newMapDirectory(capacity int) *mapDirectory {
	return &mapDirectory{segments: make(map[int64]string, capacity)}
}

func (d *mapDirectory) Segment(userID int64) (string, bool) {
	seg, ok := d.segments[userID]
	return seg, ok
}

func (d *mapDirectory) Size() int {
	return len(d.segments)
}

func (d *mapDirectory) add(userID int64, seg string) {
	d.segments[userID] = seg
}

// DirectoryResolver implements Resolver over a static Directory.
type DirectoryResolver struct {
	dir Directory
}

// NewDirectoryResolver creates a resolver backed by dir.
func NewDirectoryResolver(dir Directory) *DirectoryResolver {
	return &DirectoryResolver{dir: dir}
}

// Lookup returns the user's segment from the directory.
func (r *DirectoryResolver) Lookup(ctx context.Context, userID int64) (string, error) {
	seg, ok := r.dir.Segment(userID)
	if !ok {
		return "", model.ErrUserNotFound
	}
	return seg, nil
}
