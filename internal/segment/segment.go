// Package segment resolves users to customer segments.
package segment

import (
	"context"
)

// Resolver maps a user to the customer segment used to scope offers.
type Resolver interface {
	// Lookup returns the user's segment label. Unknown users yield
	// model.ErrUserNotFound.
	Lookup(ctx context.Context, userID int64) (string, error)
}

// Directory is a read-only user to segment mapping.
type Directory interface {
	// Segment returns the segment for the user and whether the user is known.
	Segment(userID int64) (string, bool)

	// Size returns the number of users in the directory.
	Size() int
}

// Loader defines the interface for loading segment directory files.
type Loader interface {
	// Load reads a gzipped "user_id,segment" file and returns a Directory.
	Load(ctx context.Context, path string) (Directory, error)
}
