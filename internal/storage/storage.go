package storage

import "context"

// AvatarStore re-hosts federated profile pictures on storage the service
// controls, so account records do not depend on third-party image URLs
// staying alive.
type AvatarStore interface {
	// Mirror fetches sourceURL and stores a copy, returning the new URL.
	Mirror(ctx context.Context, sourceURL string) (string, error)
}
