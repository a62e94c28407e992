// Package media wraps the external object store holding post attachments.
// The application only records (url, kind, object id) triples and deletes
// objects when content is removed; uploads happen outside this service.
package media

import "context"

// Storage deletes stored media objects by id
type Storage interface {
	Remove(ctx context.Context, objectID string) error
}
