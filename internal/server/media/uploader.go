// Package media uploads user avatar files to object storage and hands back
// durable public URLs. The upload is side-effecting and not transactional
// with the store; callers must perform it before any store write.
package media

import "context"

// Uploader accepts a local file path and returns a durable public URL.
// Failure is fatal to the calling operation.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
