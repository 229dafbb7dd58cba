package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FollowedID. Endpoint existence is enforced by the store's foreign keys,
// not by application code.
type Follow struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}
