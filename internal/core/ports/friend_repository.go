package ports

import (
	"context"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// FriendRepository defines persistence operations for friend requests and
// friendship edges. The symmetric friendship invariant is maintained here:
// Accept applies the status transition and the edge insert in a single
// storage transaction.
type FriendRepository interface {
	// CreateRequest inserts a pending request. Returns domain.ErrRequestExists
	// when a request for the ordered pair already exists (unique index),
	// regardless of its status.
	CreateRequest(ctx context.Context, req *domain.FriendRequest) error
	// FindRequest looks up the request for the ordered (sender, receiver) pair.
	FindRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	// ListIncoming returns the pending requests addressed to receiverID.
	ListIncoming(ctx context.Context, receiverID string) ([]*domain.FriendRequest, error)
	// Accept transitions the pending request to accepted and inserts the
	// friendship edge atomically. Returns domain.ErrRequestResolved when the
	// request is no longer pending.
	Accept(ctx context.Context, senderID, receiverID string) error
	// Reject transitions the pending request to rejected. Returns
	// domain.ErrRequestResolved when the request is no longer pending.
	Reject(ctx context.Context, senderID, receiverID string) error
	// EdgeExists reports whether the two users are friends.
	EdgeExists(ctx context.Context, a, b string) (bool, error)
	// DeleteEdge removes the friendship between two users. Removing an absent
	// edge is not an error.
	DeleteEdge(ctx context.Context, a, b string) error
	// ListFriendIDs returns the identifiers of every friend of userID.
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	// PurgeUser removes every edge and request referencing userID. Used when
	// a user account is deleted.
	PurgeUser(ctx context.Context, userID string) error
}
