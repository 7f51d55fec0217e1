package ports

import (
	"context"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// FriendService defines use-case operations for the social graph.
type FriendService interface {
	// SendRequest creates a pending request from sender to receiver.
	// Fails with domain.ErrSelfFriendRequest, domain.ErrAlreadyFriends or
	// domain.ErrRequestExists.
	SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	// Accept resolves the pending (sender → receiver) request and establishes
	// the symmetric friendship edge.
	Accept(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	// Decline resolves the pending request without creating an edge.
	Decline(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	// RemoveFriend deletes the edge between the two users. Idempotent.
	RemoveFriend(ctx context.Context, userID, friendID string) error
	// ListFriends returns the user's friends as safe projections, without
	// duplicates.
	ListFriends(ctx context.Context, userID string) ([]domain.SafeUser, error)
	// ListIncoming returns the pending requests addressed to the user.
	ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error)
}
