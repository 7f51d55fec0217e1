package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// FriendService implements the friend-request lifecycle and friendship
// edge management.
type FriendService struct {
	repo   ports.FriendRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewFriendService(repo ports.FriendRepository, users ports.UserRepository, logger zerolog.Logger) *FriendService {
	return &FriendService{repo: repo, users: users, logger: logger}
}

// SendRequest creates a pending request from sender to receiver.
// A request for the ordered pair blocks re-sending regardless of its status,
// so a rejected request cannot currently be retried.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	if senderID == receiverID {
		return nil, domain.ErrSelfFriendRequest
	}

	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	friends, err := s.repo.EdgeExists(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, domain.ErrAlreadyFriends
	}

	now := time.Now().UTC()
	req := &domain.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.RequestPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sender_id", senderID).Str("receiver_id", receiverID).Msg("friend request sent")
	return req, nil
}

// Accept resolves the pending (sender → receiver) request. The status
// transition and the symmetric edge insert happen in one storage
// transaction: either both are committed or neither is.
func (s *FriendService) Accept(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	req, err := s.resolvable(ctx, senderID, receiverID, domain.RequestAccepted)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Accept(ctx, senderID, receiverID); err != nil {
		return nil, err
	}

	req.Status = domain.RequestAccepted
	req.UpdatedAt = time.Now().UTC()
	s.logger.Info().Str("sender_id", senderID).Str("receiver_id", receiverID).Msg("friend request accepted")
	return req, nil
}

// Decline resolves the pending request without creating an edge.
func (s *FriendService) Decline(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	req, err := s.resolvable(ctx, senderID, receiverID, domain.RequestRejected)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Reject(ctx, senderID, receiverID); err != nil {
		return nil, err
	}

	req.Status = domain.RequestRejected
	req.UpdatedAt = time.Now().UTC()
	s.logger.Info().Str("sender_id", senderID).Str("receiver_id", receiverID).Msg("friend request declined")
	return req, nil
}

// resolvable fetches the request and checks the status transition before
// the repository applies it. The repository re-checks under the transaction,
// so a concurrent resolve still fails cleanly.
func (s *FriendService) resolvable(ctx context.Context, senderID, receiverID string, next domain.RequestStatus) (*domain.FriendRequest, error) {
	req, err := s.repo.FindRequest(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, domain.ErrRequestResolved
	}
	return req, nil
}

// RemoveFriend deletes the edge between the two users. Removing an absent
// edge succeeds: the operation is idempotent.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if err := s.repo.DeleteEdge(ctx, userID, friendID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("friend_id", friendID).Msg("friendship removed")
	return nil
}

// ListFriends returns the user's friends as safe projections. Edges are
// stored once per pair, so the result carries no duplicates by construction.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]domain.SafeUser, error) {
	ids, err := s.repo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.SafeUser, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		friends = append(friends, user.Safe())
	}
	return friends, nil
}

func (s *FriendService) ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error) {
	return s.repo.ListIncoming(ctx, userID)
}
