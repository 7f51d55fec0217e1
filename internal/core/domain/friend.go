package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Accepted and rejected are terminal: a resolved request is never reopened.
var validTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestAccepted, RequestRejected},
}

var ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
var ErrRequestExists = errors.New("friend request already exists")
var ErrAlreadyFriends = errors.New("users are already friends")
var ErrRequestNotFound = errors.New("friend request not found")
var ErrRequestResolved = errors.New("friend request already resolved")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FriendRequest is a directed request from sender to receiver. At most one
// request exists per ordered (sender, receiver) pair, regardless of status.
type FriendRequest struct {
	SenderID   string        `json:"sender_id"`
	ReceiverID string        `json:"receiver_id"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Friendship is the symmetric edge between two users, stored exactly once
// with the pair in canonical order.
type Friendship struct {
	UserLo    string    `json:"user_lo"`
	UserHi    string    `json:"user_hi"`
	CreatedAt time.Time `json:"created_at"`
}

// CanonicalPair orders two user identifiers so that an undirected edge has a
// single storage representation.
func CanonicalPair(a, b string) (lo, hi string) {
	if a < b {
		return a, b
	}
	return b, a
}

// NewFriendship builds the canonical edge between two users.
func NewFriendship(a, b string, at time.Time) Friendship {
	lo, hi := CanonicalPair(a, b)
	return Friendship{UserLo: lo, UserHi: hi, CreatedAt: at}
}

// Other returns the peer of id on this edge.
func (f Friendship) Other(id string) string {
	if f.UserLo == id {
		return f.UserHi
	}
	return f.UserLo
}
