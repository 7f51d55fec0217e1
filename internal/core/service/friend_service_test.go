package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

func newFriendFixture(t *testing.T) (*FriendService, *stubFriendRepo, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := users.Create(context.Background(), &domain.User{
			ID:        name,
			Email:     name + "@example.com",
			FirstName: name,
			RoleID:    roleDefaultID,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
	}
	repo := newStubFriendRepo()
	return NewFriendService(repo, users, zerolog.Nop()), repo, users
}

func TestFriendService_SendRequest(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	req, err := svc.SendRequest(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if req.Status != domain.RequestPending {
		t.Fatalf("new request should be pending, got %s", req.Status)
	}
	if req.SenderID != "alice" || req.ReceiverID != "bob" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestFriendService_SendRequest_Self(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), "alice", "alice")
	if !errors.Is(err, domain.ErrSelfFriendRequest) {
		t.Fatalf("expected ErrSelfFriendRequest, got %v", err)
	}
}

func TestFriendService_SendRequest_UnknownReceiver(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), "alice", "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFriendService_SendRequest_DuplicatePending(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	_, err := svc.SendRequest(context.Background(), "alice", "bob")
	if !errors.Is(err, domain.ErrRequestExists) {
		t.Fatalf("expected ErrRequestExists, got %v", err)
	}
}

func TestFriendService_SendRequest_AfterRejection(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Decline(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// The existing-request check does not look at status, so a rejected
	// request blocks re-sending. Kept as-is pending a product decision.
	_, err := svc.SendRequest(context.Background(), "alice", "bob")
	if !errors.Is(err, domain.ErrRequestExists) {
		t.Fatalf("expected ErrRequestExists after rejection, got %v", err)
	}
}

func TestFriendService_SendRequest_AlreadyFriends(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// The reverse direction is also blocked: the edge is symmetric.
	_, err := svc.SendRequest(context.Background(), "bob", "alice")
	if !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends, got %v", err)
	}
}

func TestFriendService_Accept_Symmetric(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}

	req, err := svc.Accept(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if req.Status != domain.RequestAccepted {
		t.Fatalf("status = %s, want accepted", req.Status)
	}

	// Both directions must see the friendship.
	for _, tc := range []struct{ user, friend string }{
		{"alice", "bob"},
		{"bob", "alice"},
	} {
		friends, err := svc.ListFriends(context.Background(), tc.user)
		if err != nil {
			t.Fatalf("ListFriends(%s): %v", tc.user, err)
		}
		if len(friends) != 1 || friends[0].ID != tc.friend {
			t.Fatalf("ListFriends(%s) = %+v, want [%s]", tc.user, friends, tc.friend)
		}
	}
}

func TestFriendService_Accept_NoPendingRequest(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	_, err := svc.Accept(context.Background(), "alice", "bob")
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestFriendService_Decline(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}

	req, err := svc.Decline(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if req.Status != domain.RequestRejected {
		t.Fatalf("status = %s, want rejected", req.Status)
	}

	// No edge in either direction.
	friends, err := svc.ListFriends(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("decline must not create a friendship, got %+v", friends)
	}
}

func TestFriendService_ResolveTwice(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Decline(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := svc.Accept(context.Background(), "alice", "bob"); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved on accept after decline, got %v", err)
	}
	if _, err := svc.Decline(context.Background(), "alice", "bob"); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved on second decline, got %v", err)
	}
}

func TestFriendService_RemoveFriend_Idempotent(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := svc.RemoveFriend(context.Background(), "bob", "alice"); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	friends, _ := svc.ListFriends(context.Background(), "alice")
	if len(friends) != 0 {
		t.Fatalf("edge should be gone for both users")
	}

	// Removing again is not an error.
	if err := svc.RemoveFriend(context.Background(), "bob", "alice"); err != nil {
		t.Fatalf("second RemoveFriend: %v", err)
	}
}

func TestFriendService_ListFriends_NoDuplicates(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.SendRequest(context.Background(), "carol", "alice"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "carol", "alice"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	friends, err := svc.ListFriends(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	seen := make(map[string]bool)
	for _, f := range friends {
		if seen[f.ID] {
			t.Fatalf("duplicate friend %s", f.ID)
		}
		seen[f.ID] = true
	}
	if !seen["bob"] || !seen["carol"] {
		t.Fatalf("unexpected friend set: %v", seen)
	}
}

func TestFriendService_ListIncoming(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	if _, err := svc.SendRequest(context.Background(), "alice", "carol"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendRequest(context.Background(), "bob", "carol"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Decline(context.Background(), "bob", "carol"); err != nil {
		t.Fatalf("decline: %v", err)
	}

	incoming, err := svc.ListIncoming(context.Background(), "carol")
	if err != nil {
		t.Fatalf("ListIncoming: %v", err)
	}
	if len(incoming) != 1 || incoming[0].SenderID != "alice" {
		t.Fatalf("expected only the pending request from alice, got %+v", incoming)
	}
}
