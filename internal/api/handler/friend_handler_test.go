package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

type stubFriendService struct {
	sendFn     func(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	acceptFn   func(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	declineFn  func(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	removeFn   func(ctx context.Context, userID, friendID string) error
	listFn     func(ctx context.Context, userID string) ([]domain.SafeUser, error)
	incomingFn func(ctx context.Context, userID string) ([]*domain.FriendRequest, error)
}

func (s *stubFriendService) SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	return s.sendFn(ctx, senderID, receiverID)
}

func (s *stubFriendService) Accept(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	return s.acceptFn(ctx, senderID, receiverID)
}

func (s *stubFriendService) Decline(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	return s.declineFn(ctx, senderID, receiverID)
}

func (s *stubFriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.removeFn(ctx, userID, friendID)
}

func (s *stubFriendService) ListFriends(ctx context.Context, userID string) ([]domain.SafeUser, error) {
	return s.listFn(ctx, userID)
}

func (s *stubFriendService) ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error) {
	return s.incomingFn(ctx, userID)
}

func newFriendContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "caller-1")
	return c, rec
}

func TestFriendHandler_SendRequest(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{
		sendFn: func(_ context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
			if senderID != "caller-1" || receiverID != "user-2" {
				t.Fatalf("unexpected args: %s %s", senderID, receiverID)
			}
			return &domain.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: domain.RequestPending}, nil
		},
	})

	c, rec := newFriendContext(t, http.MethodPost, "/api/friend/request", `{"receiver_id":"user-2"}`)
	if err := handler.SendRequest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.FriendRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != domain.RequestPending {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
}

func TestFriendHandler_SendRequest_MissingReceiver(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{
		sendFn: func(context.Context, string, string) (*domain.FriendRequest, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	})

	c, _ := newFriendContext(t, http.MethodPost, "/api/friend/request", `{}`)
	err := handler.SendRequest(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestFriendHandler_Accept(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{
		acceptFn: func(_ context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
			// The caller is always the receiver.
			if senderID != "user-9" || receiverID != "caller-1" {
				t.Fatalf("unexpected args: %s %s", senderID, receiverID)
			}
			return &domain.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: domain.RequestAccepted}, nil
		},
	})

	c, rec := newFriendContext(t, http.MethodPost, "/", "")
	c.SetParamNames("senderId")
	c.SetParamValues("user-9")

	if err := handler.Accept(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestFriendHandler_Decline_ErrorPassthrough(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{
		declineFn: func(context.Context, string, string) (*domain.FriendRequest, error) {
			return nil, domain.ErrRequestResolved
		},
	})

	c, _ := newFriendContext(t, http.MethodPost, "/", "")
	c.SetParamNames("senderId")
	c.SetParamValues("user-9")

	if err := handler.Decline(c); err != domain.ErrRequestResolved {
		t.Fatalf("error must pass through to the central handler, got %v", err)
	}
}

func TestFriendHandler_Remove(t *testing.T) {
	removed := false
	handler := NewFriendHandler(&stubFriendService{
		removeFn: func(_ context.Context, userID, friendID string) error {
			if userID != "caller-1" || friendID != "user-2" {
				t.Fatalf("unexpected args: %s %s", userID, friendID)
			}
			removed = true
			return nil
		},
	})

	c, rec := newFriendContext(t, http.MethodDelete, "/", "")
	c.SetParamNames("friendId")
	c.SetParamValues("user-2")

	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !removed {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestFriendHandler_List(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{
		listFn: func(_ context.Context, userID string) ([]domain.SafeUser, error) {
			return []domain.SafeUser{{ID: "user-2", FirstName: "Bob"}}, nil
		},
	})

	c, rec := newFriendContext(t, http.MethodGet, "/api/friend", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []domain.SafeUser
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "user-2" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestFriendHandler_NoClaims(t *testing.T) {
	handler := NewFriendHandler(&stubFriendService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/friend", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
