package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riftbuddy/riftbuddy-api/internal/api/metrics"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// FriendHandler handles HTTP requests for the social graph. The caller is
// always one side of the operation: requests are sent by the caller and
// accepted or declined by the caller as receiver.
type FriendHandler struct {
	service ports.FriendService
}

func NewFriendHandler(service ports.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

type sendRequestRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

// List handles GET /api/friend — the caller's friends, safe view.
//
// @Summary      List friends
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.SafeUser
// @Router       /api/friend [get]
func (h *FriendHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	friends, err := h.service.ListFriends(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// ListRequests handles GET /api/friend/requests — pending requests
// addressed to the caller.
//
// @Summary      List incoming friend requests
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.FriendRequest
// @Router       /api/friend/requests [get]
func (h *FriendHandler) ListRequests(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListIncoming(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// SendRequest handles POST /api/friend/request — caller sends a request.
//
// @Summary      Send a friend request
// @Tags         friend
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendRequestRequest  true  "Receiver"
// @Success      201   {object}  domain.FriendRequest
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/friend/request [post]
func (h *FriendHandler) SendRequest(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req sendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	request, err := h.service.SendRequest(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		return err
	}

	metrics.FriendRequestsTotal.WithLabelValues("sent").Inc()
	return c.JSON(http.StatusCreated, request)
}

// Accept handles POST /api/friend/request/:senderId/accept — caller accepts
// a pending request addressed to them.
//
// @Summary      Accept a friend request
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Param        senderId  path      string  true  "Sender user id"
// @Success      200       {object}  domain.FriendRequest
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/friend/request/{senderId}/accept [post]
func (h *FriendHandler) Accept(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	request, err := h.service.Accept(c.Request().Context(), c.Param("senderId"), userID)
	if err != nil {
		return err
	}

	metrics.FriendRequestsTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, request)
}

// Decline handles POST /api/friend/request/:senderId/decline.
//
// @Summary      Decline a friend request
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Param        senderId  path      string  true  "Sender user id"
// @Success      200       {object}  domain.FriendRequest
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/friend/request/{senderId}/decline [post]
func (h *FriendHandler) Decline(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	request, err := h.service.Decline(c.Request().Context(), c.Param("senderId"), userID)
	if err != nil {
		return err
	}

	metrics.FriendRequestsTotal.WithLabelValues("declined").Inc()
	return c.JSON(http.StatusOK, request)
}

// Remove handles DELETE /api/friend/:friendId — removes the friendship.
// Idempotent: removing an absent edge also returns 204.
//
// @Summary      Remove a friend
// @Tags         friend
// @Security     BearerAuth
// @Param        friendId  path  string  true  "Friend user id"
// @Success      204
// @Router       /api/friend/{friendId} [delete]
func (h *FriendHandler) Remove(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveFriend(c.Request().Context(), userID, c.Param("friendId")); err != nil {
		return err
	}

	metrics.FriendRequestsTotal.WithLabelValues("removed").Inc()
	return c.NoContent(http.StatusNoContent)
}
