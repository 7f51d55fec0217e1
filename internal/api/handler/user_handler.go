package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riftbuddy/riftbuddy-api/internal/api/metrics"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	RiotID    string `json:"riot_id"`
	RoleID    string `json:"role_id"`
}

type updateUserRequest struct {
	FirstName *string    `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string    `json:"last_name" validate:"omitempty,min=1"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Avatar    *string    `json:"avatar" validate:"omitempty,url"`
	RiotID    *string    `json:"riot_id"`
	RoleID    *string    `json:"role_id"`
	Password  *string    `json:"password" validate:"omitempty,min=8"`
	BirthDate *time.Time `json:"birth_date"`
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Avatar:    r.Avatar,
		RiotID:    r.RiotID,
		RoleID:    r.RoleID,
		Password:  r.Password,
		BirthDate: r.BirthDate,
	}
}

// List handles GET /api/user — every account, full view. Admin only.
//
// @Summary      List all users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Self handles GET /api/user/self — the caller's own full profile.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Router       /api/user/self [get]
func (h *UserHandler) Self(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetSelf(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateSelf handles PUT /api/user/self — partial update of the caller's
// profile. The role field is ignored: callers cannot change their own tier.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  map[string]string
// @Router       /api/user/self [put]
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := req.toInput()
	input.RoleID = nil

	user, err := h.service.Update(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Others handles GET /api/user/others — everyone but the caller, safe view.
//
// @Summary      List other users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.SafeUser
// @Router       /api/user/others [get]
func (h *UserHandler) Others(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	users, err := h.service.GetOthers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Search handles GET /api/user/search?q= — case-insensitive email substring
// match, safe view only.
//
// @Summary      Search users by email
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Email substring"
// @Success      200  {array}   domain.SafeUser
// @Failure      400  {object}  map[string]string
// @Router       /api/user/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing search term")
	}

	users, err := h.service.SearchByEmail(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/user/:id — safe projection of any user.
//
// @Summary      Get a user by id
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.SafeUser
// @Failure      404  {object}  map[string]string
// @Router       /api/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetSafeByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /api/user — registers an account. Admin only.
//
// @Summary      Create a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RiotID:    req.RiotID,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/user/:id — partial update of any account,
// including role changes. Admin only.
//
// @Summary      Update a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/user/:id — removes the account and purges its
// friendship edges and requests. Admin only.
//
// @Summary      Delete a user
// @Tags         user
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
