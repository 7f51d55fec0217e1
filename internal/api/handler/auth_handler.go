package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riftbuddy/riftbuddy-api/internal/api/metrics"
	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login redirects the browser to the Riot authorize endpoint.
//
// @Summary      Start the Riot login flow
// @Tags         auth
// @Success      302
// @Failure      500  {object}  map[string]string
// @Router       /auth/riot/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	url, err := h.authService.LoginURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback completes the Riot login flow and returns a session credential.
//
// @Summary      Riot OAuth callback
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "Login state"
// @Success      200    {object}  accessTokenResponse
// @Failure      401    {object}  map[string]string
// @Router       /auth/riot/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	token, err := h.authService.HandleCallback(c.Request().Context(), code, c.QueryParam("state"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLoginState) {
			metrics.LoginsTotal.WithLabelValues("invalid_state").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("exchange_failed").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: token})
}

// Profile returns the decoded claims of the caller's session credential.
//
// @Summary      Current session claims
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	email, _ := c.Get("email").(string)
	firstName, _ := c.Get("first_name").(string)
	lastName, _ := c.Get("last_name").(string)

	return c.JSON(http.StatusOK, profileResponse{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
}
