package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate will validate the payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0)),
	)
}

// RefreshRequest is the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// Validate will validate the payload.
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// AuthControllerRoutes holds the controller route paths. They sit under the
// public /auth/ namespace the policy allow-lists.
type AuthControllerRoutes struct {
	Login   string
	Refresh string
}

// AuthController exposes the credential login and token refresh endpoints.
type AuthController struct {
	Auther Authenticator
	Logger Logger
	Routes *AuthControllerRoutes
}

// NewAuthController creates a controller bound to the given authenticator.
func NewAuthController(auther Authenticator) *AuthController {
	return &AuthController{
		Auther: auther,
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:   "/auth/login",
			Refresh: "/auth/refresh",
		},
	}
}

// RegisterRoutes mounts the controller on the app.
func (a *AuthController) RegisterRoutes(app *fiber.App) {
	app.Post(a.Routes.Login, a.LoginPost)
	app.Post(a.Routes.Refresh, a.RefreshPost)
}

// LoginPost handles a credential login and returns a token pair.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pair, err := a.Auther.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return a.renderAuthError(c, err)
	}

	return c.JSON(pair)
}

// RefreshPost exchanges a refresh token for a new access token.
func (a *AuthController) RefreshPost(c *fiber.Ctx) error {
	payload := RefreshRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	access, err := a.Auther.Refresh(c.UserContext(), payload.RefreshToken)
	if err != nil {
		return a.renderAuthError(c, err)
	}

	return c.JSON(fiber.Map{"access_token": access})
}

// renderAuthError maps structured auth errors to a response without leaking
// which check failed beyond the coarse text code.
func (a *AuthController) renderAuthError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		a.Logger.Error("unexpected auth error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	status := fiber.StatusUnauthorized
	if richErr.Code > 0 {
		status = richErr.Code
	}

	return c.Status(status).JSON(fiber.Map{
		"error": richErr.Message,
		"code":  richErr.TextCode,
	})
}
