package rentals

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ouestloc/rentals/middleware/jwtware"
)

// BearerFromHeader extracts the raw token from an Authorization header value.
func BearerFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingAuthHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingAuthHeader
	}

	return token, nil
}

// HTTPStatusFor maps a domain error to its HTTP status code.
func HTTPStatusFor(err error) int {
	if err == nil {
		return fiber.StatusOK
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return fiber.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func renderError(c *fiber.Ctx, err error) error {
	status := HTTPStatusFor(err)

	msg := "internal error"
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Message != "" {
		msg = richErr.Message
	}

	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}

	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// RouterConfig carries everything RegisterRoutes needs to stand up the API
type RouterConfig struct {
	Repo           RepositoryManager
	Auther         Authenticator
	Tokens         TokenService
	Provider       IdentityProvider
	Policy         *RoutePolicy
	UploadDir      string
	PictureBaseURL string
	Logger         Logger
}

// RegisterRoutes mounts the route guard and every API endpoint on the app.
// The guard runs first so protected routes never reach a handler without a
// verified identity.
func RegisterRoutes(app *fiber.App, cfg RouterConfig) {
	if cfg.Policy == nil {
		cfg.Policy = DefaultRoutePolicy()
	}

	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}

	app.Use(jwtware.New(NewRouteGuard(cfg.Policy, cfg.Tokens, cfg.Provider)))

	authController := NewAuthController(
		WithAuthRepo(cfg.Repo),
		WithAuther(cfg.Auther),
		WithTokenService(cfg.Tokens),
		WithAuthLogger(cfg.Logger),
	)

	app.Post(authController.Routes.Register, authController.RegisterPost).Name("register.post")
	app.Post(authController.Routes.Login, authController.LoginPost).Name("sign-in.post")
	app.Get(authController.Routes.Me, authController.MeShow).Name("me.get")

	rentalsController := NewRentalsController(
		WithRentalsRepo(cfg.Repo),
		WithRentalsTokenService(cfg.Tokens),
		WithRentalsLogger(cfg.Logger),
		WithUploadDir(cfg.UploadDir),
		WithPictureBaseURL(cfg.PictureBaseURL),
	)

	app.Get(rentalsController.Routes.Collection, rentalsController.List).Name("rentals.list")
	app.Post(rentalsController.Routes.Collection, rentalsController.Create).Name("rentals.create")
	app.Get(rentalsController.Routes.Item, rentalsController.Show).Name("rentals.show")
	app.Put(rentalsController.Routes.Item, rentalsController.Update).Name("rentals.update")

	messagesController := NewMessagesController(cfg.Repo)
	app.Post("/messages", messagesController.Create).Name("messages.create")

	if cfg.UploadDir != "" {
		app.Static("/images", cfg.UploadDir)
	}
}
