package rentals

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

type AuthControllerRoutes struct {
	Login    string
	Register string
	Me       string
}

type AuthController struct {
	Debug  bool
	Logger Logger
	Repo   RepositoryManager
	Auther Authenticator
	Tokens TokenService
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithTokenService(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
			Me:       "/auth/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Email
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginPost authenticates credentials and mints a token. Every failure mode
// collapses into the same 401 so callers cannot probe which accounts exist.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return loginFailed(c)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload: %v", err)
		return loginFailed(c)
	}

	return a.login(c, payload)
}

// login exchanges any credential payload for a signed token
func (a *AuthController) login(c *fiber.Ctx, payload LoginPayload) error {
	token, err := a.Auther.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("login error: %v", err)
		return loginFailed(c)
	}

	return c.JSON(fiber.Map{"token": token})
}

func loginFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "error",
	})
}

// RegistrationCreatePayload is the registration payload
type RegistrationCreatePayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.By(validatePlausibleEmail)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 100)),
	)
}

func validatePlausibleEmail(value any) error {
	s, _ := value.(string)
	if !IsPlausibleEmail(s) {
		return errors.New("must be a valid email address")
	}
	return nil
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegistrationCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "error parsing body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid registration payload",
		})
	}

	var created *User
	req := RegisterUserMessage{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  payload.Password,
		UseHashid: true,
	}

	registerUser := RegisterUserHandler{
		repo: a.Repo,
		OnResponse: func(u *User) {
			created = u
		},
	}

	if err := registerUser.Execute(c.UserContext(), req); err != nil {
		a.Logger.Error("register user error: %v", err)
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created.PublicProjection())
}

// MeShow resolves the caller from its bearer token and returns the account
// record. The route is open in the policy table so the handler performs its
// own token check.
func (a *AuthController) MeShow(c *fiber.Ctx) error {
	raw, err := BearerFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return loginFailed(c)
	}

	claims, err := a.Tokens.Validate(raw)
	if err != nil {
		return loginFailed(c)
	}

	user, err := a.Repo.Users().GetByEmail(c.UserContext(), claims.Subject())
	if err != nil {
		a.Logger.Error("me lookup error: %v", err)
		return loginFailed(c)
	}

	return c.JSON(user.PublicProjection())
}
