package rentals

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RentalsControllerRoutes struct {
	Collection string
	Item       string
}

// RentalsController serves the listing endpoints. Reads are open; the create
// and update handlers check the bearer token themselves because the routes
// sit on the open side of the policy table.
type RentalsController struct {
	Logger         Logger
	Repo           RepositoryManager
	Tokens         TokenService
	Routes         *RentalsControllerRoutes
	UploadDir      string
	PictureBaseURL string
}

type RentalsControllerOption func(*RentalsController) *RentalsController

func WithRentalsRepo(repo RepositoryManager) RentalsControllerOption {
	return func(c *RentalsController) *RentalsController {
		c.Repo = repo
		return c
	}
}

func WithRentalsTokenService(tokens TokenService) RentalsControllerOption {
	return func(c *RentalsController) *RentalsController {
		c.Tokens = tokens
		return c
	}
}

func WithRentalsLogger(logger Logger) RentalsControllerOption {
	return func(c *RentalsController) *RentalsController {
		c.Logger = logger
		return c
	}
}

func WithUploadDir(dir string) RentalsControllerOption {
	return func(c *RentalsController) *RentalsController {
		if dir != "" {
			c.UploadDir = dir
		}
		return c
	}
}

func WithPictureBaseURL(base string) RentalsControllerOption {
	return func(c *RentalsController) *RentalsController {
		if base != "" {
			c.PictureBaseURL = base
		}
		return c
	}
}

func NewRentalsController(opts ...RentalsControllerOption) *RentalsController {
	c := &RentalsController{
		Logger: defLogger{},
		Routes: &RentalsControllerRoutes{
			Collection: "/rentals",
			Item:       "/rentals/:id",
		},
		UploadDir:      "uploads",
		PictureBaseURL: "http://localhost:3001/api/images/",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in rentals controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in rentals controller...")
	}

	return c
}

// List returns every listing wrapped in a "rentals" envelope. An empty table
// renders 404, which the historical client depends on.
func (a *RentalsController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Rentals().ListAll(c.UserContext())
	if err != nil {
		a.Logger.Error("rentals list error: %v", err)
		return renderError(c, err)
	}

	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "no rentals found",
		})
	}

	return c.JSON(fiber.Map{"rentals": records})
}

func (a *RentalsController) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid rental id",
		})
	}

	record, err := a.Repo.Rentals().GetByUUID(c.UserContext(), id)
	if err != nil {
		a.Logger.Error("rental show error: %v", err)
		return renderError(c, err)
	}

	return c.JSON(record)
}

// Create publishes a new listing from a multipart form. The route is open in
// the policy table, so the handler verifies the token itself and resolves the
// owner from the subject claim.
func (a *RentalsController) Create(c *fiber.Ctx) error {
	raw, err := BearerFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil || !a.Tokens.IsGloballyValid(raw) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "error",
		})
	}

	subject, err := a.Tokens.Subject(raw)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "error",
		})
	}

	owner, err := a.Repo.Users().GetByEmail(c.UserContext(), subject)
	if err != nil {
		a.Logger.Error("rental create owner lookup error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "error",
		})
	}

	record := &Rental{
		Name:        c.FormValue("name"),
		Surface:     c.FormValue("surface"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}

	if record.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "rental name is required",
		})
	}

	picture, err := a.savePicture(c)
	if err != nil {
		a.Logger.Error("rental create picture error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not store picture",
		})
	}

	// a new listing must ship a picture; only updates may omit it
	if picture == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "rental picture is required",
		})
	}
	record.Picture = picture

	if _, err := a.Repo.Rentals().CreateForOwner(c.UserContext(), owner.ID, record); err != nil {
		a.Logger.Error("rental create error: %v", err)
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rental created !",
	})
}

// Update patches a listing from a multipart form. Only the fields present in
// the form change; everything else keeps its stored value.
func (a *RentalsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid rental id",
		})
	}

	patch := &Rental{
		Name:        c.FormValue("name"),
		Surface:     c.FormValue("surface"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}

	if picture, err := a.savePicture(c); err == nil && picture != "" {
		patch.Picture = picture
	}

	if _, err := a.Repo.Rentals().ApplyUpdate(c.UserContext(), id, patch); err != nil {
		a.Logger.Error("rental update error: %v", err)
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Rental updated !",
	})
}

// savePicture stores the uploaded file under a fresh name and returns the
// public URL clients can fetch it from. A form without a picture is not an
// error; it returns an empty URL.
func (a *RentalsController) savePicture(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("picture")
	if err != nil {
		return "", nil
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(a.UploadDir, name)); err != nil {
		return "", err
	}

	return strings.TrimSuffix(a.PictureBaseURL, "/") + "/" + name, nil
}
