package rentals_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ouestloc/rentals"
)

func newRentalsTestApp(t *testing.T, repo *MockRepositoryManager, tokens rentals.TokenService) *fiber.App {
	t.Helper()

	controller := rentals.NewRentalsController(
		rentals.WithRentalsRepo(repo),
		rentals.WithRentalsTokenService(tokens),
		rentals.WithUploadDir(t.TempDir()),
	)

	app := fiber.New()
	app.Get(controller.Routes.Collection, controller.List)
	app.Post(controller.Routes.Collection, controller.Create)
	app.Get(controller.Routes.Item, controller.Show)
	app.Put(controller.Routes.Item, controller.Update)
	return app
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func multipartRequestWithFile(t *testing.T, method, target string, fields map[string]string, fileField, fileName, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	fw, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestRentalsController_List(t *testing.T) {
	tokens := rentals.NewTokenService([]byte("test-key"), 0, nil)

	t.Run("wraps records in a rentals envelope", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		repo.rentals.On("ListAll", mock.Anything).Return([]*rentals.Rental{
			{ID: uuid.New(), Name: "Seaside flat"},
			{ID: uuid.New(), Name: "City loft"},
		}, nil)

		app := newRentalsTestApp(t, repo, tokens)

		resp, err := app.Test(httptest.NewRequest("GET", "/rentals", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string][]map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body["rentals"], 2)
	})

	t.Run("an empty table renders 404", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		repo.rentals.On("ListAll", mock.Anything).Return([]*rentals.Rental{}, nil)

		app := newRentalsTestApp(t, repo, tokens)

		resp, err := app.Test(httptest.NewRequest("GET", "/rentals", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestRentalsController_Show(t *testing.T) {
	tokens := rentals.NewTokenService([]byte("test-key"), 0, nil)

	t.Run("returns the listing", func(t *testing.T) {
		id := uuid.New()

		repo := NewMockRepositoryManager()
		repo.rentals.On("GetByUUID", mock.Anything, id).
			Return(&rentals.Rental{ID: id, Name: "Seaside flat"}, nil)

		app := newRentalsTestApp(t, repo, tokens)

		resp, err := app.Test(httptest.NewRequest("GET", "/rentals/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Seaside flat", body["name"])
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		app := newRentalsTestApp(t, NewMockRepositoryManager(), tokens)

		resp, err := app.Test(httptest.NewRequest("GET", "/rentals/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRentalsController_Create(t *testing.T) {
	tokens := rentals.NewTokenService([]byte("test-key"), 0, nil)
	jane := testIdentity{id: "1", name: "Jane", email: "jane@example.com", role: "user"}

	t.Run("creates a listing for the token holder", func(t *testing.T) {
		owner := &rentals.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com"}

		repo := NewMockRepositoryManager()
		repo.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(owner, nil)
		repo.rentals.On("CreateForOwner", mock.Anything, owner.ID, mock.MatchedBy(func(r *rentals.Rental) bool {
			return r.Name == "Seaside flat" && r.Price == "1200" && r.Picture != ""
		})).Return(&rentals.Rental{ID: uuid.New()}, nil)

		app := newRentalsTestApp(t, repo, tokens)

		token, err := tokens.Generate(jane)
		require.NoError(t, err)

		req := multipartRequestWithFile(t, "POST", "/rentals", map[string]string{
			"name":        "Seaside flat",
			"surface":     "42",
			"price":       "1200",
			"description": "Near the beach",
		}, "picture", "flat.jpg", "not-really-a-jpeg")
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Rental created !", body["message"])

		repo.rentals.AssertExpectations(t)
	})

	t.Run("rejects a request without a token", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		app := newRentalsTestApp(t, repo, tokens)

		req := multipartRequest(t, "POST", "/rentals", map[string]string{"name": "Seaside flat"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		repo.rentals.AssertNotCalled(t, "CreateForOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		app := newRentalsTestApp(t, NewMockRepositoryManager(), tokens)

		req := multipartRequest(t, "POST", "/rentals", map[string]string{"name": "Seaside flat"})
		req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a listing without a picture", func(t *testing.T) {
		owner := &rentals.User{ID: uuid.New(), Email: "jane@example.com"}

		repo := NewMockRepositoryManager()
		repo.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(owner, nil)

		app := newRentalsTestApp(t, repo, tokens)

		token, err := tokens.Generate(jane)
		require.NoError(t, err)

		req := multipartRequest(t, "POST", "/rentals", map[string]string{
			"name":  "Seaside flat",
			"price": "1200",
		})
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		repo.rentals.AssertNotCalled(t, "CreateForOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a nameless listing", func(t *testing.T) {
		owner := &rentals.User{ID: uuid.New(), Email: "jane@example.com"}

		repo := NewMockRepositoryManager()
		repo.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(owner, nil)

		app := newRentalsTestApp(t, repo, tokens)

		token, err := tokens.Generate(jane)
		require.NoError(t, err)

		req := multipartRequest(t, "POST", "/rentals", map[string]string{"price": "1200"})
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRentalsController_Update(t *testing.T) {
	tokens := rentals.NewTokenService([]byte("test-key"), 0, nil)

	t.Run("patches only the submitted fields", func(t *testing.T) {
		id := uuid.New()

		repo := NewMockRepositoryManager()
		repo.rentals.On("ApplyUpdate", mock.Anything, id, mock.MatchedBy(func(r *rentals.Rental) bool {
			return r.Price == "1500" && r.Name == "" && r.Surface == ""
		})).Return(&rentals.Rental{ID: id, Price: "1500"}, nil)

		app := newRentalsTestApp(t, repo, tokens)

		req := multipartRequest(t, "PUT", "/rentals/"+id.String(), map[string]string{
			"price": "1500",
		})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Rental updated !", body["message"])

		repo.rentals.AssertExpectations(t)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		app := newRentalsTestApp(t, NewMockRepositoryManager(), tokens)

		req := multipartRequest(t, "PUT", "/rentals/nope", map[string]string{"price": "1500"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
