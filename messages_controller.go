package rentals

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MessagesController accepts contact messages left against a listing
type MessagesController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewMessagesController(repo RepositoryManager) *MessagesController {
	if repo == nil {
		panic("Missing RepositoryManager in messages controller...")
	}

	return &MessagesController{
		Logger: defLogger{},
		Repo:   repo,
	}
}

// MessageCreatePayload is the contact form payload
type MessageCreatePayload struct {
	Message  string `form:"message" json:"message"`
	UserID   string `form:"user_id" json:"user_id"`
	RentalID string `form:"rental_id" json:"rental_id"`
}

// Validate will validate the payload
func (r MessageCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.RentalID, validation.Required),
	)
}

func (a *MessagesController) Create(c *fiber.Ctx) error {
	payload := new(MessageCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("message parse payload: %v", err)
		return messageRejected(c)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("message validate payload: %v", err)
		return messageRejected(c)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return messageRejected(c)
	}

	rentalID, err := uuid.Parse(payload.RentalID)
	if err != nil {
		return messageRejected(c)
	}

	msg := &Message{
		Message:  payload.Message,
		UserID:   userID,
		RentalID: rentalID,
	}

	if _, err := a.Repo.Messages().Send(c.UserContext(), msg); err != nil {
		a.Logger.Error("message create error: %v", err)
		return messageRejected(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message send with success",
	})
}

func messageRejected(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "error",
	})
}
