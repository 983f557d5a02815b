package rentals

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Messages persists contact messages left on listings
type Messages interface {
	repository.Repository[*Message]

	Send(ctx context.Context, msg *Message) (*Message, error)
	ListForRental(ctx context.Context, rentalID uuid.UUID) ([]*Message, error)
}

type messagesRepo struct {
	repository.Repository[*Message]
	db *bun.DB
}

var _ Messages = (*messagesRepo)(nil)

func NewMessagesRepository(db *bun.DB) Messages {
	repo := repository.NewRepository[*Message](db, repository.ModelHandlers[*Message]{
		NewRecord: func() *Message { return &Message{} },
		GetID: func(m *Message) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Message, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
	})

	return &messagesRepo{
		Repository: repo,
		db:         db,
	}
}

func (a *messagesRepo) Send(ctx context.Context, msg *Message) (*Message, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	now := time.Now()
	msg.CreatedAt = &now

	return a.Repository.Create(ctx, msg)
}

func (a *messagesRepo) ListForRental(ctx context.Context, rentalID uuid.UUID) ([]*Message, error) {
	var records []*Message
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.rental_id = ?", rentalID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}
