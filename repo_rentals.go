package rentals

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Rentals persists listings
type Rentals interface {
	repository.Repository[*Rental]

	ListAll(ctx context.Context) ([]*Rental, error)
	ListAllTx(ctx context.Context, tx bun.IDB) ([]*Rental, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Rental, error)
	CreateForOwner(ctx context.Context, ownerID uuid.UUID, rental *Rental) (*Rental, error)
	ApplyUpdate(ctx context.Context, id uuid.UUID, patch *Rental) (*Rental, error)
}

type rentalsRepo struct {
	repository.Repository[*Rental]
	db *bun.DB
}

var _ Rentals = (*rentalsRepo)(nil)

func NewRentalsRepository(db *bun.DB) Rentals {
	repo := repository.NewRepository[*Rental](db, repository.ModelHandlers[*Rental]{
		NewRecord: func() *Rental { return &Rental{} },
		GetID: func(r *Rental) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Rental, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &rentalsRepo{
		Repository: repo,
		db:         db,
	}
}

// ListAll returns every listing. The name stays clear of the embedded
// repository's criteria-driven List.
func (a *rentalsRepo) ListAll(ctx context.Context) ([]*Rental, error) {
	return a.ListAllTx(ctx, a.db)
}

func (a *rentalsRepo) ListAllTx(ctx context.Context, tx bun.IDB) ([]*Rental, error) {
	var records []*Rental
	err := tx.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *rentalsRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*Rental, error) {
	record := &Rental{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *rentalsRepo) CreateForOwner(ctx context.Context, ownerID uuid.UUID, rental *Rental) (*Rental, error) {
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	rental.OwnerID = ownerID

	now := time.Now()
	rental.CreatedAt = &now
	rental.UpdatedAt = &now

	return a.Repository.Create(ctx, rental)
}

// ApplyUpdate patches only the fields present in the update, matching the
// partial-update semantics of the listing edit endpoint.
func (a *rentalsRepo) ApplyUpdate(ctx context.Context, id uuid.UUID, patch *Rental) (*Rental, error) {
	record, err := a.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		record.Name = patch.Name
	}
	if patch.Surface != "" {
		record.Surface = patch.Surface
	}
	if patch.Price != "" {
		record.Price = patch.Price
	}
	if patch.Picture != "" {
		record.Picture = patch.Picture
	}
	if patch.Description != "" {
		record.Description = patch.Description
	}

	now := time.Now()
	record.UpdatedAt = &now

	return a.Repository.Update(ctx, record, repository.UpdateByID(id.String()))
}
