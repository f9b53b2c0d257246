package interfaces

import (
	"context"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

// IClientRepository is the read-only lookup the sync engine needs from the
// client CRUD collaborator: enough to verify ownership of a referenced
// client and to denormalize its display name onto the work order.

type IClientRepository interface {
	GetByID(ctx context.Context, id string) (entities.Client, error)
}
