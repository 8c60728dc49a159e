package ports

import (
	"context"

	"github.com/yardops/idlereport/internal/domain"
)

// RosterDirectory resolves associates to their manager. Implementations
// return domain.ErrUnknownManager for associates missing from the roster.
type RosterDirectory interface {
	ManagerOf(ctx context.Context, id domain.AssociateID) (domain.ManagerID, error)
}
