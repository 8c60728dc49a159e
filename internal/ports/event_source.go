package ports

import (
	"context"

	"github.com/yardops/idlereport/internal/domain"
)

type EventSource interface {
	Fetch(ctx context.Context, window domain.Window) ([]domain.RawEvent, error)
}
