package ports

import (
	"context"
	"time"
)

// Delivery is one finished rendered report handed to the gateway.
// ReportDate and RunID let the collaborator deduplicate resubmissions.
type Delivery struct {
	ReportDate time.Time
	RunID      string
	Payload    string
}

// DeliveryOutcome is the gateway's verdict. Reason is set when the
// payload was rejected; transport-level failures surface as errors.
type DeliveryOutcome struct {
	Delivered bool
	Reason    string
}

type DeliveryGateway interface {
	Deliver(ctx context.Context, d Delivery) (DeliveryOutcome, error)
}
