package domain

import "errors"

var (
	ErrNoEvents       = errors.New("no events in reporting window")
	ErrInvalidConfig  = errors.New("invalid report configuration")
	ErrUnknownManager = errors.New("associate has no manager mapping")
	ErrDeliveryFailed = errors.New("report delivery failed")
)
