package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrPaymentMethodRequired = errors.New("payment method required")
	ErrOrderNotEditable      = errors.New("order no longer editable")
	ErrOrderNotCancellable   = errors.New("order no longer cancellable")
	ErrEmptyOrder            = errors.New("order has no items")
	ErrInvalidPatch          = errors.New("invalid patch")
	ErrRemoteRejected        = errors.New("remote write rejected")
	ErrRemoteUnconfigured    = errors.New("remote service not configured")
)
