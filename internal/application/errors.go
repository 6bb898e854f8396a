package application

import "errors"

var (
	// ErrBusy is returned while another wizard action is still in flight.
	ErrBusy = errors.New("another action is still in progress")

	ErrWizardFinished      = errors.New("wizard already finished")
	ErrPaymentsUnavailable = errors.New("card payments are not configured")
)
