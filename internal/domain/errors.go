package domain

import "errors"

var (
	ErrInvalidResource     = errors.New("invalid resource kind")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance out of range")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidWeeks        = errors.New("forecast weeks out of range")
)
