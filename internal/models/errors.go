package models

import "errors"

// Validation failures: the operation is never attempted.
var (
	ErrMissingField  = errors.New("username and password are required")
	ErrUnknownZone   = errors.New("unknown zone")
	ErrColorNotOwned = errors.New("color is not in your collection")
)

// Business rule violations: the operation was attempted and refused.
var (
	ErrUsernameTaken           = errors.New("username already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCredential       = errors.New("invalid password")
	ErrInsufficientFunds       = errors.New("not enough coins")
	ErrInsufficientAttackCoins = errors.New("not enough attack coins")
	ErrTargetEmpty             = errors.New("target has no colors to destroy")
	ErrSelfAttack              = errors.New("cannot attack yourself")
	ErrBoosterActive           = errors.New("a booster is already active")
)
