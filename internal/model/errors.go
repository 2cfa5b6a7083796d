package model

import "errors"

// Domain errors. Not-found never distinguishes "exists but not yours" from
// "does not exist": repositories scope every lookup by owner.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrMilestoneNotFound  = errors.New("milestone not found")
)
