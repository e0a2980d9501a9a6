package storage

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrSessionNotFound  = errors.New("practice session not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrStorageInit      = errors.New("storage initialization failed")
)
