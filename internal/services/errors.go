package services

import "errors"

var (
	ErrUnknownSubject  = errors.New("unknown subject")
	ErrUnknownAlert    = errors.New("unknown alert")
	ErrScopeNotAllowed = errors.New("view not allowed for this role")
)
