package service

import "errors"

var (
	// ErrNoOpenSession is returned when a punch-out or break toggle is
	// attempted with no open attendance session.
	ErrNoOpenSession = errors.New("no open attendance session")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrAlreadyReviewed    = errors.New("leave request already reviewed")
)
