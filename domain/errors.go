package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidDateFormat indicates a date string that matches none of the accepted layouts.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidRange indicates a range whose start date lies after its end date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrMalformedPost indicates a post the server returned in an unusable shape.
	ErrMalformedPost = errors.New("malformed post")
)
