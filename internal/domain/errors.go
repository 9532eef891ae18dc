package domain

import "errors"

// Reference data errors
var (
	ErrInvalidLane      = errors.New("invalid lane")
	ErrChampionNotFound = errors.New("champion not found")
	ErrSkinsetNotFound  = errors.New("skinset not found")
)
