package domain

import "errors"

// Domain errors as sentinel values
var (
	// Lookup errors
	ErrProductNotFound    = errors.New("product not found")
	ErrDepartmentNotFound = errors.New("department not found")

	// Input errors
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrInvalidDepartmentName = errors.New("department name cannot be empty")

	// Store errors
	ErrDepartmentExists = errors.New("department already exists")
	ErrIntegrity        = errors.New("data integrity violation")
)
