package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is missing from the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidBasket is returned when a basket item is missing required fields
	ErrInvalidBasket = errors.New("invalid basket record")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSubstituteNotFound is returned when a confirmed swap references an
	// unresolvable substitute, which indicates a contract violation
	ErrSubstituteNotFound = errors.New("substitute product not found in catalog")

	// ErrInvalidModel is returned when an acceptance model file is malformed
	ErrInvalidModel = errors.New("invalid acceptance model")

	// ErrFootprintServiceFailure is returned when the remote LCA service fails
	ErrFootprintServiceFailure = errors.New("LCA footprint service request failed")
)
