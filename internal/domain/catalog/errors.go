package catalog

import "errors"

var (
	// ErrCategoryCycle reports a parent reference cycle in the source
	// category set. A cycle can never be created in order, so the whole
	// category stage is invalid.
	ErrCategoryCycle = errors.New("catalog: category parent references form a cycle")

	// ErrNegativePrice reports a product payload with a negative price.
	ErrNegativePrice = errors.New("catalog: product price cannot be negative")

	// ErrNegativeWeight reports a product payload with a negative weight.
	ErrNegativeWeight = errors.New("catalog: product weight cannot be negative")
)
