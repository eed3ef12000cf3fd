package domain

import "errors"

var (
	ErrInvalidReference = errors.New("invalid_reference")
	ErrInvalidImporter  = errors.New("invalid_importer")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNotFound         = errors.New("shipment_not_found")
	ErrDuplicate        = errors.New("duplicate_reference")

	// ErrConcurrentModification is returned when a recalculation loses the
	// compare-and-set on the shipment calc version to another writer.
	ErrConcurrentModification = errors.New("concurrent_modification")
)
