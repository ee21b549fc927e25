package provider

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrDatasetNotFound is returned when a binding names a dataset the type does not hold.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrMatchWithoutBinding is returned when Match is not preceded by Bind.
	ErrMatchWithoutBinding = errors.New("match requires dataset binding first")
	// ErrNotSequence is returned when a dataset used for picking or narrowing is not a sequence.
	ErrNotSequence = errors.New("dataset is not a sequence")
	// ErrDuplicateMethod is returned when two declarations produce the same method name.
	ErrDuplicateMethod = errors.New("duplicate method")
	// ErrInvalidDeclaration is returned for declarations missing a required value.
	ErrInvalidDeclaration = errors.New("invalid declaration")
	// ErrAlreadyMaterialized is returned for declarations made after bindings were resolved.
	ErrAlreadyMaterialized = errors.New("bindings already materialized")
	// ErrUnknownMethod is returned when invoking a method the provider does not expose.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrUnexpectedArguments is returned when a picker method is invoked with arguments.
	ErrUnexpectedArguments = errors.New("picker methods take no arguments")
)
