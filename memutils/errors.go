package memutils

import "github.com/cockroachdb/errors"

// PowerOfTwoError is the error returned from CheckPow2 if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// ZeroSizeError is returned from ValidateRequirements when a chunk of zero bytes is requested
var ZeroSizeError error = errors.New("requested size must be greater than zero")
