package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint | ~uint32 | ~uint64
}

// CheckPow2 returns PowerOfTwoError if number is zero or has more than one bit set
func CheckPow2[T Number](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// ValidateRequirements verifies that a size/alignment pair reported by the driver can back a chunk
func ValidateRequirements(size int, alignment int) error {
	if size <= 0 {
		return cerrors.Wrapf(ZeroSizeError, "size is %d", size)
	}

	return CheckPow2(alignment, "alignment")
}
