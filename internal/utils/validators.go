// internal/utils/validators.go
// Validation utility functions shared by the rendezvous and admin surfaces

package utils

import (
	"fmt"
)

// ValidateRange checks a paginated request's offset/size, capping size at
// max and rejecting a negative offset
func ValidateRange(offset, size, max int) (int, int, error) {
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must not be negative")
	}
	if size <= 0 || size > max {
		size = max
	}
	return offset, size, nil
}

// ValidatePID rejects a zero pid, which never identifies a real principal
func ValidatePID(pid uint32) error {
	if pid == 0 {
		return fmt.Errorf("pid must be nonzero")
	}
	return nil
}
