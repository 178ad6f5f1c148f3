package gpu

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
)

// Error is a fatal failure of a driver call. Op names the call that failed and Result carries the
// status it returned. There is no recovery path for an Error: it is propagated to the top-level
// handler, which logs it and terminates the process.
type Error struct {
	Op     string
	Result common.VkResult
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s failed with %s: %v", e.Op, e.Result, e.cause)
	}
	return fmt.Sprintf("%s failed with %s", e.Op, e.Result)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds a fatal Error with a stack trace attached
func NewError(op string, res common.VkResult, cause error) error {
	if res == core1_0.VKSuccess {
		res = core1_0.VKErrorUnknown
	}
	return errors.WithStackDepth(&Error{Op: op, Result: res, cause: cause}, 1)
}

// Check converts the (result, error) pair returned by a driver call into a fatal Error. It
// returns nil when err is nil.
func Check(op string, res common.VkResult, err error) error {
	if err == nil {
		return nil
	}
	if res == core1_0.VKSuccess {
		res = core1_0.VKErrorUnknown
	}
	return errors.WithStackDepth(&Error{Op: op, Result: res, cause: err}, 1)
}

// ResultOf extracts the driver status from an error chain, or VKErrorUnknown if the chain holds
// no Error
func ResultOf(err error) common.VkResult {
	var gpuErr *Error
	if errors.As(err, &gpuErr) {
		return gpuErr.Result
	}
	return core1_0.VKErrorUnknown
}

// IsStale reports whether a swapchain operation returned a status that calls for the swapchain to
// be rebuilt rather than treated as fatal
func IsStale(res common.VkResult) bool {
	return res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal
}
