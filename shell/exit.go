package shell

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/frameshell/gpu"
	"golang.org/x/exp/slog"
)

const (
	ExitOK    = 0
	ExitFatal = 1
)

// ExitCode is the top-level fatal handler. It logs err with its stack trace and returns the
// process exit code; callers pass the result to os.Exit.
func ExitCode(logger *slog.Logger, err error) int {
	if err == nil {
		return ExitOK
	}

	attrs := []any{slog.String("error", err.Error())}

	var gpuErr *gpu.Error
	if errors.As(err, &gpuErr) {
		attrs = append(attrs,
			slog.String("op", gpuErr.Op),
			slog.Any("result", gpuErr.Result),
		)
	}

	attrs = append(attrs, slog.String("detail", fmt.Sprintf("%+v", err)))
	logger.Error("fatal error", attrs...)

	return ExitFatal
}
