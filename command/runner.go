package command

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/gpu"
	"golang.org/x/exp/slog"
)

// Recorder writes commands into a command buffer that is already in the recording state
type Recorder func(buffer gpu.CommandBuffer) error

// Runner records, submits and waits on one-shot command buffers. It is used for resource uploads
// and layout transitions outside the frame loop, where throughput does not matter and a full
// queue drain is acceptable.
type Runner struct {
	logger *slog.Logger
	driver gpu.CommandDriver
}

func NewRunner(logger *slog.Logger, driver gpu.CommandDriver) *Runner {
	return &Runner{
		logger: logger,
		driver: driver,
	}
}

// Driver returns the driver that recorders should record commands through
func (r *Runner) Driver() gpu.CommandDriver {
	return r.driver
}

// CreatePool creates a command pool for the provided queue family
func (r *Runner) CreatePool(queueFamilyIndex int, flags core1_0.CommandPoolCreateFlags) (gpu.CommandPool, error) {
	r.logger.Debug("Runner::CreatePool", slog.Int("queueFamilyIndex", queueFamilyIndex))

	pool, res, err := r.driver.CreateCommandPool(queueFamilyIndex, flags)
	if err != nil {
		return 0, gpu.Check("CreateCommandPool", res, err)
	}

	return pool, nil
}

func (r *Runner) DestroyPool(pool gpu.CommandPool) {
	r.logger.Debug("Runner::DestroyPool")

	if pool != 0 {
		r.driver.DestroyCommandPool(pool)
	}
}

// AllocateBuffers allocates count primary command buffers from pool
func (r *Runner) AllocateBuffers(pool gpu.CommandPool, count int) ([]gpu.CommandBuffer, error) {
	r.logger.Debug("Runner::AllocateBuffers", slog.Int("count", count))

	buffers, res, err := r.driver.AllocateCommandBuffers(pool, core1_0.CommandBufferLevelPrimary, count)
	if err != nil {
		return nil, gpu.Check("AllocateCommandBuffers", res, err)
	}
	if len(buffers) != count {
		r.driver.FreeCommandBuffers(pool, buffers)
		return nil, gpu.NewError("AllocateCommandBuffers", core1_0.VKErrorUnknown,
			errors.Newf("requested %d command buffers but received %d", count, len(buffers)))
	}

	return buffers, nil
}

func (r *Runner) FreeBuffers(pool gpu.CommandPool, buffers []gpu.CommandBuffer) {
	r.logger.Debug("Runner::FreeBuffers", slog.Int("count", len(buffers)))

	if len(buffers) > 0 {
		r.driver.FreeCommandBuffers(pool, buffers)
	}
}

// Record begins buffer with the provided usage flags, lets recorder fill it and ends it
func (r *Runner) Record(buffer gpu.CommandBuffer, flags core1_0.CommandBufferUsageFlags, recorder Recorder) error {
	res, err := r.driver.BeginCommandBuffer(buffer, flags)
	if err != nil {
		return gpu.Check("BeginCommandBuffer", res, err)
	}

	err = recorder(buffer)
	if err != nil {
		return err
	}

	res, err = r.driver.EndCommandBuffer(buffer)
	if err != nil {
		return gpu.Check("EndCommandBuffer", res, err)
	}

	return nil
}

// Run allocates a primary command buffer from pool, lets recorder fill it, submits it to queue
// and blocks until the queue is idle. The command buffer is freed before Run returns. If the
// recorder fails, nothing is submitted.
func (r *Runner) Run(pool gpu.CommandPool, queue gpu.Queue, recorder Recorder) error {
	r.logger.Debug("Runner::Run")

	if recorder == nil {
		return errors.New("attempted to run a nil recorder")
	}

	buffers, err := r.AllocateBuffers(pool, 1)
	if err != nil {
		return err
	}
	defer r.driver.FreeCommandBuffers(pool, buffers)

	err = r.Record(buffers[0], core1_0.CommandBufferUsageOneTimeSubmit, recorder)
	if err != nil {
		return errors.Wrap(err, "recording one-shot command buffer")
	}

	res, err := r.driver.QueueSubmit(queue, []gpu.SubmitInfo{
		{CommandBuffers: buffers},
	}, 0)
	if err != nil {
		return gpu.Check("QueueSubmit", res, err)
	}

	res, err = r.driver.QueueWaitIdle(queue)
	if err != nil {
		return gpu.Check("QueueWaitIdle", res, err)
	}

	return nil
}
