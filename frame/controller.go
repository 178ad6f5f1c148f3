package frame

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/swapchain"
	"golang.org/x/exp/slog"
)

// State is the position of a Controller within the frame cycle
type State int32

const (
	StateIdle State = iota
	StateAcquiring
	StateSubmitted
	StatePresenting
)

var stateNames = map[State]string{
	StateIdle:       "Idle",
	StateAcquiring:  "Acquiring",
	StateSubmitted:  "Submitted",
	StatePresenting: "Presenting",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "Unknown"
	}
	return name
}

// Rebuilder recreates the swapchain and everything that depends on its resolution. It returns
// swapchain.ErrSurfaceUnavailable while the surface cannot be presented to, and must call
// Controller.Bind with the new swapchain before returning successfully.
type Rebuilder interface {
	Recreate() error
}

// Options contains optional settings for a Controller
type Options struct {
	// WaitStage is the pipeline stage at which each submission waits for the acquired image.
	// Defaults to the transfer stage.
	WaitStage core1_0.PipelineStageFlags
	// Timeout bounds how long acquiring an image or waiting on the in-flight fence may block.
	// Defaults to common.NoTimeout. A frame whose acquire times out is skipped.
	Timeout time.Duration
}

// Controller drives the acquire, submit and present cycle for one swapchain at a time. It is
// single-flight: RunFrame must not be called again until the previous call has returned.
type Controller struct {
	logger    *slog.Logger
	driver    gpu.PresentDriver
	rebuilder Rebuilder
	options   Options

	graphicsQueue gpu.Queue
	presentQueue  gpu.Queue
	sync          *SyncState

	swapchain gpu.Swapchain
	buffers   *PerImageCommandBuffers

	state          State
	rebuildPending bool
	frameCount     int
	rebuildCount   int
}

func NewController(logger *slog.Logger, driver gpu.PresentDriver, rebuilder Rebuilder, graphicsQueue, presentQueue gpu.Queue, sync *SyncState, options Options) (*Controller, error) {
	if sync == nil || sync.ImageAcquired == 0 || sync.RenderingFinished == 0 {
		return nil, errors.New("frame controller requires an image acquired and a rendering finished semaphore")
	}
	if rebuilder == nil {
		return nil, errors.New("frame controller requires a rebuilder")
	}

	if options.WaitStage == 0 {
		options.WaitStage = core1_0.PipelineStageTransfer
	}
	if options.Timeout == 0 {
		options.Timeout = common.NoTimeout
	}

	return &Controller{
		logger:        logger,
		driver:        driver,
		rebuilder:     rebuilder,
		options:       options,
		graphicsQueue: graphicsQueue,
		presentQueue:  presentQueue,
		sync:          sync,
	}, nil
}

// Bind points the controller at a swapchain and the command buffers recorded for its images
func (c *Controller) Bind(swapchain gpu.Swapchain, buffers *PerImageCommandBuffers) {
	c.swapchain = swapchain
	c.buffers = buffers
}

// Invalidate requests a swapchain rebuild before the next frame, for instance after the window
// was resized
func (c *Controller) Invalidate() {
	c.rebuildPending = true
}

// WaitStage is the pipeline stage at which submissions wait for the acquired image
func (c *Controller) WaitStage() core1_0.PipelineStageFlags {
	return c.options.WaitStage
}

// RebuildPending reports whether the next frame has to rebuild the swapchain before it can draw
func (c *Controller) RebuildPending() bool {
	return c.rebuildPending || c.swapchain == 0
}

func (c *Controller) State() State {
	return c.state
}

// FrameCount is the number of frames that were presented
func (c *Controller) FrameCount() int {
	return c.frameCount
}

// RebuildCount is the number of successful swapchain rebuilds
func (c *Controller) RebuildCount() int {
	return c.rebuildCount
}

// rebuild returns true if the swapchain is ready to be used
func (c *Controller) rebuild() (bool, error) {
	c.logger.Debug("Controller::rebuild")

	err := c.rebuilder.Recreate()
	if errors.Is(err, swapchain.ErrSurfaceUnavailable) {
		c.rebuildPending = true
		return false, nil
	} else if err != nil {
		return false, err
	}

	c.rebuildPending = false
	c.rebuildCount++
	return true, nil
}

// RunFrame runs one pass through the frame cycle. Stale swapchains are rebuilt and the frame is
// skipped; any other failure is fatal and returned.
func (c *Controller) RunFrame() error {
	if c.state != StateIdle {
		return errors.Newf("RunFrame called while a frame is in state %s", c.state)
	}
	defer func() {
		c.state = StateIdle
	}()

	if c.rebuildPending || c.swapchain == 0 {
		ready, err := c.rebuild()
		if err != nil || !ready {
			return err
		}
	}

	if c.sync.InFlight != 0 {
		res, err := c.driver.WaitForFences([]gpu.Fence{c.sync.InFlight}, c.options.Timeout)
		if err != nil {
			return gpu.Check("WaitForFences", res, err)
		} else if res == core1_0.VKTimeout {
			c.logger.Debug("in-flight fence timed out, skipping frame")
			return nil
		}
	}

	c.state = StateAcquiring
	imageIndex, res, err := c.driver.AcquireNextImage(c.swapchain, c.options.Timeout, c.sync.ImageAcquired, 0)
	if res == khr_swapchain.VKErrorOutOfDate {
		// The semaphore was not signalled, so nothing is waiting on it
		c.logger.Debug("swapchain out of date on acquire")
		_, err = c.rebuild()
		return err
	} else if err != nil {
		return gpu.Check("AcquireNextImage", res, err)
	} else if res == core1_0.VKTimeout || res == core1_0.VKNotReady {
		c.logger.Debug("acquire timed out, skipping frame")
		return nil
	}

	// A suboptimal swapchain still presents correctly; finish the frame so the acquire
	// semaphore is consumed, then rebuild
	suboptimal := res == khr_swapchain.VKSuboptimal

	buffer, err := c.buffers.Buffer(imageIndex)
	if err != nil {
		return err
	}

	var fence gpu.Fence
	if c.sync.InFlight != 0 {
		fence = c.sync.InFlight
		res, err = c.driver.ResetFences([]gpu.Fence{fence})
		if err != nil {
			return gpu.Check("ResetFences", res, err)
		}
	}

	c.state = StateSubmitted
	res, err = c.driver.QueueSubmit(c.graphicsQueue, []gpu.SubmitInfo{
		{
			WaitSemaphores:   []gpu.Semaphore{c.sync.ImageAcquired},
			WaitDstStageMask: []core1_0.PipelineStageFlags{c.options.WaitStage},
			CommandBuffers:   []gpu.CommandBuffer{buffer},
			SignalSemaphores: []gpu.Semaphore{c.sync.RenderingFinished},
		},
	}, fence)
	if err != nil {
		return gpu.Check("QueueSubmit", res, err)
	}

	c.state = StatePresenting
	res, err = c.driver.QueuePresent(c.presentQueue, gpu.PresentInfo{
		WaitSemaphores: []gpu.Semaphore{c.sync.RenderingFinished},
		Swapchain:      c.swapchain,
		ImageIndex:     imageIndex,
	})
	if gpu.IsStale(res) {
		c.logger.Debug("swapchain stale on present", slog.Any("result", res))
		suboptimal = true
	} else if err != nil {
		return gpu.Check("QueuePresent", res, err)
	}

	if res != khr_swapchain.VKErrorOutOfDate {
		c.frameCount++
	}

	if suboptimal {
		_, err = c.rebuild()
		return err
	}

	return nil
}
