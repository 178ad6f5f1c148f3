package shell

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/command"
	"github.com/vkngwrapper/frameshell/frame"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/memory"
	"github.com/vkngwrapper/frameshell/resource"
	"github.com/vkngwrapper/frameshell/swapchain"
	"golang.org/x/exp/slog"
)

const defaultIdleDelay = 10 * time.Millisecond

// Context owns every GPU object the shell creates on top of a Bootstrap. It replaces the global
// state a renderer would otherwise share between its init, resize and shutdown paths: everything
// is created by Init, rebuilt by Recreate and destroyed by Shutdown.
type Context struct {
	logger  *slog.Logger
	driver  gpu.Driver
	boot    Bootstrap
	options Options

	allocator  *memory.Allocator
	factory    *resource.Factory
	runner     *command.Runner
	swapchains *swapchain.Manager
	controller *frame.Controller

	uploadPool gpu.CommandPool
	imagePool  gpu.CommandPool
	sync       *frame.SyncState

	swapchain *swapchain.State
	depth     *resource.Image
	perImage  *frame.PerImageCommandBuffers
	hooks     []swapchain.ResolutionDependent
	// restored counts the hooks, in registration order, that hold resources for the live swapchain
	restored int

	closed bool
}

// Init builds the allocator, the resource factory, the command pools, the frame sync objects and
// the first swapchain. A surface that cannot be presented to yet is not an error: the swapchain
// is built by the first frame that finds the surface available. If Init fails, everything it
// created is destroyed, including the objects handed over in boot.
func Init(logger *slog.Logger, boot Bootstrap, options Options) (*Context, error) {
	if logger == nil {
		return nil, errors.New("attempted to initialize the shell with a nil logger")
	}
	if boot.Driver == nil {
		return nil, errors.New("attempted to initialize the shell with a nil driver")
	}
	if options.Record == nil {
		options.Record = ClearRecorder([4]float32{0, 0, 0, 1})
	}
	if options.IdleDelay <= 0 {
		options.IdleDelay = defaultIdleDelay
	}
	if len(options.Swapchain.QueueFamilyIndices) == 0 {
		options.Swapchain.QueueFamilyIndices = []int{boot.GraphicsFamily, boot.PresentFamily}
	}

	logger.Debug("shell::Init")

	c := &Context{
		logger:  logger,
		driver:  boot.Driver,
		boot:    boot,
		options: options,
	}

	err := c.init()
	if err != nil {
		shutdownErr := c.Shutdown()
		if shutdownErr != nil {
			err = errors.CombineErrors(err, shutdownErr)
		}
		return nil, err
	}

	return c, nil
}

func (c *Context) init() error {
	var err error
	c.allocator, err = memory.New(c.logger, c.driver, c.options.Allocator)
	if err != nil {
		return err
	}

	c.factory = resource.NewFactory(c.logger, c.driver, c.allocator)
	c.runner = command.NewRunner(c.logger, c.driver)
	c.swapchains = swapchain.New(c.logger, c.driver, c.options.Swapchain)

	c.uploadPool, err = c.runner.CreatePool(c.boot.GraphicsFamily, core1_0.CommandPoolCreateTransient)
	if err != nil {
		return err
	}

	c.imagePool, err = c.runner.CreatePool(c.boot.GraphicsFamily, 0)
	if err != nil {
		return err
	}

	c.sync, err = frame.CreateSyncState(c.driver, c.options.UseFence)
	if err != nil {
		return err
	}

	c.controller, err = frame.NewController(c.logger, c.driver, c, c.boot.GraphicsQueue, c.boot.PresentQueue, c.sync, c.options.Frame)
	if err != nil {
		return err
	}

	err = c.build()
	if errors.Is(err, swapchain.ErrSurfaceUnavailable) {
		c.logger.Info("surface unavailable, deferring swapchain creation")
		c.controller.Invalidate()
		return nil
	}
	return err
}

func (c *Context) Allocator() *memory.Allocator {
	return c.allocator
}

func (c *Context) Factory() *resource.Factory {
	return c.factory
}

func (c *Context) Runner() *command.Runner {
	return c.runner
}

func (c *Context) Controller() *frame.Controller {
	return c.controller
}

// Swapchain returns the live swapchain, or nil while none could be built
func (c *Context) Swapchain() *swapchain.State {
	return c.swapchain
}

// DepthBuffer returns the depth buffer matching the current swapchain, or nil when there is no
// live swapchain or no depth format was requested
func (c *Context) DepthBuffer() *resource.Image {
	return c.depth
}

// CreateTexture uploads pixels into a sampled device-local image through the shell's upload pool
// and graphics queue
func (c *Context) CreateTexture(info resource.TextureInfo) (*resource.Image, error) {
	return c.factory.CreateTexture(c.runner, c.uploadPool, c.boot.GraphicsQueue, info)
}

// RegisterResolutionDependent adds a hook that is released before and restored after each
// swapchain rebuild. Hooks are released in reverse registration order. If a swapchain is already
// live, the hook is restored against it immediately; when that fails the hook is not registered.
func (c *Context) RegisterResolutionDependent(hook swapchain.ResolutionDependent) error {
	if hook == nil {
		return errors.New("attempted to register a nil resolution dependent hook")
	}

	c.hooks = append(c.hooks, hook)
	if c.swapchain == nil || c.restored != len(c.hooks)-1 {
		return nil
	}

	err := hook.RestoreResolutionDependent(c.swapchain)
	if err != nil {
		c.hooks = c.hooks[:len(c.hooks)-1]
		return errors.Wrap(err, "restoring resolution dependent resources")
	}
	c.restored++
	return nil
}

// NotifyResize records the window's new drawable size and schedules a swapchain rebuild before the
// next frame
func (c *Context) NotifyResize(width, height int) {
	c.logger.Debug("shell::NotifyResize", slog.Int("width", width), slog.Int("height", height))

	c.boot.Width = width
	c.boot.Height = height
	if c.controller != nil {
		c.controller.Invalidate()
	}
}

// Recreate waits for the device to go idle, tears down everything that depends on the current
// swapchain and builds it again. It returns swapchain.ErrSurfaceUnavailable while the window has
// no drawable area; the old swapchain is gone by then and the controller rebuilds on a later
// frame.
func (c *Context) Recreate() error {
	c.logger.Debug("shell::Recreate")

	res, err := c.driver.DeviceWaitIdle()
	if err != nil {
		return gpu.Check("DeviceWaitIdle", res, err)
	}

	c.release()

	return c.build()
}

// release destroys the resolution dependent objects, the per-image command buffers, the depth
// buffer and the swapchain. The device must be idle.
func (c *Context) release() {
	for ; c.restored > 0; c.restored-- {
		c.hooks[c.restored-1].ReleaseResolutionDependent()
	}

	if c.perImage != nil {
		c.runner.FreeBuffers(c.perImage.Pool, c.perImage.Buffers)
		c.perImage = nil
	}

	if c.depth != nil {
		err := c.factory.ReleaseImage(c.depth)
		if err != nil {
			c.logger.Warn("failed to free depth buffer memory", slog.String("error", err.Error()))
		}
		c.depth = nil
	}

	if c.swapchain != nil {
		c.swapchains.Destroy(c.swapchain)
		c.swapchain = nil
	}

	if c.controller != nil {
		c.controller.Bind(0, nil)
	}
}

func (c *Context) build() error {
	state, err := c.swapchains.Create(c.boot.Surface, core1_0.Extent2D{Width: c.boot.Width, Height: c.boot.Height})
	if err != nil {
		return err
	}
	c.swapchain = state

	if c.options.DepthFormat != core1_0.FormatUndefined {
		c.depth, err = c.factory.CreateDepthBuffer(state.Extent.Width, state.Extent.Height, c.options.DepthFormat, "depth buffer")
		if err != nil {
			c.release()
			return errors.Wrap(err, "creating depth buffer")
		}
	}

	perImage, err := c.recordImages(state)
	if err != nil {
		c.release()
		return err
	}
	c.perImage = perImage

	for _, hook := range c.hooks {
		err = hook.RestoreResolutionDependent(state)
		if err != nil {
			c.release()
			return errors.Wrap(err, "restoring resolution dependent resources")
		}
		c.restored++
	}

	c.controller.Bind(state.Handle, perImage)
	return nil
}

func (c *Context) recordImages(state *swapchain.State) (*frame.PerImageCommandBuffers, error) {
	buffers, err := c.runner.AllocateBuffers(c.imagePool, state.ImageCount())
	if err != nil {
		return nil, err
	}

	// Without an in-flight fence a buffer may be resubmitted while its previous submission is
	// still pending
	var flags core1_0.CommandBufferUsageFlags
	if !c.options.UseFence {
		flags = core1_0.CommandBufferUsageSimultaneousUse
	}

	for imageIndex, buffer := range buffers {
		imageIndex := imageIndex
		err = c.runner.Record(buffer, flags, func(buffer gpu.CommandBuffer) error {
			return c.options.Record(c.driver, buffer, ImageTarget{
				Index:     imageIndex,
				State:     state,
				Depth:     c.depth,
				WaitStage: c.controller.WaitStage(),
			})
		})
		if err != nil {
			c.runner.FreeBuffers(c.imagePool, buffers)
			return nil, errors.Wrapf(err, "recording command buffer for swapchain image %d", imageIndex)
		}
	}

	return &frame.PerImageCommandBuffers{
		Pool:    c.imagePool,
		Buffers: buffers,
	}, nil
}

// RunFrame runs a single pass of the frame cycle
func (c *Context) RunFrame() error {
	if c.closed {
		return errors.New("attempted to run a frame after shutdown")
	}
	return c.controller.RunFrame()
}

// Run drives frames until poll returns false or ctx is done. poll is called once before every
// frame and is where the platform layer pumps window events and calls NotifyResize. While the
// surface cannot be presented to, Run sleeps for IdleDelay between frames.
func (c *Context) Run(ctx context.Context, poll func() bool) error {
	idle := time.NewTimer(c.options.IdleDelay)
	if !idle.Stop() {
		<-idle.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if poll != nil && !poll() {
			return nil
		}

		err := c.RunFrame()
		if err != nil {
			return err
		}

		if !c.controller.RebuildPending() {
			continue
		}

		idle.Reset(c.options.IdleDelay)
		select {
		case <-ctx.Done():
			idle.Stop()
			return nil
		case <-idle.C:
		}
	}
}

// Shutdown waits for the device to go idle and destroys everything in reverse order of creation:
// resolution dependent resources, the depth buffer, the swapchain, the sync objects, the command
// pools, the factory's remaining resources, the allocator's chunks, and finally the surface,
// device and instance. Calling it more than once is a no-op.
func (c *Context) Shutdown() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.logger.Debug("shell::Shutdown")

	var result error
	res, err := c.driver.DeviceWaitIdle()
	if err != nil {
		// Teardown continues past a failed wait
		result = gpu.Check("DeviceWaitIdle", res, err)
	}

	if c.swapchains != nil {
		c.release()
	}

	if c.sync != nil {
		c.sync.Destroy(c.driver)
		c.sync = nil
	}

	if c.runner != nil {
		c.runner.DestroyPool(c.imagePool)
		c.runner.DestroyPool(c.uploadPool)
		c.imagePool = 0
		c.uploadPool = 0
	}

	if c.factory != nil {
		c.factory.Destroy()
	}

	if c.allocator != nil {
		c.logger.Debug("allocator statistics at shutdown", slog.String("stats", c.allocator.BuildStatsString()))

		err = c.allocator.Destroy()
		if err != nil {
			result = errors.CombineErrors(result, err)
		}
	}

	if c.boot.Surface != 0 {
		c.driver.DestroySurface(c.boot.Surface)
	}
	c.driver.DestroyDevice()
	c.driver.DestroyInstance()

	return result
}
