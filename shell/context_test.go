package shell

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/gpu/mocks"
	"github.com/vkngwrapper/frameshell/swapchain"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

const (
	testSurface       gpu.Surface     = 7
	testGraphicsQueue gpu.Queue       = 8
	testPresentQueue  gpu.Queue       = 9
	uploadPool        gpu.CommandPool = 5
	imagePool         gpu.CommandPool = 6
)

type fixture struct {
	t       *testing.T
	driver  *mocks.MockDriver
	events  []string
	options Options
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		t:      t,
		driver: mocks.NewMockDriver(ctrl),
	}
}

func (f *fixture) log(event string) {
	f.events = append(f.events, event)
}

type recordingHook struct {
	name     string
	fixture  *fixture
	restored []*swapchain.State
	fail     error
}

func (h *recordingHook) ReleaseResolutionDependent() {
	h.fixture.log("release " + h.name)
}

func (h *recordingHook) RestoreResolutionDependent(state *swapchain.State) error {
	h.fixture.log("restore " + h.name)
	if h.fail != nil {
		return h.fail
	}
	h.restored = append(h.restored, state)
	return nil
}

func (f *fixture) boot() Bootstrap {
	return Bootstrap{
		Driver:         f.driver,
		Surface:        testSurface,
		GraphicsQueue:  testGraphicsQueue,
		PresentQueue:   testPresentQueue,
		GraphicsFamily: 0,
		PresentFamily:  0,
		Width:          800,
		Height:         600,
	}
}

func (f *fixture) expectCore() {
	f.driver.EXPECT().MemoryProperties().Return(&core1_0.PhysicalDeviceMemoryProperties{
		MemoryTypes: []core1_0.MemoryType{
			{PropertyFlags: core1_0.MemoryPropertyDeviceLocal},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent},
		},
	})
	gomock.InOrder(
		f.driver.EXPECT().CreateCommandPool(0, core1_0.CommandPoolCreateTransient).Return(uploadPool, core1_0.VKSuccess, nil),
		f.driver.EXPECT().CreateCommandPool(0, core1_0.CommandPoolCreateFlags(0)).Return(imagePool, core1_0.VKSuccess, nil),
		f.driver.EXPECT().CreateSemaphore().Return(gpu.Semaphore(1), core1_0.VKSuccess, nil),
		f.driver.EXPECT().CreateSemaphore().Return(gpu.Semaphore(2), core1_0.VKSuccess, nil),
	)
}

// expectSwapchain expects a swapchain of two images to be built for the provided extent, and its
// per-image command buffers to be recorded
func (f *fixture) expectSwapchain(handle gpu.Swapchain, extent core1_0.Extent2D) {
	f.driver.EXPECT().SurfaceCapabilities(testSurface).Return(&khr_surface.SurfaceCapabilities{
		MinImageCount:  1,
		MaxImageCount:  2,
		CurrentExtent:  core1_0.Extent2D{Width: -1, Height: -1},
		MinImageExtent: core1_0.Extent2D{Width: 0, Height: 0},
		MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
	}, core1_0.VKSuccess, nil)
	f.driver.EXPECT().SurfaceFormats(testSurface).Return([]khr_surface.SurfaceFormat{
		{Format: core1_0.FormatB8G8R8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
	}, core1_0.VKSuccess, nil)
	f.driver.EXPECT().SurfacePresentModes(testSurface).Return([]khr_surface.PresentMode{khr_surface.PresentModeFIFO}, core1_0.VKSuccess, nil)

	if extent.Width == 0 || extent.Height == 0 {
		return
	}

	base := uint64(handle) * 10
	images := []gpu.Image{gpu.Image(base), gpu.Image(base + 1)}
	buffers := []gpu.CommandBuffer{gpu.CommandBuffer(base + 4), gpu.CommandBuffer(base + 5)}

	f.driver.EXPECT().CreateSwapchain(gomock.Any()).DoAndReturn(func(o gpu.SwapchainCreateInfo) (gpu.Swapchain, common.VkResult, error) {
		require.Equal(f.t, extent, o.ImageExtent)
		require.Equal(f.t, core1_0.SharingModeExclusive, o.ImageSharingMode)
		f.log("create swapchain")
		return handle, core1_0.VKSuccess, nil
	})
	f.driver.EXPECT().SwapchainImages(handle).Return(images, core1_0.VKSuccess, nil)

	nextView := gpu.ImageView(base + 2)
	f.driver.EXPECT().CreateImageView(gomock.Any()).DoAndReturn(func(o gpu.ImageViewCreateInfo) (gpu.ImageView, common.VkResult, error) {
		view := nextView
		nextView++
		return view, core1_0.VKSuccess, nil
	}).Times(2)

	f.driver.EXPECT().AllocateCommandBuffers(imagePool, core1_0.CommandBufferLevelPrimary, 2).Return(buffers, core1_0.VKSuccess, nil)
	for _, buffer := range buffers {
		f.driver.EXPECT().BeginCommandBuffer(buffer, core1_0.CommandBufferUsageSimultaneousUse).Return(core1_0.VKSuccess, nil)
		f.driver.EXPECT().EndCommandBuffer(buffer).Return(core1_0.VKSuccess, nil)
	}
}

// expectRelease expects the swapchain built by expectSwapchain to be torn down
func (f *fixture) expectRelease(handle gpu.Swapchain) {
	base := uint64(handle) * 10

	f.driver.EXPECT().FreeCommandBuffers(imagePool, []gpu.CommandBuffer{gpu.CommandBuffer(base + 4), gpu.CommandBuffer(base + 5)}).Do(func(gpu.CommandPool, []gpu.CommandBuffer) {
		f.log("free command buffers")
	})
	f.driver.EXPECT().DestroyImageView(gpu.ImageView(base + 2)).Do(func(gpu.ImageView) { f.log("destroy view") })
	f.driver.EXPECT().DestroyImageView(gpu.ImageView(base + 3)).Do(func(gpu.ImageView) { f.log("destroy view") })
	f.driver.EXPECT().DestroySwapchain(handle).Do(func(gpu.Swapchain) { f.log("destroy swapchain") })
}

type depthViewMatcher struct {
	image gpu.Image
}

func (m depthViewMatcher) Matches(x any) bool {
	o, ok := x.(gpu.ImageViewCreateInfo)
	return ok && o.Image == m.image && o.SubresourceRange.AspectMask == core1_0.ImageAspectDepth
}

func (m depthViewMatcher) String() string {
	return "is a depth view"
}

// expectDepth expects a depth buffer to be created at extent for the swapchain built by
// expectSwapchain
func (f *fixture) expectDepth(handle gpu.Swapchain, extent core1_0.Extent2D) {
	base := uint64(handle) * 10
	image := gpu.Image(base + 6)
	memory := gpu.DeviceMemory(base + 8)

	f.driver.EXPECT().FormatProperties(core1_0.FormatD32SignedFloat).Return(&core1_0.FormatProperties{
		OptimalTilingFeatures: core1_0.FormatFeatureDepthStencilAttachment,
	})
	f.driver.EXPECT().CreateImage(gomock.Any()).DoAndReturn(func(o core1_0.ImageCreateInfo) (gpu.Image, common.VkResult, error) {
		require.Equal(f.t, core1_0.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1}, o.Extent)
		require.Equal(f.t, core1_0.ImageUsageDepthStencilAttachment, o.Usage)
		f.log("create depth image")
		return image, core1_0.VKSuccess, nil
	})
	f.driver.EXPECT().ImageMemoryRequirements(image).Return(&core1_0.MemoryRequirements{
		Size:           4096,
		Alignment:      256,
		MemoryTypeBits: 0xffffffff,
	})
	f.driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{AllocationSize: 4096, MemoryTypeIndex: 0}).Return(memory, core1_0.VKSuccess, nil)
	f.driver.EXPECT().BindImageMemory(image, memory, 0).Return(core1_0.VKSuccess, nil)
	f.driver.EXPECT().CreateImageView(depthViewMatcher{image: image}).Return(gpu.ImageView(base+7), core1_0.VKSuccess, nil)
	f.driver.EXPECT().SetObjectName(core1_0.ObjectTypeImage, uint64(image), "depth buffer").Return(core1_0.VKSuccess, nil)
	f.driver.EXPECT().SetObjectName(core1_0.ObjectTypeImageView, base+7, "depth buffer").Return(core1_0.VKSuccess, nil)
}

// expectDepthRelease expects the depth buffer built by expectDepth to be destroyed and its memory
// freed
func (f *fixture) expectDepthRelease(handle gpu.Swapchain) {
	base := uint64(handle) * 10

	gomock.InOrder(
		f.driver.EXPECT().DestroyImageView(gpu.ImageView(base+7)).Do(func(gpu.ImageView) { f.log("destroy depth view") }),
		f.driver.EXPECT().DestroyImage(gpu.Image(base+6)).Do(func(gpu.Image) { f.log("destroy depth image") }),
		f.driver.EXPECT().FreeMemory(gpu.DeviceMemory(base+8)).Do(func(gpu.DeviceMemory) { f.log("free depth memory") }),
	)
}

func (f *fixture) expectTeardown() {
	f.driver.EXPECT().DestroySemaphore(gpu.Semaphore(2)).Do(func(gpu.Semaphore) { f.log("destroy rendering finished") })
	f.driver.EXPECT().DestroySemaphore(gpu.Semaphore(1)).Do(func(gpu.Semaphore) { f.log("destroy image acquired") })
	f.driver.EXPECT().DestroyCommandPool(imagePool).Do(func(gpu.CommandPool) { f.log("destroy image pool") })
	f.driver.EXPECT().DestroyCommandPool(uploadPool).Do(func(gpu.CommandPool) { f.log("destroy upload pool") })
	f.driver.EXPECT().DestroySurface(testSurface).Do(func(gpu.Surface) { f.log("destroy surface") })
	f.driver.EXPECT().DestroyDevice().Do(func() { f.log("destroy device") })
	f.driver.EXPECT().DestroyInstance().Do(func() { f.log("destroy instance") })
}

func (f *fixture) expectWaitIdle() *gomock.Call {
	return f.driver.EXPECT().DeviceWaitIdle().DoAndReturn(func() (common.VkResult, error) {
		f.log("wait idle")
		return core1_0.VKSuccess, nil
	})
}

func (f *fixture) init() *Context {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	recorded := 0
	options := f.options
	options.Record = func(driver gpu.CommandDriver, buffer gpu.CommandBuffer, target ImageTarget) error {
		require.Equal(f.t, recorded%2, target.Index)
		require.Len(f.t, target.State.Images, 2)
		require.Equal(f.t, core1_0.PipelineStageTransfer, target.WaitStage)
		if f.options.DepthFormat != core1_0.FormatUndefined {
			require.NotNil(f.t, target.Depth)
			require.Equal(f.t, target.State.Extent, target.Depth.Extent())
		} else {
			require.Nil(f.t, target.Depth)
		}
		recorded++
		return nil
	}
	c, err := Init(logger, f.boot(), options)
	require.NoError(f.t, err)
	return c
}

func TestContext_ShutdownOrder(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	require.NotNil(t, c.Swapchain())
	require.Equal(t, 2, c.Swapchain().ImageCount())

	first := &recordingHook{name: "first", fixture: f}
	second := &recordingHook{name: "second", fixture: f}
	require.NoError(t, c.RegisterResolutionDependent(first))
	require.NoError(t, c.RegisterResolutionDependent(second))

	f.events = nil
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectTeardown()

	require.NoError(t, c.Shutdown())
	require.Equal(t, []string{
		"wait idle",
		"release second",
		"release first",
		"free command buffers",
		"destroy view",
		"destroy view",
		"destroy swapchain",
		"destroy rendering finished",
		"destroy image acquired",
		"destroy image pool",
		"destroy upload pool",
		"destroy surface",
		"destroy device",
		"destroy instance",
	}, f.events)

	// A second shutdown does nothing
	require.NoError(t, c.Shutdown())
	require.Error(t, c.RunFrame())
}

func TestContext_DepthBufferFollowsSwapchain(t *testing.T) {
	f := newFixture(t)
	f.options.DepthFormat = core1_0.FormatD32SignedFloat
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	f.expectDepth(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	require.NotNil(t, c.DepthBuffer())
	require.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, c.DepthBuffer().Extent())

	hook := &recordingHook{name: "hook", fixture: f}
	require.NoError(t, c.RegisterResolutionDependent(hook))

	c.NotifyResize(1024, 768)
	f.events = nil
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectDepthRelease(gpu.Swapchain(3))
	f.expectSwapchain(gpu.Swapchain(4), core1_0.Extent2D{Width: 1024, Height: 768})
	f.expectDepth(gpu.Swapchain(4), core1_0.Extent2D{Width: 1024, Height: 768})
	f.driver.EXPECT().AcquireNextImage(gpu.Swapchain(4), gomock.Any(), gpu.Semaphore(1), gpu.Fence(0)).Return(0, core1_0.VKSuccess, nil)
	f.driver.EXPECT().QueueSubmit(testGraphicsQueue, gomock.Any(), gpu.Fence(0)).Return(core1_0.VKSuccess, nil)
	f.driver.EXPECT().QueuePresent(testPresentQueue, gomock.Any()).Return(core1_0.VKSuccess, nil)

	require.NoError(t, c.RunFrame())
	require.Equal(t, []string{
		"wait idle",
		"release hook",
		"free command buffers",
		"destroy depth view",
		"destroy depth image",
		"free depth memory",
		"destroy view",
		"destroy view",
		"destroy swapchain",
		"create swapchain",
		"create depth image",
		"restore hook",
	}, f.events)
	require.Equal(t, core1_0.Extent2D{Width: 1024, Height: 768}, c.DepthBuffer().Extent())

	f.events = nil
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(4))
	f.expectDepthRelease(gpu.Swapchain(4))
	f.expectTeardown()

	require.NoError(t, c.Shutdown())
	require.Equal(t, []string{
		"wait idle",
		"release hook",
		"free command buffers",
		"destroy depth view",
		"destroy depth image",
		"free depth memory",
		"destroy view",
		"destroy view",
		"destroy swapchain",
		"destroy rendering finished",
		"destroy image acquired",
		"destroy image pool",
		"destroy upload pool",
		"destroy surface",
		"destroy device",
		"destroy instance",
	}, f.events)
	require.Nil(t, c.DepthBuffer())
}

func TestContext_LateHookRestoreFailureDropsHook(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	broken := &recordingHook{name: "broken", fixture: f, fail: errors.New("out of descriptors")}
	require.ErrorContains(t, c.RegisterResolutionDependent(broken), "out of descriptors")

	// Later hooks still restore against the live swapchain
	working := &recordingHook{name: "working", fixture: f}
	require.NoError(t, c.RegisterResolutionDependent(working))
	require.Len(t, working.restored, 1)

	f.events = nil
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectTeardown()

	require.NoError(t, c.Shutdown())
	require.Equal(t, []string{
		"wait idle",
		"release working",
		"free command buffers",
		"destroy view",
		"destroy view",
		"destroy swapchain",
		"destroy rendering finished",
		"destroy image acquired",
		"destroy image pool",
		"destroy upload pool",
		"destroy surface",
		"destroy device",
		"destroy instance",
	}, f.events)
}

func TestContext_ResizeRecreatesSwapchain(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	hook := &recordingHook{name: "hook", fixture: f}
	require.NoError(t, c.RegisterResolutionDependent(hook))

	f.events = nil
	c.NotifyResize(1024, 768)

	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectSwapchain(gpu.Swapchain(4), core1_0.Extent2D{Width: 1024, Height: 768})

	gomock.InOrder(
		f.driver.EXPECT().AcquireNextImage(gpu.Swapchain(4), common.NoTimeout, gpu.Semaphore(1), gpu.Fence(0)).Return(1, core1_0.VKSuccess, nil),
		f.driver.EXPECT().QueueSubmit(testGraphicsQueue, gomock.Any(), gpu.Fence(0)).DoAndReturn(func(queue gpu.Queue, submits []gpu.SubmitInfo, fence gpu.Fence) (common.VkResult, error) {
			require.Equal(t, []gpu.CommandBuffer{45}, submits[0].CommandBuffers)
			return core1_0.VKSuccess, nil
		}),
		f.driver.EXPECT().QueuePresent(testPresentQueue, gomock.Any()).Return(core1_0.VKSuccess, nil),
	)

	require.NoError(t, c.RunFrame())
	require.Equal(t, []string{
		"wait idle",
		"release hook",
		"free command buffers",
		"destroy view",
		"destroy view",
		"destroy swapchain",
		"create swapchain",
		"restore hook",
	}, f.events)
	require.Len(t, hook.restored, 2)
	require.Equal(t, core1_0.Extent2D{Width: 1024, Height: 768}, hook.restored[1].Extent)
	require.Equal(t, 1, c.Controller().RebuildCount())
	require.Equal(t, 1, c.Controller().FrameCount())
}

func TestContext_MinimizedWindowSkipsFrames(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	hook := &recordingHook{name: "hook", fixture: f}
	require.NoError(t, c.RegisterResolutionDependent(hook))

	c.NotifyResize(0, 0)
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectSwapchain(0, core1_0.Extent2D{})

	// The pending resize rebuild finds no drawable area
	require.NoError(t, c.RunFrame())
	require.Nil(t, c.Swapchain())

	// Still minimized: the next frame retries without a live swapchain to release
	f.expectWaitIdle()
	f.expectSwapchain(0, core1_0.Extent2D{})
	require.NoError(t, c.RunFrame())

	c.NotifyResize(640, 480)
	f.expectWaitIdle()
	f.expectSwapchain(gpu.Swapchain(5), core1_0.Extent2D{Width: 640, Height: 480})
	f.driver.EXPECT().AcquireNextImage(gpu.Swapchain(5), gomock.Any(), gpu.Semaphore(1), gpu.Fence(0)).Return(0, core1_0.VKSuccess, nil)
	f.driver.EXPECT().QueueSubmit(testGraphicsQueue, gomock.Any(), gpu.Fence(0)).Return(core1_0.VKSuccess, nil)
	f.driver.EXPECT().QueuePresent(testPresentQueue, gomock.Any()).Return(core1_0.VKSuccess, nil)

	require.NoError(t, c.RunFrame())
	require.Equal(t, gpu.Swapchain(5), c.Swapchain().Handle)
	require.Len(t, hook.restored, 2)
	require.Equal(t, 1, c.Controller().FrameCount())
}

func TestContext_RunStopsWhenPollReturnsFalse(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	f.driver.EXPECT().AcquireNextImage(gpu.Swapchain(3), gomock.Any(), gpu.Semaphore(1), gpu.Fence(0)).Return(0, core1_0.VKSuccess, nil).Times(3)
	f.driver.EXPECT().QueueSubmit(testGraphicsQueue, gomock.Any(), gpu.Fence(0)).Return(core1_0.VKSuccess, nil).Times(3)
	f.driver.EXPECT().QueuePresent(testPresentQueue, gomock.Any()).Return(core1_0.VKSuccess, nil).Times(3)

	polls := 0
	err := c.Run(context.Background(), func() bool {
		polls++
		return polls <= 3
	})
	require.NoError(t, err)
	require.Equal(t, 3, c.Controller().FrameCount())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, c.Run(ctx, func() bool {
		t.Fatal("poll must not run after cancellation")
		return false
	}))
}

func TestContext_RunSleepsWhileMinimized(t *testing.T) {
	f := newFixture(t)
	f.options.IdleDelay = 20 * time.Millisecond
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	c.NotifyResize(0, 0)
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectSwapchain(0, core1_0.Extent2D{})
	f.expectWaitIdle()
	f.expectSwapchain(0, core1_0.Extent2D{})

	polls := 0
	start := time.Now()
	err := c.Run(context.Background(), func() bool {
		polls++
		return polls <= 2
	})
	require.NoError(t, err)
	require.Equal(t, 3, polls)
	require.GreaterOrEqual(t, time.Since(start), 2*f.options.IdleDelay)
	require.Zero(t, c.Controller().FrameCount())
}

func TestContext_RunStopsSleepingWhenCancelled(t *testing.T) {
	f := newFixture(t)
	f.options.IdleDelay = time.Hour
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	c.NotifyResize(0, 0)
	f.expectWaitIdle()
	f.expectRelease(gpu.Swapchain(3))
	f.expectSwapchain(0, core1_0.Extent2D{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	polls := 0
	err := c.Run(ctx, func() bool {
		polls++
		cancel()
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 1, polls)
}

func TestContext_RunReturnsFatalErrors(t *testing.T) {
	f := newFixture(t)
	f.expectCore()
	f.expectSwapchain(gpu.Swapchain(3), core1_0.Extent2D{Width: 800, Height: 600})
	c := f.init()

	f.driver.EXPECT().AcquireNextImage(gpu.Swapchain(3), gomock.Any(), gpu.Semaphore(1), gpu.Fence(0)).
		Return(0, core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError())

	err := c.Run(context.Background(), func() bool { return true })
	require.Equal(t, core1_0.VKErrorDeviceLost, gpu.ResultOf(err))
}

func TestInit_FailureTearsDownWhatWasCreated(t *testing.T) {
	f := newFixture(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	f.driver.EXPECT().MemoryProperties().Return(&core1_0.PhysicalDeviceMemoryProperties{
		MemoryTypes: []core1_0.MemoryType{{PropertyFlags: core1_0.MemoryPropertyDeviceLocal}},
	})
	gomock.InOrder(
		f.driver.EXPECT().CreateCommandPool(0, core1_0.CommandPoolCreateTransient).Return(uploadPool, core1_0.VKSuccess, nil),
		f.driver.EXPECT().CreateCommandPool(0, core1_0.CommandPoolCreateFlags(0)).
			Return(gpu.CommandPool(0), core1_0.VKErrorOutOfHostMemory, core1_0.VKErrorOutOfHostMemory.ToError()),
		f.driver.EXPECT().DeviceWaitIdle().Return(core1_0.VKSuccess, nil),
		f.driver.EXPECT().DestroyCommandPool(uploadPool),
		f.driver.EXPECT().DestroySurface(testSurface),
		f.driver.EXPECT().DestroyDevice(),
		f.driver.EXPECT().DestroyInstance(),
	)

	_, err := Init(logger, f.boot(), Options{})
	require.Equal(t, core1_0.VKErrorOutOfHostMemory, gpu.ResultOf(err))
}

func TestInit_RequiresDriver(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, err := Init(logger, Bootstrap{}, Options{})
	require.Error(t, err)
}

func TestClearRecorder(t *testing.T) {
	testCases := []struct {
		name      string
		waitStage core1_0.PipelineStageFlags
		srcStage  core1_0.PipelineStageFlags
	}{
		{name: "default wait stage", srcStage: core1_0.PipelineStageTransfer},
		{name: "transfer", waitStage: core1_0.PipelineStageTransfer, srcStage: core1_0.PipelineStageTransfer},
		{name: "color attachment output", waitStage: core1_0.PipelineStageColorAttachmentOutput, srcStage: core1_0.PipelineStageColorAttachmentOutput},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			driver := mocks.NewMockDriver(ctrl)

			state := &swapchain.State{Images: []gpu.Image{10, 11}}
			color := [4]float32{0.1, 0.2, 0.3, 1}

			gomock.InOrder(
				driver.EXPECT().CmdPipelineBarrier(gpu.CommandBuffer(4), testCase.srcStage, core1_0.PipelineStageTransfer, gomock.Any()).
					Do(func(_ gpu.CommandBuffer, _, _ core1_0.PipelineStageFlags, barriers []gpu.ImageMemoryBarrier) {
						require.Len(t, barriers, 1)
						require.Equal(t, gpu.Image(11), barriers[0].Image)
						require.Equal(t, core1_0.ImageLayoutUndefined, barriers[0].OldLayout)
						require.Equal(t, core1_0.ImageLayoutTransferDstOptimal, barriers[0].NewLayout)
						require.Equal(t, core1_0.AccessTransferWrite, barriers[0].DstAccessMask)
					}),
				driver.EXPECT().CmdClearColorImage(gpu.CommandBuffer(4), gpu.Image(11), core1_0.ImageLayoutTransferDstOptimal, color, gomock.Any()),
				driver.EXPECT().CmdPipelineBarrier(gpu.CommandBuffer(4), core1_0.PipelineStageTransfer, core1_0.PipelineStageBottomOfPipe, gomock.Any()).
					Do(func(_ gpu.CommandBuffer, _, _ core1_0.PipelineStageFlags, barriers []gpu.ImageMemoryBarrier) {
						require.Equal(t, khr_swapchain.ImageLayoutPresentSrc, barriers[0].NewLayout)
						require.Equal(t, core1_0.AccessTransferWrite, barriers[0].SrcAccessMask)
						require.Equal(t, core1_0.AccessMemoryRead, barriers[0].DstAccessMask)
					}),
			)

			target := ImageTarget{Index: 1, State: state, WaitStage: testCase.waitStage}
			require.NoError(t, ClearRecorder(color)(driver, gpu.CommandBuffer(4), target))
		})
	}
}

func TestExitCode(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	require.Equal(t, ExitOK, ExitCode(logger, nil))
	require.Equal(t, ExitFatal, ExitCode(logger, errors.New("window closed unexpectedly")))
	require.Equal(t, ExitFatal, ExitCode(logger, gpu.NewError("QueueSubmit", core1_0.VKErrorDeviceLost, nil)))
}
