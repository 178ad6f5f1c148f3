package shell

import (
	"time"

	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/frameshell/frame"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/memory"
	"github.com/vkngwrapper/frameshell/resource"
	"github.com/vkngwrapper/frameshell/swapchain"
)

// Bootstrap is everything the platform layer hands over to the shell. The shell takes ownership
// of the surface, the device and the instance behind Driver and destroys them in Shutdown.
type Bootstrap struct {
	Driver gpu.Driver

	Surface        gpu.Surface
	GraphicsQueue  gpu.Queue
	PresentQueue   gpu.Queue
	GraphicsFamily int
	PresentFamily  int

	// Width and Height are the drawable size of the window, used when the surface lets the
	// swapchain pick its extent
	Width  int
	Height int
}

// ImageTarget describes the swapchain image a per-image command buffer is recorded for
type ImageTarget struct {
	Index int
	State *swapchain.State
	// Depth is the shell's depth buffer for the current swapchain, or nil when Options.DepthFormat
	// is undefined
	Depth *resource.Image
	// WaitStage is the stage at which the submission waits for the image to be acquired. The
	// first access to the image must be chained to it.
	WaitStage core1_0.PipelineStageFlags
}

// Image returns the swapchain image handle for the target
func (t ImageTarget) Image() gpu.Image {
	return t.State.Images[t.Index]
}

// ImageRecorder records the command buffer that is submitted whenever target's image is acquired.
// It is called again for every image after each swapchain rebuild.
type ImageRecorder func(driver gpu.CommandDriver, buffer gpu.CommandBuffer, target ImageTarget) error

// Options contains optional settings for a Context
type Options struct {
	// Record fills the per-image command buffers. When nil, frames only clear the swapchain
	// image to black.
	Record ImageRecorder
	// UseFence adds an in-flight fence to the frame cycle so the CPU waits for the previous frame's
	// submission before resubmitting
	UseFence bool
	// DepthFormat selects the format of a depth buffer the shell keeps at the swapchain's extent
	// and rebuilds with it. No depth buffer is created when it is FormatUndefined.
	DepthFormat core1_0.Format
	// IdleDelay is how long Run sleeps after a frame that found no presentable swapchain, such as
	// while the window is minimized. Defaults to 10ms.
	IdleDelay time.Duration

	Allocator memory.CreateOptions
	Swapchain swapchain.Options
	Frame     frame.Options
}

// ClearRecorder returns an ImageRecorder that transitions the swapchain image for transfer, clears
// it to color and transitions it for presentation. The first barrier is chained to the target's
// wait stage.
func ClearRecorder(color [4]float32) ImageRecorder {
	return func(driver gpu.CommandDriver, buffer gpu.CommandBuffer, target ImageTarget) error {
		image := target.Image()

		// The layout transition has to wait for the acquire semaphore, which is only signalled
		// at the submission's wait stage
		srcStage := target.WaitStage
		if srcStage == 0 {
			srcStage = core1_0.PipelineStageTransfer
		}

		driver.CmdPipelineBarrier(buffer, srcStage, core1_0.PipelineStageTransfer, []gpu.ImageMemoryBarrier{
			{
				DstAccessMask:       core1_0.AccessTransferWrite,
				OldLayout:           core1_0.ImageLayoutUndefined,
				NewLayout:           core1_0.ImageLayoutTransferDstOptimal,
				SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
				DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
				Image:               image,
				SubresourceRange:    gpu.ColorSubresourceRange,
			},
		})

		driver.CmdClearColorImage(buffer, image, core1_0.ImageLayoutTransferDstOptimal, color,
			[]core1_0.ImageSubresourceRange{gpu.ColorSubresourceRange})

		driver.CmdPipelineBarrier(buffer, core1_0.PipelineStageTransfer, core1_0.PipelineStageBottomOfPipe, []gpu.ImageMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessTransferWrite,
				DstAccessMask:       core1_0.AccessMemoryRead,
				OldLayout:           core1_0.ImageLayoutTransferDstOptimal,
				NewLayout:           khr_swapchain.ImageLayoutPresentSrc,
				SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
				DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
				Image:               image,
				SubresourceRange:    gpu.ColorSubresourceRange,
			},
		})

		return nil
	}
}
