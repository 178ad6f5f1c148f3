package gpu

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
)

// ImageViewCreateInfo mirrors core1_0.ImageViewCreateInfo with the image referenced by handle
type ImageViewCreateInfo struct {
	Image            Image
	ViewType         core1_0.ImageViewType
	Format           core1_0.Format
	Components       core1_0.ComponentMapping
	SubresourceRange core1_0.ImageSubresourceRange
}

// ImageMemoryBarrier mirrors core1_0.ImageMemoryBarrier with the image referenced by handle
type ImageMemoryBarrier struct {
	SrcAccessMask       core1_0.AccessFlags
	DstAccessMask       core1_0.AccessFlags
	OldLayout           core1_0.ImageLayout
	NewLayout           core1_0.ImageLayout
	SrcQueueFamilyIndex int
	DstQueueFamilyIndex int
	Image               Image
	SubresourceRange    core1_0.ImageSubresourceRange
}

// SubmitInfo describes a single batch passed to Driver.QueueSubmit
type SubmitInfo struct {
	WaitSemaphores   []Semaphore
	WaitDstStageMask []core1_0.PipelineStageFlags
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
}

// PresentInfo describes a present request for a single swapchain
type PresentInfo struct {
	WaitSemaphores []Semaphore
	Swapchain      Swapchain
	ImageIndex     int
}

// SwapchainCreateInfo mirrors khr_swapchain.SwapchainCreateInfo with objects referenced by handle
type SwapchainCreateInfo struct {
	Surface            Surface
	MinImageCount      int
	ImageFormat        core1_0.Format
	ImageColorSpace    khr_surface.ColorSpace
	ImageExtent        core1_0.Extent2D
	ImageArrayLayers   int
	ImageUsage         core1_0.ImageUsageFlags
	ImageSharingMode   core1_0.SharingMode
	QueueFamilyIndices []int
	PreTransform       khr_surface.SurfaceTransformFlags
	CompositeAlpha     khr_surface.CompositeAlphaFlags
	PresentMode        khr_surface.PresentMode
	Clipped            bool
	OldSwapchain       Swapchain
}

// ColorSubresourceRange covers the first mip level and array layer of a color image
var ColorSubresourceRange = core1_0.ImageSubresourceRange{
	AspectMask:     core1_0.ImageAspectColor,
	BaseMipLevel:   0,
	LevelCount:     1,
	BaseArrayLayer: 0,
	LayerCount:     1,
}
