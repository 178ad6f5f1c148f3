package gpu

import (
	"time"
	"unsafe"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
)

//go:generate mockgen -destination ./mocks/mock_driver.go -package mocks github.com/vkngwrapper/frameshell/gpu Driver

// MemoryDriver is the subset of the driver used by memory.Allocator
type MemoryDriver interface {
	MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties
	ImageMemoryRequirements(image Image) *core1_0.MemoryRequirements
	BufferMemoryRequirements(buffer Buffer) *core1_0.MemoryRequirements

	AllocateMemory(o core1_0.MemoryAllocateInfo) (DeviceMemory, common.VkResult, error)
	FreeMemory(memory DeviceMemory)
	MapMemory(memory DeviceMemory, offset int, size int) (unsafe.Pointer, common.VkResult, error)
	UnmapMemory(memory DeviceMemory)
}

// ResourceDriver is the subset of the driver used by resource.Factory
type ResourceDriver interface {
	MemoryDriver

	CreateImage(o core1_0.ImageCreateInfo) (Image, common.VkResult, error)
	DestroyImage(image Image)
	BindImageMemory(image Image, memory DeviceMemory, offset int) (common.VkResult, error)
	ImageSubresourceLayout(image Image, subresource core1_0.ImageSubresource) *core1_0.SubresourceLayout

	CreateImageView(o ImageViewCreateInfo) (ImageView, common.VkResult, error)
	DestroyImageView(view ImageView)

	CreateBuffer(o core1_0.BufferCreateInfo) (Buffer, common.VkResult, error)
	DestroyBuffer(buffer Buffer)
	BindBufferMemory(buffer Buffer, memory DeviceMemory, offset int) (common.VkResult, error)

	FormatProperties(format core1_0.Format) *core1_0.FormatProperties

	// SetObjectName attaches a debug name to the object behind handle. objectType selects which
	// kind of handle it is. Drivers without debug utils accept the call and do nothing.
	SetObjectName(objectType core1_0.ObjectType, handle uint64, name string) (common.VkResult, error)
}

// CommandDriver is the subset of the driver used to record and submit command buffers
type CommandDriver interface {
	CreateCommandPool(queueFamilyIndex int, flags core1_0.CommandPoolCreateFlags) (CommandPool, common.VkResult, error)
	DestroyCommandPool(pool CommandPool)
	AllocateCommandBuffers(pool CommandPool, level core1_0.CommandBufferLevel, count int) ([]CommandBuffer, common.VkResult, error)
	FreeCommandBuffers(pool CommandPool, buffers []CommandBuffer)

	BeginCommandBuffer(buffer CommandBuffer, flags core1_0.CommandBufferUsageFlags) (common.VkResult, error)
	EndCommandBuffer(buffer CommandBuffer) (common.VkResult, error)

	CmdPipelineBarrier(buffer CommandBuffer, srcStageMask, dstStageMask core1_0.PipelineStageFlags, barriers []ImageMemoryBarrier)
	CmdCopyImage(buffer CommandBuffer, src Image, srcLayout core1_0.ImageLayout, dst Image, dstLayout core1_0.ImageLayout, regions []core1_0.ImageCopy)
	CmdCopyBuffer(buffer CommandBuffer, src Buffer, dst Buffer, regions []core1_0.BufferCopy)
	CmdBlitImage(buffer CommandBuffer, src Image, srcLayout core1_0.ImageLayout, dst Image, dstLayout core1_0.ImageLayout, regions []core1_0.ImageBlit, filter core1_0.Filter)
	CmdClearColorImage(buffer CommandBuffer, image Image, layout core1_0.ImageLayout, color [4]float32, ranges []core1_0.ImageSubresourceRange)

	QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) (common.VkResult, error)
	QueueWaitIdle(queue Queue) (common.VkResult, error)
}

// SwapchainDriver is the subset of the driver used by swapchain.Manager
type SwapchainDriver interface {
	SurfaceCapabilities(surface Surface) (*khr_surface.SurfaceCapabilities, common.VkResult, error)
	SurfaceFormats(surface Surface) ([]khr_surface.SurfaceFormat, common.VkResult, error)
	SurfacePresentModes(surface Surface) ([]khr_surface.PresentMode, common.VkResult, error)

	CreateSwapchain(o SwapchainCreateInfo) (Swapchain, common.VkResult, error)
	DestroySwapchain(swapchain Swapchain)
	SwapchainImages(swapchain Swapchain) ([]Image, common.VkResult, error)

	CreateImageView(o ImageViewCreateInfo) (ImageView, common.VkResult, error)
	DestroyImageView(view ImageView)
}

// SyncDriver creates and waits on synchronization primitives
type SyncDriver interface {
	CreateSemaphore() (Semaphore, common.VkResult, error)
	DestroySemaphore(semaphore Semaphore)
	CreateFence(signaled bool) (Fence, common.VkResult, error)
	DestroyFence(fence Fence)
	WaitForFences(fences []Fence, timeout time.Duration) (common.VkResult, error)
	ResetFences(fences []Fence) (common.VkResult, error)
}

// PresentDriver is the subset of the driver used by frame.Controller
type PresentDriver interface {
	SyncDriver

	AcquireNextImage(swapchain Swapchain, timeout time.Duration, semaphore Semaphore, fence Fence) (int, common.VkResult, error)
	QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) (common.VkResult, error)
	QueuePresent(queue Queue, o PresentInfo) (common.VkResult, error)
}

// LifecycleDriver tears down the objects handed over by bootstrap
type LifecycleDriver interface {
	DeviceWaitIdle() (common.VkResult, error)
	DestroySurface(surface Surface)
	DestroyDevice()
	DestroyInstance()
}

// Driver is the full set of GPU entry points the shell consumes
type Driver interface {
	ResourceDriver
	CommandDriver
	SwapchainDriver
	PresentDriver
	LifecycleDriver
}
