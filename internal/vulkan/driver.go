package vulkan

import (
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/frameshell/gpu"
	"golang.org/x/exp/slog"
)

// Driver implements gpu.Driver on top of vkngwrapper. Every object it creates is stored in a
// handle table and referred to by an opaque handle; the vkngwrapper objects never leave this
// package.
type Driver struct {
	logger *slog.Logger

	instance       core1_0.Instance
	messenger      ext_debug_utils.DebugUtilsMessenger
	debugUtils     ext_debug_utils.Extension
	physicalDevice core1_0.PhysicalDevice
	device         core1_0.Device
	swapchainExt   khr_swapchain.Extension

	memoryProperties *core1_0.PhysicalDeviceMemoryProperties

	images         *handleTable[gpu.Image, core1_0.Image]
	imageViews     *handleTable[gpu.ImageView, core1_0.ImageView]
	buffers        *handleTable[gpu.Buffer, core1_0.Buffer]
	memories       *handleTable[gpu.DeviceMemory, core1_0.DeviceMemory]
	commandPools   *handleTable[gpu.CommandPool, core1_0.CommandPool]
	commandBuffers *handleTable[gpu.CommandBuffer, core1_0.CommandBuffer]
	queues         *handleTable[gpu.Queue, core1_0.Queue]
	semaphores     *handleTable[gpu.Semaphore, core1_0.Semaphore]
	fences         *handleTable[gpu.Fence, core1_0.Fence]
	surfaces       *handleTable[gpu.Surface, khr_surface.Surface]
	swapchains     *handleTable[gpu.Swapchain, khr_swapchain.Swapchain]

	swapchainImages *imageLists
}

var _ gpu.Driver = &Driver{}

// NewDriver wraps an instance, physical device and device. The driver takes ownership of all of
// them, as well as of messenger, which may be nil.
func NewDriver(logger *slog.Logger, instance core1_0.Instance, messenger ext_debug_utils.DebugUtilsMessenger, physicalDevice core1_0.PhysicalDevice, device core1_0.Device, options DriverOptions) (*Driver, error) {
	if logger == nil {
		return nil, errors.New("attempted to create a driver with a nil logger")
	}
	if instance == nil || physicalDevice == nil || device == nil {
		return nil, errors.New("attempted to create a driver without an instance, physical device and device")
	}

	useMutex := options.Flags&DriverExternallySynchronized == 0

	var debugUtils ext_debug_utils.Extension
	if messenger != nil {
		debugUtils = ext_debug_utils.CreateExtensionFromInstance(instance)
	}

	return &Driver{
		logger:         logger,
		instance:       instance,
		messenger:      messenger,
		debugUtils:     debugUtils,
		physicalDevice: physicalDevice,
		device:         device,
		swapchainExt:   khr_swapchain.CreateExtensionFromDevice(device),

		memoryProperties: physicalDevice.MemoryProperties(),

		images:         newHandleTable[gpu.Image, core1_0.Image]("image", useMutex),
		imageViews:     newHandleTable[gpu.ImageView, core1_0.ImageView]("image view", useMutex),
		buffers:        newHandleTable[gpu.Buffer, core1_0.Buffer]("buffer", useMutex),
		memories:       newHandleTable[gpu.DeviceMemory, core1_0.DeviceMemory]("device memory", useMutex),
		commandPools:   newHandleTable[gpu.CommandPool, core1_0.CommandPool]("command pool", useMutex),
		commandBuffers: newHandleTable[gpu.CommandBuffer, core1_0.CommandBuffer]("command buffer", useMutex),
		queues:         newHandleTable[gpu.Queue, core1_0.Queue]("queue", useMutex),
		semaphores:     newHandleTable[gpu.Semaphore, core1_0.Semaphore]("semaphore", useMutex),
		fences:         newHandleTable[gpu.Fence, core1_0.Fence]("fence", useMutex),
		surfaces:       newHandleTable[gpu.Surface, khr_surface.Surface]("surface", useMutex),
		swapchains:     newHandleTable[gpu.Swapchain, khr_swapchain.Swapchain]("swapchain", useMutex),

		swapchainImages: newImageLists(useMutex),
	}, nil
}

// RegisterSurface hands a surface over to the driver
func (d *Driver) RegisterSurface(surface khr_surface.Surface) gpu.Surface {
	return d.surfaces.register(surface)
}

// Queue returns a handle for the first queue of the provided family
func (d *Driver) Queue(queueFamilyIndex int) gpu.Queue {
	return d.queues.register(d.device.GetQueue(queueFamilyIndex, 0))
}

// missing logs a destroy or free call that named a handle the driver does not know
func (d *Driver) missing(op string, err error) {
	d.logger.Warn("driver call named an unknown handle", slog.String("op", op), slog.String("error", err.Error()))
}

func invalidHandle(op string, err error) (common.VkResult, error) {
	return core1_0.VKErrorUnknown, gpu.NewError(op, core1_0.VKErrorUnknown, err)
}

// Memory

func (d *Driver) MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties {
	return d.memoryProperties
}

func (d *Driver) ImageMemoryRequirements(image gpu.Image) *core1_0.MemoryRequirements {
	vkImage, err := d.images.get(image)
	if err != nil {
		d.missing("ImageMemoryRequirements", err)
		return nil
	}
	return vkImage.MemoryRequirements()
}

func (d *Driver) BufferMemoryRequirements(buffer gpu.Buffer) *core1_0.MemoryRequirements {
	vkBuffer, err := d.buffers.get(buffer)
	if err != nil {
		d.missing("BufferMemoryRequirements", err)
		return nil
	}
	return vkBuffer.MemoryRequirements()
}

func (d *Driver) AllocateMemory(o core1_0.MemoryAllocateInfo) (gpu.DeviceMemory, common.VkResult, error) {
	memory, res, err := d.device.AllocateMemory(nil, o)
	if err != nil {
		return 0, res, err
	}
	return d.memories.register(memory), res, nil
}

func (d *Driver) FreeMemory(memory gpu.DeviceMemory) {
	vkMemory, ok := d.memories.remove(memory)
	if !ok {
		d.missing("FreeMemory", errors.Newf("unknown device memory handle %d", memory))
		return
	}
	vkMemory.Free(nil)
}

func (d *Driver) MapMemory(memory gpu.DeviceMemory, offset int, size int) (unsafe.Pointer, common.VkResult, error) {
	vkMemory, err := d.memories.get(memory)
	if err != nil {
		res, err := invalidHandle("MapMemory", err)
		return nil, res, err
	}
	return vkMemory.Map(offset, size, 0)
}

func (d *Driver) UnmapMemory(memory gpu.DeviceMemory) {
	vkMemory, err := d.memories.get(memory)
	if err != nil {
		d.missing("UnmapMemory", err)
		return
	}
	vkMemory.Unmap()
}

// Resources

func (d *Driver) CreateImage(o core1_0.ImageCreateInfo) (gpu.Image, common.VkResult, error) {
	image, res, err := d.device.CreateImage(nil, o)
	if err != nil {
		return 0, res, err
	}
	return d.images.register(image), res, nil
}

func (d *Driver) DestroyImage(image gpu.Image) {
	vkImage, ok := d.images.remove(image)
	if !ok {
		d.missing("DestroyImage", errors.Newf("unknown image handle %d", image))
		return
	}
	vkImage.Destroy(nil)
}

func (d *Driver) BindImageMemory(image gpu.Image, memory gpu.DeviceMemory, offset int) (common.VkResult, error) {
	vkImage, err := d.images.get(image)
	if err != nil {
		return invalidHandle("BindImageMemory", err)
	}
	vkMemory, err := d.memories.get(memory)
	if err != nil {
		return invalidHandle("BindImageMemory", err)
	}
	return vkImage.BindImageMemory(vkMemory, offset)
}

func (d *Driver) ImageSubresourceLayout(image gpu.Image, subresource core1_0.ImageSubresource) *core1_0.SubresourceLayout {
	vkImage, err := d.images.get(image)
	if err != nil {
		d.missing("ImageSubresourceLayout", err)
		return nil
	}
	return vkImage.SubresourceLayout(&subresource)
}

func (d *Driver) CreateImageView(o gpu.ImageViewCreateInfo) (gpu.ImageView, common.VkResult, error) {
	vkImage, err := d.images.get(o.Image)
	if err != nil {
		res, err := invalidHandle("CreateImageView", err)
		return 0, res, err
	}

	view, res, err := d.device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:            vkImage,
		ViewType:         o.ViewType,
		Format:           o.Format,
		Components:       o.Components,
		SubresourceRange: o.SubresourceRange,
	})
	if err != nil {
		return 0, res, err
	}
	return d.imageViews.register(view), res, nil
}

func (d *Driver) DestroyImageView(view gpu.ImageView) {
	vkView, ok := d.imageViews.remove(view)
	if !ok {
		d.missing("DestroyImageView", errors.Newf("unknown image view handle %d", view))
		return
	}
	vkView.Destroy(nil)
}

func (d *Driver) CreateBuffer(o core1_0.BufferCreateInfo) (gpu.Buffer, common.VkResult, error) {
	buffer, res, err := d.device.CreateBuffer(nil, o)
	if err != nil {
		return 0, res, err
	}
	return d.buffers.register(buffer), res, nil
}

func (d *Driver) DestroyBuffer(buffer gpu.Buffer) {
	vkBuffer, ok := d.buffers.remove(buffer)
	if !ok {
		d.missing("DestroyBuffer", errors.Newf("unknown buffer handle %d", buffer))
		return
	}
	vkBuffer.Destroy(nil)
}

func (d *Driver) BindBufferMemory(buffer gpu.Buffer, memory gpu.DeviceMemory, offset int) (common.VkResult, error) {
	vkBuffer, err := d.buffers.get(buffer)
	if err != nil {
		return invalidHandle("BindBufferMemory", err)
	}
	vkMemory, err := d.memories.get(memory)
	if err != nil {
		return invalidHandle("BindBufferMemory", err)
	}
	return vkBuffer.BindBufferMemory(vkMemory, offset)
}

func (d *Driver) FormatProperties(format core1_0.Format) *core1_0.FormatProperties {
	return d.physicalDevice.FormatProperties(format)
}

// SetObjectName names an image, image view, buffer, device memory, command buffer, semaphore or
// fence through debug utils. Without a debug messenger it does nothing.
func (d *Driver) SetObjectName(objectType core1_0.ObjectType, handle uint64, name string) (common.VkResult, error) {
	if d.debugUtils == nil {
		return core1_0.VKSuccess, nil
	}

	vkHandle, err := d.objectHandle(objectType, handle)
	if err != nil {
		return invalidHandle("SetObjectName", err)
	}

	return d.debugUtils.SetDebugUtilsObjectName(d.device, ext_debug_utils.DebugUtilsObjectNameInfo{
		ObjectType:   objectType,
		ObjectHandle: driver.VulkanHandle(vkHandle),
		ObjectName:   name,
	})
}

func (d *Driver) objectHandle(objectType core1_0.ObjectType, handle uint64) (uintptr, error) {
	switch objectType {
	case core1_0.ObjectTypeImage:
		image, err := d.images.get(gpu.Image(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(image.Handle()), nil
	case core1_0.ObjectTypeImageView:
		view, err := d.imageViews.get(gpu.ImageView(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(view.Handle()), nil
	case core1_0.ObjectTypeBuffer:
		buffer, err := d.buffers.get(gpu.Buffer(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(buffer.Handle()), nil
	case core1_0.ObjectTypeDeviceMemory:
		memory, err := d.memories.get(gpu.DeviceMemory(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(memory.Handle()), nil
	case core1_0.ObjectTypeCommandBuffer:
		buffer, err := d.commandBuffers.get(gpu.CommandBuffer(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(buffer.Handle()), nil
	case core1_0.ObjectTypeSemaphore:
		semaphore, err := d.semaphores.get(gpu.Semaphore(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(semaphore.Handle()), nil
	case core1_0.ObjectTypeFence:
		fence, err := d.fences.get(gpu.Fence(handle))
		if err != nil {
			return 0, err
		}
		return rawHandle(fence.Handle()), nil
	}

	return 0, errors.Newf("objects of type %d cannot be named", objectType)
}

// rawHandle reinterprets a vulkan handle as the pointer-sized integer debug utils expects
func rawHandle[T any](handle T) uintptr {
	return *(*uintptr)(unsafe.Pointer(&handle))
}

// Commands

func (d *Driver) CreateCommandPool(queueFamilyIndex int, flags core1_0.CommandPoolCreateFlags) (gpu.CommandPool, common.VkResult, error) {
	pool, res, err := d.device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            flags,
		QueueFamilyIndex: queueFamilyIndex,
	})
	if err != nil {
		return 0, res, err
	}
	return d.commandPools.register(pool), res, nil
}

func (d *Driver) DestroyCommandPool(pool gpu.CommandPool) {
	vkPool, ok := d.commandPools.remove(pool)
	if !ok {
		d.missing("DestroyCommandPool", errors.Newf("unknown command pool handle %d", pool))
		return
	}
	vkPool.Destroy(nil)
}

func (d *Driver) AllocateCommandBuffers(pool gpu.CommandPool, level core1_0.CommandBufferLevel, count int) ([]gpu.CommandBuffer, common.VkResult, error) {
	vkPool, err := d.commandPools.get(pool)
	if err != nil {
		res, err := invalidHandle("AllocateCommandBuffers", err)
		return nil, res, err
	}

	vkBuffers, res, err := d.device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        vkPool,
		Level:              level,
		CommandBufferCount: count,
	})
	if err != nil {
		return nil, res, err
	}

	buffers := make([]gpu.CommandBuffer, 0, len(vkBuffers))
	for _, vkBuffer := range vkBuffers {
		buffers = append(buffers, d.commandBuffers.register(vkBuffer))
	}
	return buffers, res, nil
}

func (d *Driver) FreeCommandBuffers(pool gpu.CommandPool, buffers []gpu.CommandBuffer) {
	vkBuffers := make([]core1_0.CommandBuffer, 0, len(buffers))
	for _, buffer := range buffers {
		vkBuffer, ok := d.commandBuffers.remove(buffer)
		if !ok {
			d.missing("FreeCommandBuffers", errors.Newf("unknown command buffer handle %d", buffer))
			continue
		}
		vkBuffers = append(vkBuffers, vkBuffer)
	}

	if len(vkBuffers) > 0 {
		d.device.FreeCommandBuffers(vkBuffers)
	}
}

func (d *Driver) BeginCommandBuffer(buffer gpu.CommandBuffer, flags core1_0.CommandBufferUsageFlags) (common.VkResult, error) {
	vkBuffer, err := d.commandBuffers.get(buffer)
	if err != nil {
		return invalidHandle("BeginCommandBuffer", err)
	}
	return vkBuffer.Begin(core1_0.CommandBufferBeginInfo{Flags: flags})
}

func (d *Driver) EndCommandBuffer(buffer gpu.CommandBuffer) (common.VkResult, error) {
	vkBuffer, err := d.commandBuffers.get(buffer)
	if err != nil {
		return invalidHandle("EndCommandBuffer", err)
	}
	return vkBuffer.End()
}

// recordingBuffer resolves the buffer a Cmd* call records into. Recording calls have no error
// return, so an unknown handle is logged and the command is dropped.
func (d *Driver) recordingBuffer(op string, buffer gpu.CommandBuffer) (core1_0.CommandBuffer, bool) {
	vkBuffer, err := d.commandBuffers.get(buffer)
	if err != nil {
		d.missing(op, err)
		return nil, false
	}
	return vkBuffer, true
}

func (d *Driver) CmdPipelineBarrier(buffer gpu.CommandBuffer, srcStageMask, dstStageMask core1_0.PipelineStageFlags, barriers []gpu.ImageMemoryBarrier) {
	vkBuffer, ok := d.recordingBuffer("CmdPipelineBarrier", buffer)
	if !ok {
		return
	}

	vkBarriers, err := d.imageBarriers(barriers)
	if err != nil {
		d.missing("CmdPipelineBarrier", err)
		return
	}

	vkBuffer.CmdPipelineBarrier(srcStageMask, dstStageMask, 0, nil, nil, vkBarriers)
}

func (d *Driver) imageBarriers(barriers []gpu.ImageMemoryBarrier) ([]core1_0.ImageMemoryBarrier, error) {
	vkBarriers := make([]core1_0.ImageMemoryBarrier, 0, len(barriers))
	for _, barrier := range barriers {
		vkImage, err := d.images.get(barrier.Image)
		if err != nil {
			return nil, err
		}

		vkBarriers = append(vkBarriers, core1_0.ImageMemoryBarrier{
			SrcAccessMask:       barrier.SrcAccessMask,
			DstAccessMask:       barrier.DstAccessMask,
			OldLayout:           barrier.OldLayout,
			NewLayout:           barrier.NewLayout,
			SrcQueueFamilyIndex: barrier.SrcQueueFamilyIndex,
			DstQueueFamilyIndex: barrier.DstQueueFamilyIndex,
			Image:               vkImage,
			SubresourceRange:    barrier.SubresourceRange,
		})
	}
	return vkBarriers, nil
}

func (d *Driver) CmdCopyImage(buffer gpu.CommandBuffer, src gpu.Image, srcLayout core1_0.ImageLayout, dst gpu.Image, dstLayout core1_0.ImageLayout, regions []core1_0.ImageCopy) {
	vkBuffer, ok := d.recordingBuffer("CmdCopyImage", buffer)
	if !ok {
		return
	}

	vkSrc, err := d.images.get(src)
	if err != nil {
		d.missing("CmdCopyImage", err)
		return
	}
	vkDst, err := d.images.get(dst)
	if err != nil {
		d.missing("CmdCopyImage", err)
		return
	}

	vkBuffer.CmdCopyImage(vkSrc, srcLayout, vkDst, dstLayout, regions)
}

func (d *Driver) CmdCopyBuffer(buffer gpu.CommandBuffer, src gpu.Buffer, dst gpu.Buffer, regions []core1_0.BufferCopy) {
	vkBuffer, ok := d.recordingBuffer("CmdCopyBuffer", buffer)
	if !ok {
		return
	}

	vkSrc, err := d.buffers.get(src)
	if err != nil {
		d.missing("CmdCopyBuffer", err)
		return
	}
	vkDst, err := d.buffers.get(dst)
	if err != nil {
		d.missing("CmdCopyBuffer", err)
		return
	}

	vkBuffer.CmdCopyBuffer(vkSrc, vkDst, regions)
}

func (d *Driver) CmdBlitImage(buffer gpu.CommandBuffer, src gpu.Image, srcLayout core1_0.ImageLayout, dst gpu.Image, dstLayout core1_0.ImageLayout, regions []core1_0.ImageBlit, filter core1_0.Filter) {
	vkBuffer, ok := d.recordingBuffer("CmdBlitImage", buffer)
	if !ok {
		return
	}

	vkSrc, err := d.images.get(src)
	if err != nil {
		d.missing("CmdBlitImage", err)
		return
	}
	vkDst, err := d.images.get(dst)
	if err != nil {
		d.missing("CmdBlitImage", err)
		return
	}

	vkBuffer.CmdBlitImage(vkSrc, srcLayout, vkDst, dstLayout, regions, filter)
}

func (d *Driver) CmdClearColorImage(buffer gpu.CommandBuffer, image gpu.Image, layout core1_0.ImageLayout, color [4]float32, ranges []core1_0.ImageSubresourceRange) {
	vkBuffer, ok := d.recordingBuffer("CmdClearColorImage", buffer)
	if !ok {
		return
	}

	vkImage, err := d.images.get(image)
	if err != nil {
		d.missing("CmdClearColorImage", err)
		return
	}

	vkBuffer.CmdClearColorImage(vkImage, layout, core1_0.ClearValueFloat(color), ranges)
}

func (d *Driver) QueueSubmit(queue gpu.Queue, submits []gpu.SubmitInfo, fence gpu.Fence) (common.VkResult, error) {
	vkQueue, err := d.queues.get(queue)
	if err != nil {
		return invalidHandle("QueueSubmit", err)
	}
	vkFence, err := d.fences.getOptional(fence)
	if err != nil {
		return invalidHandle("QueueSubmit", err)
	}

	vkSubmits := make([]core1_0.SubmitInfo, 0, len(submits))
	for _, submit := range submits {
		vkSubmit, err := d.submitInfo(submit)
		if err != nil {
			return invalidHandle("QueueSubmit", err)
		}
		vkSubmits = append(vkSubmits, vkSubmit)
	}

	return vkQueue.Submit(vkFence, vkSubmits)
}

func (d *Driver) submitInfo(submit gpu.SubmitInfo) (core1_0.SubmitInfo, error) {
	waitSemaphores, err := d.semaphores.getAll(submit.WaitSemaphores)
	if err != nil {
		return core1_0.SubmitInfo{}, err
	}
	commandBuffers, err := d.commandBuffers.getAll(submit.CommandBuffers)
	if err != nil {
		return core1_0.SubmitInfo{}, err
	}
	signalSemaphores, err := d.semaphores.getAll(submit.SignalSemaphores)
	if err != nil {
		return core1_0.SubmitInfo{}, err
	}

	return core1_0.SubmitInfo{
		WaitSemaphores:   waitSemaphores,
		WaitDstStageMask: submit.WaitDstStageMask,
		CommandBuffers:   commandBuffers,
		SignalSemaphores: signalSemaphores,
	}, nil
}

func (d *Driver) QueueWaitIdle(queue gpu.Queue) (common.VkResult, error) {
	vkQueue, err := d.queues.get(queue)
	if err != nil {
		return invalidHandle("QueueWaitIdle", err)
	}
	return vkQueue.WaitIdle()
}

// Swapchains

func (d *Driver) SurfaceCapabilities(surface gpu.Surface) (*khr_surface.SurfaceCapabilities, common.VkResult, error) {
	vkSurface, err := d.surfaces.get(surface)
	if err != nil {
		res, err := invalidHandle("SurfaceCapabilities", err)
		return nil, res, err
	}
	return vkSurface.PhysicalDeviceSurfaceCapabilities(d.physicalDevice)
}

func (d *Driver) SurfaceFormats(surface gpu.Surface) ([]khr_surface.SurfaceFormat, common.VkResult, error) {
	vkSurface, err := d.surfaces.get(surface)
	if err != nil {
		res, err := invalidHandle("SurfaceFormats", err)
		return nil, res, err
	}
	return vkSurface.PhysicalDeviceSurfaceFormats(d.physicalDevice)
}

func (d *Driver) SurfacePresentModes(surface gpu.Surface) ([]khr_surface.PresentMode, common.VkResult, error) {
	vkSurface, err := d.surfaces.get(surface)
	if err != nil {
		res, err := invalidHandle("SurfacePresentModes", err)
		return nil, res, err
	}
	return vkSurface.PhysicalDeviceSurfacePresentModes(d.physicalDevice)
}

func (d *Driver) CreateSwapchain(o gpu.SwapchainCreateInfo) (gpu.Swapchain, common.VkResult, error) {
	vkSurface, err := d.surfaces.get(o.Surface)
	if err != nil {
		res, err := invalidHandle("CreateSwapchain", err)
		return 0, res, err
	}
	oldSwapchain, err := d.swapchains.getOptional(o.OldSwapchain)
	if err != nil {
		res, err := invalidHandle("CreateSwapchain", err)
		return 0, res, err
	}

	swapchain, res, err := d.swapchainExt.CreateSwapchain(d.device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface:            vkSurface,
		MinImageCount:      o.MinImageCount,
		ImageFormat:        o.ImageFormat,
		ImageColorSpace:    o.ImageColorSpace,
		ImageExtent:        o.ImageExtent,
		ImageArrayLayers:   o.ImageArrayLayers,
		ImageUsage:         o.ImageUsage,
		ImageSharingMode:   o.ImageSharingMode,
		QueueFamilyIndices: o.QueueFamilyIndices,
		PreTransform:       o.PreTransform,
		CompositeAlpha:     o.CompositeAlpha,
		PresentMode:        o.PresentMode,
		Clipped:            o.Clipped,
		OldSwapchain:       oldSwapchain,
	})
	if err != nil {
		return 0, res, err
	}
	return d.swapchains.register(swapchain), res, nil
}

func (d *Driver) DestroySwapchain(swapchain gpu.Swapchain) {
	vkSwapchain, ok := d.swapchains.remove(swapchain)
	if !ok {
		d.missing("DestroySwapchain", errors.Newf("unknown swapchain handle %d", swapchain))
		return
	}

	for _, image := range d.swapchainImages.take(swapchain) {
		d.images.remove(image)
	}

	vkSwapchain.Destroy(nil)
}

// SwapchainImages returns handles for the swapchain's presentable images. The handles are
// registered once per swapchain and must not be passed to DestroyImage.
func (d *Driver) SwapchainImages(swapchain gpu.Swapchain) ([]gpu.Image, common.VkResult, error) {
	return d.swapchainImages.getOrLoad(swapchain, func() ([]gpu.Image, common.VkResult, error) {
		vkSwapchain, err := d.swapchains.get(swapchain)
		if err != nil {
			res, err := invalidHandle("SwapchainImages", err)
			return nil, res, err
		}

		vkImages, res, err := vkSwapchain.SwapchainImages()
		if err != nil {
			return nil, res, err
		}

		images := make([]gpu.Image, 0, len(vkImages))
		for _, vkImage := range vkImages {
			images = append(images, d.images.register(vkImage))
		}
		return images, res, nil
	})
}

// Synchronization

func (d *Driver) CreateSemaphore() (gpu.Semaphore, common.VkResult, error) {
	semaphore, res, err := d.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return 0, res, err
	}
	return d.semaphores.register(semaphore), res, nil
}

func (d *Driver) DestroySemaphore(semaphore gpu.Semaphore) {
	vkSemaphore, ok := d.semaphores.remove(semaphore)
	if !ok {
		d.missing("DestroySemaphore", errors.Newf("unknown semaphore handle %d", semaphore))
		return
	}
	vkSemaphore.Destroy(nil)
}

func (d *Driver) CreateFence(signaled bool) (gpu.Fence, common.VkResult, error) {
	var flags core1_0.FenceCreateFlags
	if signaled {
		flags = core1_0.FenceCreateSignaled
	}

	fence, res, err := d.device.CreateFence(nil, core1_0.FenceCreateInfo{Flags: flags})
	if err != nil {
		return 0, res, err
	}
	return d.fences.register(fence), res, nil
}

func (d *Driver) DestroyFence(fence gpu.Fence) {
	vkFence, ok := d.fences.remove(fence)
	if !ok {
		d.missing("DestroyFence", errors.Newf("unknown fence handle %d", fence))
		return
	}
	vkFence.Destroy(nil)
}

func (d *Driver) WaitForFences(fences []gpu.Fence, timeout time.Duration) (common.VkResult, error) {
	vkFences, err := d.fences.getAll(fences)
	if err != nil {
		return invalidHandle("WaitForFences", err)
	}
	return d.device.WaitForFences(true, timeout, vkFences)
}

func (d *Driver) ResetFences(fences []gpu.Fence) (common.VkResult, error) {
	vkFences, err := d.fences.getAll(fences)
	if err != nil {
		return invalidHandle("ResetFences", err)
	}
	return d.device.ResetFences(vkFences)
}

// Presentation

func (d *Driver) AcquireNextImage(swapchain gpu.Swapchain, timeout time.Duration, semaphore gpu.Semaphore, fence gpu.Fence) (int, common.VkResult, error) {
	vkSwapchain, err := d.swapchains.get(swapchain)
	if err != nil {
		res, err := invalidHandle("AcquireNextImage", err)
		return -1, res, err
	}
	vkSemaphore, err := d.semaphores.getOptional(semaphore)
	if err != nil {
		res, err := invalidHandle("AcquireNextImage", err)
		return -1, res, err
	}
	vkFence, err := d.fences.getOptional(fence)
	if err != nil {
		res, err := invalidHandle("AcquireNextImage", err)
		return -1, res, err
	}

	return vkSwapchain.AcquireNextImage(timeout, vkSemaphore, vkFence)
}

func (d *Driver) QueuePresent(queue gpu.Queue, o gpu.PresentInfo) (common.VkResult, error) {
	vkQueue, err := d.queues.get(queue)
	if err != nil {
		return invalidHandle("QueuePresent", err)
	}
	waitSemaphores, err := d.semaphores.getAll(o.WaitSemaphores)
	if err != nil {
		return invalidHandle("QueuePresent", err)
	}
	vkSwapchain, err := d.swapchains.get(o.Swapchain)
	if err != nil {
		return invalidHandle("QueuePresent", err)
	}

	return d.swapchainExt.QueuePresent(vkQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: waitSemaphores,
		Swapchains:     []khr_swapchain.Swapchain{vkSwapchain},
		ImageIndices:   []int{o.ImageIndex},
	})
}

// Lifecycle

func (d *Driver) DeviceWaitIdle() (common.VkResult, error) {
	return d.device.WaitIdle()
}

func (d *Driver) DestroySurface(surface gpu.Surface) {
	vkSurface, ok := d.surfaces.remove(surface)
	if !ok {
		d.missing("DestroySurface", errors.Newf("unknown surface handle %d", surface))
		return
	}
	vkSurface.Destroy(nil)
}

// DestroyDevice destroys the logical device. Every object created through the driver must
// already be destroyed; anything left is reported.
func (d *Driver) DestroyDevice() {
	d.reportLeaks()
	d.device.Destroy(nil)
}

// DestroyInstance destroys the debug messenger, if any, and the instance
func (d *Driver) DestroyInstance() {
	if d.messenger != nil {
		d.messenger.Destroy(nil)
		d.messenger = nil
	}
	d.instance.Destroy(nil)
}

func (d *Driver) reportLeaks() {
	leaks := []slog.Attr{
		slog.Int("images", d.images.count()),
		slog.Int("imageViews", d.imageViews.count()),
		slog.Int("buffers", d.buffers.count()),
		slog.Int("memories", d.memories.count()),
		slog.Int("commandPools", d.commandPools.count()),
		slog.Int("semaphores", d.semaphores.count()),
		slog.Int("fences", d.fences.count()),
		slog.Int("swapchains", d.swapchains.count()),
	}

	for _, leak := range leaks {
		if leak.Value.Int64() > 0 {
			args := make([]any, 0, len(leaks))
			for _, attr := range leaks {
				args = append(args, attr)
			}
			d.logger.Warn("objects outlived the device", args...)
			return
		}
	}
}
