package resource

import (
	"math/bits"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/command"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/memory"
	"golang.org/x/exp/slog"
)

// Factory creates images and buffers, allocates their memory from an Allocator and binds it.
//
// Every object the factory creates is registered in its arena until the caller releases it with
// DestroyImage or DestroyBuffer. Destroy tears down whatever is still registered. A factory is
// not safe for concurrent use.
type Factory struct {
	logger    *slog.Logger
	driver    gpu.ResourceDriver
	allocator *memory.Allocator

	images  *swiss.Map[gpu.Image, *Image]
	buffers *swiss.Map[gpu.Buffer, *Buffer]
}

func NewFactory(logger *slog.Logger, driver gpu.ResourceDriver, allocator *memory.Allocator) *Factory {
	return &Factory{
		logger:    logger,
		driver:    driver,
		allocator: allocator,

		images:  swiss.NewMap[gpu.Image, *Image](16),
		buffers: swiss.NewMap[gpu.Buffer, *Buffer](16),
	}
}

func validateExtent(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Newf("image extent %dx%d must be positive", width, height)
	}
	return nil
}

// setName attaches a debug name to an object. Naming failures are logged and otherwise ignored.
func (f *Factory) setName(objectType core1_0.ObjectType, handle uint64, name string) {
	if name == "" {
		return
	}

	res, err := f.driver.SetObjectName(objectType, handle, name)
	if err != nil {
		f.logger.Warn("failed to name object",
			slog.String("name", name),
			slog.Any("result", res),
			slog.String("error", err.Error()),
		)
	}
}

func (f *Factory) nameImage(image *Image, name string) {
	image.name = name
	f.setName(core1_0.ObjectTypeImage, uint64(image.handle), name)
	if image.view != 0 {
		f.setName(core1_0.ObjectTypeImageView, uint64(image.view), name)
	}
}

func (f *Factory) nameBuffer(buffer *Buffer, name string) {
	buffer.name = name
	f.setName(core1_0.ObjectTypeBuffer, uint64(buffer.handle), name)
}

func (f *Factory) createImage(width, height, mipLevels int, format core1_0.Format, tiling core1_0.ImageTiling, usage core1_0.ImageUsageFlags, initialLayout core1_0.ImageLayout) (gpu.Image, error) {
	image, res, err := f.driver.CreateImage(core1_0.ImageCreateInfo{
		ImageType: core1_0.ImageType2D,
		Format:    format,
		Extent: core1_0.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		MipLevels:     mipLevels,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        tiling,
		Usage:         usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: initialLayout,
	})
	if err != nil {
		return 0, gpu.Check("CreateImage", res, err)
	}

	return image, nil
}

type chunkSource func(image gpu.Image) (*memory.Chunk, error)

func (f *Factory) bindImage(image gpu.Image, allocate chunkSource) (*memory.Chunk, error) {
	chunk, err := allocate(image)
	if err != nil {
		f.driver.DestroyImage(image)
		return nil, err
	}

	res, err := f.driver.BindImageMemory(image, chunk.Memory(), 0)
	if err != nil {
		f.driver.DestroyImage(image)
		return nil, gpu.Check("BindImageMemory", res, err)
	}

	return chunk, nil
}

func (f *Factory) stagingForImage(image gpu.Image) (*memory.Chunk, error) {
	chunk, _, err := f.allocator.AllocateStagingForImage(image)
	return chunk, err
}

func (f *Factory) deviceLocalForImage(image gpu.Image) (*memory.Chunk, error) {
	chunk, _, err := f.allocator.AllocateDeviceLocalForImage(image)
	return chunk, err
}

// CreateStagingImage creates a linear-tiled transfer source image in staging memory and fills it
// with pixels, which must be tightly packed rows of width*bytesPerPixel bytes. The image is left
// in the preinitialized layout. Its memory is the allocator's staging chunk, so the image must
// be consumed and destroyed before the next staging request.
func (f *Factory) CreateStagingImage(width, height int, format core1_0.Format, pixels []byte, bytesPerPixel int, name string) (*Image, error) {
	f.logger.Debug("Factory::CreateStagingImage", slog.Int("width", width), slog.Int("height", height))

	err := validateExtent(width, height)
	if err != nil {
		return nil, err
	}
	if bytesPerPixel <= 0 {
		return nil, errors.Newf("bytes per pixel must be positive but was %d", bytesPerPixel)
	}

	handle, err := f.createImage(width, height, 1, format, core1_0.ImageTilingLinear, core1_0.ImageUsageTransferSrc, core1_0.ImageLayoutPreInitialized)
	if err != nil {
		return nil, err
	}

	chunk, err := f.bindImage(handle, f.stagingForImage)
	if err != nil {
		return nil, err
	}

	layout := f.driver.ImageSubresourceLayout(handle, core1_0.ImageSubresource{
		AspectMask: core1_0.ImageAspectColor,
		MipLevel:   0,
		ArrayLayer: 0,
	})
	if layout == nil {
		f.driver.DestroyImage(handle)
		return nil, errors.New("driver did not report a subresource layout for the staging image")
	}

	mapped, res, err := f.driver.MapMemory(chunk.Memory(), 0, chunk.Size())
	if err != nil {
		f.driver.DestroyImage(handle)
		return nil, gpu.Check("MapMemory", res, err)
	}

	err = copyRows(mapped, layout, pixels, width, height, bytesPerPixel)
	f.driver.UnmapMemory(chunk.Memory())
	if err != nil {
		f.driver.DestroyImage(handle)
		return nil, err
	}

	image := &Image{
		handle:    handle,
		format:    format,
		width:     width,
		height:    height,
		mipLevels: 1,
		chunk:     chunk,
	}
	f.images.Put(handle, image)
	f.nameImage(image, name)

	return image, nil
}

// CreateDeviceImage creates an optimal-tiled image in device-local memory that can be filled by
// a transfer and sampled. The image starts in the undefined layout and has no view.
func (f *Factory) CreateDeviceImage(width, height int, format core1_0.Format, name string) (*Image, error) {
	f.logger.Debug("Factory::CreateDeviceImage", slog.Int("width", width), slog.Int("height", height))

	image, err := f.createDeviceLocalImage(width, height, 1, format, core1_0.ImageUsageTransferDst|core1_0.ImageUsageSampled)
	if err != nil {
		return nil, err
	}

	f.nameImage(image, name)
	return image, nil
}

// CreateRenderTarget creates a device-local color image that can be rendered to, sampled, used as
// storage and copied from, together with a color view
func (f *Factory) CreateRenderTarget(width, height int, format core1_0.Format, name string) (*Image, error) {
	f.logger.Debug("Factory::CreateRenderTarget", slog.Int("width", width), slog.Int("height", height))

	image, err := f.createDeviceLocalImage(width, height, 1, format,
		core1_0.ImageUsageColorAttachment|core1_0.ImageUsageSampled|core1_0.ImageUsageStorage|core1_0.ImageUsageTransferSrc)
	if err != nil {
		return nil, err
	}

	image.view, err = f.CreateImageView(image.handle, format, core1_0.ImageAspectColor)
	if err != nil {
		f.DestroyImage(image)
		return nil, err
	}

	f.nameImage(image, name)
	return image, nil
}

// DepthAspect returns the aspects a view over a depth or depth/stencil format must cover
func DepthAspect(format core1_0.Format) core1_0.ImageAspectFlags {
	switch format {
	case core1_0.FormatD16UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD32SignedFloatS8UnsignedInt:
		return core1_0.ImageAspectDepth | core1_0.ImageAspectStencil
	}
	return core1_0.ImageAspectDepth
}

// CreateDepthBuffer creates an optimal-tiled depth attachment in device-local memory together with
// a view over its depth aspects. The format must support optimal-tiled depth attachments.
func (f *Factory) CreateDepthBuffer(width, height int, format core1_0.Format, name string) (*Image, error) {
	f.logger.Debug("Factory::CreateDepthBuffer", slog.Int("width", width), slog.Int("height", height))

	props := f.driver.FormatProperties(format)
	if props == nil || props.OptimalTilingFeatures&core1_0.FormatFeatureDepthStencilAttachment == 0 {
		return nil, errors.Newf("format %d cannot be used as an optimal-tiled depth attachment", format)
	}

	image, err := f.createDeviceLocalImage(width, height, 1, format, core1_0.ImageUsageDepthStencilAttachment)
	if err != nil {
		return nil, err
	}

	image.view, err = f.CreateImageView(image.handle, format, DepthAspect(format))
	if err != nil {
		f.DestroyImage(image)
		return nil, err
	}

	f.nameImage(image, name)
	return image, nil
}

func (f *Factory) createDeviceLocalImage(width, height, mipLevels int, format core1_0.Format, usage core1_0.ImageUsageFlags) (*Image, error) {
	err := validateExtent(width, height)
	if err != nil {
		return nil, err
	}

	handle, err := f.createImage(width, height, mipLevels, format, core1_0.ImageTilingOptimal, usage, core1_0.ImageLayoutUndefined)
	if err != nil {
		return nil, err
	}

	chunk, err := f.bindImage(handle, f.deviceLocalForImage)
	if err != nil {
		return nil, err
	}

	image := &Image{
		handle:    handle,
		format:    format,
		width:     width,
		height:    height,
		mipLevels: mipLevels,
		chunk:     chunk,
	}
	f.images.Put(handle, image)

	return image, nil
}

// CreateImageView creates a 2D view over the first mip level and layer of image
func (f *Factory) CreateImageView(image gpu.Image, format core1_0.Format, aspect core1_0.ImageAspectFlags) (gpu.ImageView, error) {
	return f.createView(image, format, aspect, 1)
}

func (f *Factory) createView(image gpu.Image, format core1_0.Format, aspect core1_0.ImageAspectFlags, mipLevels int) (gpu.ImageView, error) {
	f.logger.Debug("Factory::CreateImageView", slog.Int("mipLevels", mipLevels))

	view, res, err := f.driver.CreateImageView(gpu.ImageViewCreateInfo{
		Image:    image,
		ViewType: core1_0.ImageViewType2D,
		Format:   format,
		Components: core1_0.ComponentMapping{
			R: core1_0.ComponentSwizzleIdentity,
			G: core1_0.ComponentSwizzleIdentity,
			B: core1_0.ComponentSwizzleIdentity,
			A: core1_0.ComponentSwizzleIdentity,
		},
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   0,
			LevelCount:     mipLevels,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return 0, gpu.Check("CreateImageView", res, err)
	}

	return view, nil
}

// TextureInfo describes the pixels CreateTexture uploads
type TextureInfo struct {
	Width  int
	Height int
	Format core1_0.Format
	// Pixels holds tightly packed rows of Width*BytesPerPixel bytes
	Pixels        []byte
	BytesPerPixel int
	// GenerateMipmaps fills a full mip chain by repeatedly blitting each level into the next. The
	// format must support linear filtering of optimal-tiled images.
	GenerateMipmaps bool
	Name            string
}

// MipLevels is the length of a full mip chain for an image of the provided extent
func MipLevels(width, height int) int {
	return bits.Len(uint(atLeastOne(width) | atLeastOne(height)))
}

func atLeastOne(value int) int {
	if value < 1 {
		return 1
	}
	return value
}

// CreateTexture uploads pixels into a new device-local image through a staging image and returns
// the device image in the shader-read-only layout with a color view over all its mip levels. The
// upload is recorded and waited on synchronously through runner, after which the staging image is
// destroyed.
func (f *Factory) CreateTexture(runner *command.Runner, pool gpu.CommandPool, queue gpu.Queue, info TextureInfo) (*Image, error) {
	f.logger.Debug("Factory::CreateTexture",
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.Bool("mipmaps", info.GenerateMipmaps),
	)

	mipLevels := 1
	usage := core1_0.ImageUsageTransferDst | core1_0.ImageUsageSampled
	if info.GenerateMipmaps {
		props := f.driver.FormatProperties(info.Format)
		if props == nil || props.OptimalTilingFeatures&core1_0.FormatFeatureSampledImageFilterLinear == 0 {
			return nil, errors.Newf("format %d does not support linear blits for mipmap generation", info.Format)
		}

		mipLevels = MipLevels(info.Width, info.Height)
		usage |= core1_0.ImageUsageTransferSrc
	}

	stagingName := ""
	if info.Name != "" {
		stagingName = info.Name + " staging"
	}
	staging, err := f.CreateStagingImage(info.Width, info.Height, info.Format, info.Pixels, info.BytesPerPixel, stagingName)
	if err != nil {
		return nil, err
	}
	defer f.DestroyImage(staging)

	texture, err := f.createDeviceLocalImage(info.Width, info.Height, mipLevels, info.Format, usage)
	if err != nil {
		return nil, err
	}

	err = runner.Run(pool, queue, func(buffer gpu.CommandBuffer) error {
		recordUpload(runner.Driver(), buffer, staging, texture)
		return nil
	})
	if err != nil {
		f.DestroyImage(texture)
		return nil, err
	}

	texture.view, err = f.createView(texture.handle, info.Format, core1_0.ImageAspectColor, mipLevels)
	if err != nil {
		f.DestroyImage(texture)
		return nil, err
	}

	f.nameImage(texture, info.Name)
	return texture, nil
}

func levelRange(baseLevel, levelCount int) core1_0.ImageSubresourceRange {
	return core1_0.ImageSubresourceRange{
		AspectMask:     core1_0.ImageAspectColor,
		BaseMipLevel:   baseLevel,
		LevelCount:     levelCount,
		BaseArrayLayer: 0,
		LayerCount:     1,
	}
}

func levelLayers(level int) core1_0.ImageSubresourceLayers {
	return core1_0.ImageSubresourceLayers{
		AspectMask:     core1_0.ImageAspectColor,
		MipLevel:       level,
		BaseArrayLayer: 0,
		LayerCount:     1,
	}
}

// recordUpload copies staging into the first level of texture, blits every further level from the
// one before it and leaves all levels in the shader-read-only layout
func recordUpload(driver gpu.CommandDriver, buffer gpu.CommandBuffer, staging, texture *Image) {
	driver.CmdPipelineBarrier(buffer, core1_0.PipelineStageHost, core1_0.PipelineStageTransfer, []gpu.ImageMemoryBarrier{
		{
			SrcAccessMask:       core1_0.AccessHostWrite,
			DstAccessMask:       core1_0.AccessTransferRead,
			OldLayout:           core1_0.ImageLayoutPreInitialized,
			NewLayout:           core1_0.ImageLayoutTransferSrcOptimal,
			SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
			DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
			Image:               staging.handle,
			SubresourceRange:    gpu.ColorSubresourceRange,
		},
		{
			SrcAccessMask:       0,
			DstAccessMask:       core1_0.AccessTransferWrite,
			OldLayout:           core1_0.ImageLayoutUndefined,
			NewLayout:           core1_0.ImageLayoutTransferDstOptimal,
			SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
			DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
			Image:               texture.handle,
			SubresourceRange:    levelRange(0, texture.mipLevels),
		},
	})

	driver.CmdCopyImage(buffer,
		staging.handle, core1_0.ImageLayoutTransferSrcOptimal,
		texture.handle, core1_0.ImageLayoutTransferDstOptimal,
		[]core1_0.ImageCopy{
			{
				SrcSubresource: levelLayers(0),
				SrcOffset:      core1_0.Offset3D{},
				DstSubresource: levelLayers(0),
				DstOffset:      core1_0.Offset3D{},
				Extent: core1_0.Extent3D{
					Width:  texture.width,
					Height: texture.height,
					Depth:  1,
				},
			},
		})

	width, height := texture.width, texture.height
	for level := 1; level < texture.mipLevels; level++ {
		driver.CmdPipelineBarrier(buffer, core1_0.PipelineStageTransfer, core1_0.PipelineStageTransfer, []gpu.ImageMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessTransferWrite,
				DstAccessMask:       core1_0.AccessTransferRead,
				OldLayout:           core1_0.ImageLayoutTransferDstOptimal,
				NewLayout:           core1_0.ImageLayoutTransferSrcOptimal,
				SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
				DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
				Image:               texture.handle,
				SubresourceRange:    levelRange(level-1, 1),
			},
		})

		nextWidth, nextHeight := atLeastOne(width/2), atLeastOne(height/2)
		driver.CmdBlitImage(buffer,
			texture.handle, core1_0.ImageLayoutTransferSrcOptimal,
			texture.handle, core1_0.ImageLayoutTransferDstOptimal,
			[]core1_0.ImageBlit{
				{
					SrcSubresource: levelLayers(level - 1),
					SrcOffsets:     [2]core1_0.Offset3D{{}, {X: width, Y: height, Z: 1}},
					DstSubresource: levelLayers(level),
					DstOffsets:     [2]core1_0.Offset3D{{}, {X: nextWidth, Y: nextHeight, Z: 1}},
				},
			}, core1_0.FilterLinear)

		driver.CmdPipelineBarrier(buffer, core1_0.PipelineStageTransfer, core1_0.PipelineStageFragmentShader, []gpu.ImageMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessTransferRead,
				DstAccessMask:       core1_0.AccessShaderRead,
				OldLayout:           core1_0.ImageLayoutTransferSrcOptimal,
				NewLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
				SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
				DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
				Image:               texture.handle,
				SubresourceRange:    levelRange(level-1, 1),
			},
		})

		width, height = nextWidth, nextHeight
	}

	driver.CmdPipelineBarrier(buffer, core1_0.PipelineStageTransfer, core1_0.PipelineStageFragmentShader, []gpu.ImageMemoryBarrier{
		{
			SrcAccessMask:       core1_0.AccessTransferWrite,
			DstAccessMask:       core1_0.AccessShaderRead,
			OldLayout:           core1_0.ImageLayoutTransferDstOptimal,
			NewLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
			SrcQueueFamilyIndex: gpu.QueueFamilyIgnored,
			DstQueueFamilyIndex: gpu.QueueFamilyIgnored,
			Image:               texture.handle,
			SubresourceRange:    levelRange(texture.mipLevels-1, 1),
		},
	})
}

func (f *Factory) createBuffer(size int, usage core1_0.BufferUsageFlags) (gpu.Buffer, error) {
	if size <= 0 {
		return 0, errors.Newf("buffer size must be positive but was %d", size)
	}

	buffer, res, err := f.driver.CreateBuffer(core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return 0, gpu.Check("CreateBuffer", res, err)
	}

	return buffer, nil
}

func (f *Factory) bindBuffer(handle gpu.Buffer, chunk *memory.Chunk, err error) error {
	if err != nil {
		f.driver.DestroyBuffer(handle)
		return err
	}

	res, err := f.driver.BindBufferMemory(handle, chunk.Memory(), 0)
	if err != nil {
		f.driver.DestroyBuffer(handle)
		return gpu.Check("BindBufferMemory", res, err)
	}

	return nil
}

// CreateStagingBuffer creates a transfer source buffer in staging memory and copies data into it.
// As with staging images, the buffer must be consumed before the next staging request.
func (f *Factory) CreateStagingBuffer(size int, data []byte, name string) (*Buffer, error) {
	f.logger.Debug("Factory::CreateStagingBuffer", slog.Int("size", size))

	if len(data) > size {
		return nil, errors.Newf("%d bytes of data do not fit in a buffer of %d bytes", len(data), size)
	}

	handle, err := f.createBuffer(size, core1_0.BufferUsageTransferSrc)
	if err != nil {
		return nil, err
	}

	chunk, _, err := f.allocator.AllocateStagingForBuffer(handle)
	err = f.bindBuffer(handle, chunk, err)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		mapped, res, err := f.driver.MapMemory(chunk.Memory(), 0, size)
		if err != nil {
			f.driver.DestroyBuffer(handle)
			return nil, gpu.Check("MapMemory", res, err)
		}

		copy(unsafe.Slice((*byte)(mapped), size), data)
		f.driver.UnmapMemory(chunk.Memory())
	}

	buffer := &Buffer{
		handle: handle,
		size:   size,
		usage:  core1_0.BufferUsageTransferSrc,
		chunk:  chunk,
	}
	f.buffers.Put(handle, buffer)
	f.nameBuffer(buffer, name)

	return buffer, nil
}

// CreateDeviceBuffer creates a buffer in device-local memory
func (f *Factory) CreateDeviceBuffer(size int, usage core1_0.BufferUsageFlags, name string) (*Buffer, error) {
	f.logger.Debug("Factory::CreateDeviceBuffer", slog.Int("size", size))

	handle, err := f.createBuffer(size, usage)
	if err != nil {
		return nil, err
	}

	chunk, _, err := f.allocator.AllocateDeviceLocalForBuffer(handle)
	err = f.bindBuffer(handle, chunk, err)
	if err != nil {
		return nil, err
	}

	buffer := &Buffer{
		handle: handle,
		size:   size,
		usage:  usage,
		chunk:  chunk,
	}
	f.buffers.Put(handle, buffer)
	f.nameBuffer(buffer, name)

	return buffer, nil
}

// CreateHostVisibleBuffer creates a buffer in host-visible, host-coherent memory that stays mapped
// until the allocator is destroyed. Writes through Buffer.Mapped need no flush.
func (f *Factory) CreateHostVisibleBuffer(size int, usage core1_0.BufferUsageFlags, name string) (*Buffer, error) {
	f.logger.Debug("Factory::CreateHostVisibleBuffer", slog.Int("size", size))

	handle, err := f.createBuffer(size, usage)
	if err != nil {
		return nil, err
	}

	chunk, _, err := f.allocator.AllocateHostVisibleForBuffer(handle)
	err = f.bindBuffer(handle, chunk, err)
	if err != nil {
		return nil, err
	}

	buffer := &Buffer{
		handle: handle,
		size:   size,
		usage:  usage,
		chunk:  chunk,
	}
	f.buffers.Put(handle, buffer)
	f.nameBuffer(buffer, name)

	return buffer, nil
}

// DestroyImage destroys the image and its view and removes it from the arena. The backing chunk
// is not freed.
func (f *Factory) DestroyImage(image *Image) {
	if image == nil || image.handle == 0 {
		return
	}

	f.logger.Debug("Factory::DestroyImage")

	if image.view != 0 {
		f.driver.DestroyImageView(image.view)
		image.view = 0
	}

	f.driver.DestroyImage(image.handle)
	f.images.Delete(image.handle)
	image.handle = 0
}

// ReleaseImage destroys the image like DestroyImage and also frees its chunk. Images that are
// recreated over and over, such as resolution dependent attachments, must be released this way
// or their memory stays allocated until the allocator is destroyed.
func (f *Factory) ReleaseImage(image *Image) error {
	if image == nil || image.handle == 0 {
		return nil
	}

	chunk := image.chunk
	f.DestroyImage(image)
	image.chunk = nil

	return f.allocator.Free(chunk)
}

// DestroyBuffer destroys the buffer and removes it from the arena. The backing chunk is not
// freed.
func (f *Factory) DestroyBuffer(buffer *Buffer) {
	if buffer == nil || buffer.handle == 0 {
		return
	}

	f.logger.Debug("Factory::DestroyBuffer")

	f.driver.DestroyBuffer(buffer.handle)
	f.buffers.Delete(buffer.handle)
	buffer.handle = 0
}

// Live returns the number of images and buffers still registered in the arena
func (f *Factory) Live() (images int, buffers int) {
	return f.images.Count(), f.buffers.Count()
}

// Destroy tears down every image and buffer still registered with the factory. It must run
// before the allocator is destroyed.
func (f *Factory) Destroy() {
	f.logger.Debug("Factory::Destroy", slog.Int("images", f.images.Count()), slog.Int("buffers", f.buffers.Count()))

	var images []*Image
	f.images.Iter(func(_ gpu.Image, image *Image) bool {
		images = append(images, image)
		return false
	})
	for _, image := range images {
		f.DestroyImage(image)
	}

	var buffers []*Buffer
	f.buffers.Iter(func(_ gpu.Buffer, buffer *Buffer) bool {
		buffers = append(buffers, buffer)
		return false
	})
	for _, buffer := range buffers {
		f.DestroyBuffer(buffer)
	}
}
