package resource

import (
	"bytes"
	"io"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/command"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/gpu/mocks"
	"github.com/vkngwrapper/frameshell/memory"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

var testMemoryProperties = &core1_0.PhysicalDeviceMemoryProperties{
	MemoryTypes: []core1_0.MemoryType{
		{
			PropertyFlags: core1_0.MemoryPropertyDeviceLocal,
			HeapIndex:     0,
		},
		{
			PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent,
			HeapIndex:     1,
		},
	},
	MemoryHeaps: []core1_0.MemoryHeap{
		{
			Size:  8000000000,
			Flags: core1_0.MemoryHeapDeviceLocal,
		},
		{
			Size:  16000000000,
			Flags: 0,
		},
	},
}

func readyFactory(t *testing.T, ctrl *gomock.Controller) (*mocks.MockDriver, *memory.Allocator, *Factory) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	driver := mocks.NewMockDriver(ctrl)
	driver.EXPECT().MemoryProperties().Return(testMemoryProperties)

	allocator, err := memory.New(logger, driver, memory.CreateOptions{})
	require.NoError(t, err)

	return driver, allocator, NewFactory(logger, driver, allocator)
}

func testPixels(width, height, bytesPerPixel int) []byte {
	pixels := make([]byte, width*height*bytesPerPixel)
	for i := range pixels {
		pixels[i] = byte(i + 1)
	}
	return pixels
}

func expectStagingImage(driver *mocks.MockDriver, handle gpu.Image, memoryHandle gpu.DeviceMemory, size int, layout *core1_0.SubresourceLayout, backing []byte) {
	gomock.InOrder(
		driver.EXPECT().CreateImage(stagingImageMatcher{}).Return(handle, core1_0.VKSuccess, nil),
		driver.EXPECT().ImageMemoryRequirements(handle).Return(&core1_0.MemoryRequirements{
			Size:           size,
			Alignment:      16,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{
			AllocationSize:  size,
			MemoryTypeIndex: 1,
		}).Return(memoryHandle, core1_0.VKSuccess, nil),
		driver.EXPECT().BindImageMemory(handle, memoryHandle, 0).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().ImageSubresourceLayout(handle, core1_0.ImageSubresource{
			AspectMask: core1_0.ImageAspectColor,
		}).Return(layout),
		driver.EXPECT().MapMemory(memoryHandle, 0, size).Return(unsafe.Pointer(&backing[0]), core1_0.VKSuccess, nil),
		driver.EXPECT().UnmapMemory(memoryHandle),
	)
}

type stagingImageMatcher struct{}

func (m stagingImageMatcher) Matches(x any) bool {
	o, ok := x.(core1_0.ImageCreateInfo)
	if !ok {
		return false
	}

	return o.Tiling == core1_0.ImageTilingLinear &&
		o.Usage == core1_0.ImageUsageTransferSrc &&
		o.InitialLayout == core1_0.ImageLayoutPreInitialized &&
		o.Extent.Depth == 1
}

func (m stagingImageMatcher) String() string {
	return "is a linear transfer-src preinitialized image"
}

var rowPitchTestCases = map[string]struct {
	Width         int
	Height        int
	BytesPerPixel int
	Layout        core1_0.SubresourceLayout
}{
	"TightlyPacked": {
		Width:         8,
		Height:        4,
		BytesPerPixel: 4,
		Layout: core1_0.SubresourceLayout{
			Offset:   0,
			Size:     128,
			RowPitch: 32,
		},
	},
	"PaddedRows": {
		Width:         5,
		Height:        3,
		BytesPerPixel: 4,
		Layout: core1_0.SubresourceLayout{
			Offset:   0,
			Size:     256,
			RowPitch: 64,
		},
	},
	"PaddedRowsWithOffset": {
		Width:         3,
		Height:        5,
		BytesPerPixel: 3,
		Layout: core1_0.SubresourceLayout{
			Offset:   48,
			Size:     80,
			RowPitch: 16,
		},
	},
}

func TestFactory_CreateStagingImageRowPitch(t *testing.T) {
	for testName, testCase := range rowPitchTestCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			driver, allocator, factory := readyFactory(t, ctrl)

			const size = 1024
			backing := bytes.Repeat([]byte{0xEE}, size)
			layout := testCase.Layout
			expectStagingImage(driver, gpu.Image(1), gpu.DeviceMemory(7), size, &layout, backing)

			pixels := testPixels(testCase.Width, testCase.Height, testCase.BytesPerPixel)
			image, err := factory.CreateStagingImage(testCase.Width, testCase.Height, core1_0.FormatR8G8B8A8UnsignedNormalized, pixels, testCase.BytesPerPixel, "")
			require.NoError(t, err)
			require.Equal(t, gpu.Image(1), image.Handle())
			require.Equal(t, memory.PoolStaging, image.Chunk().Pool())
			require.Equal(t, core1_0.Extent2D{Width: testCase.Width, Height: testCase.Height}, image.Extent())

			rowBytes := testCase.Width * testCase.BytesPerPixel
			for row := 0; row < testCase.Height; row++ {
				start := layout.Offset + row*layout.RowPitch
				require.Equal(t, pixels[row*rowBytes:(row+1)*rowBytes], backing[start:start+rowBytes], "row %d", row)

				// Padding after each row is left alone
				if layout.RowPitch > rowBytes && row < testCase.Height-1 {
					require.Equal(t, byte(0xEE), backing[start+rowBytes])
				}
			}

			// Nothing before the subresource offset is touched
			for i := 0; i < layout.Offset; i++ {
				require.Equal(t, byte(0xEE), backing[i])
			}

			driver.EXPECT().DestroyImage(gpu.Image(1))
			factory.DestroyImage(image)

			driver.EXPECT().FreeMemory(gpu.DeviceMemory(7))
			require.NoError(t, allocator.Destroy())
		})
	}
}

func TestCopyRowsRejectsShortData(t *testing.T) {
	backing := make([]byte, 64)
	err := copyRows(unsafe.Pointer(&backing[0]), &core1_0.SubresourceLayout{RowPitch: 16, Size: 64}, make([]byte, 10), 4, 4, 1)
	require.Error(t, err)

	err = copyRows(unsafe.Pointer(&backing[0]), &core1_0.SubresourceLayout{RowPitch: 2, Size: 64}, make([]byte, 16), 4, 4, 1)
	require.Error(t, err)
}

func TestFactory_CreateTexture(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, allocator, factory := readyFactory(t, ctrl)
	runner := command.NewRunner(slog.New(slog.NewJSONHandler(io.Discard, nil)), driver)

	const size = 256
	backing := make([]byte, size)
	layout := core1_0.SubresourceLayout{Offset: 0, Size: 64, RowPitch: 16}
	expectStagingImage(driver, gpu.Image(1), gpu.DeviceMemory(7), size, &layout, backing)

	pool := gpu.CommandPool(3)
	queue := gpu.Queue(4)
	buffer := gpu.CommandBuffer(5)

	gomock.InOrder(
		driver.EXPECT().CreateImage(gomock.Any()).DoAndReturn(func(o core1_0.ImageCreateInfo) (gpu.Image, common.VkResult, error) {
			require.Equal(t, core1_0.ImageTilingOptimal, o.Tiling)
			require.Equal(t, core1_0.ImageUsageTransferDst|core1_0.ImageUsageSampled, o.Usage)
			require.Equal(t, core1_0.ImageLayoutUndefined, o.InitialLayout)
			require.Equal(t, 1, o.MipLevels)
			return gpu.Image(2), core1_0.VKSuccess, nil
		}),
		driver.EXPECT().ImageMemoryRequirements(gpu.Image(2)).Return(&core1_0.MemoryRequirements{
			Size:           512,
			Alignment:      256,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{
			AllocationSize:  512,
			MemoryTypeIndex: 0,
		}).Return(gpu.DeviceMemory(8), core1_0.VKSuccess, nil),
		driver.EXPECT().BindImageMemory(gpu.Image(2), gpu.DeviceMemory(8), 0).Return(core1_0.VKSuccess, nil),

		driver.EXPECT().AllocateCommandBuffers(pool, core1_0.CommandBufferLevelPrimary, 1).Return([]gpu.CommandBuffer{buffer}, core1_0.VKSuccess, nil),
		driver.EXPECT().BeginCommandBuffer(buffer, core1_0.CommandBufferUsageOneTimeSubmit).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().CmdPipelineBarrier(buffer, core1_0.PipelineStageHost, core1_0.PipelineStageTransfer, gomock.Any()).Do(
			func(_ gpu.CommandBuffer, _, _ core1_0.PipelineStageFlags, barriers []gpu.ImageMemoryBarrier) {
				require.Len(t, barriers, 2)
				require.Equal(t, gpu.Image(1), barriers[0].Image)
				require.Equal(t, core1_0.ImageLayoutPreInitialized, barriers[0].OldLayout)
				require.Equal(t, core1_0.ImageLayoutTransferSrcOptimal, barriers[0].NewLayout)
				require.Equal(t, gpu.Image(2), barriers[1].Image)
				require.Equal(t, core1_0.ImageLayoutUndefined, barriers[1].OldLayout)
				require.Equal(t, core1_0.ImageLayoutTransferDstOptimal, barriers[1].NewLayout)
			}),
		driver.EXPECT().CmdCopyImage(buffer,
			gpu.Image(1), core1_0.ImageLayoutTransferSrcOptimal,
			gpu.Image(2), core1_0.ImageLayoutTransferDstOptimal,
			gomock.Any()).Do(
			func(_ gpu.CommandBuffer, _ gpu.Image, _ core1_0.ImageLayout, _ gpu.Image, _ core1_0.ImageLayout, regions []core1_0.ImageCopy) {
				require.Len(t, regions, 1)
				require.Equal(t, core1_0.Extent3D{Width: 4, Height: 4, Depth: 1}, regions[0].Extent)
			}),
		driver.EXPECT().CmdPipelineBarrier(buffer, core1_0.PipelineStageTransfer, core1_0.PipelineStageFragmentShader, gomock.Any()).Do(
			func(_ gpu.CommandBuffer, _, _ core1_0.PipelineStageFlags, barriers []gpu.ImageMemoryBarrier) {
				require.Len(t, barriers, 1)
				require.Equal(t, gpu.Image(2), barriers[0].Image)
				require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, barriers[0].NewLayout)
			}),
		driver.EXPECT().EndCommandBuffer(buffer).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().QueueSubmit(queue, gomock.Any(), gpu.Fence(0)).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().QueueWaitIdle(queue).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().FreeCommandBuffers(pool, []gpu.CommandBuffer{buffer}),

		driver.EXPECT().CreateImageView(gomock.Any()).DoAndReturn(func(o gpu.ImageViewCreateInfo) (gpu.ImageView, common.VkResult, error) {
			require.Equal(t, gpu.Image(2), o.Image)
			require.Equal(t, core1_0.ImageViewType2D, o.ViewType)
			return gpu.ImageView(9), core1_0.VKSuccess, nil
		}),
		// The staging image is released once the upload completes
		driver.EXPECT().DestroyImage(gpu.Image(1)),
	)

	texture, err := factory.CreateTexture(runner, pool, queue, TextureInfo{
		Width:         4,
		Height:        4,
		Format:        core1_0.FormatR8G8B8A8UnsignedNormalized,
		Pixels:        testPixels(4, 4, 4),
		BytesPerPixel: 4,
	})
	require.NoError(t, err)
	require.Equal(t, gpu.Image(2), texture.Handle())
	require.Equal(t, gpu.ImageView(9), texture.View())
	require.Equal(t, 1, texture.MipLevels())

	images, buffers := factory.Live()
	require.Equal(t, 1, images)
	require.Equal(t, 0, buffers)

	gomock.InOrder(
		driver.EXPECT().DestroyImageView(gpu.ImageView(9)),
		driver.EXPECT().DestroyImage(gpu.Image(2)),
	)
	factory.Destroy()

	driver.EXPECT().FreeMemory(gpu.DeviceMemory(8))
	driver.EXPECT().FreeMemory(gpu.DeviceMemory(7))
	require.NoError(t, allocator.Destroy())
}

func TestFactory_Buffers(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, allocator, factory := readyFactory(t, ctrl)

	backing := make([]byte, 64)
	data := []byte("vertex data")

	gomock.InOrder(
		driver.EXPECT().CreateBuffer(core1_0.BufferCreateInfo{
			Size:        64,
			Usage:       core1_0.BufferUsageTransferSrc,
			SharingMode: core1_0.SharingModeExclusive,
		}).Return(gpu.Buffer(1), core1_0.VKSuccess, nil),
		driver.EXPECT().BufferMemoryRequirements(gpu.Buffer(1)).Return(&core1_0.MemoryRequirements{
			Size:           64,
			Alignment:      4,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{AllocationSize: 64, MemoryTypeIndex: 1}).Return(gpu.DeviceMemory(10), core1_0.VKSuccess, nil),
		driver.EXPECT().BindBufferMemory(gpu.Buffer(1), gpu.DeviceMemory(10), 0).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().MapMemory(gpu.DeviceMemory(10), 0, 64).Return(unsafe.Pointer(&backing[0]), core1_0.VKSuccess, nil),
		driver.EXPECT().UnmapMemory(gpu.DeviceMemory(10)),
	)

	staging, err := factory.CreateStagingBuffer(64, data, "")
	require.NoError(t, err)
	require.Equal(t, data, backing[:len(data)])
	require.Nil(t, staging.Mapped())

	gomock.InOrder(
		driver.EXPECT().CreateBuffer(core1_0.BufferCreateInfo{
			Size:        128,
			Usage:       core1_0.BufferUsageVertexBuffer | core1_0.BufferUsageTransferDst,
			SharingMode: core1_0.SharingModeExclusive,
		}).Return(gpu.Buffer(2), core1_0.VKSuccess, nil),
		driver.EXPECT().BufferMemoryRequirements(gpu.Buffer(2)).Return(&core1_0.MemoryRequirements{
			Size:           128,
			Alignment:      4,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{AllocationSize: 128, MemoryTypeIndex: 0}).Return(gpu.DeviceMemory(11), core1_0.VKSuccess, nil),
		driver.EXPECT().BindBufferMemory(gpu.Buffer(2), gpu.DeviceMemory(11), 0).Return(core1_0.VKSuccess, nil),
	)

	device, err := factory.CreateDeviceBuffer(128, core1_0.BufferUsageVertexBuffer|core1_0.BufferUsageTransferDst, "")
	require.NoError(t, err)
	require.Equal(t, memory.PoolDeviceLocal, device.Chunk().Pool())

	uniform := make([]byte, 256)
	gomock.InOrder(
		driver.EXPECT().CreateBuffer(gomock.Any()).Return(gpu.Buffer(3), core1_0.VKSuccess, nil),
		driver.EXPECT().BufferMemoryRequirements(gpu.Buffer(3)).Return(&core1_0.MemoryRequirements{
			Size:           256,
			Alignment:      64,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{AllocationSize: 256, MemoryTypeIndex: 1}).Return(gpu.DeviceMemory(12), core1_0.VKSuccess, nil),
		driver.EXPECT().MapMemory(gpu.DeviceMemory(12), 0, 256).Return(unsafe.Pointer(&uniform[0]), core1_0.VKSuccess, nil),
		driver.EXPECT().BindBufferMemory(gpu.Buffer(3), gpu.DeviceMemory(12), 0).Return(core1_0.VKSuccess, nil),
	)

	hostVisible, err := factory.CreateHostVisibleBuffer(256, core1_0.BufferUsageUniformBuffer, "")
	require.NoError(t, err)
	require.Equal(t, unsafe.Pointer(&uniform[0]), hostVisible.Mapped())

	driver.EXPECT().DestroyBuffer(gpu.Buffer(1))
	factory.DestroyBuffer(staging)

	_, buffers := factory.Live()
	require.Equal(t, 2, buffers)

	driver.EXPECT().DestroyBuffer(gpu.Buffer(2))
	driver.EXPECT().DestroyBuffer(gpu.Buffer(3))
	factory.Destroy()

	_, buffers = factory.Live()
	require.Equal(t, 0, buffers)

	driver.EXPECT().UnmapMemory(gpu.DeviceMemory(12))
	driver.EXPECT().FreeMemory(gpu.DeviceMemory(12))
	driver.EXPECT().FreeMemory(gpu.DeviceMemory(11))
	driver.EXPECT().FreeMemory(gpu.DeviceMemory(10))
	require.NoError(t, allocator.Destroy())
}

func TestFactory_BindFailureDestroysImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, allocator, factory := readyFactory(t, ctrl)

	gomock.InOrder(
		driver.EXPECT().CreateImage(gomock.Any()).Return(gpu.Image(1), core1_0.VKSuccess, nil),
		driver.EXPECT().ImageMemoryRequirements(gpu.Image(1)).Return(&core1_0.MemoryRequirements{
			Size:           512,
			Alignment:      256,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(gomock.Any()).Return(gpu.DeviceMemory(8), core1_0.VKSuccess, nil),
		driver.EXPECT().BindImageMemory(gpu.Image(1), gpu.DeviceMemory(8), 0).Return(core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()),
		driver.EXPECT().DestroyImage(gpu.Image(1)),
	)

	_, err := factory.CreateDeviceImage(16, 16, core1_0.FormatR8G8B8A8UnsignedNormalized, "")

	var gpuErr *gpu.Error
	require.True(t, errors.As(err, &gpuErr))
	require.Equal(t, "BindImageMemory", gpuErr.Op)

	images, _ := factory.Live()
	require.Equal(t, 0, images)

	driver.EXPECT().FreeMemory(gpu.DeviceMemory(8))
	require.NoError(t, allocator.Destroy())
}

func TestFactory_RejectsEmptyExtent(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, _, factory := readyFactory(t, ctrl)

	_, err := factory.CreateDeviceImage(0, 16, core1_0.FormatR8G8B8A8UnsignedNormalized, "")
	require.Error(t, err)

	_, err = factory.CreateStagingImage(16, 16, core1_0.FormatR8G8B8A8UnsignedNormalized, nil, 0, "")
	require.Error(t, err)
}

type recordedBarrier struct {
	srcStage core1_0.PipelineStageFlags
	dstStage core1_0.PipelineStageFlags
	barrier  gpu.ImageMemoryBarrier
}

func TestMipLevels(t *testing.T) {
	testCases := []struct {
		width, height int
		levels        int
	}{
		{width: 1, height: 1, levels: 1},
		{width: 4, height: 4, levels: 3},
		{width: 8, height: 4, levels: 4},
		{width: 5, height: 3, levels: 3},
		{width: 3, height: 1024, levels: 11},
	}

	for _, testCase := range testCases {
		require.Equal(t, testCase.levels, MipLevels(testCase.width, testCase.height), "%dx%d", testCase.width, testCase.height)
	}
}

func TestFactory_CreateTextureWithMipmaps(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, allocator, factory := readyFactory(t, ctrl)
	runner := command.NewRunner(slog.New(slog.NewJSONHandler(io.Discard, nil)), driver)

	const size = 256
	backing := make([]byte, size)
	layout := core1_0.SubresourceLayout{Offset: 0, Size: 128, RowPitch: 32}

	pool := gpu.CommandPool(3)
	queue := gpu.Queue(4)
	buffer := gpu.CommandBuffer(5)

	driver.EXPECT().FormatProperties(core1_0.FormatR8G8B8A8UnsignedNormalized).Return(&core1_0.FormatProperties{
		OptimalTilingFeatures: core1_0.FormatFeatureSampledImageFilterLinear,
	})
	expectStagingImage(driver, gpu.Image(1), gpu.DeviceMemory(7), size, &layout, backing)

	var barriers []recordedBarrier
	driver.EXPECT().CmdPipelineBarrier(buffer, gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(_ gpu.CommandBuffer, srcStage, dstStage core1_0.PipelineStageFlags, recorded []gpu.ImageMemoryBarrier) {
			for _, barrier := range recorded {
				barriers = append(barriers, recordedBarrier{srcStage: srcStage, dstStage: dstStage, barrier: barrier})
			}
		}).Times(8)

	var blits []core1_0.ImageBlit
	driver.EXPECT().CmdBlitImage(buffer,
		gpu.Image(2), core1_0.ImageLayoutTransferSrcOptimal,
		gpu.Image(2), core1_0.ImageLayoutTransferDstOptimal,
		gomock.Any(), core1_0.FilterLinear).Do(
		func(_ gpu.CommandBuffer, _ gpu.Image, _ core1_0.ImageLayout, _ gpu.Image, _ core1_0.ImageLayout, regions []core1_0.ImageBlit, _ core1_0.Filter) {
			require.Len(t, regions, 1)
			blits = append(blits, regions[0])
		}).Times(3)

	gomock.InOrder(
		driver.EXPECT().CreateImage(gomock.Any()).DoAndReturn(func(o core1_0.ImageCreateInfo) (gpu.Image, common.VkResult, error) {
			require.Equal(t, 4, o.MipLevels)
			require.Equal(t, core1_0.ImageUsageTransferDst|core1_0.ImageUsageSampled|core1_0.ImageUsageTransferSrc, o.Usage)
			return gpu.Image(2), core1_0.VKSuccess, nil
		}),
		driver.EXPECT().ImageMemoryRequirements(gpu.Image(2)).Return(&core1_0.MemoryRequirements{
			Size:           512,
			Alignment:      256,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{
			AllocationSize:  512,
			MemoryTypeIndex: 0,
		}).Return(gpu.DeviceMemory(8), core1_0.VKSuccess, nil),
		driver.EXPECT().BindImageMemory(gpu.Image(2), gpu.DeviceMemory(8), 0).Return(core1_0.VKSuccess, nil),

		driver.EXPECT().AllocateCommandBuffers(pool, core1_0.CommandBufferLevelPrimary, 1).Return([]gpu.CommandBuffer{buffer}, core1_0.VKSuccess, nil),
		driver.EXPECT().BeginCommandBuffer(buffer, core1_0.CommandBufferUsageOneTimeSubmit).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().CmdCopyImage(buffer,
			gpu.Image(1), core1_0.ImageLayoutTransferSrcOptimal,
			gpu.Image(2), core1_0.ImageLayoutTransferDstOptimal,
			gomock.Any()),
		driver.EXPECT().EndCommandBuffer(buffer).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().QueueSubmit(queue, gomock.Any(), gpu.Fence(0)).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().QueueWaitIdle(queue).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().FreeCommandBuffers(pool, []gpu.CommandBuffer{buffer}),

		driver.EXPECT().CreateImageView(gomock.Any()).DoAndReturn(func(o gpu.ImageViewCreateInfo) (gpu.ImageView, common.VkResult, error) {
			require.Equal(t, 4, o.SubresourceRange.LevelCount)
			return gpu.ImageView(9), core1_0.VKSuccess, nil
		}),
		driver.EXPECT().DestroyImage(gpu.Image(1)),
	)

	driver.EXPECT().SetObjectName(core1_0.ObjectTypeImage, uint64(1), "albedo staging").Return(core1_0.VKSuccess, nil)
	driver.EXPECT().SetObjectName(core1_0.ObjectTypeImage, uint64(2), "albedo").Return(core1_0.VKSuccess, nil)
	driver.EXPECT().SetObjectName(core1_0.ObjectTypeImageView, uint64(9), "albedo").Return(core1_0.VKSuccess, nil)

	texture, err := factory.CreateTexture(runner, pool, queue, TextureInfo{
		Width:           8,
		Height:          4,
		Format:          core1_0.FormatR8G8B8A8UnsignedNormalized,
		Pixels:          testPixels(8, 4, 4),
		BytesPerPixel:   4,
		GenerateMipmaps: true,
		Name:            "albedo",
	})
	require.NoError(t, err)
	require.Equal(t, 4, texture.MipLevels())
	require.Equal(t, "albedo", texture.Name())

	require.Equal(t, [][2]core1_0.Offset3D{
		{{}, {X: 8, Y: 4, Z: 1}},
		{{}, {X: 4, Y: 2, Z: 1}},
		{{}, {X: 2, Y: 1, Z: 1}},
	}, [][2]core1_0.Offset3D{blits[0].SrcOffsets, blits[1].SrcOffsets, blits[2].SrcOffsets})
	for level, blit := range blits {
		require.Equal(t, level, blit.SrcSubresource.MipLevel)
		require.Equal(t, level+1, blit.DstSubresource.MipLevel)
	}
	require.Equal(t, core1_0.Offset3D{X: 1, Y: 1, Z: 1}, blits[2].DstOffsets[1])

	// Every level of the texture ends up readable by shaders
	final := map[int]core1_0.ImageLayout{}
	for _, recorded := range barriers {
		if recorded.barrier.Image != gpu.Image(2) {
			continue
		}
		subresources := recorded.barrier.SubresourceRange
		for level := subresources.BaseMipLevel; level < subresources.BaseMipLevel+subresources.LevelCount; level++ {
			final[level] = recorded.barrier.NewLayout
		}
	}
	require.Len(t, final, 4)
	for level, layout := range final {
		require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, layout, "level %d", level)
	}

	gomock.InOrder(
		driver.EXPECT().DestroyImageView(gpu.ImageView(9)),
		driver.EXPECT().DestroyImage(gpu.Image(2)),
	)
	factory.Destroy()

	driver.EXPECT().FreeMemory(gpu.DeviceMemory(8))
	driver.EXPECT().FreeMemory(gpu.DeviceMemory(7))
	require.NoError(t, allocator.Destroy())
}

func TestFactory_CreateTextureRejectsUnfilterableMipmaps(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, _, factory := readyFactory(t, ctrl)
	runner := command.NewRunner(slog.New(slog.NewJSONHandler(io.Discard, nil)), driver)

	driver.EXPECT().FormatProperties(core1_0.FormatR32G32B32A32SignedFloat).Return(&core1_0.FormatProperties{})

	_, err := factory.CreateTexture(runner, 3, 4, TextureInfo{
		Width:           4,
		Height:          4,
		Format:          core1_0.FormatR32G32B32A32SignedFloat,
		Pixels:          testPixels(4, 4, 16),
		BytesPerPixel:   16,
		GenerateMipmaps: true,
	})
	require.ErrorContains(t, err, "does not support linear blits")
}

func TestFactory_CreateDepthBuffer(t *testing.T) {
	testCases := []struct {
		name   string
		format core1_0.Format
		aspect core1_0.ImageAspectFlags
	}{
		{name: "depth only", format: core1_0.FormatD32SignedFloat, aspect: core1_0.ImageAspectDepth},
		{name: "depth stencil", format: core1_0.FormatD24UnsignedNormalizedS8UnsignedInt, aspect: core1_0.ImageAspectDepth | core1_0.ImageAspectStencil},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			driver, allocator, factory := readyFactory(t, ctrl)

			gomock.InOrder(
				driver.EXPECT().FormatProperties(testCase.format).Return(&core1_0.FormatProperties{
					OptimalTilingFeatures: core1_0.FormatFeatureDepthStencilAttachment,
				}),
				driver.EXPECT().CreateImage(gomock.Any()).DoAndReturn(func(o core1_0.ImageCreateInfo) (gpu.Image, common.VkResult, error) {
					require.Equal(t, testCase.format, o.Format)
					require.Equal(t, core1_0.ImageTilingOptimal, o.Tiling)
					require.Equal(t, core1_0.ImageUsageDepthStencilAttachment, o.Usage)
					require.Equal(t, core1_0.Extent3D{Width: 640, Height: 480, Depth: 1}, o.Extent)
					return gpu.Image(3), core1_0.VKSuccess, nil
				}),
				driver.EXPECT().ImageMemoryRequirements(gpu.Image(3)).Return(&core1_0.MemoryRequirements{
					Size:           1024,
					Alignment:      256,
					MemoryTypeBits: 0xffffffff,
				}),
				driver.EXPECT().AllocateMemory(core1_0.MemoryAllocateInfo{AllocationSize: 1024, MemoryTypeIndex: 0}).Return(gpu.DeviceMemory(4), core1_0.VKSuccess, nil),
				driver.EXPECT().BindImageMemory(gpu.Image(3), gpu.DeviceMemory(4), 0).Return(core1_0.VKSuccess, nil),
				driver.EXPECT().CreateImageView(gomock.Any()).DoAndReturn(func(o gpu.ImageViewCreateInfo) (gpu.ImageView, common.VkResult, error) {
					require.Equal(t, gpu.Image(3), o.Image)
					require.Equal(t, testCase.aspect, o.SubresourceRange.AspectMask)
					return gpu.ImageView(5), core1_0.VKSuccess, nil
				}),
				driver.EXPECT().SetObjectName(core1_0.ObjectTypeImage, uint64(3), "depth").Return(core1_0.VKSuccess, nil),
				driver.EXPECT().SetObjectName(core1_0.ObjectTypeImageView, uint64(5), "depth").Return(core1_0.VKSuccess, nil),
			)

			depth, err := factory.CreateDepthBuffer(640, 480, testCase.format, "depth")
			require.NoError(t, err)
			require.Equal(t, gpu.ImageView(5), depth.View())
			require.Equal(t, testCase.aspect, DepthAspect(depth.Format()))

			gomock.InOrder(
				driver.EXPECT().DestroyImageView(gpu.ImageView(5)),
				driver.EXPECT().DestroyImage(gpu.Image(3)),
				driver.EXPECT().FreeMemory(gpu.DeviceMemory(4)),
			)
			require.NoError(t, factory.ReleaseImage(depth))
			require.Nil(t, depth.Chunk())
			require.Zero(t, allocator.Statistics().DeviceLocal.ChunkCount)

			// Releasing twice does nothing
			require.NoError(t, factory.ReleaseImage(depth))
			require.NoError(t, allocator.Destroy())
		})
	}
}

func TestFactory_CreateDepthBufferRejectsUnsupportedFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, _, factory := readyFactory(t, ctrl)

	driver.EXPECT().FormatProperties(core1_0.FormatD32SignedFloat).Return(&core1_0.FormatProperties{
		LinearTilingFeatures: core1_0.FormatFeatureDepthStencilAttachment,
	})

	_, err := factory.CreateDepthBuffer(640, 480, core1_0.FormatD32SignedFloat, "depth")
	require.ErrorContains(t, err, "optimal-tiled depth attachment")

	images, _ := factory.Live()
	require.Zero(t, images)
}

func TestFactory_NamingFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, allocator, factory := readyFactory(t, ctrl)

	gomock.InOrder(
		driver.EXPECT().CreateBuffer(gomock.Any()).Return(gpu.Buffer(1), core1_0.VKSuccess, nil),
		driver.EXPECT().BufferMemoryRequirements(gpu.Buffer(1)).Return(&core1_0.MemoryRequirements{
			Size:           64,
			Alignment:      4,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(gomock.Any()).Return(gpu.DeviceMemory(2), core1_0.VKSuccess, nil),
		driver.EXPECT().BindBufferMemory(gpu.Buffer(1), gpu.DeviceMemory(2), 0).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().SetObjectName(core1_0.ObjectTypeBuffer, uint64(1), "vertices").
			Return(core1_0.VKErrorOutOfHostMemory, core1_0.VKErrorOutOfHostMemory.ToError()),
	)

	vertices, err := factory.CreateDeviceBuffer(64, core1_0.BufferUsageVertexBuffer, "vertices")
	require.NoError(t, err)
	require.Equal(t, "vertices", vertices.Name())

	driver.EXPECT().DestroyBuffer(gpu.Buffer(1))
	factory.Destroy()

	driver.EXPECT().FreeMemory(gpu.DeviceMemory(2))
	require.NoError(t, allocator.Destroy())
}
