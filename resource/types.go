package resource

import (
	"unsafe"

	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/memory"
)

// Image is an image created by a Factory together with its optional view. The backing chunk is
// owned by the allocator, not by the image.
type Image struct {
	handle    gpu.Image
	view      gpu.ImageView
	name      string
	format    core1_0.Format
	width     int
	height    int
	mipLevels int
	chunk     *memory.Chunk
}

func (i *Image) Handle() gpu.Image {
	return i.handle
}

// View returns the image's view, or the null handle if none was created
func (i *Image) View() gpu.ImageView {
	return i.view
}

func (i *Image) Format() core1_0.Format {
	return i.format
}

func (i *Image) Extent() core1_0.Extent2D {
	return core1_0.Extent2D{Width: i.width, Height: i.height}
}

func (i *Image) Chunk() *memory.Chunk {
	return i.chunk
}

func (i *Image) MipLevels() int {
	return i.mipLevels
}

// Name returns the debug name the image was created with
func (i *Image) Name() string {
	return i.name
}

// Buffer is a buffer created by a Factory. Mapped is only set for host-visible buffers.
type Buffer struct {
	handle gpu.Buffer
	name   string
	size   int
	usage  core1_0.BufferUsageFlags
	chunk  *memory.Chunk
}

func (b *Buffer) Handle() gpu.Buffer {
	return b.handle
}

func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Usage() core1_0.BufferUsageFlags {
	return b.usage
}

func (b *Buffer) Chunk() *memory.Chunk {
	return b.chunk
}

func (b *Buffer) Name() string {
	return b.name
}

// Mapped returns the persistent mapping of a host-visible buffer, or nil
func (b *Buffer) Mapped() unsafe.Pointer {
	if b.chunk == nil || b.chunk.Pool() != memory.PoolHostVisible {
		return nil
	}
	return b.chunk.MappedData()
}
