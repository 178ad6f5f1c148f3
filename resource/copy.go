package resource

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// copyRows writes a tightly packed width x height image into mapped linear image memory that
// follows layout. Rows start at layout.Offset and are layout.RowPitch bytes apart; the padding
// at the end of each row is left untouched.
func copyRows(mapped unsafe.Pointer, layout *core1_0.SubresourceLayout, pixels []byte, width, height, bytesPerPixel int) error {
	rowBytes := width * bytesPerPixel

	if len(pixels) < rowBytes*height {
		return errors.Newf("pixel data holds %d bytes but a %dx%d image at %d bytes per pixel needs %d", len(pixels), width, height, bytesPerPixel, rowBytes*height)
	}
	if layout.RowPitch < rowBytes {
		return errors.Newf("row pitch %d is smaller than a row of %d bytes", layout.RowPitch, rowBytes)
	}

	required := layout.RowPitch*(height-1) + rowBytes
	if layout.Size > 0 && layout.Size < required {
		return errors.Newf("subresource of %d bytes cannot hold %d rows at pitch %d", layout.Size, height, layout.RowPitch)
	}

	dst := unsafe.Slice((*byte)(unsafe.Add(mapped, layout.Offset)), required)

	if layout.RowPitch == rowBytes {
		copy(dst, pixels[:rowBytes*height])
		return nil
	}

	for row := 0; row < height; row++ {
		dstStart := row * layout.RowPitch
		srcStart := row * rowBytes
		copy(dst[dstStart:dstStart+rowBytes], pixels[srcStart:srcStart+rowBytes])
	}

	return nil
}
