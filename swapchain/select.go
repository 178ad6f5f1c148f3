package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
)

// specialExtent is reported as the current width when the surface size is determined by the
// swapchain extent
const specialExtent = -1

var DefaultPreferredFormats = []khr_surface.SurfaceFormat{
	{Format: core1_0.FormatB8G8R8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
	{Format: core1_0.FormatR8G8B8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
}

// ChooseSurfaceFormat returns the first preferred format the surface supports, or the surface's
// first format if none of them are. A surface that reports a single undefined format accepts
// anything, so the first preferred format is used.
func ChooseSurfaceFormat(available []khr_surface.SurfaceFormat, preferred []khr_surface.SurfaceFormat) (khr_surface.SurfaceFormat, error) {
	if len(available) == 0 {
		return khr_surface.SurfaceFormat{}, errors.New("surface reports no formats")
	}

	if len(available) == 1 && available[0].Format == core1_0.FormatUndefined && len(preferred) > 0 {
		return preferred[0], nil
	}

	for _, want := range preferred {
		for _, format := range available {
			if format == want {
				return format, nil
			}
		}
	}

	return available[0], nil
}

// ChoosePresentMode returns the first preferred mode the surface supports. FIFO is always
// available and is used when nothing preferred is.
func ChoosePresentMode(available []khr_surface.PresentMode, preferred []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, want := range preferred {
		for _, mode := range available {
			if mode == want {
				return mode
			}
		}
	}

	return khr_surface.PresentModeFIFO
}

// ChooseImageCount requests one image above the minimum so the application never waits on the
// presentation engine to release its last image. A maximum of 0 means there is no limit.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseExtent returns the surface's current extent, or fallback clamped to the supported range
// when the surface leaves the extent to the swapchain
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, fallback core1_0.Extent2D) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != specialExtent {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(fallback.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(fallback.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
