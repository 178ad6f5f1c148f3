package swapchain

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/frameshell/gpu"
)

// State describes a live swapchain. Images and ImageViews are index aligned: ImageViews[i] is a
// view of Images[i], and both hold exactly ImageCount() entries until the swapchain is destroyed.
type State struct {
	Handle      gpu.Swapchain
	Images      []gpu.Image
	ImageViews  []gpu.ImageView
	Format      core1_0.Format
	ColorSpace  khr_surface.ColorSpace
	Extent      core1_0.Extent2D
	PresentMode khr_surface.PresentMode
}

func (s *State) ImageCount() int {
	return len(s.Images)
}

// ResolutionDependent is implemented by anything whose lifetime is tied to a particular swapchain:
// framebuffers, depth buffers, per-image descriptor sets and per-image command buffers.
//
// ReleaseResolutionDependent is called after the device is idle and before the swapchain is
// destroyed. RestoreResolutionDependent is called with the replacement swapchain.
type ResolutionDependent interface {
	ReleaseResolutionDependent()
	RestoreResolutionDependent(state *State) error
}
