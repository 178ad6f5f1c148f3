package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/frameshell/gpu"
	"golang.org/x/exp/slog"
)

// ErrSurfaceUnavailable is returned from Create when the surface currently has no area, which
// happens while a window is minimized. No swapchain can be built until it is restored.
var ErrSurfaceUnavailable = errors.New("surface has a zero extent")

// Options contains optional settings for swapchains built by a Manager
type Options struct {
	// PreferredFormats is checked in order against the surface's formats. DefaultPreferredFormats
	// is used when it is empty.
	PreferredFormats []khr_surface.SurfaceFormat
	// PreferredPresentModes is checked in order against the surface's present modes. FIFO is used
	// when none of them are supported.
	PreferredPresentModes []khr_surface.PresentMode
	// ImageUsage is the usage of the presentable images. Defaults to color attachment and transfer
	// destination, which lets techniques either render or clear/copy into them.
	ImageUsage core1_0.ImageUsageFlags
	// QueueFamilyIndices lists the queue families that access the presentable images. When it
	// contains more than one distinct family the images are shared concurrently.
	QueueFamilyIndices []int
}

// Manager builds and tears down swapchains for a single device
type Manager struct {
	logger  *slog.Logger
	driver  gpu.SwapchainDriver
	options Options
}

func New(logger *slog.Logger, driver gpu.SwapchainDriver, options Options) *Manager {
	if len(options.PreferredFormats) == 0 {
		options.PreferredFormats = DefaultPreferredFormats
	}
	if options.ImageUsage == 0 {
		options.ImageUsage = core1_0.ImageUsageColorAttachment | core1_0.ImageUsageTransferDst
	}

	return &Manager{
		logger:  logger,
		driver:  driver,
		options: options,
	}
}

func (m *Manager) sharing() (core1_0.SharingMode, []int) {
	var families []int
	for _, family := range m.options.QueueFamilyIndices {
		duplicate := false
		for _, seen := range families {
			if seen == family {
				duplicate = true
				break
			}
		}
		if !duplicate {
			families = append(families, family)
		}
	}

	if len(families) < 2 {
		return core1_0.SharingModeExclusive, nil
	}
	return core1_0.SharingModeConcurrent, families
}

// Create builds a swapchain for surface along with one view per presentable image. fallbackExtent
// is the window's drawable size, used when the surface leaves the extent to the swapchain.
func (m *Manager) Create(surface gpu.Surface, fallbackExtent core1_0.Extent2D) (*State, error) {
	m.logger.Debug("Manager::Create")

	capabilities, res, err := m.driver.SurfaceCapabilities(surface)
	if err != nil {
		return nil, gpu.Check("SurfaceCapabilities", res, err)
	}

	formats, res, err := m.driver.SurfaceFormats(surface)
	if err != nil {
		return nil, gpu.Check("SurfaceFormats", res, err)
	}

	presentModes, res, err := m.driver.SurfacePresentModes(surface)
	if err != nil {
		return nil, gpu.Check("SurfacePresentModes", res, err)
	}

	extent := ChooseExtent(capabilities, fallbackExtent)
	if extent.Width == 0 || extent.Height == 0 {
		return nil, ErrSurfaceUnavailable
	}

	format, err := ChooseSurfaceFormat(formats, m.options.PreferredFormats)
	if err != nil {
		return nil, gpu.NewError("SurfaceFormats", core1_0.VKErrorFormatNotSupported, err)
	}

	presentMode := ChoosePresentMode(presentModes, m.options.PreferredPresentModes)
	sharingMode, families := m.sharing()

	handle, res, err := m.driver.CreateSwapchain(gpu.SwapchainCreateInfo{
		Surface:            surface,
		MinImageCount:      ChooseImageCount(capabilities),
		ImageFormat:        format.Format,
		ImageColorSpace:    format.ColorSpace,
		ImageExtent:        extent,
		ImageArrayLayers:   1,
		ImageUsage:         m.options.ImageUsage,
		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: families,
		PreTransform:       capabilities.CurrentTransform,
		CompositeAlpha:     khr_surface.CompositeAlphaOpaque,
		PresentMode:        presentMode,
		Clipped:            true,
	})
	if err != nil {
		return nil, gpu.Check("CreateSwapchain", res, err)
	}

	state := &State{
		Handle:      handle,
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
		Extent:      extent,
		PresentMode: presentMode,
	}

	images, res, err := m.driver.SwapchainImages(handle)
	if err != nil {
		m.Destroy(state)
		return nil, gpu.Check("SwapchainImages", res, err)
	}

	views := make([]gpu.ImageView, 0, len(images))
	for _, image := range images {
		view, res, err := m.driver.CreateImageView(gpu.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   format.Format,
			Components: core1_0.ComponentMapping{
				R: core1_0.ComponentSwizzleIdentity,
				G: core1_0.ComponentSwizzleIdentity,
				B: core1_0.ComponentSwizzleIdentity,
				A: core1_0.ComponentSwizzleIdentity,
			},
			SubresourceRange: gpu.ColorSubresourceRange,
		})
		if err != nil {
			state.ImageViews = views
			m.Destroy(state)
			return nil, gpu.Check("CreateImageView", res, err)
		}

		views = append(views, view)
	}

	state.Images = images
	state.ImageViews = views

	m.logger.Info("created swapchain",
		slog.Int("images", len(images)),
		slog.Int("width", extent.Width),
		slog.Int("height", extent.Height),
		slog.Any("format", format.Format),
		slog.Any("presentMode", presentMode),
	)

	return state, nil
}

// Destroy destroys every image view and then the swapchain itself. The device must be idle.
func (m *Manager) Destroy(state *State) {
	if state == nil {
		return
	}

	m.logger.Debug("Manager::Destroy", slog.Int("views", len(state.ImageViews)))

	for _, view := range state.ImageViews {
		m.driver.DestroyImageView(view)
	}

	if state.Handle != 0 {
		m.driver.DestroySwapchain(state.Handle)
	}

	state.Handle = 0
	state.Images = nil
	state.ImageViews = nil
}
