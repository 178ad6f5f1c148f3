package vulkan

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v2/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"golang.org/x/exp/slog"
)

const validationLayer = "VK_LAYER_KHRONOS_validation"

// InstanceOptions describes the instance CreateInstance builds
type InstanceOptions struct {
	ApplicationName string
	// Extensions lists instance extensions the platform layer requires, such as the ones SDL
	// reports for its window. Every one of them must be available.
	Extensions []string
	// Validation enables the Khronos validation layer and routes its messages to the logger
	Validation bool
}

// CreateInstance creates an instance with the requested extensions. When options.Validation is set,
// the validation layer and a debug messenger are enabled as well; otherwise the returned messenger
// is nil. Portability enumeration is enabled whenever the loader offers it.
func CreateInstance(logger *slog.Logger, loader core.Loader, options InstanceOptions) (core1_0.Instance, ext_debug_utils.DebugUtilsMessenger, error) {
	available, _, err := loader.AvailableExtensions()
	if err != nil {
		return nil, nil, errors.Wrap(err, "enumerating instance extensions")
	}

	createInfo := core1_0.InstanceCreateInfo{
		ApplicationName:    options.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "frameshell",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	for _, extension := range options.Extensions {
		if _, ok := available[extension]; !ok {
			return nil, nil, errors.Newf("required instance extension %s is not available", extension)
		}
		createInfo.EnabledExtensionNames = append(createInfo.EnabledExtensionNames, extension)
	}

	if _, ok := available[khr_portability_enumeration.ExtensionName]; ok {
		createInfo.EnabledExtensionNames = append(createInfo.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		createInfo.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	messengerInfo := ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    debugCallback(logger),
	}

	if options.Validation {
		layers, _, err := loader.AvailableLayers()
		if err != nil {
			return nil, nil, errors.Wrap(err, "enumerating instance layers")
		}
		if _, ok := layers[validationLayer]; !ok {
			return nil, nil, errors.Newf("validation was requested but layer %s is not available", validationLayer)
		}

		createInfo.EnabledLayerNames = append(createInfo.EnabledLayerNames, validationLayer)
		createInfo.EnabledExtensionNames = append(createInfo.EnabledExtensionNames, ext_debug_utils.ExtensionName)
		createInfo.Next = messengerInfo
	}

	logger.Debug("vulkan::CreateInstance",
		slog.Any("extensions", createInfo.EnabledExtensionNames),
		slog.Any("layers", createInfo.EnabledLayerNames),
	)

	instance, _, err := loader.CreateInstance(nil, createInfo)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating instance")
	}

	if !options.Validation {
		return instance, nil, nil
	}

	messenger, _, err := ext_debug_utils.CreateExtensionFromInstance(instance).CreateDebugUtilsMessenger(instance, nil, messengerInfo)
	if err != nil {
		instance.Destroy(nil)
		return nil, nil, errors.Wrap(err, "creating debug messenger")
	}

	return instance, messenger, nil
}

func debugCallback(logger *slog.Logger) func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	return func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
		level := slog.LevelWarn
		if severity&ext_debug_utils.SeverityError != 0 {
			level = slog.LevelError
		}

		logger.Log(context.Background(), level, data.Message,
			slog.Any("type", msgType),
			slog.Any("severity", severity),
		)
		return false
	}
}

// QueueFamilies holds the queue family indices the shell submits and presents on
type QueueFamilies struct {
	Graphics int
	Present  int
}

// Unique returns the distinct families, graphics first
func (f QueueFamilies) Unique() []int {
	if f.Graphics == f.Present {
		return []int{f.Graphics}
	}
	return []int{f.Graphics, f.Present}
}

// SelectQueueFamilies picks a graphics family and a present family from props. A family that
// supports both is preferred so that submit and present share a queue. supportsPresent reports
// whether the family at an index can present to the target surface.
func SelectQueueFamilies(props []*core1_0.QueueFamilyProperties, supportsPresent func(index int) (bool, error)) (QueueFamilies, bool, error) {
	graphics := -1
	present := -1

	for index, family := range props {
		isGraphics := family.QueueFlags&core1_0.QueueGraphics != 0 && family.QueueCount > 0

		canPresent, err := supportsPresent(index)
		if err != nil {
			return QueueFamilies{}, false, errors.Wrapf(err, "querying present support for queue family %d", index)
		}

		if isGraphics && canPresent {
			return QueueFamilies{Graphics: index, Present: index}, true, nil
		}

		if isGraphics && graphics < 0 {
			graphics = index
		}
		if canPresent && present < 0 {
			present = index
		}
	}

	if graphics < 0 || present < 0 {
		return QueueFamilies{}, false, nil
	}
	return QueueFamilies{Graphics: graphics, Present: present}, true, nil
}

// PickPhysicalDevice returns the first physical device that supports swapchains, has a graphics
// family and a present family for surface, and offers at least one surface format and present mode
func PickPhysicalDevice(logger *slog.Logger, instance core1_0.Instance, surface khr_surface.Surface) (core1_0.PhysicalDevice, QueueFamilies, error) {
	devices, _, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, QueueFamilies{}, errors.Wrap(err, "enumerating physical devices")
	}

	for index, device := range devices {
		families, suitable, err := checkPhysicalDevice(device, surface)
		if err != nil {
			return nil, QueueFamilies{}, errors.Wrapf(err, "checking physical device %d", index)
		}

		if !suitable {
			logger.Debug("vulkan::PickPhysicalDevice skipping device", slog.Int("device", index))
			continue
		}

		logger.Info("selected physical device",
			slog.Int("device", index),
			slog.Int("graphicsFamily", families.Graphics),
			slog.Int("presentFamily", families.Present),
		)
		return device, families, nil
	}

	return nil, QueueFamilies{}, errors.Newf("none of the %d physical devices can present to the window surface", len(devices))
}

func checkPhysicalDevice(device core1_0.PhysicalDevice, surface khr_surface.Surface) (QueueFamilies, bool, error) {
	extensions, _, err := device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return QueueFamilies{}, false, errors.Wrap(err, "enumerating device extensions")
	}
	if _, ok := extensions[khr_swapchain.ExtensionName]; !ok {
		return QueueFamilies{}, false, nil
	}

	families, ok, err := SelectQueueFamilies(device.QueueFamilyProperties(), func(index int) (bool, error) {
		supported, _, err := surface.PhysicalDeviceSurfaceSupport(device, index)
		return supported, err
	})
	if err != nil || !ok {
		return QueueFamilies{}, false, err
	}

	formats, _, err := surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return QueueFamilies{}, false, errors.Wrap(err, "querying surface formats")
	}
	modes, _, err := surface.PhysicalDeviceSurfacePresentModes(device)
	if err != nil {
		return QueueFamilies{}, false, errors.Wrap(err, "querying surface present modes")
	}

	return families, len(formats) > 0 && len(modes) > 0, nil
}

// CreateDevice creates a logical device with one queue per unique family and the swapchain
// extension enabled. The portability subset extension is enabled when the device offers it.
func CreateDevice(physicalDevice core1_0.PhysicalDevice, families QueueFamilies) (core1_0.Device, error) {
	var queueInfos []core1_0.DeviceQueueCreateInfo
	for _, family := range families.Unique() {
		queueInfos = append(queueInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	extensionNames := []string{khr_swapchain.ExtensionName}

	extensions, _, err := physicalDevice.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating device extensions")
	}
	if _, ok := extensions[khr_portability_subset.ExtensionName]; ok {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := physicalDevice.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueInfos,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating logical device")
	}

	return device, nil
}
