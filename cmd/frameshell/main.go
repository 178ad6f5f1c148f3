package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/frameshell/internal/vulkan"
	"github.com/vkngwrapper/frameshell/shell"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v2"
	"golang.org/x/exp/slog"
)

const (
	windowTitle  = "frameshell"
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	os.Exit(shell.ExitCode(logger, run(logger)))
}

func logLevel() slog.Level {
	if os.Getenv("FRAMESHELL_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func run(logger *slog.Logger) (err error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "initializing sdl")
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(windowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, windowWidth, windowHeight,
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return errors.Wrap(err, "creating window")
	}
	defer window.Destroy()

	boot, err := bootstrap(logger, window)
	if err != nil {
		return err
	}

	// Init takes ownership of everything in boot, including on failure
	sh, err := shell.Init(logger, boot, shell.Options{
		Record: shell.ClearRecorder(clearColor),
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownErr := sh.Shutdown()
		if shutdownErr != nil {
			err = errors.CombineErrors(err, shutdownErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return sh.Run(ctx, pollEvents(window, sh))
}

// bootstrap creates the instance, surface and device for window and wraps them in a driver. On
// failure, everything created so far is destroyed.
func bootstrap(logger *slog.Logger, window *sdl.Window) (shell.Bootstrap, error) {
	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return shell.Bootstrap{}, errors.Wrap(err, "creating vulkan loader")
	}

	instance, messenger, err := vulkan.CreateInstance(logger, loader, vulkan.InstanceOptions{
		ApplicationName: windowTitle,
		Extensions:      window.VulkanGetInstanceExtensions(),
		Validation:      os.Getenv("FRAMESHELL_VALIDATION") != "",
	})
	if err != nil {
		return shell.Bootstrap{}, err
	}

	destroyInstance := func() {
		if messenger != nil {
			messenger.Destroy(nil)
		}
		instance.Destroy(nil)
	}

	surface, err := vkng_sdl2.CreateSurface(instance, khr_surface.CreateExtensionFromInstance(instance), window)
	if err != nil {
		destroyInstance()
		return shell.Bootstrap{}, errors.Wrap(err, "creating window surface")
	}

	physicalDevice, families, err := vulkan.PickPhysicalDevice(logger, instance, surface)
	if err != nil {
		surface.Destroy(nil)
		destroyInstance()
		return shell.Bootstrap{}, err
	}

	device, err := vulkan.CreateDevice(physicalDevice, families)
	if err != nil {
		surface.Destroy(nil)
		destroyInstance()
		return shell.Bootstrap{}, err
	}

	driver, err := vulkan.NewDriver(logger, instance, messenger, physicalDevice, device, vulkan.DriverOptions{})
	if err != nil {
		device.Destroy(nil)
		surface.Destroy(nil)
		destroyInstance()
		return shell.Bootstrap{}, err
	}

	width, height := window.VulkanGetDrawableSize()

	return shell.Bootstrap{
		Driver:         driver,
		Surface:        driver.RegisterSurface(surface),
		GraphicsQueue:  driver.Queue(families.Graphics),
		PresentQueue:   driver.Queue(families.Present),
		GraphicsFamily: families.Graphics,
		PresentFamily:  families.Present,
		Width:          int(width),
		Height:         int(height),
	}, nil
}

// pollEvents drains the SDL event queue before every frame. It reports false once the window
// is closed.
func pollEvents(window *sdl.Window, sh *shell.Context) func() bool {
	return func() bool {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return false
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_MINIMIZED:
					sh.NotifyResize(0, 0)
				case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
					width, height := window.VulkanGetDrawableSize()
					sh.NotifyResize(int(width), int(height))
				}
			}
		}
		return true
	}
}
