package frame

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/frameshell/gpu"
)

// SyncState holds the synchronization objects reused by every frame. ImageAcquired is signalled by
// the presentation engine when the acquired image may be written, RenderingFinished by the
// frame's submission when the image may be presented. InFlight is optional: when set, it is
// signalled by the submission and waited on before the next frame reuses command buffers.
type SyncState struct {
	ImageAcquired     gpu.Semaphore
	RenderingFinished gpu.Semaphore
	InFlight          gpu.Fence
}

// CreateSyncState creates the semaphore pair and, if withFence is set, a fence that starts
// signalled so the first frame does not block on it
func CreateSyncState(driver gpu.SyncDriver, withFence bool) (*SyncState, error) {
	state := &SyncState{}

	var err error
	state.ImageAcquired, err = createSemaphore(driver)
	if err != nil {
		return nil, err
	}

	state.RenderingFinished, err = createSemaphore(driver)
	if err != nil {
		state.Destroy(driver)
		return nil, err
	}

	if withFence {
		fence, res, err := driver.CreateFence(true)
		if err != nil {
			state.Destroy(driver)
			return nil, gpu.Check("CreateFence", res, err)
		}
		state.InFlight = fence
	}

	return state, nil
}

func createSemaphore(driver gpu.SyncDriver) (gpu.Semaphore, error) {
	semaphore, res, err := driver.CreateSemaphore()
	if err != nil {
		return 0, gpu.Check("CreateSemaphore", res, err)
	}
	return semaphore, nil
}

// Destroy destroys every object in the sync state. The device must be idle.
func (s *SyncState) Destroy(driver gpu.SyncDriver) {
	if s.InFlight != 0 {
		driver.DestroyFence(s.InFlight)
		s.InFlight = 0
	}
	if s.RenderingFinished != 0 {
		driver.DestroySemaphore(s.RenderingFinished)
		s.RenderingFinished = 0
	}
	if s.ImageAcquired != 0 {
		driver.DestroySemaphore(s.ImageAcquired)
		s.ImageAcquired = 0
	}
}

// PerImageCommandBuffers holds one command buffer per swapchain image, indexed like the
// swapchain's images
type PerImageCommandBuffers struct {
	Pool    gpu.CommandPool
	Buffers []gpu.CommandBuffer
}

func (b *PerImageCommandBuffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Buffers)
}

// Buffer returns the command buffer for the provided image index
func (b *PerImageCommandBuffers) Buffer(imageIndex int) (gpu.CommandBuffer, error) {
	if imageIndex < 0 || imageIndex >= b.Len() {
		return 0, errors.Newf("image index %d has no command buffer; %d are recorded", imageIndex, b.Len())
	}
	return b.Buffers[imageIndex], nil
}
