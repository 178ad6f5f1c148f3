package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/internal/utils"
)

// handleTable maps the opaque handles handed out through gpu.Driver to the vkngwrapper objects
// behind them. Handles are never reused: the zero handle is the null handle and every
// registration takes the next value.
type handleTable[H ~uint64, T any] struct {
	kind    string
	mutex   *utils.OptionalLock
	last    H
	objects *swiss.Map[H, T]
}

func newHandleTable[H ~uint64, T any](kind string, useMutex bool) *handleTable[H, T] {
	return &handleTable[H, T]{
		kind:    kind,
		mutex:   utils.NewOptionalLock(useMutex),
		objects: swiss.NewMap[H, T](16),
	}
}

func (t *handleTable[H, T]) register(object T) H {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.last++
	t.objects.Put(t.last, object)
	return t.last
}

func (t *handleTable[H, T]) get(handle H) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	object, ok := t.objects.Get(handle)
	if !ok {
		return object, errors.Newf("unknown %s handle %d", t.kind, handle)
	}
	return object, nil
}

// getOptional resolves handle, mapping the null handle to the zero object
func (t *handleTable[H, T]) getOptional(handle H) (T, error) {
	if handle == 0 {
		var zero T
		return zero, nil
	}
	return t.get(handle)
}

func (t *handleTable[H, T]) getAll(handles []H) ([]T, error) {
	if len(handles) == 0 {
		return nil, nil
	}

	objects := make([]T, 0, len(handles))
	for _, handle := range handles {
		object, err := t.get(handle)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (t *handleTable[H, T]) remove(handle H) (T, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	object, ok := t.objects.Get(handle)
	if ok {
		t.objects.Delete(handle)
	}
	return object, ok
}

func (t *handleTable[H, T]) count() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.objects.Count()
}

// imageLists holds the image handles registered for each swapchain. Those images belong to the
// swapchain and leave the image table when it is destroyed.
type imageLists struct {
	mutex *utils.OptionalLock
	lists *swiss.Map[gpu.Swapchain, []gpu.Image]
}

func newImageLists(useMutex bool) *imageLists {
	return &imageLists{
		mutex: utils.NewOptionalLock(useMutex),
		lists: swiss.NewMap[gpu.Swapchain, []gpu.Image](4),
	}
}

// getOrLoad returns the cached list for swapchain, calling load under the lock on a miss so that
// the images are registered once
func (l *imageLists) getOrLoad(swapchain gpu.Swapchain, load func() ([]gpu.Image, common.VkResult, error)) ([]gpu.Image, common.VkResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	images, ok := l.lists.Get(swapchain)
	if ok {
		return images, core1_0.VKSuccess, nil
	}

	images, res, err := load()
	if err != nil {
		return nil, res, err
	}
	l.lists.Put(swapchain, images)
	return images, res, nil
}

// take removes and returns the list for swapchain
func (l *imageLists) take(swapchain gpu.Swapchain) []gpu.Image {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	images, ok := l.lists.Get(swapchain)
	if ok {
		l.lists.Delete(swapchain)
	}
	return images
}

func (l *imageLists) count() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.lists.Count()
}
