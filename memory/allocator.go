package memory

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/frameshell/gpu"
	"github.com/vkngwrapper/frameshell/internal/utils"
	"github.com/vkngwrapper/frameshell/memutils"
	"golang.org/x/exp/slog"
)

const (
	stagingPropertyFlags     = core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent
	deviceLocalPropertyFlags = core1_0.MemoryPropertyDeviceLocal
	hostVisiblePropertyFlags = core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent
)

// Allocator hands out dedicated device memory chunks from three pools.
//
// The staging pool holds at most one chunk. A staging request is served from the existing chunk
// when it is large enough and of the selected memory type; otherwise the old chunk is freed and
// an exact-size replacement is allocated. A staging chunk is therefore only valid until the next
// staging request, and callers must finish with it (including any transfer reading from it)
// before requesting another.
//
// The device-local and host-visible pools only grow. Their chunks stay valid until Destroy.
type Allocator struct {
	logger *slog.Logger
	driver gpu.MemoryDriver
	mutex  *utils.OptionalLock

	memoryProperties *core1_0.PhysicalDeviceMemoryProperties

	staging     *Chunk
	deviceLocal chunkList
	hostVisible chunkList
}

// Statistics reports the chunks currently held by each pool of an Allocator
type Statistics struct {
	Staging     memutils.Statistics
	DeviceLocal memutils.Statistics
	HostVisible memutils.Statistics
	Total       memutils.Statistics
}

// New creates an Allocator that allocates through the provided driver
func New(logger *slog.Logger, driver gpu.MemoryDriver, options CreateOptions) (*Allocator, error) {
	if logger == nil {
		return nil, errors.New("attempted to create an allocator with a nil logger")
	}
	if driver == nil {
		return nil, errors.New("attempted to create an allocator with a nil driver")
	}

	properties := driver.MemoryProperties()
	if properties == nil || len(properties.MemoryTypes) == 0 {
		return nil, errors.New("the driver did not report any memory types")
	}

	return &Allocator{
		logger:           logger,
		driver:           driver,
		mutex:            utils.NewOptionalLock(options.Flags&CreateExternallySynchronized == 0),
		memoryProperties: properties,
	}, nil
}

// FindMemoryTypeIndex returns the lowest memory type index that is permitted by typeBits and whose
// property flags include every flag in required
func (a *Allocator) FindMemoryTypeIndex(typeBits uint32, required core1_0.MemoryPropertyFlags) (int, common.VkResult, error) {
	a.logger.Debug("Allocator::FindMemoryTypeIndex")

	return a.findMemoryTypeIndex(typeBits, required)
}

func (a *Allocator) findMemoryTypeIndex(typeBits uint32, required core1_0.MemoryPropertyFlags) (int, common.VkResult, error) {
	for memTypeIndex, memType := range a.memoryProperties.MemoryTypes {
		if memTypeIndex >= 32 {
			break
		}

		memTypeBit := uint32(1) << memTypeIndex
		if memTypeBit&typeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		if memType.PropertyFlags&required != required {
			continue
		}

		return memTypeIndex, core1_0.VKSuccess, nil
	}

	return -1, core1_0.VKErrorFeatureNotPresent, gpu.NewError(
		"FindMemoryTypeIndex",
		core1_0.VKErrorFeatureNotPresent,
		errors.Newf("no memory type in bits %#x has properties %s", typeBits, required),
	)
}

func (a *Allocator) allocateChunk(reqs *core1_0.MemoryRequirements, memoryTypeIndex int, pool Pool) (*Chunk, common.VkResult, error) {
	memory, res, err := a.driver.AllocateMemory(core1_0.MemoryAllocateInfo{
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		return nil, res, gpu.Check("AllocateMemory", res, err)
	}

	return &Chunk{
		memory:          memory,
		size:            reqs.Size,
		memoryTypeIndex: memoryTypeIndex,
		pool:            pool,
	}, res, nil
}

func validateRequirements(op string, reqs *core1_0.MemoryRequirements) (common.VkResult, error) {
	if reqs == nil {
		return core1_0.VKErrorUnknown, gpu.NewError(op, core1_0.VKErrorUnknown, errors.New("attempted to allocate with nil memory requirements"))
	}

	err := memutils.ValidateRequirements(reqs.Size, reqs.Alignment)
	if err != nil {
		return core1_0.VKErrorUnknown, gpu.NewError(op, core1_0.VKErrorUnknown, err)
	}

	return core1_0.VKSuccess, nil
}

// AllocateStaging returns a host-visible, host-coherent chunk that satisfies reqs, reusing the
// current staging chunk when possible. Any chunk previously returned from a staging request may
// be freed by this call.
func (a *Allocator) AllocateStaging(reqs *core1_0.MemoryRequirements) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateStaging")

	res, err := validateRequirements("AllocateStaging", reqs)
	if err != nil {
		return nil, res, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	memoryTypeIndex, res, err := a.findMemoryTypeIndex(reqs.MemoryTypeBits, stagingPropertyFlags)
	if err != nil {
		return nil, res, err
	}

	if a.staging != nil {
		if a.staging.size >= reqs.Size && a.staging.memoryTypeIndex == memoryTypeIndex {
			return a.staging, core1_0.VKSuccess, nil
		}

		a.logger.Debug("replacing staging chunk",
			slog.Int("oldSize", a.staging.size),
			slog.Int("oldMemoryTypeIndex", a.staging.memoryTypeIndex),
			slog.Int("newSize", reqs.Size),
			slog.Int("newMemoryTypeIndex", memoryTypeIndex),
		)
		a.driver.FreeMemory(a.staging.memory)
		a.staging = nil
	}

	chunk, res, err := a.allocateChunk(reqs, memoryTypeIndex, PoolStaging)
	if err != nil {
		return nil, res, err
	}

	a.staging = chunk
	return chunk, res, nil
}

// AllocateStagingForImage allocates staging memory sized for the provided image
func (a *Allocator) AllocateStagingForImage(image gpu.Image) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateStagingForImage")

	return a.AllocateStaging(a.driver.ImageMemoryRequirements(image))
}

// AllocateStagingForBuffer allocates staging memory sized for the provided buffer
func (a *Allocator) AllocateStagingForBuffer(buffer gpu.Buffer) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateStagingForBuffer")

	return a.AllocateStaging(a.driver.BufferMemoryRequirements(buffer))
}

// AllocateDeviceLocal allocates a new device-local chunk of exactly reqs.Size bytes. The chunk
// is never reused and lives until Destroy.
func (a *Allocator) AllocateDeviceLocal(reqs *core1_0.MemoryRequirements) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateDeviceLocal")

	res, err := validateRequirements("AllocateDeviceLocal", reqs)
	if err != nil {
		return nil, res, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	memoryTypeIndex, res, err := a.findMemoryTypeIndex(reqs.MemoryTypeBits, deviceLocalPropertyFlags)
	if err != nil {
		return nil, res, err
	}

	chunk, res, err := a.allocateChunk(reqs, memoryTypeIndex, PoolDeviceLocal)
	if err != nil {
		return nil, res, err
	}

	a.deviceLocal.Push(chunk)
	return chunk, res, nil
}

func (a *Allocator) AllocateDeviceLocalForImage(image gpu.Image) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateDeviceLocalForImage")

	return a.AllocateDeviceLocal(a.driver.ImageMemoryRequirements(image))
}

func (a *Allocator) AllocateDeviceLocalForBuffer(buffer gpu.Buffer) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateDeviceLocalForBuffer")

	return a.AllocateDeviceLocal(a.driver.BufferMemoryRequirements(buffer))
}

// AllocateHostVisible allocates a new host-visible, host-coherent chunk and maps it for the
// lifetime of the allocator. The mapping is available from Chunk.MappedData.
func (a *Allocator) AllocateHostVisible(reqs *core1_0.MemoryRequirements) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateHostVisible")

	res, err := validateRequirements("AllocateHostVisible", reqs)
	if err != nil {
		return nil, res, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	memoryTypeIndex, res, err := a.findMemoryTypeIndex(reqs.MemoryTypeBits, hostVisiblePropertyFlags)
	if err != nil {
		return nil, res, err
	}

	chunk, res, err := a.allocateChunk(reqs, memoryTypeIndex, PoolHostVisible)
	if err != nil {
		return nil, res, err
	}

	mapped, res, err := a.driver.MapMemory(chunk.memory, 0, chunk.size)
	if err != nil {
		a.driver.FreeMemory(chunk.memory)
		return nil, res, gpu.Check("MapMemory", res, err)
	}

	chunk.mapped = mapped
	a.hostVisible.Push(chunk)
	return chunk, res, nil
}

func (a *Allocator) AllocateHostVisibleForBuffer(buffer gpu.Buffer) (*Chunk, common.VkResult, error) {
	a.logger.Debug("Allocator::AllocateHostVisibleForBuffer")

	return a.AllocateHostVisible(a.driver.BufferMemoryRequirements(buffer))
}

// Statistics returns a snapshot of the chunks held by each pool
func (a *Allocator) Statistics() Statistics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.statistics()
}

func (a *Allocator) statistics() Statistics {
	var stats Statistics
	stats.Staging.Clear()
	stats.DeviceLocal.Clear()
	stats.HostVisible.Clear()
	stats.Total.Clear()

	if a.staging != nil {
		stats.Staging.AddChunk(a.staging.size)
	}
	a.deviceLocal.AddStatistics(&stats.DeviceLocal)
	a.hostVisible.AddStatistics(&stats.HostVisible)

	stats.Total.AddStatistics(&stats.Staging)
	stats.Total.AddStatistics(&stats.DeviceLocal)
	stats.Total.AddStatistics(&stats.HostVisible)

	return stats
}

// BuildStatsString returns a JSON document describing every chunk held by the allocator
func (a *Allocator) BuildStatsString() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stats := a.statistics()
	writer := jwriter.NewWriter()

	obj := writer.Object()

	total := obj.Name("Total").Object()
	stats.Total.PrintJson(&total)
	total.End()

	staging := obj.Name(PoolStaging.String()).Object()
	stats.Staging.PrintJson(&staging)
	if a.staging != nil {
		chunk := staging.Name("Chunk").Object()
		a.staging.printParameters(&chunk)
		chunk.End()
	}
	staging.End()

	deviceLocal := obj.Name(PoolDeviceLocal.String()).Object()
	stats.DeviceLocal.PrintJson(&deviceLocal)
	a.deviceLocal.BuildStatsString(deviceLocal.Name("Chunks"))
	deviceLocal.End()

	hostVisible := obj.Name(PoolHostVisible.String()).Object()
	stats.HostVisible.PrintJson(&hostVisible)
	a.hostVisible.BuildStatsString(hostVisible.Name("Chunks"))
	hostVisible.End()

	obj.End()

	return string(writer.Bytes())
}

// Free returns a device-local or host-visible chunk to the driver before Destroy. Resources bound
// to it must already be destroyed. Staging chunks cannot be freed individually.
func (a *Allocator) Free(chunk *Chunk) error {
	if chunk == nil {
		return nil
	}

	a.logger.Debug("Allocator::Free", slog.String("pool", chunk.pool.String()), slog.Int("size", chunk.size))

	a.mutex.Lock()
	defer a.mutex.Unlock()

	switch chunk.pool {
	case PoolDeviceLocal:
		if !a.deviceLocal.Remove(chunk) {
			return errors.New("attempted to free a device-local chunk this allocator does not hold")
		}
	case PoolHostVisible:
		if !a.hostVisible.Remove(chunk) {
			return errors.New("attempted to free a host-visible chunk this allocator does not hold")
		}
		a.driver.UnmapMemory(chunk.memory)
		chunk.mapped = nil
	default:
		return errors.Newf("chunks from the %s pool cannot be freed individually", chunk.pool)
	}

	a.driver.FreeMemory(chunk.memory)
	return nil
}

// Destroy frees every chunk the allocator handed out, including the staging chunk. Resources
// bound to those chunks must already be destroyed.
func (a *Allocator) Destroy() error {
	a.logger.Debug("Allocator::Destroy")

	a.mutex.Lock()
	defer a.mutex.Unlock()

	err := a.deviceLocal.Validate()
	if err != nil {
		return err
	}
	err = a.hostVisible.Validate()
	if err != nil {
		return err
	}

	for _, chunk := range a.hostVisible.Drain() {
		a.driver.UnmapMemory(chunk.memory)
		a.driver.FreeMemory(chunk.memory)
	}

	for _, chunk := range a.deviceLocal.Drain() {
		a.driver.FreeMemory(chunk.memory)
	}

	if a.staging != nil {
		a.driver.FreeMemory(a.staging.memory)
		a.staging = nil
	}

	return nil
}
