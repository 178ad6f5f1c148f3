package memory

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/frameshell/gpu"
)

// Pool identifies which of the allocator's pools a Chunk belongs to
type Pool int32

const (
	PoolStaging Pool = iota
	PoolDeviceLocal
	PoolHostVisible
)

var poolNames = map[Pool]string{
	PoolStaging:     "Staging",
	PoolDeviceLocal: "DeviceLocal",
	PoolHostVisible: "HostVisible",
}

func (p Pool) String() string {
	name, ok := poolNames[p]
	if !ok {
		return "Unknown"
	}
	return name
}

// Chunk is a single dedicated device memory allocation. Resources bound to a chunk always bind at
// offset 0 and do not own it: the Allocator frees every chunk it handed out.
type Chunk struct {
	memory          gpu.DeviceMemory
	size            int
	memoryTypeIndex int
	pool            Pool

	mapped unsafe.Pointer

	prev *Chunk
	next *Chunk
}

func (c *Chunk) Memory() gpu.DeviceMemory {
	return c.memory
}

func (c *Chunk) Size() int {
	return c.size
}

func (c *Chunk) MemoryTypeIndex() int {
	return c.memoryTypeIndex
}

func (c *Chunk) Pool() Pool {
	return c.pool
}

// MappedData returns the persistent host mapping of a host-visible chunk, or nil for chunks in
// the other pools
func (c *Chunk) MappedData() unsafe.Pointer {
	return c.mapped
}

func (c *Chunk) printParameters(json *jwriter.ObjectState) {
	json.Name("Pool").String(c.pool.String())
	json.Name("Size").Int(c.size)
	json.Name("MemoryTypeIndex").Int(c.memoryTypeIndex)
	json.Name("Mapped").Bool(c.mapped != nil)
}
