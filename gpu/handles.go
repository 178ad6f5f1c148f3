package gpu

// Handles are opaque identifiers issued by a Driver. The zero value of every handle type is the
// null handle.
type (
	Image         uint64
	ImageView     uint64
	Buffer        uint64
	DeviceMemory  uint64
	CommandPool   uint64
	CommandBuffer uint64
	Queue         uint64
	Semaphore     uint64
	Fence         uint64
	Surface       uint64
	Swapchain     uint64
)

// QueueFamilyIgnored is passed as a barrier's queue family index when no ownership transfer
// is taking place. It becomes VK_QUEUE_FAMILY_IGNORED once narrowed to 32 bits.
const QueueFamilyIgnored = -1
