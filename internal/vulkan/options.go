package vulkan

import "github.com/vkngwrapper/core/v2/common"

type DriverFlags int32

var driverFlagsMapping = common.NewFlagStringMapping[DriverFlags]()

func (f DriverFlags) Register(str string) {
	driverFlagsMapping.Register(f, str)
}

func (f DriverFlags) String() string {
	return driverFlagsMapping.FlagsToString(f)
}

const (
	// DriverExternallySynchronized skips locking the handle tables. Only set it when every call
	// into the driver is made from a single goroutine.
	DriverExternallySynchronized DriverFlags = 1 << iota
)

func init() {
	DriverExternallySynchronized.Register("DriverExternallySynchronized")
}

// DriverOptions contains optional settings for a Driver
type DriverOptions struct {
	Flags DriverFlags
}
