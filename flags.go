package arena

import (
	"fmt"
	"strings"
)

// Flags modify how an operation acquires memory.
type Flags uint8

const (
	// ZeroMem zero-fills memory explicitly instead of relying on the OS
	// handing out zeroed pages.
	ZeroMem Flags = 1 << iota
	// SoftFail returns an error from a failed mapping instead of invoking
	// the arena's out-of-memory handler.
	SoftFail
)

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f&ZeroMem != 0 {
		parts = append(parts, "ZeroMem")
	}
	if f&SoftFail != 0 {
		parts = append(parts, "SoftFail")
	}
	if rest := f &^ (ZeroMem | SoftFail); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}
