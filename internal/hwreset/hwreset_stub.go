//go:build !linux

package hwreset

import (
	"fmt"
	"time"
)

func Pulse(pin int, hold time.Duration) error {
	return fmt.Errorf("hwreset: gpio reset not supported on this platform")
}
