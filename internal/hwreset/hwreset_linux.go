//go:build linux

package hwreset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// openLine requests the given BCM GPIO as a digital output via the Linux
// GPIO character device. The line idles high because RESET_N is active low.
//
// On Pi, header GPIOs are commonly named "GPIO17" etc., and kernel variants
// differ on which gpiochip exposes them, so likely chips are tried first
// and then everything under /dev.
func openLine(pin int) (*gpiocdev.Line, *gpiocdev.Chip, error) {
	if pin <= 0 {
		return nil, nil, fmt.Errorf("hwreset: invalid gpio pin %d", pin)
	}
	lineName := fmt.Sprintf("GPIO%d", pin)

	chipCandidates := []string{"/dev/gpiochip0", "/dev/gpiochip4"}
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(lineName)
		if err != nil {
			_ = chip.Close()
			continue
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("ubxctl-reset"))
		if err != nil {
			_ = chip.Close()
			continue
		}
		return line, chip, nil
	}
	return nil, nil, fmt.Errorf("hwreset: gpio line %q not found (or busy)", lineName)
}

// Pulse drives the receiver's RESET_N line low for hold, then releases it.
// This resets a receiver that no longer answers UBX at all; it is an
// electrical reset, not a protocol message.
func Pulse(pin int, hold time.Duration) error {
	if hold <= 0 {
		hold = 100 * time.Millisecond
	}

	line, chip, err := openLine(pin)
	if err != nil {
		return err
	}
	defer func() {
		_ = line.Close()
		_ = chip.Close()
	}()

	if err := line.SetValue(0); err != nil {
		return fmt.Errorf("hwreset: assert reset: %w", err)
	}
	time.Sleep(hold)
	if err := line.SetValue(1); err != nil {
		return fmt.Errorf("hwreset: release reset: %w", err)
	}
	return nil
}
