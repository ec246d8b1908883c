//go:build linux

package serialport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// lockDir is a variable so tests can point it at a temp directory.
var lockDir = "/var/lock"

// lockDevice takes an advisory flock on a per-device lock file and returns
// the release function. A held lock means another process is mid-exchange
// on the same port.
//
// When the lock directory is not writable (common for non-root users) the
// lock is skipped: better to run unlocked than to refuse to run at all.
func lockDevice(device string) (func(), error) {
	name := "ubxctl" + strings.ReplaceAll(device, "/", "-") + ".lock"
	path := filepath.Join(lockDir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return func() {}, nil
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("serialport: %s is in use by another process", device)
	}
	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		_ = f.Close()
	}, nil
}
