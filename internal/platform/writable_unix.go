//go:build !windows

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func checkWritable(path string, _ os.FileInfo) error {
	err := unix.Access(path, unix.W_OK|unix.X_OK)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EROFS) || errors.Is(err, unix.EPERM) {
		return ErrNotWritable
	}
	return err
}
