//go:build windows

package platform

import "os"

func checkWritable(_ string, info os.FileInfo) error {
	if info.Mode().Perm()&0200 == 0 {
		return ErrNotWritable
	}
	return nil
}
