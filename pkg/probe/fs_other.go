//go:build !unix

package probe

import (
	"io/fs"
	"os"
)

// Access approximates access(2) from the owner permission bits.
func (r *RealFileSystem) Access(name string, mode uint32) error {
	info, err := os.Stat(r.path(name))
	if err != nil {
		return err
	}
	perm := uint32(info.Mode().Perm()>>6) & 7
	if perm&mode != mode {
		return fs.ErrPermission
	}
	return nil
}
