//go:build unix

package probe

import "golang.org/x/sys/unix"

// Access checks permissions for the real user, as access(2) does.
func (r *RealFileSystem) Access(name string, mode uint32) error {
	return unix.Access(r.path(name), mode)
}
