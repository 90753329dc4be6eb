package probe

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Access modes for FileSystem.Access, matching access(2).
const (
	AccessExec  uint32 = 1
	AccessWrite uint32 = 2
	AccessRead  uint32 = 4
)

// FileSystem abstracts file system operations for testability.
// Paths are absolute slash paths as they appear on the target board.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	// Access reports whether the calling process may use name with the given
	// access mode bits, returning nil when it can.
	Access(name string, mode uint32) error
}

// RealFileSystem implements FileSystem using the actual file system.
// When Root is set every path is resolved beneath it, so a fake board
// layout in a temporary directory can stand in for "/".
type RealFileSystem struct {
	Root string
}

func (r *RealFileSystem) path(name string) string {
	if r.Root == "" {
		return name
	}
	return filepath.Join(r.Root, filepath.FromSlash(name))
}

// Stat returns file info for the given path, following symlinks.
func (r *RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(r.path(name))
}

func (r *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(r.path(name))
}

// ReadDir lists a directory sorted by name. Entry types come from lstat,
// so symlinks are not reported as directories.
func (r *RealFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(r.path(name))
}
