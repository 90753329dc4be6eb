//go:build linux

package i2cdev

import (
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	ioctlRdwr = 0x0707 // I2C_RDWR
	flagRead  = 0x0001 // I2C_M_RD
)

// msg mirrors struct i2c_msg.
type msg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   *byte
}

// rdwrData mirrors struct i2c_rdwr_ioctl_data.
type rdwrData struct {
	msgs  *msg
	nmsgs uint32
}

// Bus is an open /dev/i2c-N device.
type Bus struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// Open opens the i2c-dev character device at path.
func Open(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return &Bus{f: f, path: path}, nil
}

// Tx writes w then reads into r as one combined transaction addressed to addr.
// Empty w and r perform a zero-length write, which only tests for an ACK.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.f == nil {
		return ErrClosed
	}

	msgs := buildMessages(addr, w, r)
	data := rdwrData{msgs: &msgs[0], nmsgs: uint32(len(msgs))}

	conn, err := b.f.SyscallConn()
	if err != nil {
		return errors.Wrap(err, b.path)
	}
	var errno unix.Errno
	ctrlErr := conn.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, ioctlRdwr, uintptr(unsafe.Pointer(&data)))
	})
	runtime.KeepAlive(msgs)
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	if ctrlErr != nil {
		return errors.Wrap(ctrlErr, b.path)
	}
	if errno != 0 {
		return errors.Wrapf(errno, "%s: transfer to 0x%02x", b.path, addr)
	}
	return nil
}

// Close releases the device. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.f == nil {
		return nil
	}
	err := b.f.Close()
	b.f = nil
	return err
}

func buildMessages(addr uint16, w, r []byte) []msg {
	var msgs []msg
	if len(w) > 0 || len(r) == 0 {
		msgs = append(msgs, msg{addr: addr, len: uint16(len(w)), buf: bufPtr(w)})
	}
	if len(r) > 0 {
		msgs = append(msgs, msg{addr: addr, flags: flagRead, len: uint16(len(r)), buf: bufPtr(r)})
	}
	return msgs
}

func bufPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}
