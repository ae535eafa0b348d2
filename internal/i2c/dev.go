//go:build linux

package i2c

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// i2cSlave is the I2C_SLAVE ioctl request from <linux/i2c-dev.h>; it is not
// exported by golang.org/x/sys/unix.
const i2cSlave = 0x0703

// Dev is a Bus backed by a Linux i2c-dev character device (e.g. /dev/i2c-1).
type Dev struct {
	f *os.File
}

// Open opens an i2c-dev device node.
func Open(path string) (*Dev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c device %q: %w", path, err)
	}
	return &Dev{f: f}, nil
}

// ReadReg addresses the slave, writes the register pointer and reads back
// len(buf) bytes. The write and read happen as separate bus transactions,
// which the LM75 register-pointer protocol tolerates.
func (d *Dev) ReadReg(addr uint16, reg byte, buf []byte) error {
	if err := unix.IoctlSetInt(int(d.f.Fd()), i2cSlave, int(addr)); err != nil {
		return fmt.Errorf("select slave 0x%02x: %w", addr, err)
	}
	if _, err := d.f.Write([]byte{reg}); err != nil {
		return fmt.Errorf("write register pointer 0x%02x: %w", reg, err)
	}
	if _, err := io.ReadFull(d.f, buf); err != nil {
		return fmt.Errorf("read %d bytes from 0x%02x: %w", len(buf), addr, err)
	}
	return nil
}

// Close releases the device node.
func (d *Dev) Close() error {
	return d.f.Close()
}
