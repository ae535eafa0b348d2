//go:build !linux

package i2c

import "errors"

// Dev is not available on non-Linux platforms.
type Dev struct{}

// Open returns an error on non-Linux platforms.
func Open(path string) (*Dev, error) {
	return nil, errors.New("i2c: not supported on this platform (requires Linux)")
}

func (d *Dev) ReadReg(addr uint16, reg byte, buf []byte) error {
	return errors.New("i2c: not supported")
}

func (d *Dev) Close() error {
	return nil
}
