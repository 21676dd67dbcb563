// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package htu21df

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Address is the I²C address of the HTU21D-F. It can't be changed.
const Address i2c.Addr = 0x40

// Register is a command code understood by the device.
type Register byte

const (
	// ReadTemperature triggers a temperature measurement (hold master).
	ReadTemperature Register = 0xe3
	// ReadHumidity triggers a humidity measurement (hold master).
	ReadHumidity Register = 0xe5
	// WriteUserRegister writes the configuration byte.
	WriteUserRegister Register = 0xe6
	// ReadUserRegister reads the configuration byte.
	ReadUserRegister Register = 0xe7
	// SoftReset reboots the device and restores the default user register.
	SoftReset Register = 0xfe
)

const (
	// The two low bits of the humidity LSB carry status, not signal.
	statusMask byte = 0b1111_1100

	// Time for the device to come back after a soft reset.
	resetDuration = 15 * time.Millisecond
)

func (r Register) String() string {
	switch r {
	case ReadTemperature:
		return "ReadTemperature"
	case ReadHumidity:
		return "ReadHumidity"
	case WriteUserRegister:
		return "WriteUserRegister"
	case ReadUserRegister:
		return "ReadUserRegister"
	case SoftReset:
		return "SoftReset"
	}
	return fmt.Sprintf("Register(0x%02x)", byte(r))
}

// Dev is a handle to an HTU21D-F sensor.
//
// The Dev owns its bus for its whole lifetime. It does no locking; callers
// sharing a physical bus between devices must serialize access themselves.
type Dev struct {
	d *i2c.Dev
}

// New returns a Dev communicating over the bus b. The device is soft reset
// before New returns. If the reset fails, no Dev is returned and the bus error
// is returned wrapped; use errors.Is or errors.As to inspect it.
func New(b i2c.Bus) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: b, Addr: uint16(Address)}}
	if err := dev.Reset(); err != nil {
		return nil, err
	}
	time.Sleep(resetDuration)
	return dev, nil
}

// Reset issues a soft reset. The user register goes back to its default
// value, so any configuration written earlier must be written again.
//
// As with every Dev method, a bus error is wrapped with the "htu21df:" prefix
// and is otherwise unchanged; errors.Is matches the original error.
func (dev *Dev) Reset() error {
	if err := dev.d.Tx([]byte{byte(SoftReset)}, nil); err != nil {
		return fmt.Errorf("htu21df: error resetting %w", err)
	}
	return nil
}

// WriteRegister writes the single byte data to reg. The value is sent as is;
// checking that data is meaningful for reg is left to the caller.
func (dev *Dev) WriteRegister(reg Register, data byte) error {
	if err := dev.d.Tx([]byte{byte(reg), data}, nil); err != nil {
		return fmt.Errorf("htu21df: error writing %s %w", reg, err)
	}
	return nil
}

// UserRegister returns one byte read after sending the ReadTemperature
// command, which is what this driver has always done.
//
// BUG(htu21df): UserRegister sends ReadTemperature (0xE3), not
// ReadUserRegister (0xE7). On an HTU21D-F the byte returned is the first byte
// of a temperature measurement. Use Dev.ReadUserRegister to read the
// configuration byte.
func (dev *Dev) UserRegister() (byte, error) {
	return dev.readByte(ReadTemperature)
}

// ReadUserRegister returns the raw configuration byte.
func (dev *Dev) ReadUserRegister() (byte, error) {
	return dev.readByte(ReadUserRegister)
}

func (dev *Dev) readByte(reg Register) (byte, error) {
	r := make([]byte, 1)
	if err := dev.d.Tx([]byte{byte(reg)}, r); err != nil {
		return 0, fmt.Errorf("htu21df: error reading %s %w", reg, err)
	}
	return r[0], nil
}

// Humidity triggers a measurement and returns the relative humidity in
// percent. The result is not clamped to 0-100.
func (dev *Dev) Humidity() (float32, error) {
	r := make([]byte, 3)
	if err := dev.d.Tx([]byte{byte(ReadHumidity)}, r); err != nil {
		return 0, fmt.Errorf("htu21df: error reading humidity %w", err)
	}
	return countToHumidity(r), nil
}

// maskStatus clears the status bits of a measurement byte.
func maskStatus(b byte) byte {
	return b & statusMask
}

// countToHumidity converts a measurement. The third byte is the checksum and
// is ignored.
func countToHumidity(r []byte) float32 {
	// RH=-6 + 125*(count/65536)
	count := uint16(r[0]) + uint16(maskStatus(r[1]))<<8
	return float32(count)*125.0/65536.0 - 6.0
}

// Sense reads the humidity and writes it to e.Humidity. The other fields of e
// are left untouched since the temperature isn't read. On error, e is not
// modified.
func (dev *Dev) Sense(e *physic.Env) error {
	h, err := dev.Humidity()
	if err != nil {
		return err
	}
	e.Humidity = physic.RelativeHumidity(float64(h) * float64(physic.PercentRH))
	return nil
}

// Precision returns the resolution of the humidity measurement at the default
// 12 bit setting.
func (dev *Dev) Precision(e *physic.Env) {
	e.Temperature = 0
	e.Pressure = 0
	e.Humidity = 40 * physic.MilliRH
}

// Halt implements conn.Resource. The device has nothing to stop.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return "htu21df"
}

var _ conn.Resource = &Dev{}
