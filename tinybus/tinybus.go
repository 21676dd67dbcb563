// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinybus exposes a TinyGo drivers.I2C as a periph i2c.Bus, so the
// drivers in this module can run on a bus handed out by TinyGo board code.
//
// drivers.I2C.Tx must do a write followed by a repeated-start read when both
// w and r are given, which matches i2c.Bus.Tx.
package tinybus

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSpeed is returned by SetSpeed. The bus clock is set by the board
// configuration on TinyGo.
var ErrSpeed = errors.New("tinybus: SetSpeed is not supported")

// Bus adapts a drivers.I2C.
type Bus struct {
	b    drivers.I2C
	name string
}

// New returns a Bus named name wrapping b.
func New(b drivers.I2C, name string) *Bus {
	if name == "" {
		name = "tinybus"
	}
	return &Bus{b: b, name: name}
}

func (b *Bus) String() string {
	return b.name
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.b.Tx(addr, w, r)
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeed
}

var _ i2c.Bus = &Bus{}
