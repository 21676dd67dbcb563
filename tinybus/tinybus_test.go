// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinybus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/GermanBionicSystems/htu21d/htu21df"
	"periph.io/x/conn/v3/physic"
)

// hostI2C records transactions and answers reads from a queue.
type hostI2C struct {
	tx      []tx
	answers [][]byte
	err     error
}

type tx struct {
	addr uint16
	w    []byte
	rn   int
}

func (h *hostI2C) Tx(addr uint16, w, r []byte) error {
	h.tx = append(h.tx, tx{addr: addr, w: append([]byte(nil), w...), rn: len(r)})
	if h.err != nil {
		return h.err
	}
	if len(r) != 0 && len(h.answers) != 0 {
		copy(r, h.answers[0])
		h.answers = h.answers[1:]
	}
	return nil
}

func (h *hostI2C) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return h.Tx(uint16(addr), []byte{r}, buf)
}

func (h *hostI2C) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return h.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func TestBus(t *testing.T) {
	host := &hostI2C{}
	b := New(host, "")
	if b.String() != "tinybus" {
		t.Errorf("unexpected name %q", b.String())
	}
	if err := b.SetSpeed(400 * physic.KiloHertz); !errors.Is(err, ErrSpeed) {
		t.Errorf("expected ErrSpeed, got %v", err)
	}
	host.err = errors.New("nack")
	if err := b.Tx(0x40, []byte{1}, nil); !errors.Is(err, host.err) {
		t.Errorf("expected the TinyGo error, got %v", err)
	}
}

func TestHTU21DF(t *testing.T) {
	host := &hostI2C{answers: [][]byte{{0x4e, 0x85, 0x00}}}
	dev, err := htu21df.New(New(host, "i2c0"))
	if err != nil {
		t.Fatal(err)
	}
	h, err := dev.Humidity()
	if err != nil {
		t.Fatal(err)
	}
	if h < 58.6 || h > 58.61 {
		t.Errorf("unexpected humidity %f", h)
	}
	expected := []tx{
		{addr: 0x40, w: []byte{0xfe}},
		{addr: 0x40, w: []byte{0xe5}, rn: 3},
	}
	if len(host.tx) != len(expected) {
		t.Fatalf("expected %d transactions, got %#v", len(expected), host.tx)
	}
	for i, e := range expected {
		got := host.tx[i]
		if got.addr != e.addr || !bytes.Equal(got.w, e.w) || got.rn != e.rn {
			t.Errorf("tx[%d]=%#v expected %#v", i, got, e)
		}
	}
}
