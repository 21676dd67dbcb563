// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rhbar draws relative humidity readings as a one line colored bar on
// the terminal (stdout) using ANSI color codes.
//
// Filled cells are colored by comfort band: dry, comfortable or humid.
package rhbar

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Comfort band limits. DryBelow and HumidAbove are themselves comfortable.
const (
	DryBelow    = 30 * physic.PercentRH
	HumidAbove  = 60 * physic.PercentRH
	fullScale   = 100 * physic.PercentRH
	defaultSize = 40
)

var (
	colorDry   = color.NRGBA{R: 0xe0, G: 0x80, B: 0x20, A: 0xff}
	colorOK    = color.NRGBA{R: 0x20, G: 0xc0, B: 0x40, A: 0xff}
	colorHumid = color.NRGBA{R: 0x20, G: 0x60, B: 0xe0, A: 0xff}
	colorEmpty = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Opts represents the options available for this display.
type Opts struct {
	// Width is the number of cells of the bar. Defaults to 40.
	Width   int
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a humidity bar printed to the console.
type Dev struct {
	w       io.Writer
	width   int
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console. opts may be nil.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	width := opts.Width
	if width <= 0 {
		width = defaultSize
	}
	return &Dev{w: w, width: width, palette: *p}
}

func (d *Dev) String() string {
	return "RHBar"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the bar for rh. Values outside 0-100%RH are drawn as an
// empty or full bar; the printed number is not altered.
func (d *Dev) Show(rh physic.RelativeHumidity) error {
	filled := Cells(rh, d.width)
	c := BandColor(rh)
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.width; i++ {
		if i < filled {
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		} else {
			_, _ = io.WriteString(&d.buf, d.palette.Block(colorEmpty))
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %s ", rh)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Cells returns how many of width cells are filled for rh.
func Cells(rh physic.RelativeHumidity, width int) int {
	if rh <= 0 {
		return 0
	}
	if rh >= fullScale {
		return width
	}
	return int(int64(rh) * int64(width) / int64(fullScale))
}

// BandColor returns the color used for rh.
func BandColor(rh physic.RelativeHumidity) color.NRGBA {
	switch {
	case rh < DryBelow:
		return colorDry
	case rh > HumidAbove:
		return colorHumid
	default:
		return colorOK
	}
}

var _ conn.Resource = &Dev{}
