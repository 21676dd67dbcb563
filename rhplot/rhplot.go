// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rhplot renders a series of relative humidity samples as a line
// chart and encodes it as PNG.
package rhplot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/physic"
)

// Sample is one humidity reading.
type Sample struct {
	Time     time.Time
	Humidity physic.RelativeHumidity
}

// Opts controls the chart layout.
type Opts struct {
	Width    int
	Height   int
	Title    string
	FontSize float64
}

// DefaultOpts is used when Render receives nil opts. Zero fields of a non-nil
// Opts take their value from DefaultOpts, except Title.
var DefaultOpts = Opts{
	Width:    640,
	Height:   320,
	Title:    "HTU21D-F relative humidity",
	FontSize: 14,
}

const padding = 40.0

var errNoSamples = errors.New("rhplot: no samples")

// Render draws samples in order. The vertical axis spans 0-100%RH, widened
// to include any reading outside that range.
func Render(samples []Sample, opts *Opts) (image.Image, error) {
	dc, err := draw(samples, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode renders samples and writes the chart to w as PNG.
func Encode(w io.Writer, samples []Sample, opts *Opts) error {
	dc, err := draw(samples, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("rhplot: error encoding %w", err)
	}
	return nil
}

func draw(samples []Sample, opts *Opts) (*gg.Context, error) {
	if len(samples) == 0 {
		return nil, errNoSamples
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = DefaultOpts.Width
	}
	if height == 0 {
		height = DefaultOpts.Height
	}
	if width <= 2*padding || height <= 2*padding {
		return nil, fmt.Errorf("rhplot: chart %dx%d is too small", width, height)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("rhplot: error loading font %w", err)
	}
	size := opts.FontSize
	if size <= 0 {
		size = DefaultOpts.FontSize
	}

	lo, hi := axisRange(samples)
	w := float64(width)
	h := float64(height)
	plotW := w - 2*padding
	plotH := h - 2*padding
	y := func(rh physic.RelativeHumidity) float64 {
		return padding + plotH*(1-(percent(rh)-lo)/(hi-lo))
	}
	x := func(i int) float64 {
		if len(samples) == 1 {
			return padding + plotW/2
		}
		return padding + plotW*float64(i)/float64(len(samples)-1)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))

	// Grid every 20%RH inside the range.
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for v := math.Ceil(lo/20) * 20; v <= hi; v += 20 {
		py := padding + plotH*(1-(v-lo)/(hi-lo))
		dc.DrawLine(padding, py, w-padding, py)
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f%%", v), padding-4, py, 1, 0.5)
		dc.SetRGB(0.85, 0.85, 0.85)
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(padding, padding, plotW, plotH)
	dc.Stroke()
	if opts.Title != "" {
		dc.DrawStringAnchored(opts.Title, w/2, padding/2, 0.5, 0.5)
	}
	first := samples[0].Time
	last := samples[len(samples)-1].Time
	if !first.IsZero() && !last.IsZero() {
		dc.DrawStringAnchored(first.Format(time.TimeOnly), padding, h-padding/2, 0, 0.5)
		dc.DrawStringAnchored(last.Format(time.TimeOnly), w-padding, h-padding/2, 1, 0.5)
	}

	dc.SetRGB(0.1, 0.4, 0.9)
	dc.SetLineWidth(2)
	for i, s := range samples {
		if i == 0 {
			dc.MoveTo(x(i), y(s.Humidity))
		} else {
			dc.LineTo(x(i), y(s.Humidity))
		}
	}
	dc.Stroke()
	for i, s := range samples {
		dc.DrawCircle(x(i), y(s.Humidity), 3)
	}
	dc.Fill()
	return dc, nil
}

func percent(rh physic.RelativeHumidity) float64 {
	return float64(rh) / float64(physic.PercentRH)
}

// axisRange returns the vertical bounds in percent.
func axisRange(samples []Sample) (lo, hi float64) {
	lo, hi = 0, 100
	for _, s := range samples {
		p := percent(s.Humidity)
		if p < lo {
			lo = math.Floor(p)
		}
		if p > hi {
			hi = math.Ceil(p)
		}
	}
	return lo, hi
}
