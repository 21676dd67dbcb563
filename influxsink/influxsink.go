// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package influxsink writes humidity readings to an InfluxDB v2 bucket.
package influxsink

import (
	"context"
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultMeasurement is used when Opts.Measurement is empty.
	DefaultMeasurement = "humidity"
	// FieldRH holds the reading in percent.
	FieldRH = "rh"
	// TagSensor identifies the device the reading comes from.
	TagSensor = "sensor"
)

// Opts configures the connection and the points written.
type Opts struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
	// Tags are added to every point. TagSensor defaults to "htu21df".
	Tags map[string]string
}

// Sink writes points synchronously.
type Sink struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
	opts   Opts
}

// New returns a Sink. No request is sent until the first Write.
func New(opts Opts) (*Sink, error) {
	if opts.URL == "" {
		return nil, errors.New("influxsink: missing URL")
	}
	if opts.Org == "" || opts.Bucket == "" {
		return nil, errors.New("influxsink: missing organization or bucket")
	}
	if opts.Measurement == "" {
		opts.Measurement = DefaultMeasurement
	}
	tags := map[string]string{TagSensor: "htu21df"}
	for k, v := range opts.Tags {
		tags[k] = v
	}
	opts.Tags = tags
	client := influxdb2.NewClient(opts.URL, opts.Token)
	return &Sink{client: client, writer: client.WriteAPIBlocking(opts.Org, opts.Bucket), opts: opts}, nil
}

// Write stores rh taken at ts.
func (s *Sink) Write(ctx context.Context, rh physic.RelativeHumidity, ts time.Time) error {
	if err := s.writer.WritePoint(ctx, s.point(rh, ts)); err != nil {
		return fmt.Errorf("influxsink: error writing point %w", err)
	}
	return nil
}

func (s *Sink) point(rh physic.RelativeHumidity, ts time.Time) *write.Point {
	fields := map[string]interface{}{
		FieldRH: float64(rh) / float64(physic.PercentRH),
	}
	return influxdb2.NewPoint(s.opts.Measurement, s.opts.Tags, fields, ts)
}

// Close releases the client resources.
func (s *Sink) Close() {
	s.client.Close()
}

func (s *Sink) String() string {
	return fmt.Sprintf("influxsink(%s/%s)", s.opts.Org, s.opts.Bucket)
}
