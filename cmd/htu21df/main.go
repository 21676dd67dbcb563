// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// htu21df reads relative humidity from an HTU21D-F sensor.
//
// Readings can be drawn as a bar on the terminal, saved as a PNG chart and
// written to an InfluxDB v2 bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/htu21d/htu21df"
	"github.com/GermanBionicSystems/htu21d/influxsink"
	"github.com/GermanBionicSystems/htu21d/rhbar"
	"github.com/GermanBionicSystems/htu21d/rhplot"
)

func newLogger(level int) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	logger.SetLevel(logrus.Level(level))
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.SpacePadding = 50
	logger.SetFormatter(customFormatter)
	return logrus.NewEntry(logger).WithField("prefix", "htu21df")
}

// checkSampling validates the -n and -i flags.
func checkSampling(count int, interval time.Duration) error {
	if count < 0 {
		return errors.Errorf("-n must be 0 or more, got %d", count)
	}
	if interval <= 0 {
		return errors.New("-i must be positive")
	}
	return nil
}

func mainImpl() error {
	busName := flag.String("b", "", "I²C bus to use")
	count := flag.Int("n", 1, "number of samples, 0 to run until interrupted")
	interval := flag.Duration("i", time.Second, "interval between samples")
	userReg := flag.Bool("userreg", false, "print the user register after reset")
	bar := flag.Bool("bar", false, "draw each reading as a bar")
	pngPath := flag.String("png", "", "write a chart of the readings to this PNG file")
	influxURL := flag.String("influx-url", "", "InfluxDB v2 URL, empty to disable")
	influxToken := flag.String("influx-token", os.Getenv("INFLUX_TOKEN"), "InfluxDB token")
	influxOrg := flag.String("influx-org", "", "InfluxDB organization")
	influxBucket := flag.String("influx-bucket", "", "InfluxDB bucket")
	loglevel := flag.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.Errorf("unexpected argument: %s", flag.Args())
	}
	if err := checkSampling(*count, *interval); err != nil {
		return err
	}
	log := newLogger(*loglevel)

	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize periph")
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return errors.Wrap(err, "failed to open I²C bus")
	}
	defer bus.Close()

	dev, err := htu21df.New(bus)
	if err != nil {
		return errors.Wrap(err, "failed to initialize HTU21D-F")
	}
	log.WithField("bus", bus.String()).Debug("device reset")

	if *userReg {
		legacy, err := dev.UserRegister()
		if err != nil {
			return err
		}
		reg, err := dev.ReadUserRegister()
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"userreg": fmt.Sprintf("0x%02x", reg), "legacy": fmt.Sprintf("0x%02x", legacy)}).Info("user register")
	}

	var sink *influxsink.Sink
	if *influxURL != "" {
		sink, err = influxsink.New(influxsink.Opts{URL: *influxURL, Token: *influxToken, Org: *influxOrg, Bucket: *influxBucket})
		if err != nil {
			return err
		}
		defer sink.Close()
	}
	var display *rhbar.Dev
	if *bar {
		display = rhbar.New(nil)
		defer display.Halt()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var samples []rhplot.Sample
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for i := 0; *count == 0 || i < *count; i++ {
		if i != 0 {
			select {
			case <-ctx.Done():
				log.Info("interrupted")
				return writeChart(*pngPath, samples, log)
			case <-ticker.C:
			}
		}
		h, err := dev.Humidity()
		if err != nil {
			// No retry; the error is reported and sampling stops.
			return errors.Wrap(err, "failed to read humidity")
		}
		now := time.Now()
		rh := physic.RelativeHumidity(float64(h) * float64(physic.PercentRH))
		samples = append(samples, rhplot.Sample{Time: now, Humidity: rh})
		if h < 0 || h > 100 {
			log.WithField("rh", h).Warn("reading out of range")
		}
		if display != nil {
			if err := display.Show(rh); err != nil {
				return err
			}
		} else {
			log.WithField("rh", fmt.Sprintf("%.2f", h)).Info("humidity")
		}
		if sink != nil {
			if err := sink.Write(ctx, rh, now); err != nil {
				log.WithError(err).Error("failed to store reading")
			}
		}
	}
	return writeChart(*pngPath, samples, log)
}

func writeChart(path string, samples []rhplot.Sample, log *logrus.Entry) error {
	if path == "" || len(samples) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create chart")
	}
	if err := rhplot.Encode(f, samples, nil); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write chart")
	}
	log.WithFields(logrus.Fields{"path": path, "samples": len(samples)}).Info("chart written")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "htu21df: %s.\n", err)
		os.Exit(1)
	}
}
