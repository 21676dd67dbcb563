// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package htu21d is a container for the HTU21D-F humidity sensor driver and
// the packages that display, chart and store its readings.
//
// The driver itself lives in package htu21df.
package htu21d
