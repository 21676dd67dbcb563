// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package htu21df controls a TE Connectivity HTU21D-F relative humidity
// sensor over I²C.
//
// The device answers at the fixed address 0x40. The driver issues a soft reset
// when it is constructed, then exposes register writes, user register reads
// and humidity reads. Readings are not range checked: values outside 0-100%RH
// caused by bit errors are returned as computed.
//
// Range: 0 - 100 %RH
//
// Accuracy: +/- 2 %RH (20 - 80 %RH)
//
// Resolution: 0.04 %RH at 12 bits
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/1899_HTU21D.pdf
package htu21df
