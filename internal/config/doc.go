// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads indicator configuration from YAML or HCL files.
//
// Both formats describe an optional `bar` and an optional `throbber` section.
// Fields left out keep their defaults. Colors are given by name (see
// color.Parse) and delays in milliseconds:
//
//	bar:
//	  colors: [cyan, green]
//	  color_cycle_delay_ms: 600
//	  width: 40
//	throbber:
//	  frames: ["|", "/", "-", "\\"]
//	  frame_delay_ms: 150
//
// The HCL form uses blocks:
//
//	bar {
//	  colors = ["cyan", "green"]
//	  width  = 40
//	}
package config
