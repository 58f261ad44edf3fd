// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "fmt"

// HexColor is a "#RRGGBB" color value (spec.md §6: focused_color,
// border_color, tab_bar_background_color, active_tab_background_color).
type HexColor struct {
	R, G, B uint8
}

// UnmarshalText implements encoding.TextUnmarshaler, the interface
// go-toml/v2 uses to decode a TOML string into a HexColor.
func (c *HexColor) UnmarshalText(text []byte) error {
	return c.UnmarshalTOML(string(text))
}

// UnmarshalTOML parses a decoded "#RRGGBB" string value into c.
func (c *HexColor) UnmarshalTOML(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("config: color must be a string, got %T", value)
	}
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("config: invalid color %q, want #RRGGBB", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("config: invalid color %q: %w", s, err)
	}
	c.R, c.G, c.B = r, g, b
	return nil
}

func (c HexColor) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
