// Package palette provides the packed 32-bit colours used by the renderer.
//
// Colours are packed with a channel mask table chosen once, at package
// initialisation, from the host byte order. Encoding a packed value with the
// table's byte order always produces the memory layout R, G, B, A, which is
// what both raylib's R8G8B8A8 images and image.RGBA expect.
package palette

import (
	"encoding/binary"
	"image/color"

	"golang.org/x/sys/cpu"
)

// Color is a packed RGBA value. Its bit layout depends on the active Masks.
type Color uint32

// Masks describes where each 8-bit channel lives inside a packed Color.
type Masks struct {
	R, G, B, A uint32

	// Order encodes a packed Color into memory bytes R, G, B, A.
	Order binary.ByteOrder

	rShift, gShift, bShift, aShift uint
}

// MasksFor returns the mask table for the given byte order.
func MasksFor(bigEndian bool) Masks {
	if bigEndian {
		return Masks{
			R: 0xff000000, G: 0x00ff0000, B: 0x0000ff00, A: 0x000000ff,
			Order:  binary.BigEndian,
			rShift: 24, gShift: 16, bShift: 8, aShift: 0,
		}
	}
	return Masks{
		R: 0x000000ff, G: 0x0000ff00, B: 0x00ff0000, A: 0xff000000,
		Order:  binary.LittleEndian,
		rShift: 0, gShift: 8, bShift: 16, aShift: 24,
	}
}

// Pack combines four channels into a Color using this table.
func (m Masks) Pack(r, g, b, a uint8) Color {
	return Color(uint32(r)<<m.rShift | uint32(g)<<m.gShift |
		uint32(b)<<m.bShift | uint32(a)<<m.aShift)
}

// Unpack splits a Color packed with this table into its channels.
func (m Masks) Unpack(c Color) (r, g, b, a uint8) {
	v := uint32(c)
	return uint8((v & m.R) >> m.rShift), uint8((v & m.G) >> m.gShift),
		uint8((v & m.B) >> m.bShift), uint8((v & m.A) >> m.aShift)
}

// active is selected once from the host byte order.
var active = MasksFor(cpu.IsBigEndian)

// Active returns the mask table in use for this process.
func Active() Masks {
	return active
}

// RGBA packs four channels with the active table.
func RGBA(r, g, b, a uint8) Color {
	return active.Pack(r, g, b, a)
}

// RGBA unpacks c with the active table.
func (c Color) RGBA() color.RGBA {
	r, g, b, a := active.Unpack(c)
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Named colours.
var (
	Black        = RGBA(0x00, 0x00, 0x00, 0xff)
	White        = RGBA(0xff, 0xff, 0xff, 0xff)
	Red          = RGBA(0xff, 0x00, 0x00, 0xff)
	Green        = RGBA(0x00, 0xff, 0x00, 0xff)
	Blue         = RGBA(0x00, 0x00, 0xff, 0xff)
	RedOrange    = RGBA(0xff, 0x45, 0x00, 0xff)
	Orange       = RGBA(0xff, 0xa5, 0x00, 0xff)
	YellowOrange = RGBA(0xff, 0xcc, 0x00, 0xff)
	YellowGreen  = RGBA(0xad, 0xff, 0x2f, 0xff)
	BlueGreen    = RGBA(0x34, 0xdd, 0xdd, 0xff)
	BlueViolet   = RGBA(0x4c, 0x50, 0xa9, 0xff)
	Violet       = RGBA(0x55, 0x1a, 0x8b, 0xff)
	RedViolet    = RGBA(0xf4, 0x3e, 0x71, 0xff)
	Cyan         = RGBA(0x00, 0xff, 0xff, 0xff)
)

// byName maps lowercase colour names to packed values.
var byName = map[string]Color{
	"black":        Black,
	"white":        White,
	"red":          Red,
	"green":        Green,
	"blue":         Blue,
	"redorange":    RedOrange,
	"orange":       Orange,
	"yelloworange": YellowOrange,
	"yellowgreen":  YellowGreen,
	"bluegreen":    BlueGreen,
	"blueviolet":   BlueViolet,
	"violet":       Violet,
	"redviolet":    RedViolet,
	"cyan":         Cyan,
}

// Named looks up a colour by its lowercase name.
func Named(name string) (Color, bool) {
	c, ok := byName[name]
	return c, ok
}
