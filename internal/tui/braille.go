package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"topomap/internal/geom"
	"topomap/internal/style"
)

// brailleBuf is a raster of 2x4 micro-pixels per terminal cell. Screen
// space for the map is micro-pixel space. Each cell keeps the colour of
// the last stroke that touched it.
type brailleBuf struct {
	w, h int        // in cells
	m    [][]uint8  // per-cell 8-bit mask
	fg   [][]string // per-cell colour, "" is the default foreground
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	fg := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		fg[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, fg: fg}
}

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.fg[cy][cx] = color
}

// dashPattern returns on/off run lengths in micro-pixels; zero off means solid.
func dashPattern(t style.StrokeType) (on, off int) {
	switch t {
	case style.Dashed:
		return 4, 3
	case style.Dotted:
		return 1, 2
	}
	return 1, 0
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, color string, t style.StrokeType) {
	on, off := dashPattern(t)
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if off == 0 || step%(on+off) < on {
			b.setPixel(x0, y0, color)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip trims the segment a-b to the buffer with a one pixel margin
// (Liang-Barsky). ok is false when nothing is visible.
func (b *brailleBuf) clip(a, c geom.Point) (geom.Point, geom.Point, bool) {
	xmin, ymin := -1.0, -1.0
	xmax, ymax := float64(b.w*2), float64(b.h*4)
	d := c.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - xmin},
		{d.X, xmax - a.X},
		{-d.Y, a.Y - ymin},
		{d.Y, ymax - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, c, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return a, c, false
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

// DPR is one: hover distances are measured in micro-pixels.
func (b *brailleBuf) DPR() float64 { return 1 }

func (b *brailleBuf) StrokeLine(a, c geom.Point, st style.Style) {
	a, c, ok := b.clip(a, c)
	if !ok {
		return
	}
	b.drawLineMicro(round(a.X), round(a.Y), round(c.X), round(c.Y), st.Color, st.StrokeType)
}

func (b *brailleBuf) FillDisc(c geom.Point, r float64, st style.Style) {
	r = max(r, 0.5)
	x0, x1 := int(math.Floor(c.X-r)), int(math.Ceil(c.X+r))
	y0, y1 := int(math.Floor(c.Y-r)), int(math.Ceil(c.Y+r))
	if x1 < 0 || y1 < 0 || x0 >= b.w*2 || y0 >= b.h*4 {
		return
	}
	for y := max(y0, 0); y <= y1; y++ {
		for x := max(x0, 0); x <= x1; x++ {
			if geom.Pt(float64(x), float64(y)).Dist(c) <= r {
				b.setPixel(x, y, st.Color)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	styles := map[string]lipgloss.Style{}
	paint := func(sb *strings.Builder, run []rune, color string) {
		if len(run) == 0 {
			return
		}
		if color == "" {
			sb.WriteString(string(run))
			return
		}
		st, ok := styles[color]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = st
		}
		sb.WriteString(st.Render(string(run)))
	}

	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		cur := ""
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			r, color := ' ', ""
			if mask != 0 {
				r, color = rune(0x2800+int(mask)), b.fg[y][x]
			}
			if color != cur {
				paint(&sb, run, cur)
				run, cur = run[:0], color
			}
			run = append(run, r)
		}
		paint(&sb, run, cur)
		out[y] = sb.String()
	}
	return out
}

// plainLines renders without colour, for tests and logs.
func (b *brailleBuf) plainLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			if mask := b.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
