// This file is part of Scalebench.
//
// Scalebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scalebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scalebench.  If not, see <https://www.gnu.org/licenses/>.

package software

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/jetsetilly/scalebench/pipeline"
)

// a pass returns the function that produces the colour of each pixel in a
// write surface of the given size.
type pass func(src *target, dest pipeline.Size, uniforms any) (func(x, y int) rgba, error)

// kernel is the CPU equivalent of a compiled shader program. exactly one
// of pass or mesh is set.
type kernel struct {
	pass pass
	mesh bool
}

var kernels = map[string]kernel{
	pipeline.ProgramBlit:    {pass: blit},
	pipeline.ProgramSharpen: {pass: sharpen},
	pipeline.ProgramEASU:    {pass: easu},
	pipeline.ProgramRCAS:    {pass: rcas},
	pipeline.ProgramScene:   {mesh: true},
}

// program implements the pipeline.Program interface.
type program struct {
	name   string
	kernel kernel
}

// Name implements the pipeline.Program interface.
func (p *program) Name() string {
	return p.name
}

func wrongUniforms(want string, got any) error {
	return fmt.Errorf("%w: uniforms must be %s not %T", pipeline.ErrInvalidParameters, want, got)
}

func blit(src *target, dest pipeline.Size, uniforms any) (func(x, y int) rgba, error) {
	switch uniforms.(type) {
	case nil, pipeline.BlitUniforms, *pipeline.BlitUniforms:
	default:
		return nil, wrongUniforms("BlitUniforms", uniforms)
	}

	return func(x, y int) rgba {
		return src.sample(centre(x, dest.W, src.size.W), centre(y, dest.H, src.size.H))
	}, nil
}

// texel returns the coordinates of the source texel that contains the
// centre of the destination pixel.
func texel(src *target, dest pipeline.Size, x, y int) (int, int) {
	return int(math.Floor(centre(x, dest.W, src.size.W))), int(math.Floor(centre(y, dest.H, src.size.H)))
}

func sharpen(src *target, dest pipeline.Size, uniforms any) (func(x, y int) rgba, error) {
	var u pipeline.SharpenUniforms
	switch v := uniforms.(type) {
	case pipeline.SharpenUniforms:
		u = v
	case *pipeline.SharpenUniforms:
		u = *v
	default:
		return nil, wrongUniforms("SharpenUniforms", uniforms)
	}
	s := u.Sharpness

	return func(x, y int) rgba {
		px, py := texel(src, dest, x, y)
		c := src.at(px, py)
		n := src.at(px, py-1)
		w := src.at(px-1, py)
		e := src.at(px+1, py)
		so := src.at(px, py+1)

		var o rgba
		for i := 0; i < 3; i++ {
			avg := (n[i] + w[i] + e[i] + so[i]) * 0.25
			o[i] = math32.Min(math32.Max(c[i]+s*(c[i]-avg), 0), 1)
		}
		o[3] = c[3]
		return o
	}, nil
}

func luma(c rgba) float32 {
	return c[2]*0.5 + (c[0]*0.5 + c[1])
}

func saturate(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}

// easuSet accumulates the edge direction and length for one of the four
// bilinear quadrants around the sample point.
func easuSet(dirX, dirY, length *float32, w, lA, lB, lC, lD, lE float32) {
	dc := lD - lC
	cb := lC - lB
	lenX := math32.Max(math32.Abs(dc), math32.Abs(cb))
	dx := lD - lB
	*dirX += dx * w
	if lenX > 0 {
		lenX = saturate(math32.Abs(dx) / lenX)
	} else {
		lenX = 0
	}
	*length += lenX * lenX * w

	ec := lE - lC
	ca := lC - lA
	lenY := math32.Max(math32.Abs(ec), math32.Abs(ca))
	dy := lE - lA
	*dirY += dy * w
	if lenY > 0 {
		lenY = saturate(math32.Abs(dy) / lenY)
	} else {
		lenY = 0
	}
	*length += lenY * lenY * w
}

type easuShape struct {
	dirX, dirY float32
	len2X      float32
	len2Y      float32
	lob        float32
	clp        float32
}

// tap adds the weighted contribution of one texel.
func (s easuShape) tap(aC *[3]float32, aW *float32, offX, offY float32, c rgba) {
	vx := offX*s.dirX + offY*s.dirY
	vy := offX*-s.dirY + offY*s.dirX
	vx *= s.len2X
	vy *= s.len2Y
	d2 := math32.Min(vx*vx+vy*vy, s.clp)
	wB := 2.0/5.0*d2 - 1.0
	wA := s.lob*d2 - 1.0
	wB *= wB
	wA *= wA
	wB = 25.0/16.0*wB - (25.0/16.0 - 1.0)
	w := wB * wA
	aC[0] += c[0] * w
	aC[1] += c[1] * w
	aC[2] += c[2] * w
	*aW += w
}

func easu(src *target, dest pipeline.Size, uniforms any) (func(x, y int) rgba, error) {
	var u pipeline.EASUUniforms
	switch v := uniforms.(type) {
	case pipeline.EASUUniforms:
		u = v
	case *pipeline.EASUUniforms:
		u = *v
	default:
		return nil, wrongUniforms("EASUUniforms", uniforms)
	}
	if u.InputSize.IsZero() || u.OutputSize.IsZero() {
		return nil, fmt.Errorf("%w: easu sizes must not be zero", pipeline.ErrInvalidParameters)
	}

	scaleX := float32(u.InputSize.W) / float32(u.OutputSize.W)
	scaleY := float32(u.InputSize.H) / float32(u.OutputSize.H)

	return func(x, y int) rgba {
		ipX := float32(math.Floor(centre(x, dest.W, u.OutputSize.W)))
		ipY := float32(math.Floor(centre(y, dest.H, u.OutputSize.H)))
		ppX := (ipX+0.5)*scaleX - 0.5
		ppY := (ipY+0.5)*scaleY - 0.5
		fpX := math32.Floor(ppX)
		fpY := math32.Floor(ppY)
		ppX -= fpX
		ppY -= fpY
		fx := int(fpX)
		fy := int(fpY)

		//    b c
		//  e f g h
		//  i j k l
		//    n o
		b := src.at(fx, fy-1)
		c := src.at(fx+1, fy-1)
		e := src.at(fx-1, fy)
		f := src.at(fx, fy)
		g := src.at(fx+1, fy)
		h := src.at(fx+2, fy)
		i := src.at(fx-1, fy+1)
		j := src.at(fx, fy+1)
		k := src.at(fx+1, fy+1)
		l := src.at(fx+2, fy+1)
		n := src.at(fx, fy+2)
		o := src.at(fx+1, fy+2)

		bL := luma(b)
		cL := luma(c)
		eL := luma(e)
		fL := luma(f)
		gL := luma(g)
		hL := luma(h)
		iL := luma(i)
		jL := luma(j)
		kL := luma(k)
		lL := luma(l)
		nL := luma(n)
		oL := luma(o)

		var dirX, dirY, length float32
		easuSet(&dirX, &dirY, &length, (1-ppX)*(1-ppY), bL, eL, fL, gL, jL)
		easuSet(&dirX, &dirY, &length, ppX*(1-ppY), cL, fL, gL, hL, kL)
		easuSet(&dirX, &dirY, &length, (1-ppX)*ppY, fL, iL, jL, kL, nL)
		easuSet(&dirX, &dirY, &length, ppX*ppY, gL, jL, kL, lL, oL)

		dirR := dirX*dirX + dirY*dirY
		if dirR < 1.0/32768.0 {
			dirX = 1
			dirY = 0
		} else {
			r := 1 / math32.Sqrt(dirR)
			dirX *= r
			dirY *= r
		}

		length *= 0.5
		length *= length
		stretch := (dirX*dirX + dirY*dirY) / math32.Max(math32.Abs(dirX), math32.Abs(dirY))
		lob := 0.5 + ((1.0/4.0-0.04)-0.5)*length
		s := easuShape{
			dirX:  dirX,
			dirY:  dirY,
			len2X: 1 + (stretch-1)*length,
			len2Y: 1 - 0.5*length,
			lob:   lob,
			clp:   1 / lob,
		}

		var aC [3]float32
		var aW float32
		s.tap(&aC, &aW, 0-ppX, -1-ppY, b)
		s.tap(&aC, &aW, 1-ppX, -1-ppY, c)
		s.tap(&aC, &aW, -1-ppX, 1-ppY, i)
		s.tap(&aC, &aW, 0-ppX, 1-ppY, j)
		s.tap(&aC, &aW, 0-ppX, 0-ppY, f)
		s.tap(&aC, &aW, -1-ppX, 0-ppY, e)
		s.tap(&aC, &aW, 1-ppX, 1-ppY, k)
		s.tap(&aC, &aW, 2-ppX, 1-ppY, l)
		s.tap(&aC, &aW, 2-ppX, 0-ppY, h)
		s.tap(&aC, &aW, 1-ppX, 0-ppY, g)
		s.tap(&aC, &aW, 1-ppX, 2-ppY, o)
		s.tap(&aC, &aW, 0-ppX, 2-ppY, n)

		// de-ringing
		var out rgba
		for ch := 0; ch < 3; ch++ {
			mn := math32.Min(math32.Min(f[ch], g[ch]), math32.Min(j[ch], k[ch]))
			mx := math32.Max(math32.Max(f[ch], g[ch]), math32.Max(j[ch], k[ch]))
			out[ch] = math32.Min(math32.Max(aC[ch]/aW, mn), mx)
		}

		// alpha is the bilinear blend of the nearest 2x2
		top := f[3] + (g[3]-f[3])*ppX
		bottom := j[3] + (k[3]-j[3])*ppX
		out[3] = top + (bottom-top)*ppY
		return out
	}, nil
}

// the largest negative lobe allowed by RCAS.
const rcasLimit = 0.25 - (1.0 / 16.0)

func channelLobe(mn4, mx4 float32) float32 {
	lobe := float32(-1.0e30)
	if mx4 > 0 {
		lobe = math32.Max(lobe, -(mn4 / (4 * mx4)))
	}
	if 4*mn4-4 < 0 {
		lobe = math32.Max(lobe, (1-mx4)/(4*mn4-4))
	}
	return lobe
}

func rcas(src *target, dest pipeline.Size, uniforms any) (func(x, y int) rgba, error) {
	var u pipeline.RCASUniforms
	switch v := uniforms.(type) {
	case pipeline.RCASUniforms:
		u = v
	case *pipeline.RCASUniforms:
		u = *v
	default:
		return nil, wrongUniforms("RCASUniforms", uniforms)
	}
	sharpness := u.Sharpness

	return func(x, y int) rgba {
		px, py := texel(src, dest, x, y)

		//    b
		//  d e f
		//    h
		b := src.at(px, py-1)
		d := src.at(px-1, py)
		e := src.at(px, py)
		f := src.at(px+1, py)
		h := src.at(px, py+1)

		lobe := float32(-1.0e30)
		for ch := 0; ch < 3; ch++ {
			mn4 := math32.Min(math32.Min(b[ch], d[ch]), math32.Min(f[ch], h[ch]))
			mx4 := math32.Max(math32.Max(b[ch], d[ch]), math32.Max(f[ch], h[ch]))
			lobe = math32.Max(lobe, channelLobe(mn4, mx4))
		}
		lobe = math32.Max(-rcasLimit, math32.Min(lobe, 0)) * sharpness

		var out rgba
		for ch := 0; ch < 3; ch++ {
			out[ch] = (lobe*(b[ch]+d[ch]+f[ch]+h[ch]) + e[ch]) / (4*lobe + 1)
		}
		out[3] = e[3]
		return out
	}, nil
}
