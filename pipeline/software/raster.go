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
	"github.com/chewxy/math32"

	"github.com/jetsetilly/scalebench/scene"
)

// triangles with a vertex closer to the eye than this are not drawn. there
// is no clipping against the near plane.
const minW = 1e-5

type vertex struct {
	// screen coordinates with the origin at the top left
	x, y float32

	// depth in the range 0 to 1
	z float32

	// reciprocal of clip space w
	invW float32

	col [3]float32
}

// rasterise draws the mesh into the target. triangles are not culled. if the
// target has a depth attachment then fragments are depth tested with a less
// than comparison.
func rasterise(t *target, m *scene.Mesh, mvp scene.Mat4) {
	w := float32(t.size.W)
	h := float32(t.size.H)

	verts := make([]vertex, m.NumVertices())
	visible := make([]bool, len(verts))
	for i := range verts {
		pos, col := m.Vertex(i)
		c := mvp.Transform(scene.Vec4{pos[0], pos[1], pos[2], 1})
		if c[3] <= minW {
			continue
		}
		visible[i] = true
		inv := 1 / c[3]
		verts[i] = vertex{
			x:    (c[0]*inv*0.5 + 0.5) * w,
			y:    (0.5 - c[1]*inv*0.5) * h,
			z:    c[2]*inv*0.5 + 0.5,
			invW: inv,
			col:  col,
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if !visible[a] || !visible[b] || !visible[c] {
			continue
		}
		triangle(t, verts[a], verts[b], verts[c])
	}
}

func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func triangle(t *target, a, b, c vertex) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}

	minX := max(0, int(math32.Floor(min(a.x, b.x, c.x))))
	maxX := min(t.size.W-1, int(math32.Ceil(max(a.x, b.x, c.x))))
	minY := max(0, int(math32.Floor(min(a.y, b.y, c.y))))
	maxY := min(t.size.H-1, int(math32.Ceil(max(a.y, b.y, c.y))))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			// barycentric weights. dividing by the signed area means both
			// windings produce positive weights inside the triangle
			wa := edge(b, c, px, py) / area
			wb := edge(c, a, px, py) / area
			wc := edge(a, b, px, py) / area
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}

			z := wa*a.z + wb*b.z + wc*c.z
			if z < 0 || z > 1 {
				continue
			}
			if t.depth != nil {
				di := y*t.size.W + x
				if z >= t.depth[di] {
					continue
				}
				t.depth[di] = z
			}

			// perspective correct colour
			pa := wa * a.invW
			pb := wb * b.invW
			pc := wc * c.invW
			norm := 1 / (pa + pb + pc)

			var col rgba
			for ch := 0; ch < 3; ch++ {
				col[ch] = (pa*a.col[ch] + pb*b.col[ch] + pc*c.col[ch]) * norm
			}
			col[3] = 1
			t.set(x, y, col)
		}
	}
}
