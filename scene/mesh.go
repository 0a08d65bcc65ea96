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

package scene

// Mesh is an indexed triangle list with a colour for every vertex.
type Mesh struct {
	// three floats per vertex
	Positions []float32

	// three floats (RGB) per vertex
	Colors []float32

	// three indices per triangle
	Indices []uint16
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.Positions) / 3
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Vertex returns the position and colour of vertex i.
func (m *Mesh) Vertex(i int) (pos [3]float32, col [3]float32) {
	copy(pos[:], m.Positions[i*3:i*3+3])
	copy(col[:], m.Colors[i*3:i*3+3])
	return pos, col
}

// face colours for the cube, in the order front, back, left, right, top,
// bottom.
var faceColors = [6][3]float32{
	{0.9, 0.2, 0.2},
	{0.2, 0.9, 0.2},
	{0.2, 0.2, 0.9},
	{0.9, 0.9, 0.2},
	{0.2, 0.9, 0.9},
	{0.9, 0.2, 0.9},
}

// Cube returns a unit cube centred on the origin. Each face has its own four
// vertices so that faces can be coloured independently. Triangles are wound
// counter-clockwise when viewed from outside the cube.
func Cube() *Mesh {
	// corners of each face, counter-clockwise from outside
	faces := [6][4][3]float32{
		// front (+z)
		{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},
		// back (-z)
		{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}},
		// left (-x)
		{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}},
		// right (+x)
		{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}},
		// top (+y)
		{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}},
		// bottom (-y)
		{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}},
	}

	m := &Mesh{}
	for f, corners := range faces {
		base := uint16(len(m.Positions) / 3)
		for _, c := range corners {
			m.Positions = append(m.Positions, c[0], c[1], c[2])
			m.Colors = append(m.Colors, faceColors[f][0], faceColors[f][1], faceColors[f][2])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
