package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Gmsh v2.2 element type codes. See the Gmsh reference manual, section on
// the legacy MSH file format.
const (
	gmshLine     = 1
	gmshTriangle = 2
	gmshPoint    = 15
)

// ReadGmshFile reads a Gmsh MSH v2.2 ASCII file and assembles a Mesh from
// its node and element sections. Line elements become boundary Segments,
// triangle elements become Triangles, every other element type (points
// included) is skipped. Any parse problem wraps ErrMeshRead.
func ReadGmshFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMeshRead, err)
	}
	defer file.Close()

	points, blocks, err := readGmsh(bufio.NewScanner(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMeshRead, filename, err)
	}
	m, err := NewMesh(points, blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMeshRead, filename, err)
	}
	return m, nil
}

func readGmsh(scanner *bufio.Scanner) (points []Point, blocks []CellBlock, err error) {
	// Gmsh node ids are 1-based and may be sparse; remap to dense 0-based
	// ids in order of appearance.
	nodeIndex := make(map[int]int)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "$MeshFormat":
			if err = readGmshFormat(scanner); err != nil {
				return nil, nil, err
			}
		case "$Nodes":
			if points, err = readGmshNodes(scanner, nodeIndex); err != nil {
				return nil, nil, err
			}
		case "$Elements":
			if blocks, err = readGmshElements(scanner, nodeIndex); err != nil {
				return nil, nil, err
			}
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				skipGmshSection(scanner, "$End"+line[1:])
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, nil, err
	}
	if points == nil {
		return nil, nil, fmt.Errorf("no $Nodes section found")
	}
	return points, blocks, nil
}

func readGmshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in $MeshFormat")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 3 {
		return fmt.Errorf("malformed $MeshFormat line %q", scanner.Text())
	}
	if !strings.HasPrefix(fields[0], "2.") {
		return fmt.Errorf("unsupported msh format version %s, need 2.x", fields[0])
	}
	if fields[1] != "0" {
		return fmt.Errorf("binary msh files are not supported")
	}
	skipGmshSection(scanner, "$EndMeshFormat")
	return nil
}

func readGmshNodes(scanner *bufio.Scanner, nodeIndex map[int]int) ([]Point, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in $Nodes")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("bad node count %q", scanner.Text())
	}
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF after %d of %d nodes", i, n)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed node line %q", scanner.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("bad node id %q", fields[0])
		}
		var xy [2]float64
		for k := 0; k < 2; k++ {
			if xy[k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
				return nil, fmt.Errorf("bad node coordinate %q", fields[k+1])
			}
		}
		// z, when present, is ignored.
		nodeIndex[id] = len(points)
		points = append(points, Point{xy[0], xy[1]})
	}
	skipGmshSection(scanner, "$EndNodes")
	return points, nil
}

func readGmshElements(scanner *bufio.Scanner, nodeIndex map[int]int) ([]CellBlock, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in $Elements")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("bad element count %q", scanner.Text())
	}

	var blocks []CellBlock
	appendRow := func(blockType string, row []int) {
		// Group consecutive elements of one type into a single block, the
		// way meshio-style providers hand them out.
		if len(blocks) == 0 || blocks[len(blocks)-1].Type != blockType {
			blocks = append(blocks, CellBlock{Type: blockType})
		}
		b := &blocks[len(blocks)-1]
		b.Data = append(b.Data, row)
	}

	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF after %d of %d elements", i, n)
		}
		fields := strings.Fields(scanner.Text())
		// Layout: elm-id elm-type num-tags <tags...> <vertex ids...>
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed element line %q", scanner.Text())
		}
		elType, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bad element type %q", fields[1])
		}
		nTags, err := strconv.Atoi(fields[2])
		if err != nil || nTags < 0 {
			return nil, fmt.Errorf("bad element tag count %q", fields[2])
		}

		var nVerts int
		var blockType string
		switch elType {
		case gmshLine:
			nVerts, blockType = 2, BlockLine
		case gmshTriangle:
			nVerts, blockType = 3, BlockTriangle
		default:
			// Unsupported element types, gmshPoint among them, are skipped.
			continue
		}

		if len(fields) < 3+nTags {
			return nil, fmt.Errorf("malformed element line %q", scanner.Text())
		}
		vertFields := fields[3+nTags:]
		if len(vertFields) != nVerts {
			return nil, fmt.Errorf("element %s: have %d vertices, need %d",
				fields[0], len(vertFields), nVerts)
		}
		row := make([]int, nVerts)
		for k, vf := range vertFields {
			id, err := strconv.Atoi(vf)
			if err != nil {
				return nil, fmt.Errorf("bad vertex id %q", vf)
			}
			idx, ok := nodeIndex[id]
			if !ok {
				return nil, fmt.Errorf("element %s references unknown node %d", fields[0], id)
			}
			row[k] = idx
		}
		appendRow(blockType, row)
	}
	skipGmshSection(scanner, "$EndElements")
	return blocks, nil
}

func skipGmshSection(scanner *bufio.Scanner, endMarker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return
		}
	}
}
