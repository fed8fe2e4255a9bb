// Package export writes road meshes as Wavefront OBJ files with a matching
// MTL material library, and road outlines as GeoJSON or DXF.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/road"
)

// ErrNoMesh is returned when there is nothing to write.
var ErrNoMesh = errors.New("no mesh to export")

// WriteOBJ writes the mesh with one group per surface. When materials are
// given, mtllib names the library and each group selects its material.
func WriteOBJ(w io.Writer, m *road.Mesh, materials []host.Material, mtllib string) error {
	if m == nil || len(m.Vertices) == 0 {
		return ErrNoMesh
	}

	bw := bufio.NewWriter(w)
	if len(materials) > 0 && mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	fmt.Fprintf(bw, "o road\n")

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %f %f %f\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %f %f\n", uv.X, uv.Y)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %f %f %f\n", n.X, n.Y, n.Z)
	}

	for s := road.Surface(0); s < road.NumSurfaces; s++ {
		indices := m.Indices(s)
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintf(bw, "g %s\n", s)
		if int(s) < len(materials) {
			fmt.Fprintf(bw, "usemtl %s\n", materials[s].Name)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			// OBJ indices are 1-based; position, uv and normal share one index.
			a, b, c := indices[i]+1, indices[i+1]+1, indices[i+2]+1
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}

	return errors.Wrap(bw.Flush(), "writing obj")
}

// WriteMTL writes each distinct material once. Texture tiling becomes the
// map_Kd scale option.
func WriteMTL(w io.Writer, materials []host.Material) error {
	bw := bufio.NewWriter(w)
	seen := make(map[string]bool, len(materials))
	for _, mat := range materials {
		if seen[mat.Name] {
			continue
		}
		seen[mat.Name] = true

		fmt.Fprintf(bw, "newmtl %s\n", mat.Name)
		fmt.Fprintf(bw, "Ka 1.000000 1.000000 1.000000\n")
		fmt.Fprintf(bw, "Kd 1.000000 1.000000 1.000000\n")
		fmt.Fprintf(bw, "illum 1\n")
		if mat.Texture != "" {
			fmt.Fprintf(bw, "map_Kd -s %f %f 1 %s\n", mat.TextureScale.X, mat.TextureScale.Y, mat.Texture)
		}
		fmt.Fprintln(bw)
	}
	return errors.Wrap(bw.Flush(), "writing mtl")
}

// Save writes path and, when the road has materials, a .mtl next to it.
// It returns the paths written.
func Save(path string, m *road.Mesh, materials []host.Material) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating output dir")
	}

	var written []string
	mtllib := ""
	if len(materials) > 0 {
		mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
		mtllib = filepath.Base(mtlPath)
		if err := writeFile(mtlPath, func(w io.Writer) error { return WriteMTL(w, materials) }); err != nil {
			return nil, err
		}
		written = append(written, mtlPath)
	}

	if err := writeFile(path, func(w io.Writer) error { return WriteOBJ(w, m, materials, mtllib) }); err != nil {
		return written, err
	}
	return append(written, path), nil
}

// SaveSnapshot writes every output the config names: the OBJ mesh with
// its materials, then the GeoJSON and DXF outlines when their paths are set.
func SaveSnapshot(out config.OutputConfig, snap *host.Snapshot) ([]string, error) {
	if snap == nil {
		return nil, ErrNoMesh
	}
	written, err := Save(out.OBJPath, snap.Mesh, snap.Materials)
	if err != nil {
		return written, err
	}
	if out.GeoJSONPath != "" {
		if err := SaveGeoJSON(out.GeoJSONPath, snap); err != nil {
			return written, err
		}
		written = append(written, out.GeoJSONPath)
	}
	if out.DXFPath != "" {
		if err := SaveDXF(out.DXFPath, snap); err != nil {
			return written, err
		}
		written = append(written, out.DXFPath)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return write(f)
}
