package scene

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/mesh"
	"github.com/mogaika/bindec_tools/utils/gltfutils"
)

var ExportFormats = []string{"glb", "fbx", "zip", "obj", "bindec"}

// FormatFromPath returns export format by file extension
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func (s *Scene) Meshes() []*mesh.Mesh {
	objects := s.Objects()
	meshes := make([]*mesh.Mesh, len(objects))
	for i, o := range objects {
		meshes[i] = o.Mesh
	}
	return meshes
}

// EncodeBindec writes frames [start, end] and restores current frame
func (s *Scene) EncodeBindec(w io.Writer, formats bindec.Formats, start, end int) error {
	current := s.Frame
	defer s.FrameSet(current)
	return bindec.Encode(w, s, formats, start, end)
}

// Export writes whole scene in one of ExportFormats, formats are used by
// bindec output only
func (s *Scene) Export(w io.Writer, format string, formats bindec.Formats) error {
	switch format {
	case "glb":
		return gltfutils.ExportBinary(w, s.ExportGLTFDefault())
	case "fbx":
		return s.ExportFbxDefault("scene.fbx").Write(w)
	case "zip":
		f := s.ExportFbxDefault("scene.fbx")
		if len(s.Empties) != 0 {
			var anim bytes.Buffer
			if err := s.EncodeBindec(&anim, formats, s.FrameStart, s.FrameEnd); err != nil {
				return err
			}
			f.AddExportFile("scene.bindec", anim.Bytes())
		}
		return f.WriteZip(w, "scene.fbx")
	case "obj":
		return mesh.ExportObj(w, s.Meshes())
	case "bindec":
		return s.EncodeBindec(w, formats, s.FrameStart, s.FrameEnd)
	default:
		return errors.Errorf("Unknown export format %q", format)
	}
}
