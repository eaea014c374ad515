package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

func objName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// ExportObj writes every mesh as separate object sharing global index space
func ExportObj(_w io.Writer, meshes []*Mesh) error {
	bw := bufio.NewWriter(_w)
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	iV := uint32(1)
	iN := uint32(1)
	for iMesh, m := range meshes {
		name := objName(m.Name)
		if name == "" {
			name = fmt.Sprintf("mesh%.2d", iMesh)
		}
		w("o %s", name)

		for _, vertex := range m.Vertices {
			w("v %f %f %f", vertex[0], vertex[1], vertex[2])
		}
		haveNorm := len(m.Normals) == len(m.Vertices)
		if haveNorm {
			for _, normal := range m.Normals {
				w("vn %f %f %f", normal[0], normal[1], normal[2])
			}
		}

		for iIndex := 0; iIndex+2 < len(m.Indexes); iIndex += 3 {
			indexes := m.Indexes[iIndex : iIndex+3]
			if haveNorm {
				w("f %v//%v %v//%v %v//%v",
					iV+indexes[0], iN+indexes[0],
					iV+indexes[1], iN+indexes[1],
					iV+indexes[2], iN+indexes[2])
			} else {
				w("f %v %v %v", iV+indexes[0], iV+indexes[1], iV+indexes[2])
			}
		}

		iV += uint32(len(m.Vertices))
		if haveNorm {
			iN += uint32(len(m.Normals))
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to write obj")
	}
	return nil
}
