package fbxbuilder

import (
	"archive/zip"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"
)

const (
	FBX_VERSION             = 7400
	FBX_CREATOR             = "FBX SDK/FBX Plugins version 2013.3 build=20121223"
	FBX_APPLICATION_VENDOR  = "bindec tools"
	FBX_APPLICATION_NAME    = "bindec_tools"
	FBX_APPLICATION_VERSION = "1.0"
	FBX_DATE_TIME_GMT       = "01/01/1970 00:00:00.000"
	FBX_CREATION_TIME       = "1970-01-01 10:00:00:000"
)

var FBX_FILE_ID []byte = []byte{
	0x28, 0xb3, 0x2a, 0xeb, 0xb6, 0x24, 0xcc, 0xc2,
	0xbf, 0xc8, 0xb0, 0x2a, 0xa9, 0x2b, 0xfc, 0xf1}

// property templates of object types written by mesh and scene exporters,
// in order of appearance inside Definitions
var templateOrder = []string{"Model", "Geometry", "NodeAttribute"}

var templates = map[string]func() []*fbx.Node{
	"Model": func() []*fbx.Node {
		return []*fbx.Node{bfbx73.PropertyTemplate("FbxNode").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("Show", "bool", "", "", int32(1)),
				bfbx73.P("Lcl Translation", "Lcl Translation", "", "A", float64(0), float64(0), float64(0)),
				bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
				bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
				bfbx73.P("Visibility", "Visibility", "", "A", float64(1)),
			),
		)}
	},
	"Geometry": func() []*fbx.Node {
		return []*fbx.Node{bfbx73.PropertyTemplate("FbxMesh").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("Color", "ColorRGB", "Color", "", float64(0.8), float64(0.8), float64(0.8)),
				bfbx73.P("Primary Visibility", "bool", "", "", int32(1)),
				bfbx73.P("Casts Shadows", "bool", "", "", int32(1)),
			),
		)}
	},
	"NodeAttribute": func() []*fbx.Node {
		return []*fbx.Node{
			bfbx73.PropertyTemplate("FbxNull").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("Size", "double", "Number", "", float64(100)),
					bfbx73.P("Look", "enum", "", "", int32(1)),
				),
			),
			bfbx73.PropertyTemplate("FbxSkeleton").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("Color", "ColorRGB", "Color", "", float64(0.8), float64(0.8), float64(0.8)),
					bfbx73.P("Size", "double", "Number", "", float64(33.333333)),
					bfbx73.P("LimbLength", "double", "Number", "H", float64(1)),
				),
			),
		}
	},
}

type FBXBuilder struct {
	f      *fbx.FBX
	lastId int64
	files  map[string][]byte

	definitions *fbx.Node
	objects     *fbx.Node
	connections *fbx.Node
}

func NewFBXBuilder(filename string) *FBXBuilder {
	f := &FBXBuilder{
		files:       make(map[string][]byte),
		lastId:      1000000,
		f:           fbx.NewFBX(FBX_VERSION),
		definitions: bfbx73.Definitions(),
		objects:     bfbx73.Objects(),
		connections: bfbx73.Connections(),
	}
	f.Root().AddNodes(
		headerExtension(filename),
		bfbx73.FileId(FBX_FILE_ID),
		bfbx73.CreationTime(FBX_CREATION_TIME),
		bfbx73.Creator(FBX_CREATOR),
		globalSettings(),
		bfbx73.Documents().AddNodes(
			bfbx73.Count(1),
			bfbx73.Document(f.GenerateId(), "Scene", "Scene").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("SourceObject", "object", "", ""),
					bfbx73.P("ActiveAnimStackName", "KString", "", "", ""),
				),
				bfbx73.RootNode(0),
			),
		),
		bfbx73.References(),
		f.definitions,
		f.objects,
		f.connections,
		bfbx73.Takes().AddNodes(
			bfbx73.Current(""),
		),
	)
	return f
}

func headerExtension(filename string) *fbx.Node {
	info := func(prefix string) []*fbx.Node {
		return []*fbx.Node{
			bfbx73.P(prefix, "Compound", "", ""),
			bfbx73.P(prefix+"|ApplicationVendor", "KString", "", "", FBX_APPLICATION_VENDOR),
			bfbx73.P(prefix+"|ApplicationName", "KString", "", "", FBX_APPLICATION_NAME),
			bfbx73.P(prefix+"|ApplicationVersion", "KString", "", "", FBX_APPLICATION_VERSION),
			bfbx73.P(prefix+"|DateTime_GMT", "DateTime", "", "", FBX_DATE_TIME_GMT),
		}
	}

	props := bfbx73.Properties70().AddNodes(
		bfbx73.P("DocumentUrl", "KString", "Url", "", filename),
		bfbx73.P("SrcDocumentUrl", "KString", "Url", "", filename),
	)
	props.AddNodes(info("Original")...)
	props.AddNodes(bfbx73.P("Original|FileName", "KString", "", "", filepath.Base(filename)))
	props.AddNodes(info("LastSaved")...)

	return bfbx73.FBXHeaderExtension().AddNodes(
		bfbx73.FBXHeaderVersion(1003),
		bfbx73.FBXVersion(FBX_VERSION),
		bfbx73.EncryptionType(0),
		bfbx73.CreationTimeStamp().AddNodes(
			bfbx73.Version(1000),
			bfbx73.Year(1970),
			bfbx73.Month(1),
			bfbx73.Day(1),
			bfbx73.Hour(10),
			bfbx73.Minute(0),
			bfbx73.Second(0),
			bfbx73.Millisecond(0),
		),
		bfbx73.Creator(FBX_CREATOR),
		bfbx73.SceneInfo("GlobalInfo\x00\x01SceneInfo", "UserData").AddNodes(
			bfbx73.Type("UserData"),
			bfbx73.Version(100),
			bfbx73.MetaData().AddNodes(
				bfbx73.Version(100),
				bfbx73.Title(""),
				bfbx73.Subject(""),
				bfbx73.Author(""),
				bfbx73.Keywords(""),
				bfbx73.Revision(""),
				bfbx73.Comment(""),
			),
			props,
		),
	)
}

// Z up, -Y front
func globalSettings() *fbx.Node {
	axis := func(name string, value int32) *fbx.Node {
		return bfbx73.P(name, "int", "Integer", "", value)
	}
	return bfbx73.GlobalSettings().AddNodes(
		bfbx73.Version(1000),
		bfbx73.Properties70().AddNodes(
			axis("UpAxis", 2),
			axis("UpAxisSign", 1),
			axis("FrontAxis", 1),
			axis("FrontAxisSign", -1),
			axis("CoordAxis", 0),
			axis("CoordAxisSign", 1),
			axis("OriginalUpAxis", 2),
			axis("OriginalUpAxisSign", 1),
			bfbx73.P("UnitScaleFactor", "double", "Number", "", float64(1)),
			bfbx73.P("OriginalUnitScaleFactor", "double", "Number", "", float64(1)),
			bfbx73.P("AmbientColor", "ColorRGB", "Color", "", float64(0), float64(0), float64(0)),
		),
	)
}

// ObjectCounts returns number of objects per object type
func (f *FBXBuilder) ObjectCounts() map[string]int32 {
	counts := make(map[string]int32)
	for _, object := range f.objects.Nodes {
		counts[object.Name]++
	}
	return counts
}

// fillDefinitions rebuilds Definitions from objects added so far
func (f *FBXBuilder) fillDefinitions() {
	counts := f.ObjectCounts()

	names := make([]string, 0, len(counts))
	for _, name := range templateOrder {
		if counts[name] != 0 {
			names = append(names, name)
		}
	}
	extra := make([]string, 0)
	for name := range counts {
		if _, known := templates[name]; !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	totalCount := int32(1) // GlobalSettings
	f.definitions.Nodes = make([]*fbx.Node, 0)
	f.definitions.AddNodes(bfbx73.Version(100))
	countNode := bfbx73.Count(0)
	f.definitions.AddNodes(countNode, bfbx73.ObjectType("GlobalSettings").AddNodes(bfbx73.Count(1)))

	for _, name := range names {
		totalCount += counts[name]
		ot := bfbx73.ObjectType(name).AddNodes(bfbx73.Count(counts[name]))
		if template, ok := templates[name]; ok {
			ot.AddNodes(template()...)
		}
		f.definitions.AddNode(ot)
	}
	countNode.Properties[0] = totalCount
}

func (f *FBXBuilder) Root() *fbx.Node {
	return &f.f.Root
}

func (f *FBXBuilder) GenerateId() int64 {
	f.lastId++
	return f.lastId
}

// Write serializes fbx into temp file and copies result to w
func (f *FBXBuilder) Write(w io.Writer) error {
	f.fillDefinitions()

	tempFile, err := ioutil.TempFile("", "fbxexport.*.fbx")
	if err != nil {
		return errors.Wrapf(err, "Failed to create temp file")
	}
	defer tempFile.Close()
	defer os.Remove(tempFile.Name())

	if err := fbx.Write(tempFile, f.f); err != nil {
		return errors.Wrapf(err, "Failed to write fbx")
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "Unable to seek")
	}
	_, err = io.Copy(w, tempFile)
	return err
}

// AddExportFile attaches side file written next to fbx by WriteZip
func (f *FBXBuilder) AddExportFile(name string, data []byte) {
	f.files[name] = data
}

func (f *FBXBuilder) WriteZip(w io.Writer, name string) error {
	zw := zip.NewWriter(w)

	fbxW, err := zw.Create(name)
	if err != nil {
		return errors.Wrapf(err, "Can't create zip fbx for %q", name)
	}
	if err := f.Write(fbxW); err != nil {
		return errors.Wrapf(err, "Fbx exporting failed")
	}

	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fw, err := zw.Create(name)
		if err != nil {
			return errors.Wrapf(err, "Can't create zip for %q", name)
		}
		if _, err := fw.Write(f.files[name]); err != nil {
			return errors.Wrapf(err, "Can't write zip for %q", name)
		}
	}

	return zw.Close()
}

func (f *FBXBuilder) AddObjects(nodes ...*fbx.Node)     { f.objects.AddNodes(nodes...) }
func (f *FBXBuilder) AddConnections(nodes ...*fbx.Node) { f.connections.AddNodes(nodes...) }
