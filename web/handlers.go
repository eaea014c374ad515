package web

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/rig"
	"github.com/mogaika/bindec_tools/scene"
	"github.com/mogaika/bindec_tools/skeleton"
	"github.com/mogaika/bindec_tools/status"
	"github.com/mogaika/bindec_tools/utils"
	"github.com/mogaika/bindec_tools/webutils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func diagnostics(source string) *utils.Collector {
	return &utils.Collector{Messages: make([]string, 0), Next: status.Logger{Source: source}}
}

func verboseDump(v interface{}) {
	if ServerSettings != nil && ServerSettings.Verbose {
		utils.LogDump(v)
	}
}

type sceneSummary struct {
	FrameStart  int            `json:"frame_start"`
	FrameEnd    int            `json:"frame_end"`
	Frame       int            `json:"frame"`
	Empties     int            `json:"empties"`
	Collections map[string]int `json:"collections"`
	Armatures   []string       `json:"armatures"`
}

func summarizeScene(s *scene.Scene) *sceneSummary {
	summary := &sceneSummary{
		FrameStart:  s.FrameStart,
		FrameEnd:    s.FrameEnd,
		Frame:       s.Frame,
		Empties:     len(s.Empties),
		Collections: make(map[string]int),
		Armatures:   make([]string, 0),
	}
	for _, c := range s.Collections {
		summary.Collections[c.Name] = len(c.Objects)
	}
	for _, a := range s.Armatures {
		summary.Armatures = append(summary.Armatures, a.Name)
	}
	return summary
}

func HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	webutils.WriteJson(w, summarizeScene(ServerScene))
}

func HandlerActionSceneReset(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	ServerScene = scene.New()
	webutils.WriteJson(w, summarizeScene(ServerScene))
}

func HandlerActionImportBindec(w http.ResponseWriter, r *http.Request) {
	data, err := webutils.ReadFormFile(r, "file")
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	l := diagnostics("bindec")
	a, enc := bindec.Decode(data, l)
	verboseDump(a.DeclaredCounts)

	sceneLock.Lock()
	defer sceneLock.Unlock()

	ServerScene.ImportAnimation(a, scene.ImportOptions{KeyBaseline: ServerSettings.KeyBaseline})
	status.Info("bindec", "Imported %d points, %d frames", len(a.Points), a.FrameCount)

	webutils.WriteJson(w, &struct {
		Points      int           `json:"points"`
		Frames      int           `json:"frames"`
		Encoding    string        `json:"encoding"`
		Diagnostics []string      `json:"diagnostics"`
		Scene       *sceneSummary `json:"scene"`
	}{
		Points:      len(a.Points),
		Frames:      a.FrameCount,
		Encoding:    enc.String(),
		Diagnostics: l.Messages,
		Scene:       summarizeScene(ServerScene),
	})
}

func requestFormats(r *http.Request) (bindec.Formats, error) {
	if r.Method != http.MethodPost {
		return ServerFormats, nil
	}
	data, err := webutils.ReadFormFile(r, "formats")
	if err != nil {
		if cause := errors.Cause(err); cause == http.ErrMissingFile || cause == http.ErrNotMultipart {
			return ServerFormats, nil
		}
		return nil, err
	}
	return bindec.LoadFormats(bytes.NewReader(data))
}

func HandlerActionExportBindec(w http.ResponseWriter, r *http.Request) {
	formats, err := requestFormats(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	sceneLock.Lock()
	defer sceneLock.Unlock()

	start, err := webutils.FormInt(r, "start", ServerScene.FrameStart)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	end, err := webutils.FormInt(r, "end", ServerScene.FrameEnd)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := ServerScene.EncodeBindec(&buf, formats, start, end); err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.Info("bindec", "Exported frames %d-%d", start, end)
	webutils.WriteFile(w, &buf, fmt.Sprintf("animation_%d_%d.bindec", start, end))
}

type boneSummary struct {
	Name   string     `json:"name"`
	Head   mgl64.Vec3 `json:"head"`
	Tail   mgl64.Vec3 `json:"tail"`
	Points []int      `json:"points"`
}

func HandlerActionRig(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	if len(ServerScene.Empties) == 0 {
		webutils.WriteError(w, errors.Errorf("Scene has no points, import animation first"))
		return
	}

	a := rig.Apply(ServerScene)
	bones := make([]boneSummary, 0, len(a.Bones))
	for _, b := range a.Bones {
		bones = append(bones, boneSummary{Name: b.Name, Head: b.Head, Tail: b.Tail, Points: a.BoundTo(b.Name)})
	}
	status.Info("rig", "Armature %s with %d bones", a.Name, len(a.Bones))

	webutils.WriteJson(w, &struct {
		Armature string        `json:"armature"`
		Bones    []boneSummary `json:"bones"`
	}{Armature: a.Name, Bones: bones})
}

func skeletonCharmap() (*charmap.Charmap, error) {
	if ServerSettings.SkeletonEncoding == "" {
		return nil, nil
	}
	return config.FindEncoding(ServerSettings.SkeletonEncoding)
}

func HandlerActionSkeletonCapsules(w http.ResponseWriter, r *http.Request) {
	data, err := webutils.ReadFormFile(r, "file")
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	opts := skeleton.OptionsFromSettings(ServerSettings)
	if opts.ScaleFactor, err = webutils.FormFloat(r, "scale", opts.ScaleFactor); err != nil {
		webutils.WriteError(w, err)
		return
	}
	if opts.RadiusScale, err = webutils.FormFloat(r, "radius", opts.RadiusScale); err != nil {
		webutils.WriteError(w, err)
		return
	}
	if name := r.FormValue("collection"); name != "" {
		opts.CollectionName = name
	}

	cm, err := skeletonCharmap()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	sceneLock.Lock()
	defer sceneLock.Unlock()

	l := diagnostics("skeleton")
	result, err := skeleton.ImportData(ServerScene, data, cm, opts, l)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	status.Info("skeleton", "Created %d capsule segments from %d nodes", len(result.Capsules), len(result.Nodes))

	summary := &struct {
		Collection  string   `json:"collection"`
		Nodes       int      `json:"nodes"`
		Capsules    int      `json:"capsules"`
		Skipped     int      `json:"skipped"`
		Diagnostics []string `json:"diagnostics"`
	}{
		Nodes:       len(result.Nodes),
		Capsules:    len(result.Capsules),
		Skipped:     result.Skipped,
		Diagnostics: l.Messages,
	}
	if result.Collection != nil {
		summary.Collection = result.Collection.Name
	}
	webutils.WriteJson(w, summary)
}

func HandlerActionExportScene(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]

	sceneLock.Lock()
	defer sceneLock.Unlock()

	var buf bytes.Buffer
	if err := ServerScene.Export(&buf, format, ServerFormats); err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.Info("web", "Scene exported as %s", format)
	webutils.WriteFile(w, &buf, "scene."+format)
}

func HandlerStatusWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}
