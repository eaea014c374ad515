package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/rig"
	"github.com/mogaika/bindec_tools/scene"
	"github.com/mogaika/bindec_tools/utils"
)

type convertOptions struct {
	Rig         bool
	KeyBaseline bool
	Start, End  int
	Formats     bindec.Formats
}

// convert builds separate scene per output, animation is shared read-only
func convert(a *bindec.Animation, out string, opts convertOptions) error {
	s := scene.New()
	s.ImportAnimation(a, scene.ImportOptions{KeyBaseline: opts.KeyBaseline})
	if opts.Rig {
		arm := rig.Apply(s)
		log.Printf("[bindecconv] %s: armature %s with %d bones", out, arm.Name, len(arm.Bones))
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", out)
	}
	defer f.Close()

	format := scene.FormatFromPath(out)
	if format == "bindec" && (opts.Start != 0 || opts.End != 0) {
		start, end := opts.Start, opts.End
		if start == 0 {
			start = s.FrameStart
		}
		if end == 0 {
			end = s.FrameEnd
		}
		err = s.EncodeBindec(f, opts.Formats, start, end)
	} else {
		err = s.Export(f, format, opts.Formats)
	}
	if err != nil {
		return errors.Wrapf(err, "Failed to export %q", out)
	}
	log.Printf("[bindecconv] Saved %s", out)
	return nil
}

func main() {
	var in, out, settingsPath, formatsPath string
	var noBaseline bool
	var opts convertOptions
	flag.StringVar(&in, "i", "", "Path to input .bindec file")
	flag.StringVar(&out, "o", "", "Comma separated output files, format by extension: glb, fbx, zip, obj, bindec")
	flag.StringVar(&settingsPath, "config", "", "Path to yaml settings file")
	flag.StringVar(&formatsPath, "formats", "", "Path to coordinate formats json, overrides settings")
	flag.IntVar(&opts.Start, "start", 0, "First frame of bindec output, 0 - scene start")
	flag.IntVar(&opts.End, "end", 0, "Last frame of bindec output, 0 - scene end")
	flag.BoolVar(&opts.Rig, "rig", false, "Build body part armature at first frame")
	flag.BoolVar(&noBaseline, "nobaseline", false, "Do not key first frame with rest positions")
	flag.Parse()

	if in == "" || out == "" {
		flag.PrintDefaults()
		return
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if formatsPath != "" {
		settings.FormatsPath = formatsPath
	}
	opts.KeyBaseline = settings.KeyBaseline && !noBaseline

	opts.Formats = bindec.Formats{}
	if _, err := os.Stat(settings.FormatsPath); err == nil {
		if opts.Formats, err = bindec.LoadFormatsFile(settings.FormatsPath); err != nil {
			log.Fatal(err)
		}
	}

	a, err := bindec.ReadFile(in, nil)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[bindecconv] %d points, %d frames", len(a.Points), a.FrameCount)
	if settings.Verbose {
		utils.LogDump(a.DeclaredCounts)
	}

	var g errgroup.Group
	for _, path := range strings.Split(out, ",") {
		path := strings.TrimSpace(path)
		if path == "" {
			continue
		}
		g.Go(func() error {
			return convert(a, path, opts)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
