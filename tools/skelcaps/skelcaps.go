package main

import (
	"flag"
	"log"
	"os"

	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/scene"
	"github.com/mogaika/bindec_tools/skeleton"
)

func main() {
	var in, out, settingsPath, encoding, collection string
	var scale, radius float64
	flag.StringVar(&in, "i", "", "Path to skeleton xml, settings skeleton_path by default")
	flag.StringVar(&out, "o", "capsules.glb", "Output file, format by extension: glb, fbx, zip, obj")
	flag.StringVar(&settingsPath, "config", "", "Path to yaml settings file")
	flag.StringVar(&encoding, "encoding", "", "Code page of skeleton xml")
	flag.StringVar(&collection, "collection", "", "Name of capsules collection")
	flag.Float64Var(&scale, "scale", 0, "Node coordinates scale, 0 - from settings")
	flag.Float64Var(&radius, "radius", 0, "Edge radius scale, 0 - from settings")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if in == "" {
		in = settings.SkeletonPath
	}
	if encoding != "" {
		settings.SkeletonEncoding = encoding
	}

	opts := skeleton.OptionsFromSettings(settings)
	if scale != 0 {
		opts.ScaleFactor = scale
	}
	if radius != 0 {
		opts.RadiusScale = radius
	}
	if collection != "" {
		opts.CollectionName = collection
	}

	cm := config.GetEncoding()
	if settings.SkeletonEncoding != "" {
		if cm, err = config.FindEncoding(settings.SkeletonEncoding); err != nil {
			log.Fatalf("%v, available: %v", err, config.ListEncodings())
		}
	}

	s := scene.New()
	result, err := skeleton.ImportFile(s, in, cm, opts, nil)
	if err != nil {
		log.Fatal(err)
	}
	if result.Collection == nil {
		log.Fatalf("[skelcaps] Nothing imported from %s", in)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := s.Export(f, scene.FormatFromPath(out), nil); err != nil {
		log.Fatal(err)
	}
	log.Printf("[skelcaps] %d capsules (%d edges skipped) saved to %s", len(result.Capsules), result.Skipped, out)
}
