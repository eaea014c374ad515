package main

import (
	"flag"
	"log"
	"os"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/web"
)

func main() {
	var addr, settingsPath, formatsPath, encoding, webPath string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&settingsPath, "config", "", "Path to yaml settings file")
	flag.StringVar(&formatsPath, "formats", "", "Path to coordinate formats json, overrides settings")
	flag.StringVar(&encoding, "encoding", "", "Skeleton xml code page, overrides settings ("+config.GetEncoding().String()+")")
	flag.StringVar(&webPath, "web", "web", "Path to folder with web data")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if formatsPath != "" {
		settings.FormatsPath = formatsPath
	}
	if encoding != "" {
		settings.SkeletonEncoding = encoding
	}
	if settings.SkeletonEncoding != "" {
		if err := config.SetEncoding(settings.SkeletonEncoding); err != nil {
			log.Fatalf("%v, available: %v", err, config.ListEncodings())
		}
	}

	formats := bindec.Formats{}
	if settings.FormatsPath != "" {
		if _, err := os.Stat(settings.FormatsPath); err == nil {
			if formats, err = bindec.LoadFormatsFile(settings.FormatsPath); err != nil {
				log.Fatal(err)
			}
		} else {
			log.Printf("[main] Formats file %q not found, using default precision", settings.FormatsPath)
		}
	}

	if err := web.StartServer(addr, settings, formats, webPath); err != nil {
		log.Fatal(err)
	}
}
