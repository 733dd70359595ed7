package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/gridspin/viewer"
	"github.com/Carmen-Shannon/gridspin/viewer/renderer"
	"github.com/Carmen-Shannon/gridspin/viewer/window"
)

func main() {
	var (
		width    = flag.Int("width", 1280, "window width in pixels")
		height   = flag.Int("height", 720, "window height in pixels")
		profile  = flag.Bool("profile", false, "log FPS and memory statistics")
		software = flag.Bool("software", false, "force the software fallback GPU adapter")
		uncapped = flag.Bool("uncapped", false, "present frames without waiting for vsync")
		msaaOff  = flag.Bool("no-msaa", false, "disable multisample anti-aliasing")
	)
	flag.Parse()

	options := []viewer.ViewerBuilderOption{
		viewer.WithWindowOptions(
			window.WithTitle("Grid Spin"),
			window.WithSize(*width, *height),
		),
	}

	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithForceSoftwareRenderer(*software),
	}
	if *uncapped {
		rendererOptions = append(rendererOptions, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	if *msaaOff {
		rendererOptions = append(rendererOptions, renderer.WithMSAA(renderer.MSAAOff))
	}
	options = append(options, viewer.WithRendererOptions(rendererOptions...))

	if *profile {
		options = append(options, viewer.WithProfiling())
	}

	v, err := viewer.NewViewer(options...)
	if err != nil {
		log.Fatalf("[GridSpin] failed to start viewer: %v", err)
	}

	v.Run()
}
