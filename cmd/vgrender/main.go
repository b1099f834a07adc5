// Command vgrender renders the demo scene with the CPU backend and writes
// it to a PNG file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/soft"
	"github.com/gogpu/vg/internal/demo"
)

func main() {
	var (
		width   = flag.Int("width", 400, "image width")
		height  = flag.Int("height", 300, "image height")
		scale   = flag.Float64("scale", 1, "device pixel ratio")
		angle   = flag.Float64("t", 0.3, "animation time in seconds")
		output  = flag.String("output", "vg.png", "output file")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		vg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s := float32(*scale)
	w, h := int(float32(*width)*s), int(float32(*height)*s)
	cache := vg.NewCache()
	scene, err := demo.NewScene(cache)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	r := soft.New(w, h)
	f := vg.NewFrame(cache, r, float32(w), float32(h), vg.WithScale(s))
	scene.Draw(f, float32(*angle))
	f.Finish()

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := r.WritePNG(out); err != nil {
		out.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := cache.Stats()
	log.Printf("Rendered %s (%dx%d), %d paths, %d texels\n", *output, w, h, st.Placements, st.UsedTexels)
}
