// Command vgdemo opens a window and draws the demo scene with the OpenGL
// backend every frame.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/backend/opengl"
	"github.com/gogpu/vg/internal/demo"
)

const windowTitle = "vg demo"

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 400, "window width")
	height := flag.Int("height", 300, "window height")
	flag.Parse()

	if err := run(*width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fw, fh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fw, fh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	cache := vg.NewCache()
	scene, err := demo.NewScene(cache)
	if err != nil {
		return err
	}

	// Warm a glyph atlas with the label glyphs each frame and keep its
	// texture resident. Nothing samples it yet; labels are drawn as curves.
	cfg := atlas.DefaultConfig()
	glyphs, err := atlas.NewBitmapCache(cfg, cache)
	if err != nil {
		return fmt.Errorf("glyph atlas: %w", err)
	}
	atlasTex := opengl.NewAtlasTexture(cfg.Width, cfg.Height)
	defer atlasTex.Delete()

	start := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		fw, fh := window.GetFramebufferSize()
		ww, _ := window.GetSize()
		scale := float32(1)
		if ww > 0 {
			scale = float32(fw) / float32(ww)
		}
		renderer.Resize(fw, fh)

		f := vg.NewFrame(cache, renderer, float32(fw), float32(fh), vg.WithScale(scale))
		scene.Draw(f, float32(time.Since(start).Seconds()))
		f.Finish()

		scene.WarmGlyphs(glyphs, "fps 0123456789", 12*scale)
		glyphs.Flush(atlasTex)

		window.SwapBuffers()
	}
	return nil
}
