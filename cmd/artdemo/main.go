// Command artdemo renders a demo scene into an off-screen window buffer
// and writes what the window would show as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	back "github.com/gnustep/libs-back"
	"github.com/gnustep/libs-back/fontinfo"
	"github.com/gnustep/libs-back/gstate"
	"github.com/gnustep/libs-back/headless"
	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

func main() {
	cfg := defaultConfig()
	var (
		configPath = flag.String("config", "", "TOML file with defaults for the flags below")
		width      = flag.Int("width", cfg.Width, "window width")
		height     = flag.Int("height", cfg.Height, "window height")
		output     = flag.String("output", cfg.Output, "output file")
		layout     = flag.String("layout", cfg.Layout, "pixel layout: "+layoutNames())
		shm        = flag.Bool("shm", cfg.SharedMemory, "present asynchronously as with shared memory")
		text       = flag.String("text", cfg.Text, "text line to draw")
		fontMode   = flag.String("font-mode", cfg.FontMode, "glyph rendering: antialias, mono or subpixel")
		verbose    = flag.Bool("v", false, "log backend decisions")
	)
	flag.Parse()

	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "output":
			cfg.Output = *output
		case "layout":
			cfg.Layout = *layout
		case "shm":
			cfg.SharedMemory = *shm
		case "text":
			cfg.Text = *text
		case "font-mode":
			cfg.FontMode = *fontMode
		}
	})

	var opts []back.Option
	if *verbose {
		opts = append(opts, back.WithLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	img, l, err := render(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %v)\n", cfg.Output, cfg.Width, cfg.Height, l)
}

// render draws the scene into a headless window and returns what the
// window shows.
func render(cfg config, opts ...back.Option) (*image.RGBA, pixfmt.Layout, error) {
	l, ok := findLayout(cfg.Layout)
	if !ok {
		return nil, 0, fmt.Errorf("unknown layout %q (have %s)", cfg.Layout, layoutNames())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, 0, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	mode, ok := findRenderMode(cfg.FontMode)
	if !ok {
		return nil, 0, fmt.Errorf("unknown font mode %q", cfg.FontMode)
	}

	d := headless.New(
		headless.WithVisual(pixfmt.SetupLayout(l).Visual),
		headless.WithSharedMemory(cfg.SharedMemory),
		headless.WithCapture(true))
	opts = append(opts, back.WithSegmentAllocator(&winbuf.HeapAllocator{}))
	b := back.New(d, opts...)
	defer b.Close()

	win := headless.NewWindow(1, cfg.Width, cfg.Height)
	gs := b.GState(win)

	drawBackground(gs, cfg.Width, cfg.Height)
	drawShapes(gs.Copy())
	drawTransforms(gs.Copy())
	drawPaths(gs.Copy())
	drawClipped(gs.Copy())
	drawImage(gs.Copy())
	if err := drawText(gs.Copy(), cfg.Text, cfg.FontSize, mode); err != nil {
		return nil, 0, fmt.Errorf("text: %w", err)
	}

	if err := b.FlushWindow(win); err != nil {
		return nil, 0, fmt.Errorf("flush: %w", err)
	}
	d.Drain()
	return d.Frame(win.Handle()), b.Info().Layout, nil
}

func layoutNames() string {
	var names []string
	for _, l := range pixfmt.Layouts() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

func findLayout(name string) (pixfmt.Layout, bool) {
	for _, l := range pixfmt.Layouts() {
		if strings.EqualFold(l.String(), name) {
			return l, true
		}
	}
	return 0, false
}

func findRenderMode(name string) (fontinfo.RenderMode, bool) {
	for _, m := range []fontinfo.RenderMode{fontinfo.Antialias, fontinfo.Mono, fontinfo.Subpixel} {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

func drawBackground(gs *gstate.GState, w, h int) {
	steps := 100
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		gs.SetFillColor(color.NRGBA{
			R: uint8(255 * (0.1 + t*0.4)),
			G: uint8(255 * (0.2 + t*0.3)),
			B: uint8(255 * (0.4 + t*0.2)),
			A: 255,
		})
		y := float64(h) * t
		gs.RectFill(0, y, float64(w), float64(h)/float64(steps)+1)
	}
}

func drawShapes(gs *gstate.GState) {
	circles := []struct {
		x, y float64
		c    color.NRGBA
	}{
		{90, 90, color.NRGBA{R: 255, G: 77, B: 77, A: 204}},
		{140, 90, color.NRGBA{R: 77, G: 255, B: 77, A: 204}},
		{115, 140, color.NRGBA{R: 77, G: 77, B: 255, A: 204}},
	}
	for _, c := range circles {
		p := gstate.NewPath()
		p.Oval(c.x, c.y, 120, 120)
		gs.SetFillColor(c.c)
		gs.Fill(p, gstate.NonZero)
	}

	p := gstate.NewPath()
	p.RoundedRect(290, 40, 120, 80, 15)
	gs.SetFillColor(color.NRGBA{R: 255, G: 204, A: 255})
	gs.Fill(p, gstate.NonZero)

	gs.SetStrokeColor(color.White)
	gs.SetLineWidth(4)
	gs.SetLineJoin(gstate.JoinRound)
	gs.RectStroke(290, 40, 120, 80)

	// Punch a translucent hole into the window; the buffer grows an
	// alpha channel and the window a shape.
	gs.SetFillColor(color.NRGBA{A: 128})
	gs.CompositeRect(300, 60, 30, 30, pixfmt.OpCopy)
}

func drawTransforms(gs *gstate.GState) {
	for i := 0; i < 8; i++ {
		g := gs.Copy()
		g.Translate(540, 90)
		g.Rotate(float64(i) * math.Pi / 4)
		g.SetFillColor(color.NRGBA{R: uint8(32 * i), G: 160, B: uint8(255 - 32*i), A: 200})
		g.RectFill(-30, -30, 60, 60)
	}
}

func drawPaths(gs *gstate.GState) {
	gs.Translate(60, 300)

	p := gstate.NewPath()
	p.MoveTo(0, 0)
	p.CurveTo(50, -50, 100, 50, 150, 0)
	p.CurveTo(200, -30, 250, 30, 300, 0)
	gs.SetStrokeColor(color.NRGBA{R: 255, G: 128, A: 255})
	gs.SetLineWidth(6)
	gs.SetLineCap(gstate.CapRound)
	gs.SetDash([]float64{18, 10}, 0)
	gs.Stroke(p)

	gs.Translate(400, 0)
	star := gstate.NewPath()
	const points = 5
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		x := r * math.Cos(angle-math.Pi/2)
		y := r * math.Sin(angle-math.Pi/2)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	gs.SetFillColor(color.NRGBA{R: 255, G: 255, A: 255})
	gs.Fill(star, gstate.EvenOdd)
}

func drawClipped(gs *gstate.GState) {
	clip := gstate.NewPath()
	clip.Oval(20, 380, 160, 80)
	gs.Clip(clip, gstate.NonZero)
	for i := 0; i < 8; i++ {
		gs.SetFillColor(color.NRGBA{R: uint8(30 * i), G: 60, B: 120, A: 255})
		gs.RectFill(20+float64(i)*20, 380, 20, 80)
	}
}

func drawImage(gs *gstate.GState) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}
	gs.DrawImage(img, 220, 380, 96, 64, pixfmt.OpSourceOver, 200)
}

func drawText(gs *gstate.GState, text string, size float64, mode fontinfo.RenderMode) error {
	face, err := fontinfo.Default(size, fontinfo.WithRenderMode(mode))
	if err != nil {
		return err
	}
	gs.SetFillColor(color.White)
	gs.ShowGlyphs(face, face.Glyphs(text), 340, 420)

	gs.Translate(340, 460)
	gs.Rotate(-0.1)
	gs.SetFillColor(color.NRGBA{R: 255, G: 220, B: 120, A: 255})
	gs.ShowGlyphs(face, face.Glyphs("rotated outlines"), 0, 0)
	return nil
}
