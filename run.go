package viewport

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title string
	// Width and Height default to the viewport's configured size.
	Width, Height int
	// Background fills the screen before the viewport's draw function runs.
	// Nil leaves the screen as Ebitengine cleared it.
	Background color.Color
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
}

// Run opens a resizable window and runs vp until the window is closed. If vp
// has no host an Ebitengine host is attached.
func Run(vp *Viewport, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = vp.config.Width, vp.config.Height
	}
	if vp.host == nil {
		vp.SetHost(NewEbitenHost(cfg.Width, cfg.Height, vp.config.DoubleClick()))
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{vp: vp, cfg: cfg, width: cfg.Width, height: cfg.Height}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}

type game struct {
	vp            *Viewport
	cfg           RunConfig
	width, height int
	fps           *fpsOverlay
}

func (g *game) Update() error {
	g.vp.Update()
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	g.vp.Draw(screen)
	if g.fps != nil {
		screen.DrawImage(g.fps.img, nil)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.vp.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// fpsOverlay displays the current FPS and TPS, refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
