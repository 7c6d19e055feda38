// Package main is the interactive confetti demo: an ebiten host that
// mounts the animation driver and renders each particle as a rotated
// colored square.
//
// Usage:
//
//	go run ./cmd/confetti [flags]
//
// Flags:
//
//	--config <path>       Load host configuration from a YAML file
//	--direction <name>    Burst direction: left, right, top, center
//	--count <n>           Particles per burst
//	--seed <n>            Fixed random seed (0 = time-seeded)
//	--auto                Enable the one-shot delayed auto burst
//	--auto-delay-ms <n>   Auto burst delay in milliseconds
//	--verbose             Keep log output enabled
//
// Controls:
//
//	Space             - Burst at screen center (current direction)
//	Mouse Click       - Burst at cursor position
//	Left/Right/Up     - Switch direction to left/right/top and burst
//	C                 - Switch direction to center and burst
//	S                 - Stop: clear particles, cancel pending auto burst
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/LynchzDEV/lynchz-confetti/internal/sim"
	"github.com/LynchzDEV/lynchz-confetti/pkg/anim"
	"github.com/LynchzDEV/lynchz-confetti/pkg/config"
	"github.com/LynchzDEV/lynchz-confetti/pkg/settings"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var (
	configFlag    = flag.String("config", "", "Path to YAML config file")
	directionFlag = flag.String("direction", "", "Burst direction (left, right, top, center)")
	countFlag     = flag.Int("count", 0, "Particles per burst (0 = use config/settings)")
	seedFlag      = flag.Int64("seed", 0, "Fixed random seed (0 = time-seeded)")
	autoFlag      = flag.Bool("auto", false, "Enable one-shot delayed auto burst")
	autoDelayFlag = flag.Int("auto-delay-ms", 1000, "Auto burst delay in milliseconds")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// ConfettiGame implements ebiten.Game. It owns the driver, polls it
// once per Update and renders the latest snapshot in Draw. The overlay
// is purely visual and intercepts no input of its own.
type ConfettiGame struct {
	driver          *anim.Driver
	settingsManager *settings.Manager

	direction sim.Direction
	count     int
	// Configured burst origin; nil means viewport center.
	originX, originY *float64
	autoEnabled      bool
	snapshot         anim.Snapshot

	// 1×1 white source pixel, transformed per particle in Draw.
	pixel *ebiten.Image

	statusMessage string
}

// NewConfettiGame wires the driver from config, flags and saved
// settings. Flag values win over the config file (nil when no --config
// was given), which wins over saved settings.
func NewConfettiGame(cfg *config.Config, sm *settings.Manager) (*ConfettiGame, error) {
	saved := sm.Get()
	if cfg == nil {
		cfg = config.Default()
		cfg.Direction = saved.Direction
		cfg.Count = saved.Count
		cfg.AutoTrigger.Enabled = saved.AutoPlay
		cfg.AutoTrigger.DelayMilliseconds = *autoDelayFlag
	}

	direction, err := sim.ParseDirection(resolveString(*directionFlag, cfg.Direction))
	if err != nil {
		return nil, err
	}

	count := cfg.Count
	if *countFlag > 0 {
		count = *countFlag
	}

	autoTrigger := anim.AutoTrigger{}
	if *autoFlag || cfg.AutoTrigger.Enabled {
		autoDir := direction
		if cfg.AutoTrigger.Direction != "" {
			autoDir, err = sim.ParseDirection(cfg.AutoTrigger.Direction)
			if err != nil {
				return nil, err
			}
		}
		delay := time.Duration(cfg.AutoTrigger.DelayMilliseconds) * time.Millisecond
		if *autoFlag {
			delay = time.Duration(*autoDelayFlag) * time.Millisecond
		}
		autoTrigger = anim.AutoTrigger{
			Enabled:   true,
			Direction: autoDir,
			Count:     cfg.AutoTrigger.Count,
			Delay:     delay,
		}
	}

	var simulator *sim.Simulator
	if *seedFlag != 0 {
		simulator = sim.NewSimulatorSeed(*seedFlag)
	}

	driver := anim.NewDriver(anim.Options{
		ViewportWidth:  screenWidth,
		ViewportHeight: screenHeight,
		Count:          count,
		AutoTrigger:    autoTrigger,
		Simulator:      simulator,
	})
	driver.Start()

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &ConfettiGame{
		driver:          driver,
		settingsManager: sm,
		direction:       direction,
		count:           count,
		originX:         cfg.OriginX,
		originY:         cfg.OriginY,
		autoEnabled:     autoTrigger.Enabled,
		pixel:           pixel,
		statusMessage:   fmt.Sprintf("Direction: %s, count: %d", direction, count),
	}

	log.Printf("[Confetti] initialized: direction=%s count=%d auto=%v", direction, count, autoTrigger.Enabled)
	return g, nil
}

// resolveString returns the first non-empty value.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Update handles input and advances the driver by one tick.
func (g *ConfettiGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.saveSettings()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.setDirectionAndBurst(sim.DirectionLeft)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.setDirectionAndBurst(sim.DirectionRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.setDirectionAndBurst(sim.DirectionTop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.setDirectionAndBurst(sim.DirectionCenter)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.burst()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.driver.BurstAt(g.direction, g.count, float64(x), float64(y)); err != nil {
			log.Printf("[Confetti] burst failed: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.driver.Stop()
		g.statusMessage = "Stopped: particles cleared, auto burst cancelled"
	}

	g.snapshot = g.driver.Tick()
	return nil
}

// setDirectionAndBurst switches the active direction and fires a burst
// at the configured origin so the change is immediately visible.
func (g *ConfettiGame) setDirectionAndBurst(dir sim.Direction) {
	g.direction = dir
	g.settingsManager.SetDirection(dir)
	g.statusMessage = fmt.Sprintf("Direction: %s", dir)
	g.burst()
}

// burst fires at the configured origin (screen center unless the
// config file pins one); ignored while a burst is running.
func (g *ConfettiGame) burst() {
	x, y := float64(screenWidth)/2, float64(screenHeight)/2
	if g.originX != nil {
		x = *g.originX
	}
	if g.originY != nil {
		y = *g.originY
	}
	if err := g.driver.BurstAt(g.direction, g.count, x, y); err != nil {
		log.Printf("[Confetti] burst failed: %v", err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
	}
}

// saveSettings persists the last used preferences on quit.
func (g *ConfettiGame) saveSettings() {
	g.settingsManager.SetCount(g.count)
	g.settingsManager.SetAutoPlay(g.autoEnabled)
	if err := g.settingsManager.Save(); err != nil {
		log.Printf("[Confetti] Warning: failed to save settings: %v", err)
	}
}

// Draw renders the snapshot: one rotated filled square per particle,
// layered above the background, then the debug overlay.
func (g *ConfettiGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 25, G: 25, B: 38, A: 255})

	for _, p := range g.snapshot.Particles {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Size, p.Size)
		op.GeoM.Translate(-p.Size/2, -p.Size/2)
		op.GeoM.Rotate(p.RotationAngle * math.Pi / 180)
		op.GeoM.Translate(p.X, p.Y)
		op.ColorScale.ScaleWithColor(p.Color)
		screen.DrawImage(g.pixel, op)
	}

	g.drawUI(screen)
}

// drawUI draws the status overlay with live driver state and controls.
func (g *ConfettiGame) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Confetti", 10, 10)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Particles: %d  Animating: %v", g.snapshot.ParticleCount, g.snapshot.IsAnimating), 10, 30)
	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 50)
	}

	controls := []string{
		"Space = Burst  Click = Burst at cursor  Arrows/C = Direction",
		"S = Stop  Q/Esc = Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}
}

// Layout returns the fixed logical screen size.
func (g *ConfettiGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	var cfg *config.Config
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Preferences survive across runs; a storage failure only means
	// they won't, so run anyway in degraded mode.
	gdataManager, err := gdata.Open(gdata.Config{AppName: "lynchz_confetti"})
	if err != nil {
		log.Printf("[Confetti] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}
	sm := settings.NewManager(gdataManager)

	game, err := NewConfettiGame(cfg, sm)
	if err != nil {
		log.Fatal("Failed to initialize: ", err)
	}

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Confetti")

	if err := ebiten.RunGame(game); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
