package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/prefabs"
	"github.com/milk9111/tilemotion/replay"
	"github.com/milk9111/tilemotion/sim"
	"golang.design/x/clipboard"
)

const (
	maxEventLog  = 8
	statusFrames = 180
)

type Config struct {
	Level   string
	Player  string
	Script  string
	Verbose bool
	Watch   bool
}

type Game struct {
	cfg Config
	sim *sim.Sim

	script  *replay.Source
	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	tiles   *tileLayer

	paused    bool
	quit      bool
	showProbe bool
	clipboard bool

	events      []ecs.CollisionEvent
	status      string
	statusTimer int
}

func NewGame(cfg Config) (*Game, error) {
	s, err := sim.New(sim.Options{
		Level:   cfg.Level,
		Player:  cfg.Player,
		Input:   liveInput{},
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, sim: s, showProbe: true}
	if cfg.Script != "" {
		if err := g.loadScript(); err != nil {
			return nil, err
		}
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}
	if cfg.Watch {
		g.watcher = startWatcher()
	}
	g.tiles = newTileLayer(s.Grid)
	g.ui = NewPauseUI(g)
	return g, nil
}

// startWatcher watches whichever of the asset directories exist on disk.
func startWatcher() *prefabs.Watcher {
	var dirs []string
	for _, dir := range []string{"prefabs", "prefabs/scripts", "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadScript() error {
	src, err := replay.Load(g.cfg.Script)
	if err != nil {
		return err
	}
	g.script = src
	g.sim.SetInput(src)
	return nil
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusTimer = statusFrames
	log.Print(g.status)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.showProbe = !g.showProbe
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.sim.RequestRespawn("manual")
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		g.copySpec()
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && g.script != nil:
		g.restartScript()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		col, row := g.sim.Grid.WorldToCell(float64(x), float64(y))
		g.sim.ToggleSolid(col, row)
	}

	if g.script != nil && g.script.Done() {
		return nil
	}
	g.events = append(g.events, g.sim.Step()...)
	if n := len(g.events); n > maxEventLog {
		g.events = g.events[n-maxEventLog:]
	}
	if g.statusTimer > 0 {
		g.statusTimer--
	}
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case prefabs.IsLevelFile(path):
		if err := g.sim.ReloadLevel(); err != nil {
			g.setStatus("reload level: %v", err)
			return
		}
		g.tiles = newTileLayer(g.sim.Grid)
		g.setStatus("reloaded level %s", g.sim.LevelName())
	case prefabs.IsScriptFile(path):
		if g.script == nil {
			return
		}
		if err := g.loadScript(); err != nil {
			g.setStatus("reload script: %v", err)
			return
		}
		g.setStatus("reloaded script %s", g.script.Name())
	default:
		if err := g.sim.ReloadSpec(); err != nil {
			g.setStatus("reload player: %v", err)
			return
		}
		g.setStatus("reloaded player %s", g.sim.Spec.Name)
	}
}

func (g *Game) copySpec() {
	b, err := g.sim.Spec.EncodeYAML()
	if err != nil {
		g.setStatus("encode player: %v", err)
		return
	}
	if !g.clipboard {
		fmt.Print(string(b))
		g.setStatus("player spec written to stdout")
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.setStatus("player spec copied to clipboard")
}

func (g *Game) restartScript() {
	g.script.Reset()
	g.sim.RequestRespawn("script restart")
	g.events = g.events[:0]
	g.setStatus("restarted script %s", g.script.Name())
}

func (g *Game) loadLevel(name string) {
	if err := g.sim.LoadLevel(name); err != nil {
		g.setStatus("load level %s: %v", name, err)
		return
	}
	g.tiles = newTileLayer(g.sim.Grid)
	g.ui = NewPauseUI(g)
	g.setStatus("loaded level %s", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.tiles.sync(g.sim.Grid)
	g.tiles.draw(screen)
	g.drawPlayer(screen)
	g.drawHUD(screen)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.sim.Grid.WorldBounds()
	return int(b.Width), int(b.Height)
}
