package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilemotion/sim"
)

func main() {
	levelName := flag.String("level", sim.DefaultLevel, "level name in levels/ (basename, .json optional) or a path to a level file")
	player := flag.String("player", "", "player prefab in prefabs/ (defaults to player.yaml)")
	script := flag.String("script", "", "replay script in prefabs/scripts to drive input instead of the keyboard")
	scale := flag.Float64("scale", 2, "window scale")
	verbose := flag.Bool("verbose", false, "log collision events")
	watch := flag.Bool("watch", true, "hot reload prefabs, scripts and levels from disk")
	flag.Parse()

	game, err := NewGame(Config{
		Level:   *levelName,
		Player:  *player,
		Script:  *script,
		Verbose: *verbose,
		Watch:   *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(float64(w)**scale), int(float64(h)**scale))
	ebiten.SetWindowTitle("tilemotion sandbox")

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
