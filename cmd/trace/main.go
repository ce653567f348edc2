// Command trace runs the simulation headless and prints the player state and
// collision events for every frame.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/tilemotion/replay"
	"github.com/milk9111/tilemotion/sim"
)

func main() {
	levelName := flag.String("level", sim.DefaultLevel, "level name in levels/ or a path to a level file")
	player := flag.String("player", "", "player prefab in prefabs/ (defaults to player.yaml)")
	script := flag.String("script", "walk_jump", "replay script in prefabs/scripts")
	frames := flag.Int("frames", 0, "frames to run; 0 runs until the script sets done")
	events := flag.Bool("events", true, "print collision events")
	flag.Parse()

	if err := run(os.Stdout, *levelName, *player, *script, *frames, *events); err != nil {
		log.Fatal(err)
	}
}

const maxFrames = 1 << 16

func run(out io.Writer, levelName, player, script string, frames int, events bool) error {
	src, err := replay.Load(script)
	if err != nil {
		return err
	}
	s, err := sim.New(sim.Options{Level: levelName, Player: player, Input: src})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# level=%s player=%s script=%s dt=%g\n", s.LevelName(), s.Spec.Name, src.Name(), s.World.Timestep())
	for i := 0; ; i++ {
		if frames > 0 && i >= frames {
			break
		}
		if frames <= 0 && (src.Done() || i >= maxFrames) {
			break
		}
		evs := s.Step()
		if err := src.Err(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		fmt.Fprintln(out, s.Snapshot())
		if !events {
			continue
		}
		for _, ev := range evs {
			fmt.Fprintf(out, "      %s at (%.3f, %.3f)\n", ev.Kind, ev.X, ev.Y)
		}
	}
	return nil
}
