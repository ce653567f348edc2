package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/tilemotion/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

// Load reads a level, preferring levels/<name> on disk over the embedded
// copy so hot reload sees edits.
func Load(name string) (*tilemap.Level, error) {
	if lvl, err := tilemap.LoadLevelFromFS(os.DirFS("levels"), name); err == nil {
		return lvl, nil
	}
	return tilemap.LoadLevelFromFS(LevelsFS, name)
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
