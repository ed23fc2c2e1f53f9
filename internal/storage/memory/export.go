// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/karlo195/StardewMods/internal/model/core"
)

// exportFile is the JSON shape written on session end.
type exportFile struct {
	Session     *core.Session        `json:"session"`
	Cycles      []core.DispatchCycle `json:"cycles"`
	Effects     []core.TileEffect    `json:"effects"`
	RiderStates []core.RiderState    `json:"riderStates"`
}

// exportJSON writes the session journal to the output directory. Caller must
// hold the lock.
func (b *Backend) exportJSON() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s.json", sanitize(b.session.FarmName), b.session.StartedAt.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		name += ".gz"
	}
	path := filepath.Join(b.cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	payload := exportFile{
		Session:     b.session,
		Cycles:      b.cycles,
		Effects:     b.effects,
		RiderStates: b.riderStates,
	}

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		if err := json.NewEncoder(gz).Encode(payload); err != nil {
			gz.Close()
			return fmt.Errorf("encoding export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("closing gzip writer: %w", err)
		}
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
	}

	b.exportedPath = path
	return nil
}

// sanitize strips path separators from the farm name.
func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', ' ':
			out[i] = '_'
		}
	}
	if len(out) == 0 {
		return "session"
	}
	return string(out)
}
