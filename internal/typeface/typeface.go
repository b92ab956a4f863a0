// Package typeface loads the JSON font used to extrude the hero text.
//
// The browser fetches the same file to build the 3D text geometry. The server loads it
// once at startup in the background; until the load succeeds the hero renders its
// flat-text placeholder. A failed load is logged and never retried.
package typeface

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/Barrsum/portfolio/internal/logger"
)

// ErrNotLoaded is returned by Face while the font is pending or after it failed.
var ErrNotLoaded = errors.New("typeface not loaded")

// Status is the loader state.
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Face is the subset of a typeface.json document the server inspects.
type Face struct {
	FamilyName  string                     `json:"familyName"`
	Resolution  int                        `json:"resolution"`
	Ascender    float64                    `json:"ascender"`
	Descender   float64                    `json:"descender"`
	Glyphs      map[string]json.RawMessage `json:"glyphs"`
	BoundingBox struct {
		XMin float64 `json:"xMin"`
		XMax float64 `json:"xMax"`
		YMin float64 `json:"yMin"`
		YMax float64 `json:"yMax"`
	} `json:"boundingBox"`
}

// Covers reports whether every rune of text has a glyph (spaces always pass).
func (f *Face) Covers(text string) bool {
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if _, ok := f.Glyphs[string(r)]; !ok {
			return false
		}
	}
	return true
}

// Decode parses a typeface.json document.
func Decode(data []byte) (*Face, error) {
	var face Face
	if err := json.Unmarshal(data, &face); err != nil {
		return nil, fmt.Errorf("decode typeface: %w", err)
	}
	if len(face.Glyphs) == 0 {
		return nil, errors.New("decode typeface: no glyphs")
	}
	return &face, nil
}

// Loader loads one typeface file and remembers the outcome.
type Loader struct {
	file string
	log  *logger.Logger

	mu     sync.RWMutex
	status Status
	face   *Face
	err    error
	done   chan struct{}
	once   sync.Once
}

// NewLoader prepares a loader for the font at file. Nothing is read until Start or Load.
func NewLoader(file string, log *logger.Logger) *Loader {
	return &Loader{
		file: file,
		log:  log.With("asset", "typeface"),
		done: make(chan struct{}),
	}
}

// File is the path the loader reads.
func (l *Loader) File() string {
	return l.file
}

// Name is the base name of the font file, used in its public URL.
func (l *Loader) Name() string {
	return filepath.Base(l.file)
}

// URL is the public path of the font, empty unless the font is ready.
func (l *Loader) URL(prefix string) string {
	if l.Status() != Ready {
		return ""
	}
	return path.Join(prefix, l.Name())
}

// Start loads the font in the background. Calling it more than once has no effect.
func (l *Loader) Start(ctx context.Context) {
	go func() {
		_ = l.Load(ctx)
	}()
}

// Load reads and decodes the font synchronously. Only the first call does any work;
// later calls wait for it and return its result.
func (l *Loader) Load(ctx context.Context) error {
	l.once.Do(func() {
		face, err := l.read(ctx)

		l.mu.Lock()
		if err != nil {
			l.status = Failed
			l.err = err
		} else {
			l.status = Ready
			l.face = face
		}
		l.mu.Unlock()
		close(l.done)

		if err != nil {
			l.log.WithFields(map[string]any{"file": l.file}).Error(err, "typeface load failed; hero text stays on placeholder")
			return
		}
		l.log.WithFields(map[string]any{"file": l.file, "family": face.FamilyName, "glyphs": len(face.Glyphs)}).Info("typeface loaded")
	})

	<-l.done
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *Loader) read(ctx context.Context) (*Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.file)
	if err != nil {
		return nil, fmt.Errorf("read typeface: %w", err)
	}
	return Decode(data)
}

// Done is closed once loading finished, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Status reports the current loader state.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Face returns the decoded font once ready.
func (l *Loader) Face() (*Face, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.status != Ready {
		return nil, ErrNotLoaded
	}
	return l.face, nil
}
