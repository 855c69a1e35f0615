package tasks

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/lace"
)

// Loader writes a named preset into a host object.
type Loader interface {
	Apply(name string, obj any) error
}

// SceneFunc builds a fresh panel together with the host object its controls edit.
type SceneFunc func() (*lace.Lace, any)

// Engine runs preset tasks against panels built by a [SceneFunc].
type Engine struct {
	loader Loader
	scene  SceneFunc
	logger *log.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(loader Loader, scene SceneFunc, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{loader: loader, scene: scene, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
