package lace

import (
	"github.com/desertthunder/lacery/internal/binding"
)

// probe is a minimal bound control that counts refreshes and mirrors its first key.
type probe struct {
	Base
	obj     any
	keys    []string
	size    Size
	updates int
	shown   float64
}

func newProbe(label string, obj any, keys ...string) *probe {
	p := &probe{Base: NewBase(label, DisplayBlock), obj: obj, keys: keys}
	if len(keys) > 0 {
		p.shown = binding.Float(obj, keys[0])
	}
	return p
}

func (p *probe) Obj() any       { return p.obj }
func (p *probe) Keys() []string { return p.keys }
func (p *probe) SetSize(s Size) { p.size = s }

func (p *probe) Update() {
	p.updates++
	if len(p.keys) > 0 {
		p.shown = binding.Float(p.obj, p.keys[0])
	}
}

// edit mimics a user edit: write the host object, then announce it.
func (p *probe) edit(v float64) {
	_ = binding.Set(p.obj, p.keys[0], v)
	p.shown = v
	p.Changed()
}
