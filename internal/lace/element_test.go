package lace

import (
	"errors"
	"testing"

	"github.com/desertthunder/lacery/internal/shared"
)

func TestBase(t *testing.T) {
	t.Run("OnChange is last-wins", func(t *testing.T) {
		b := NewBase("b", DisplayDefault)
		var first, second int
		b.OnChange(func() { first++ })
		b.OnChange(func() { second++ })
		b.Changed()

		if first != 0 || second != 1 {
			t.Errorf("expected only the last callback to run, got first=%d second=%d", first, second)
		}
	})

	t.Run("Changed runs onChange before update callbacks in order", func(t *testing.T) {
		b := NewBase("b", DisplayDefault)
		var order []string
		b.OnChange(func() { order = append(order, "change") })
		b.RegisterUpdateCallback(NewCallback(func() { order = append(order, "one") }))
		b.RegisterUpdateCallback(NewCallback(func() { order = append(order, "two") }))
		b.Changed()

		want := []string{"change", "one", "two"}
		if len(order) != len(want) {
			t.Fatalf("expected %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
			}
		}
	})

	t.Run("deregister removes at most one matching handle", func(t *testing.T) {
		b := NewBase("b", DisplayDefault)
		calls := 0
		cb := NewCallback(func() { calls++ })
		b.RegisterUpdateCallback(cb)
		b.RegisterUpdateCallback(cb)
		b.DeregisterUpdateCallback(cb)
		b.Changed()

		if calls != 1 {
			t.Errorf("expected one remaining registration, got %d calls", calls)
		}
	})

	t.Run("deregistering an unknown handle is a no-op", func(t *testing.T) {
		b := NewBase("b", DisplayDefault)
		b.RegisterUpdateCallback(NewCallback(func() {}))
		b.DeregisterUpdateCallback(NewCallback(func() {}))
		b.DeregisterUpdateCallback(nil)

		if got := len(b.UpdateCallbacks()); got != 1 {
			t.Errorf("expected 1 callback, got %d", got)
		}
	})

	t.Run("callbacks may deregister during dispatch", func(t *testing.T) {
		b := NewBase("b", DisplayDefault)
		calls := 0
		var self *Callback
		self = NewCallback(func() {
			calls++
			b.DeregisterUpdateCallback(self)
		})
		b.RegisterUpdateCallback(self)
		b.RegisterUpdateCallback(NewCallback(func() { calls++ }))

		b.Changed()
		b.Changed()

		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("zero value base has a handle", func(t *testing.T) {
		var b Base
		if b.Handle() == nil || b.Handle().Display() != DisplayDefault {
			t.Error("expected lazily created default handle")
		}
		b.Changed()
	})
}

func TestHandle(t *testing.T) {
	tc := []struct {
		name  string
		steps []string
		want  Display
	}{
		{name: "hide then show restores", steps: []string{"hide", "show"}, want: DisplayBlock},
		{name: "double hide then show restores original", steps: []string{"hide", "hide", "show"}, want: DisplayBlock},
		{name: "show without hide is a no-op", steps: []string{"show"}, want: DisplayBlock},
		{name: "show twice after hide", steps: []string{"hide", "show", "show"}, want: DisplayBlock},
		{name: "hide", steps: []string{"hide"}, want: DisplayNone},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandle(DisplayBlock)
			for _, step := range tt.steps {
				switch step {
				case "hide":
					h.hide()
				case "show":
					h.show()
				}
			}
			if h.Display() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, h.Display())
			}
		})
	}

	t.Run("restores a display changed after a show", func(t *testing.T) {
		h := NewHandle(DisplayBlock)
		h.hide()
		h.show()
		h.SetDisplay(DisplayInline)
		h.hide()
		h.show()
		if h.Display() != DisplayInline {
			t.Errorf("expected inline, got %q", h.Display())
		}
	})
}

func TestParseSize(t *testing.T) {
	tc := []struct {
		input   string
		want    Size
		wantErr bool
	}{
		{input: "", want: SizeSmall},
		{input: "small", want: SizeSmall},
		{input: "Medium", want: SizeMedium},
		{input: " large ", want: SizeLarge},
		{input: "huge", want: SizeSmall, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if SizeLarge.String() != "large" || Size(9).String() != "Size(9)" {
		t.Error("unexpected Size.String output")
	}
}
