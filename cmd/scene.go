package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/elements"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
)

// Scene is the host object edited by the demo panel.
type Scene struct {
	Title     string  `lace:"title"`
	Enabled   bool    `lace:"enabled"`
	Exposure  float64 `lace:"exposure"`
	Samples   int     `lace:"samples"`
	Quality   string  `lace:"quality"`
	Tint      string  `lace:"tint"`
	OffsetX   float64 `lace:"offset_x"`
	OffsetY   float64 `lace:"offset_y"`
	PositionX float64 `lace:"position_x"`
	PositionY float64 `lace:"position_y"`
	PositionZ float64 `lace:"position_z"`
	Albedo    []byte  `lace:"albedo"`
}

// NewScene returns the scene defaults.
func NewScene() *Scene {
	return &Scene{
		Title:    "untitled",
		Enabled:  true,
		Exposure: 1,
		Samples:  16,
		Quality:  "draft",
		Tint:     "rgb(255, 255, 255)",
	}
}

var qualities = []elements.Option{
	{Value: "draft", Text: "Draft"},
	{Value: "preview", Text: "Preview"},
	{Value: "final", Text: "Final"},
}

var sampleCounts = []elements.NumberOption{
	{Value: 1, Text: "1 spp"},
	{Value: 4, Text: "4 spp"},
	{Value: 16, Text: "16 spp"},
	{Value: 64, Text: "64 spp"},
}

var tints = []string{"#ffffff", "#f5c2e7", "#89b4fa", "#a6e3a1", "#f9e2af"}

// buildScene lays out the demo panel over s.
//
// The exposure slider and number share a field and are cross-linked by the registry.
func buildScene(config *shared.Config, logger *log.Logger, s *Scene) (*lace.Lace, error) {
	size, err := lace.ParseSize(config.UI.Size)
	if err != nil {
		return nil, err
	}

	l := lace.New(lace.Options{Size: size, DarkMode: config.UI.DarkMode, Logger: logger})

	l.Add(elements.NewLabel("Scene", elements.LabelOptions{Bold: true}))
	l.Add(elements.NewText("Title", s, "title", elements.TextOptions{}))
	l.Add(elements.NewBoolean("Enabled", s, "enabled", elements.BooleanOptions{Help: "Include the scene in renders"}))

	tabs := l.AddTab(lace.TabOptions{
		Vertical: config.UI.VerticalTabs,
		OnTabChange: func(name string) {
			logger.Debug("tab changed", "tab", name)
		},
	})

	render := tabs.AddTab("Render", "")
	render.Add(elements.NewSlider("Exposure", s, "exposure", elements.SliderOptions{Min: 0, Max: 4, Step: 0.1}))
	render.Add(elements.NewNumber("Exposure", s, "exposure", elements.NumberOptions{Step: 0.1}))
	render.Add(elements.NewNumberSelect("Samples", s, "samples", sampleCounts, elements.SelectOptions{Logger: logger}))
	render.Add(elements.NewTextSelect("Quality", s, "quality", qualities, elements.SelectOptions{Logger: logger}))

	look := tabs.AddTab("Look", "")
	look.Add(elements.NewColor("Tint", s, "tint", elements.ColorOptions{Swatches: tints}))

	transform := look.AddGroup(lace.GroupOptions{})
	transform.Add(elements.NewVec2("Offset", s, "offset_x", "offset_y", elements.Vec2Options{XStep: 0.5, YStep: 0.5}))
	transform.Add(elements.NewVec3("Position", s, "position_x", "position_y", "position_z", elements.Vec3Options{}))

	material := look.AddFolder("Material", lace.FolderOptions{Closed: true})
	material.Add(elements.NewTexture("Albedo", s, "albedo", elements.TextureOptions{
		Logger: logger,
		OnTextureAdded: func() {
			logger.Debug("albedo texture added", "bytes", len(s.Albedo))
		},
		OnTextureRemoved: func() {
			logger.Debug("albedo texture removed")
		},
	}))
	material.Add(elements.NewSeparator(elements.SeparatorOptions{}))
	material.Add(elements.NewCustom(func(elements.RenderContext) string {
		if len(s.Albedo) == 0 {
			return "no texture loaded"
		}
		return fmt.Sprintf("%d bytes of texture data", len(s.Albedo))
	}))

	tabs.Show("Render")

	l.Add(elements.NewSeparator(elements.SeparatorOptions{Width: 2}))
	l.Add(elements.NewButtonSelect("Quality", qualities, func(key string) {
		s.Quality = key
		l.Update()
	}, elements.ButtonSelectOptions{Logger: logger}))
	l.Add(elements.NewButton("Reset", func() {
		*s = *NewScene()
		l.Update()
	}, elements.ButtonOptions{Variant: elements.VariantDanger, Outline: true}))

	return l, nil
}
