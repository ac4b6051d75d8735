package model

import (
	"fmt"
	"strings"
)

// Layer classifies world objects for spatial queries.
// Values are bit flags; a mask is an OR of layers.
type Layer uint32

const (
	LayerNone     Layer = 0
	LayerSurvivor Layer = 1 << iota
	LayerZombie
	LayerProp

	LayerAll = LayerSurvivor | LayerZombie | LayerProp
)

var layerNames = map[string]Layer{
	"survivor": LayerSurvivor,
	"zombie":   LayerZombie,
	"prop":     LayerProp,
}

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

// String returns human-readable layer names joined with '|'.
func (l Layer) String() string {
	if l == LayerNone {
		return "NONE"
	}
	var parts []string
	if l.Has(LayerSurvivor) {
		parts = append(parts, "SURVIVOR")
	}
	if l.Has(LayerZombie) {
		parts = append(parts, "ZOMBIE")
	}
	if l.Has(LayerProp) {
		parts = append(parts, "PROP")
	}
	return strings.Join(parts, "|")
}

// ParseLayers builds a mask from layer names (case-insensitive).
func ParseLayers(names []string) (Layer, error) {
	var mask Layer
	for _, name := range names {
		layer, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return LayerNone, fmt.Errorf("unknown layer %q", name)
		}
		mask |= layer
	}
	return mask, nil
}
