// Package tier classifies a finished dive by its deepest point.
package tier

import "math"

// Tier is a completion band with its display attributes.
type Tier struct {
	Name    string
	Label   string
	Message string
	Color   string
}

// Band boundaries in metres. Each band is [lower, next lower).
const (
	ReefDepth  = 10.0
	DeepDepth  = 20.0
	AbyssDepth = 30.0
)

var (
	Surface = Tier{
		Name:    "surface",
		Label:   "Surface",
		Message: "You never left the boat. Every dive starts somewhere.",
		Color:   "#9CA3AF",
	}
	Snorkeler = Tier{
		Name:    "snorkeler",
		Label:   "Snorkeler",
		Message: "Head under, eyes open. The pull of the surface is still strong.",
		Color:   "#67E8F9",
	}
	ReefDiver = Tier{
		Name:    "reef",
		Label:   "Reef Diver",
		Message: "The noise thinned out. You stayed with the quiet longer than most.",
		Color:   "#22D3EE",
	}
	DeepDiver = Tier{
		Name:    "deep",
		Label:   "Deep Diver",
		Message: "Notifications are just bubbles passing by now.",
		Color:   "#0891B2",
	}
	AbyssDiver = Tier{
		Name:    "abyss",
		Label:   "Abyss Diver",
		Message: "Total stillness. Nothing up there could reach you.",
		Color:   "#7C3AED",
	}
)

// All lists the tiers from shallowest to deepest, default band first.
var All = []Tier{Surface, Snorkeler, ReefDiver, DeepDiver, AbyssDiver}

// Classify maps a final depth to its tier. Negative and NaN depths fall
// into Surface.
func Classify(depth float64) Tier {
	switch {
	case math.IsNaN(depth) || depth < 0:
		return Surface
	case depth < ReefDepth:
		return Snorkeler
	case depth < DeepDepth:
		return ReefDiver
	case depth < AbyssDepth:
		return DeepDiver
	default:
		return AbyssDiver
	}
}

// ByName looks up a tier by its Name.
func ByName(name string) (Tier, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}
