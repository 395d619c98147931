package config

func f(v float64) *float64 { return &v }

// Presets are ready-made scenarios selectable by name from the CLI.
var Presets = map[string]*Config{
	"cannonball": {
		Name:   "cannonball",
		Volume: 0.0015,
		Layers: []LayerConfig{
			{Substance: "lead", Mass: f(8.0), Volume: 0.0007, Temperature: f(288)},
			{Substance: "iron", Mass: f(5.5), Volume: 0.0008, Temperature: f(288)},
		},
	},
	"thermos": {
		Name:   "thermos",
		Volume: 0.0012,
		Layers: []LayerConfig{
			{Substance: "water", Mass: f(0.75), Volume: 0.00075, Temperature: f(358)},
			{Substance: "air", Mass: f(0.0002), Volume: 0.0002},
			{Substance: "iron", Mass: f(1.6), Volume: 0.00025, Temperature: f(295)},
		},
	},
	"layered-hull": {
		Name:   "layered-hull",
		Volume: 0.02,
		Layers: []LayerConfig{
			{Substance: "iron", Mass: f(60), Volume: 0.008, Temperature: f(280)},
			{
				// Sandwich insulation: wood with trapped air pockets.
				Layers: []LayerConfig{
					{Substance: "wood", Mass: f(4.5), Volume: 0.006},
					{Substance: "air", Mass: f(0.003), Volume: 0.003},
				},
				Volume: 0.009,
			},
			{Substance: "copper", Mass: f(22), Volume: 0.003, Temperature: f(280)},
		},
	},
	"brine-tank": {
		Name:   "brine-tank",
		Volume: 0.006,
		Layers: []LayerConfig{
			{
				Constituents: []ConstituentConfig{
					{Substance: "water", Proportion: 0.85},
					{Substance: "salt", Proportion: 0.15},
				},
				Mass:        f(5.2),
				Density:     f(1100),
				Volume:      0.0047,
				Temperature: f(290),
			},
			{Substance: "aluminium", Mass: f(3.5), Volume: 0.0013, Temperature: f(290)},
		},
	},
}
