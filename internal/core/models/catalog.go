package models

// Behavior selects the idle wandering a species does between throws.
type Behavior string

const (
	BehaviorNone     Behavior = ""
	BehaviorSleepy   Behavior = "sleepy"   // rare, tiny shuffles
	BehaviorTeleport Behavior = "teleport" // very rare, long jumps
	BehaviorHop      Behavior = "hop"      // frequent short hops
)

type Color struct {
	R float64 `json:"r" msgpack:"r" yaml:"r"`
	G float64 `json:"g" msgpack:"g" yaml:"g"`
	B float64 `json:"b" msgpack:"b" yaml:"b"`
}

// Species is a read-only descriptor indexed by Creature.Species.
type Species struct {
	Name      string   `yaml:"name"`
	Color     Color    `yaml:"color"`
	Size      float64  `yaml:"size"`
	CatchRate float64  `yaml:"catch_rate"`
	Speed     float64  `yaml:"speed"`
	MaxHealth int      `yaml:"max_health"`
	Element   string   `yaml:"element"`
	Behavior  Behavior `yaml:"behavior"`
	Rare      bool     `yaml:"rare"`
}

// Device is a capture device type the player can equip.
type Device struct {
	Name  string  `yaml:"name"`
	Color Color   `yaml:"color"`
	Bonus float64 `yaml:"bonus"`
	Cost  int     `yaml:"cost"`
}

func DefaultSpecies() []Species {
	return []Species{
		{Name: "Pikachu", Color: Color{1.0, 1.0, 0.0}, Size: 15, CatchRate: 0.7, Speed: 2.0, MaxHealth: 50, Element: "Electric", Behavior: BehaviorHop},
		{Name: "Charmander", Color: Color{1.0, 0.4, 0.0}, Size: 18, CatchRate: 0.6, Speed: 1.5, MaxHealth: 60, Element: "Fire"},
		{Name: "Squirtle", Color: Color{0.0, 0.6, 1.0}, Size: 16, CatchRate: 0.65, Speed: 1.8, MaxHealth: 55, Element: "Water"},
		{Name: "Bulbasaur", Color: Color{0.2, 0.8, 0.4}, Size: 17, CatchRate: 0.65, Speed: 1.6, MaxHealth: 58, Element: "Grass"},
		{Name: "Dragonite", Color: Color{1.0, 0.6, 0.2}, Size: 25, CatchRate: 0.3, Speed: 3.0, MaxHealth: 120, Element: "Dragon", Rare: true},
		{Name: "Mewtwo", Color: Color{0.8, 0.6, 0.9}, Size: 30, CatchRate: 0.1, Speed: 4.0, MaxHealth: 200, Element: "Psychic", Rare: true},
		{Name: "Eevee", Color: Color{0.8, 0.6, 0.4}, Size: 14, CatchRate: 0.8, Speed: 2.5, MaxHealth: 45, Element: "Normal", Behavior: BehaviorHop},
		{Name: "Jigglypuff", Color: Color{1.0, 0.8, 0.9}, Size: 16, CatchRate: 0.75, Speed: 1.0, MaxHealth: 70, Element: "Fairy"},
		{Name: "Gengar", Color: Color{0.4, 0.2, 0.6}, Size: 20, CatchRate: 0.4, Speed: 3.5, MaxHealth: 80, Element: "Ghost", Behavior: BehaviorTeleport},
		{Name: "Lapras", Color: Color{0.3, 0.7, 1.0}, Size: 28, CatchRate: 0.5, Speed: 1.2, MaxHealth: 100, Element: "Water"},
		{Name: "Snorlax", Color: Color{0.2, 0.4, 0.6}, Size: 35, CatchRate: 0.2, Speed: 0.5, MaxHealth: 150, Element: "Normal", Behavior: BehaviorSleepy},
		{Name: "Machamp", Color: Color{0.6, 0.3, 0.8}, Size: 22, CatchRate: 0.3, Speed: 2.0, MaxHealth: 90, Element: "Fighting"},
		{Name: "Alakazam", Color: Color{0.9, 0.7, 0.3}, Size: 18, CatchRate: 0.4, Speed: 2.8, MaxHealth: 75, Element: "Psychic"},
		{Name: "Gyarados", Color: Color{0.1, 0.3, 0.9}, Size: 32, CatchRate: 0.2, Speed: 1.8, MaxHealth: 110, Element: "Water"},
		{Name: "Arcanine", Color: Color{1.0, 0.5, 0.0}, Size: 24, CatchRate: 0.4, Speed: 3.2, MaxHealth: 95, Element: "Fire"},
	}
}

func DefaultDevices() []Device {
	return []Device{
		{Name: "Pokeball", Color: Color{1.0, 0.0, 0.0}, Bonus: 0.0, Cost: 0},
		{Name: "Great Ball", Color: Color{0.0, 0.0, 1.0}, Bonus: 0.15, Cost: 5},
		{Name: "Ultra Ball", Color: Color{1.0, 1.0, 0.0}, Bonus: 0.3, Cost: 15},
		{Name: "Master Ball", Color: Color{0.5, 0.0, 1.0}, Bonus: 0.95, Cost: 50},
	}
}
