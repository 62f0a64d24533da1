package game

import "math/rand/v2"

// AggregateCategory is the union of every named pool, used whenever the
// requested category is unknown or empty.
const AggregateCategory = "Random"

var wordCategories = map[string][]string{
	"Animals": {
		"Cat", "Dog", "Elephant", "Giraffe", "Penguin", "Dolphin", "Tiger",
		"Kangaroo", "Panda", "Crocodile", "Parrot", "Jellyfish", "Hamster",
		"Flamingo", "Octopus", "Shark", "Gorilla", "Chameleon", "Hedgehog", "Sloth",
	},
	"Food": {
		"Pizza", "Sushi", "Burger", "Tacos", "Pasta", "Pancakes", "Spaghetti",
		"Waffle", "Donut", "Sandwich", "Ramen", "Burrito", "Croissant",
		"Lasagna", "Popcorn", "Pretzel", "Cheesecake", "Hotdog", "Nachos", "Dumplings",
	},
	"Sports": {
		"Soccer", "Basketball", "Tennis", "Swimming", "Boxing", "Skateboard",
		"Baseball", "Volleyball", "Archery", "Cycling", "Gymnastics", "Surfing",
		"Skiing", "Wrestling", "Bowling", "Badminton", "Fencing", "Rowing", "Diving", "Polo",
	},
	"Movies": {
		"Titanic", "Inception", "Avatar", "Jaws", "Ghostbusters", "Alien",
		"Matrix", "Shrek", "Grease", "Gladiator", "Interstellar", "Jumanji",
		"Frozen", "Coco", "Up", "Moana", "Beetlejuice", "Psycho", "Mulan", "Tenet",
	},
	"Nature": {
		"Volcano", "Waterfall", "Tornado", "Rainbow", "Glacier", "Desert",
		"Forest", "Island", "Coral", "Tsunami", "Canyon", "Swamp",
		"Tundra", "Geyser", "Lagoon", "Cliff", "Dune", "Fjord", "Avalanche", "Blizzard",
	},
	"Technology": {
		"Robot", "Drone", "Rocket", "Satellite", "Keyboard", "Laptop",
		"Microscope", "Telescope", "Submarine", "Helicopter", "Antenna",
		"Hologram", "Circuit", "Battery", "Radar", "Joystick", "Scanner", "Printer", "Charger", "Server",
	},
}

// WordBank maps category names to word pools. Zero value is not usable;
// construct with NewWordBank.
type WordBank struct {
	categories map[string][]string
	aggregate  []string
}

func NewWordBank() *WordBank {
	wb := &WordBank{categories: wordCategories}
	for _, words := range wordCategories {
		wb.aggregate = append(wb.aggregate, words...)
	}
	return wb
}

// Categories lists the selectable category names, aggregate included.
func (wb *WordBank) Categories() []string {
	names := make([]string, 0, len(wb.categories)+1)
	for name := range wb.categories {
		names = append(names, name)
	}
	names = append(names, AggregateCategory)
	return names
}

// WordsFor returns the pool for a category, falling back to the
// aggregate pool for unknown names.
func (wb *WordBank) WordsFor(category string) []string {
	if words, ok := wb.categories[category]; ok {
		return words
	}
	return wb.aggregate
}

// PickRandom samples count distinct words without replacement. Pools
// shorter than count yield everything they have, never an error.
func (wb *WordBank) PickRandom(category string, count int) []string {
	pool := wb.WordsFor(category)
	if count < 0 {
		count = 0
	}
	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]string, len(pool))
	copy(picked, pool)
	for i := 0; i < count; i++ {
		j := i + rand.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:count]
}
