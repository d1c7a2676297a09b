package dates

import "math/rand/v2"

// Palette is the fixed set of subject color tags, in display order.
// The values are CSS utility class names understood by the frontend.
var Palette = []string{
	"bg-rose-500", "bg-pink-500", "bg-fuchsia-500", "bg-purple-500", "bg-violet-500",
	"bg-indigo-500", "bg-blue-500", "bg-sky-500", "bg-cyan-500", "bg-teal-500",
	"bg-emerald-500", "bg-green-500", "bg-lime-500", "bg-yellow-500", "bg-amber-500",
	"bg-orange-500", "bg-red-500",
}

// PickColor selects one tag uniformly at random from Palette.
// Repeats between calls are allowed.
func PickColor() string {
	return Palette[rand.IntN(len(Palette))]
}
