package curate

import "strings"

// DefaultCategory is assigned when no keyword set matches.
const DefaultCategory = "General"

type category struct {
	Label    string
	Keywords []string
}

// taxonomy is evaluated in order; the first category with a keyword present
// in the title wins. Order is load-bearing: a "gaming mouse" is Tech, not
// Gaming, because Tech is tested first.
var taxonomy = []category{
	{"Tech", []string{
		"ssd", "hdd", "nvme", "gpu", "graphics card", "ram", "memory",
		"keyboard", "mouse", "monitor", "router", "ipad", "iphone", "tablet",
		"laptop", "pc case", "cable", "charger", "headphones", "earbuds",
	}},
	{"Gaming", []string{
		"gaming", "nintendo", "playstation", "xbox", "steam", "game",
		"controller", "joystick",
	}},
	{"Home", []string{
		"sofa", "mattress", "vacuum", "kitchen", "cookware", "air purifier",
		"heater", "humidifier", "purifier", "bulb", "lamp", "blanket",
		"towel", "appliance",
	}},
	{"Fitness", []string{
		"shoe", "fitness", "yoga", "treadmill", "dumbbell", "protein",
		"sneakers", "running", "workout", "gym", "exercise", "bike",
	}},
	{"Accessories", []string{
		"case", "charger", "backpack", "watch band", "wallet", "sleeve",
		"stand", "mount", "holder",
	}},
	{"Gifts", []string{
		"gift", "holiday", "christmas", "present", "lego", "toy", "puzzle",
		"board game", "card game",
	}},
	{"Baby", []string{
		"baby", "kids", "children", "diaper", "stroller", "crib", "toy",
		"educational",
	}},
	{"Beauty", []string{
		"shampoo", "conditioner", "soap", "lotion", "perfume", "makeup",
		"skincare", "hair", "nail",
	}},
	{"Pets", []string{
		"dog", "cat", "pet", "puppy", "kitten", "collar", "leash", "bed",
		"food", "treat",
	}},
}

// Categorize assigns exactly one category label to a normalized title using
// case-insensitive substring matching against the ordered taxonomy.
func Categorize(title string) string {
	t := strings.ToLower(title)
	for _, c := range taxonomy {
		for _, kw := range c.Keywords {
			if strings.Contains(t, kw) {
				return c.Label
			}
		}
	}
	return DefaultCategory
}

// Categories returns the taxonomy labels in evaluation order, ending with
// the default.
func Categories() []string {
	out := make([]string, 0, len(taxonomy)+1)
	for _, c := range taxonomy {
		out = append(out, c.Label)
	}
	return append(out, DefaultCategory)
}
