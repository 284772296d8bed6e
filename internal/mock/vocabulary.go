package mock

import "github.com/erazemk/lostfound/internal/model"

type categoryVocabulary struct {
	titles []string
	detail string
}

var vocabulary = map[string]categoryVocabulary{
	model.CategoryElectronics: {
		titles: []string{"Phone", "Laptop charger", "Earbuds", "Calculator", "Power bank", "USB drive"},
		detail: "with a scratched case",
	},
	model.CategoryClothing: {
		titles: []string{"Hoodie", "Scarf", "Jacket", "Cap", "Gloves"},
		detail: "left on a chair",
	},
	model.CategoryPersonal: {
		titles: []string{"Wallet", "Student card", "Keys", "Glasses", "Water bottle"},
		detail: "with a name tag",
	},
	model.CategoryMiscellaneous: {
		titles: []string{"Umbrella", "Backpack", "Lunch box", "Sports bag"},
		detail: "near the entrance",
	},
	model.CategoryStationery: {
		titles: []string{"Notebook", "Pencil case", "Textbook", "Lab coat", "Ruler set"},
		detail: "with handwritten notes",
	},
}

var colours = []string{"Black", "Blue", "Grey", "Red", "Green", "White"}

var locations = []string{
	"Library", "Main Hall", "Cafeteria", "Lecture Hall A", "Lecture Hall B",
	"Computer Lab", "Sports Centre", "Student Centre", "Parking Lot", "Admin Block",
}

var reasons = []string{
	"I can describe the contents.",
	"It has my initials on it.",
	"Lost it after my lecture.",
	"I have a photo of it.",
	"My student number is written inside.",
}
