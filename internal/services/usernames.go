package services

import "math/rand/v2"

// Words for suggested display names. Every pairing "Adjective Noun" is a
// valid name: at most 32 runes, single spaces and hyphens only.
var (
	nameAdjectives = []string{
		"Adventurous", "Amusing", "Artistic", "Athletic", "Bold", "Blissful", "Brave", "Bright",
		"Brilliant", "Calm", "Careful", "Charming", "Cheerful", "Clever", "Compassionate",
		"Confident", "Considerate", "Courageous", "Creative", "Curious", "Daring", "Dedicated",
		"Defiant", "Dependable", "Determined", "Diligent", "Dreamy", "Eager", "Efficient",
		"Energetic", "Enchanting", "Enthusiastic", "Faithful", "Fabulous", "Fearless",
		"Focused", "Friendly", "Funky", "Funny", "Generous", "Gentle", "Genuine", "Gleeful",
		"Gracious", "Grateful", "Gregarious", "Handy", "Harmonic", "Harmonious", "Helpful",
		"Heroic", "Hilarious", "Honest", "Humble", "Idealistic", "Imaginative", "Impossible",
		"Independent", "Inquisitive", "Insightful", "Inspiring", "Intuitive", "Inventive",
		"Jolly", "Joyful", "Joyous", "Jovial", "Jubilant", "Keen", "Kind", "Kindhearted",
		"Knowledgeable", "Legendary", "Lively", "Loyal", "Luminous", "Magical", "Magnetic",
		"Merry", "Mighty", "Modest", "Mystic", "Neighborly", "Nimble", "Noble", "Nurturing",
		"Observant", "Open-minded", "Optimistic", "Organized", "Passionate", "Patient",
		"Peaceful", "Perceptive", "Playful", "Popular", "Protective", "Quick", "Quick-witted",
		"Quirky", "Radiant", "Resilient", "Resourceful", "Savvy", "Sassy", "Sincere", "Sleepy",
		"Smart", "Spirited", "Super", "Talented", "Thoughtful", "Tough", "Trustworthy",
		"Understanding", "Unique", "Upbeat", "Valiant", "Vibrant", "Vigorous", "Whimsical",
		"Wise", "Witty", "Wonderful", "Wacky", "Xtreme", "Youthful", "Zealous", "Zany",
		"Ambitious", "Authentic", "Balanced", "Breezy", "Bubbly", "Capable", "Chill", "Crafty",
		"Dynamic", "Earnest", "Empowered", "Enlightened", "Exquisite", "Fascinating", "Festive",
		"Fortunate", "Hardworking", "Heartfelt", "Impressive", "Ingenious", "Magnificent",
		"Mindful", "Outstanding", "Persistent", "Philosophical", "Plucky", "Proactive",
		"Reliable", "Remarkable", "Respectful", "Scholarly", "Sociable", "Stellar", "Strategic",
		"Strong", "Supportive", "Tactful", "Tenacious", "Trailblazing", "Unstoppable",
		"Versatile", "Visionary", "Warmhearted", "Welcoming", "Well-rounded", "Winsome",
	}
	nameNouns = []string{
		"Banana", "Muffin", "Penguin", "Dragon", "Pizza", "Airplane", "Moon", "Cowboy",
		"Jacket", "Mountain", "Hill", "Pencil", "Tree", "Lightbulb", "Cookie", "Hot Dog",
		"Quesadilla", "Robot", "Guitar", "Flute", "Tiger", "Galaxy", "Wizard", "Unicorn",
		"Rocket", "Lion", "Tornado", "Phoenix", "Cactus", "Glacier", "Volcano", "Zeppelin",
		"Sphinx", "Octopus", "Mushroom", "Bison", "Kangaroo", "Parrot", "Butterfly",
		"Chameleon", "Narwhal", "Sailboat", "Rainbow", "Comet", "Nebula", "Squirrel", "Hamster",
		"Alligator", "Koala", "Wombat", "Starfish", "Mermaid", "Sundial", "Windmill", "Yeti",
		"Panda", "Owl", "Firefly", "Panther", "Sunflower", "Asteroid", "Cheetah", "Hedgehog",
		"Jellyfish", "Turtle", "Seahorse", "Dolphin", "Llama", "Giraffe", "Kite", "Bicycle",
		"Castle", "Suitcase", "Car", "Boat", "Train", "Flower", "Bridge", "Building", "Camera",
		"Dinosaur", "Feather", "Globe", "Hat", "Igloo", "Jungle", "Laptop", "Microphone",
		"Necklace", "Ocean", "Piano", "Quilt", "Spaceship", "Telephone", "Umbrella", "Vase",
		"Whistle", "Xylophone", "Yacht", "Zebra", "Airship", "Backpack", "Compass", "Drum",
		"Easel", "Flag", "Glasses", "Headphones", "Island", "Joystick", "Kettle", "Lantern",
		"Map", "Notebook", "Orchid", "Paintbrush", "Quicksand", "Rhinoceros", "Skateboard",
		"Trampoline", "Ukulele", "Volleyball", "Waterfall", "Yogurt", "Zipper", "Anvil",
		"Barrel", "Clock", "Dumbbell", "Egg", "Fork", "Gong", "Harp", "Ink", "Lemon", "Magnet",
		"Olive", "Pickle", "Quiver", "Racket", "Saxophone", "Toaster", "Ukelele", "Violin",
		"Wrench", "X-ray", "Yo-yo", "Zigzag", "Cloud", "Star", "Planet", "Meteor", "Voyager",
		"Explorer", "Albatross", "Badger", "Cat", "Dog", "Elephant", "Falcon", "Gorilla",
		"Hawk", "Iguana", "Jaguar", "Leopard", "Manatee", "Otter", "Raccoon", "Vulture",
		"Walrus", "Xenopus", "Yak", "Apple", "Blueberry", "Carrot", "Donut", "Eggplant", "Fig",
		"Grape", "Honeydew", "Ice Cream", "Jelly", "Kiwi", "Mango", "Nectarine", "Orange",
		"Peach", "Raspberry", "Strawberry", "Tangerine", "Vanilla", "Watermelon", "Yam",
		"Zucchini", "Aurora", "Blossom", "Creek", "Dawn", "Earth", "Forest", "Grove", "Horizon",
		"Iceberg", "Kelp", "Lagoon", "Nest", "Oasis", "Prairie", "Quartz", "River", "Sky",
		"Undergrowth", "Vine", "Xeric", "Yarrow", "Zenith",
	}
)

// randomName joins a random adjective and noun. intn is rand.IntN or a
// deterministic stand-in.
func randomName(intn func(int) int) string {
	return nameAdjectives[intn(len(nameAdjectives))] + " " + nameNouns[intn(len(nameNouns))]
}

func defaultIntN(n int) int { return rand.IntN(n) }
