package usecases

import "strings"

// Destination-keyed packing templates, category -> items. A destination
// that matches none of the keyword groups falls back to Default.
var packingTemplates = map[string]map[string][]string{
	"Beach": {
		"Clothing":    {"Swimwear", "Light cotton clothes", "Flip flops", "Sun hat", "Sunglasses"},
		"Toiletries":  {"Sunscreen", "After-sun lotion", "Lip balm", "Insect repellent"},
		"Accessories": {"Beach towel", "Waterproof phone pouch", "Power bank", "Snorkel gear"},
		"Essentials":  {"Passport", "Tickets", "Hotel booking", "Travel insurance", "Cash/Cards"},
	},
	"Mountain": {
		"Clothing":    {"Warm jacket", "Thermal wear", "Gloves", "Woolen cap", "Hiking boots", "Thick socks", "Waterproof pants"},
		"Toiletries":  {"Moisturizer", "Lip balm", "Hand cream", "Sunscreen", "First aid kit"},
		"Accessories": {"Backpack", "Trekking pole", "Water bottle", "Flashlight", "Power bank"},
		"Essentials":  {"Passport", "Tickets", "Hotel booking", "Travel insurance", "Cash/Cards", "Emergency contacts"},
	},
	"Heritage": {
		"Clothing":    {"Comfortable walking shoes", "Light jacket", "Modest clothing", "Scarf/shawl", "Sun hat"},
		"Toiletries":  {"Sunscreen", "Hand sanitizer", "Wet wipes", "Basic medicines"},
		"Accessories": {"Camera", "Guidebook", "Daypack", "Water bottle", "Notebook"},
		"Essentials":  {"Passport", "Tickets", "Hotel booking", "Travel insurance", "Cash/Cards", "Museum passes"},
	},
	"Adventure": {
		"Clothing":    {"Quick-dry clothes", "Sports shoes", "Cap", "Sunglasses", "Rain jacket", "Extra socks"},
		"Toiletries":  {"Sunscreen", "Insect repellent", "First aid kit", "Energy bars", "Electrolyte powder"},
		"Accessories": {"Action camera", "Headlamp", "Multi-tool", "Dry bag", "Portable charger"},
		"Essentials":  {"Passport", "Tickets", "Activity bookings", "Travel insurance", "Emergency contact", "Maps"},
	},
	"Urban": {
		"Clothing":    {"Casual wear", "Comfortable shoes", "Light jacket"},
		"Toiletries":  {"Travel-size toiletries", "Hand sanitizer", "Wet wipes", "Basic medicines"},
		"Accessories": {"Phone charger", "Power bank", "Camera", "Day bag", "Reusable water bottle"},
		"Essentials":  {"Passport", "Tickets", "Hotel booking", "Travel card/pass", "City map/app"},
	},
	"Default": {
		"Clothing":    {"Comfortable clothes", "Shoes", "Light jacket", "Undergarments", "Socks"},
		"Toiletries":  {"Toothbrush", "Toothpaste", "Soap", "Shampoo", "Deodorant", "Sunscreen"},
		"Accessories": {"Phone charger", "Power bank", "Headphones", "Books/e-reader"},
		"Essentials":  {"Passport", "Tickets", "Hotel booking", "Travel insurance", "Cash", "Credit cards"},
	},
}

var destinationKeywords = map[string][]string{
	"Beach":     {"goa", "beach", "maldives", "bali", "phuket", "coast", "island"},
	"Mountain":  {"kashmir", "mountain", "himalaya", "nepal", "manali", "shimla", "ladakh", "ski"},
	"Heritage":  {"rome", "paris", "egypt", "petra", "heritage", "delhi", "agra", "jaipur", "rajasthan"},
	"Adventure": {"adventure", "safari", "jungle", "rishikesh", "queenstown", "interlaken"},
	"Urban":     {"tokyo", "new york", "london", "dubai", "singapore", "city", "urban", "mumbai"},
}

// categories in fixed checking order so overlapping keywords resolve the
// same way on every call
var categoryOrder = []string{"Beach", "Mountain", "Heritage", "Adventure", "Urban"}

func detectDestinationCategory(destination string) string {
	dest := strings.ToLower(destination)
	for _, category := range categoryOrder {
		for _, word := range destinationKeywords[category] {
			if strings.Contains(dest, word) {
				return category
			}
		}
	}
	return "Default"
}

// packingTemplate resolves the item template for a destination.
func packingTemplate(destination string) map[string][]string {
	return packingTemplates[detectDestinationCategory(destination)]
}
