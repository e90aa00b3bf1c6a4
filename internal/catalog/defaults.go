package catalog

var DefaultCategories = []Category{
	{
		Name:        "Action Figure",
		Slug:        "action-figure",
		Media:       Image("/assets/action-figure.png"),
		HeroImage:   "/assets/action-figure-2.png",
		Description: "Koleksi action figure dari berbagai franchise favorit Anda",
	},
	{
		Name:        "Sport",
		Slug:        "sport",
		Media:       Image("/assets/logo-run.png"),
		HeroImage:   "/assets/logo-run.png",
		Description: "Perlengkapan olahraga untuk berbagai aktivitas fisik",
	},
	{
		Name:        "Games & Puzzles",
		Slug:        "games-puzzles",
		Media:       Image("/assets/logo-game.png"),
		HeroImage:   "/assets/logo-game.png",
		Description: "Board games, puzzle, dan permainan edukatif",
	},
	{
		Name:        "Clothes & Footwear",
		Slug:        "clothes-footwear",
		Media:       Image("/assets/logo-fashion.png"),
		HeroImage:   "/assets/logo-fashion.png",
		Description: "Fashion dan alas kaki untuk hobi Anda",
	},
	{
		Name:        "Model Kits",
		Slug:        "model-kits",
		Media:       Icon("puzzle-piece"),
		HeroImage:   "https://placehold.co/600x400/6366f1/ffffff?text=Model+Kits",
		Description: "Gundam, mobil, pesawat, dan model kit lainnya",
	},
	{
		Name:        "Art & Craft",
		Slug:        "art-craft",
		Media:       Icon("paint-brush"),
		HeroImage:   "https://placehold.co/600x400/ec4899/ffffff?text=Art+%26+Craft",
		Description: "Peralatan seni, kerajinan tangan, dan DIY",
	},
	{
		Name:        "Music",
		Slug:        "music",
		Media:       Icon("musical-note"),
		HeroImage:   "https://placehold.co/600x400/f59e0b/ffffff?text=Music",
		Description: "Alat musik dan aksesoris musik",
	},
	{
		Name:        "Photography",
		Slug:        "photography",
		Media:       Icon("camera"),
		HeroImage:   "https://placehold.co/600x400/10b981/ffffff?text=Photography",
		Description: "Kamera, lensa, dan aksesoris fotografi",
	},
	{
		Name:        "Books & Comics",
		Slug:        "books-comics",
		Media:       Icon("book-open"),
		HeroImage:   "https://placehold.co/600x400/8b5cf6/ffffff?text=Books+%26+Comics",
		Description: "Buku, komik, manga, dan novel grafis",
	},
	{
		Name:        "Collectibles",
		Slug:        "collectibles",
		Media:       Icon("shopping-bag"),
		HeroImage:   "https://placehold.co/600x400/ef4444/ffffff?text=Collectibles",
		Description: "Barang koleksi langka dan eksklusif",
	},
}

// Tags is the product tag vocabulary offered as suggestions.
var Tags = []string{
	// action figures
	"Marvel", "DC Comics", "Star Wars", "Anime", "Transformers", "Hot Toys", "Nendoroid", "Figma",
	// model kits
	"Gundam", "Bandai", "Master Grade", "High Grade", "Real Grade", "Perfect Grade",
	// games
	"Board Game", "Card Game", "Puzzle", "Strategy", "Family Game",
	// sport
	"Running", "Cycling", "Fitness", "Outdoor", "Camping",
	// art & craft
	"Painting", "Drawing", "Sculpting", "DIY", "Handmade",
	// general
	"Limited Edition", "Pre-Order", "New Arrival", "Best Seller", "Sale", "Imported", "Original", "Replica",
}
