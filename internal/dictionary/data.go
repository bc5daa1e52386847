package dictionary

// Default keyword weights. Each phrase appears exactly once; New rejects
// duplicates, so conflicting definitions fail at load time instead of the
// last literal silently winning.
var defaultKeywords = []Entry{
	{Phrase: "labubu", Weight: 22},
	{Phrase: "typewriter", Weight: 20},
	{Phrase: "vinyl record", Weight: 18},
	{Phrase: "polaroid camera", Weight: 17},
	{Phrase: "record player", Weight: 16},
	{Phrase: "matcha", Weight: 15},
	{Phrase: "film camera", Weight: 15},
	{Phrase: "wired headphones", Weight: 14},
	{Phrase: "flip phone", Weight: 13},
	{Phrase: "tote bag", Weight: 12},
	{Phrase: "tarot cards", Weight: 12},
	{Phrase: "carabiner", Weight: 11},
	{Phrase: "book", Weight: 10},
	{Phrase: "birkenstocks", Weight: 10},
	{Phrase: "kombucha", Weight: 10},
	{Phrase: "cold brew", Weight: 9},
	{Phrase: "thrifted jacket", Weight: 9},
	{Phrase: "sketchbook", Weight: 9},
	{Phrase: "fountain pen", Weight: 8},
	{Phrase: "iced coffee", Weight: 8},
	{Phrase: "mason jar", Weight: 7},
	{Phrase: "chess", Weight: 7},
	{Phrase: "house plant", Weight: 6},
	{Phrase: "beanie", Weight: 5},
}

// Text patterns matched against OCR output: brands, authors, and cultural
// references that labels alone rarely surface.
var defaultTextPatterns = []Entry{
	{Phrase: "infinite jest", Weight: 15},
	{Phrase: "bell hooks", Weight: 14},
	{Phrase: "joan didion", Weight: 13},
	{Phrase: "sylvia plath", Weight: 13},
	{Phrase: "clairo", Weight: 12},
	{Phrase: "mitski", Weight: 12},
	{Phrase: "dostoevsky", Weight: 12},
	{Phrase: "criterion", Weight: 12},
	{Phrase: "phoebe bridgers", Weight: 12},
	{Phrase: "penguin classics", Weight: 11},
	{Phrase: "beabadoobee", Weight: 11},
	{Phrase: "kurt vonnegut", Weight: 11},
	{Phrase: "the new yorker", Weight: 10},
	{Phrase: "fujifilm", Weight: 10},
	{Phrase: "carhartt", Weight: 9},
	{Phrase: "aesop", Weight: 9},
	{Phrase: "blue bottle", Weight: 9},
	{Phrase: "moleskine", Weight: 8},
}

// DefaultKeywords returns a fresh dictionary loaded with the stock keyword
// weights.
func DefaultKeywords() *Dictionary {
	return mustNew(defaultKeywords)
}

// DefaultTextPatterns returns a fresh dictionary loaded with the stock OCR
// text patterns.
func DefaultTextPatterns() *Dictionary {
	return mustNew(defaultTextPatterns)
}
