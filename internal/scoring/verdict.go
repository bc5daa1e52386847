package scoring

// verdictBand pairs a minimum score with its message. Bands are checked in
// descending threshold order; the 0 band is the required fallback. Messages
// are fixed per band so identical inputs always produce identical output.
type verdictBand struct {
	threshold int
	message   string
}

var verdictBands = []verdictBand{
	{80, "Peak performative energy. This is a fully curated persona, and it is working."},
	{60, "Strong performative signals. The aesthetic is deliberate, and it shows."},
	{40, "Moderate performative energy. A few carefully chosen pieces are doing the talking."},
	{20, "Mild performative tendencies. Mostly authentic, with hints of curation."},
	{0, "Refreshingly authentic. No performative energy detected."},
}

// verdictFor selects the message of the highest band whose threshold does
// not exceed the score.
func verdictFor(score int) string {
	for _, band := range verdictBands {
		if score >= band.threshold {
			return band.message
		}
	}
	return verdictBands[len(verdictBands)-1].message
}
