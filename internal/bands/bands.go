package bands

// Band describes a named amateur radio frequency range.
// Lower is inclusive, Upper is exclusive.
type Band struct {
	Label string
	Lower float64
	Upper float64
}

// Table lists the supported amateur radio bands in ascending
// frequency order.
var Table = []Band{
	{"160m", 1.8, 2.0},
	{"80m", 3.5, 4.0},
	{"60m", 5.3, 5.41},
	{"40m", 7.0, 7.3},
	{"30m", 10.1, 10.15},
	{"20m", 14.0, 14.35},
	{"17m", 18.068, 18.168},
	{"15m", 21.0, 21.45},
	{"12m", 24.89, 24.99},
	{"10m", 28.0, 29.7},
	{"6m", 50.0, 54.0},
}

// Lookup returns the band label for the given frequency in MHz,
// or "Unknown" if the frequency is outside every band.
func Lookup(frequencyMhz float64) string {
	for _, band := range Table {
		if frequencyMhz >= band.Lower && frequencyMhz < band.Upper {
			return band.Label
		}
	}
	return "Unknown"
}
