package stubapi

import "strings"

const unknownCountry = "Unknown"

var countryNames = map[string]string{
	"AR": "Argentina",
	"AU": "Australia",
	"BR": "Brazil",
	"CA": "Canada",
	"CL": "Chile",
	"CN": "China",
	"CO": "Colombia",
	"DE": "Germany",
	"ES": "Spain",
	"FR": "France",
	"GB": "United Kingdom",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"KR": "South Korea",
	"MX": "Mexico",
	"PE": "Peru",
	"US": "United States",
}

// CountryName resolves an ISO alpha-2 code. Unknown codes resolve to "Unknown".
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return unknownCountry
}
