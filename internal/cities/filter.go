package cities

import "strings"

// Filter returns the cities whose name or state contains term, ignoring case.
// Source order is kept and the input is never modified. An empty term returns
// cities as is.
func Filter(cities []City, term string) []City {
	if term == "" {
		return cities
	}

	query := strings.ToLower(term)

	filtered := []City{}
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.State), query) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}
