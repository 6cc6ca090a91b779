package types

// Coordinates is a lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Therapist is a read-only profile owned by the directory provider.
// Distance is populated only when a search origin was available.
type Therapist struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Specialty    string           `json:"specialty"`
	Tags         []string         `json:"tags"`
	Rating       float64          `json:"rating"`
	Experience   string           `json:"experience,omitempty"`
	Location     string           `json:"location"`
	Coordinates  *Coordinates     `json:"coordinates,omitempty"`
	Bio          string           `json:"bio,omitempty"`
	Availability string           `json:"availability,omitempty"`
	Insurance    FlexList[string] `json:"insurance,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Distance     *float64         `json:"distance,omitempty"`
}

// Review is a therapist review as returned by the directory provider.
type Review struct {
	ID     string  `json:"id"`
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Date   string  `json:"date,omitempty"`
}

// SearchParams are the directory query filters. Either Location or the
// coordinate pair is set; both nil means the provider default.
type SearchParams struct {
	Location    string
	Latitude    *float64
	Longitude   *float64
	Radius      int
	Specialties []string
	Insurance   []string
	Gender      string
	Language    string
	Limit       int
	Offset      int
}

// SearchResult is a page of directory search results.
type SearchResult struct {
	Therapists []Therapist `json:"therapists"`
	Total      int         `json:"total"`
	HasMore    bool        `json:"hasMore"`
}
