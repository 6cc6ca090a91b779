package directory

import (
	"context"
	"strings"

	"github.com/therapick/therapick-api/internal/matching"
	"github.com/therapick/therapick-api/internal/types"
)

// staticDirectory serves the built-in demo corpus when no TherapAPI key is
// configured. It runs the same matching engine the provider applies
// server-side, so demo searches behave like live ones.
type staticDirectory struct {
	therapists []types.Therapist
}

// NewStatic builds the demo directory client.
func NewStatic() Client {
	return &staticDirectory{therapists: demoTherapists}
}

func (s *staticDirectory) Mode() string {
	return "static"
}

func (s *staticDirectory) Search(_ context.Context, params types.SearchParams) (*types.SearchResult, error) {
	results := s.therapists

	if len(params.Specialties) > 0 {
		results = matching.FilterBySpecialties(results, params.Specialties)
	}
	if params.Location != "" {
		results = filterByLocation(results, params.Location)
	}
	if len(params.Insurance) > 0 {
		results = filterByInsurance(results, params.Insurance)
	}
	if params.Latitude != nil && params.Longitude != nil {
		results = matching.RankByDistance(results, types.Coordinates{
			Lat: *params.Latitude,
			Lng: *params.Longitude,
		})
	}

	total := len(results)
	offset := params.Offset
	if offset > total {
		offset = total
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]types.Therapist, end-offset)
	copy(page, results[offset:end])

	return &types.SearchResult{
		Therapists: page,
		Total:      total,
		HasMore:    end < total,
	}, nil
}

func (s *staticDirectory) GetByID(_ context.Context, id string) (*types.Therapist, error) {
	for _, t := range s.therapists {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *staticDirectory) Reviews(ctx context.Context, id string) ([]types.Review, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	// Demo corpus carries no review history.
	return []types.Review{}, nil
}

func (s *staticDirectory) Specialties(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var specialties []string
	for _, t := range s.therapists {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			specialties = append(specialties, tag)
		}
	}
	return specialties, nil
}

// filterByLocation matches on any comma-separated segment of the query, so
// "New York, NY" finds the "Manhattan, NY" entries through the state part.
func filterByLocation(therapists []types.Therapist, location string) []types.Therapist {
	var needles []string
	for _, part := range strings.Split(strings.ToLower(location), ",") {
		if part = strings.TrimSpace(part); part != "" {
			needles = append(needles, part)
		}
	}

	var out []types.Therapist
	for _, t := range therapists {
		loc := strings.ToLower(t.Location)
		for _, needle := range needles {
			if strings.Contains(loc, needle) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func filterByInsurance(therapists []types.Therapist, insurance []string) []types.Therapist {
	var out []types.Therapist
	for _, t := range therapists {
		joined := strings.ToLower(strings.Join(t.Insurance.Slice(), " "))
		for _, ins := range insurance {
			if strings.Contains(joined, strings.ToLower(ins)) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func coords(lat, lng float64) *types.Coordinates {
	return &types.Coordinates{Lat: lat, Lng: lng}
}

// demoTherapists mirrors the consumer app's offline directory.
var demoTherapists = []types.Therapist{
	{
		ID: "1", Name: "Dr. Sarah Johnson", Specialty: "Depression & Mood Disorders",
		Experience: "12 years", Location: "Manhattan, NY", Coordinates: coords(40.7831, -73.9712),
		Bio:    "Specializing in Cognitive Behavioral Therapy (CBT) for depression and mood disorders. I provide a safe, non-judgmental space for healing.",
		Tags:   []string{"Depression", "CBT", "Mood Disorders", "Anxiety"},
		Rating: 4.9, Availability: "Next available: Tomorrow",
		Insurance: types.FlexList[string]{"Most major insurance accepted"},
		Phone:     "(555) 123-4567", Email: "sarah.johnson@therapy.com",
	},
	{
		ID: "2", Name: "Michael Chen, LMFT", Specialty: "Anxiety & Stress Management",
		Experience: "8 years", Location: "Brooklyn, NY", Coordinates: coords(40.6782, -73.9442),
		Bio:    "I help clients manage anxiety and stress through evidence-based techniques including mindfulness and exposure therapy.",
		Tags:   []string{"Anxiety", "Panic Disorders", "Stress Management", "Mindfulness"},
		Rating: 4.8, Availability: "Next available: This week",
		Insurance: types.FlexList[string]{"Aetna", "Blue Cross", "UnitedHealthcare"},
		Phone:     "(555) 234-5678", Email: "mchen@therapy.com",
	},
	{
		ID: "3", Name: "Dr. Emily Rodriguez", Specialty: "Trauma & PTSD",
		Experience: "15 years", Location: "Queens, NY", Coordinates: coords(40.7282, -73.7949),
		Bio:    "Board-certified in trauma therapy and EMDR. I specialize in helping survivors process and heal from traumatic experiences.",
		Tags:   []string{"Trauma Therapy", "PTSD", "EMDR", "Sexual Assault"},
		Rating: 5.0, Availability: "Next available: 2 weeks",
		Insurance: types.FlexList[string]{"Most major insurance accepted"},
		Phone:     "(555) 345-6789", Email: "emily.rodriguez@therapy.com",
	},
	{
		ID: "4", Name: "James Wilson, LCSW", Specialty: "Relationship & Couples Therapy",
		Experience: "10 years", Location: "Manhattan, NY", Coordinates: coords(40.7589, -73.9851),
		Bio:    "Helping couples and individuals navigate relationship challenges, communication issues, and emotional intimacy.",
		Tags:   []string{"Relationship Therapy", "Couples Counseling", "Communication", "Conflict Resolution"},
		Rating: 4.7, Availability: "Next available: 3 days",
		Insurance: types.FlexList[string]{"Cigna", "Aetna", "Oscar"},
		Phone:     "(555) 456-7890", Email: "jwilson@therapy.com",
	},
	{
		ID: "5", Name: "Dr. Aisha Patel", Specialty: "Life Coaching & Career Counseling",
		Experience: "7 years", Location: "Remote (Online)",
		Bio:    "Guiding professionals through career transitions, life changes, and personal growth. Virtual sessions available.",
		Tags:   []string{"Life Coaching", "Career Counseling", "Identity Exploration", "Goal Setting"},
		Rating: 4.9, Availability: "Next available: Today",
		Insurance: types.FlexList[string]{"Self-pay", "FSA/HSA accepted"},
		Phone:     "(555) 567-8901", Email: "aisha.patel@therapy.com",
	},
	{
		ID: "6", Name: "Robert Thompson, PhD", Specialty: "Anger Management",
		Experience: "20 years", Location: "Bronx, NY", Coordinates: coords(40.8448, -73.8648),
		Bio:    "Expert in anger management and emotional regulation. I help clients develop healthy coping strategies and communication skills.",
		Tags:   []string{"Anger Management", "Emotional Regulation", "Conflict Resolution", "Family Therapy"},
		Rating: 4.8, Availability: "Next available: 1 week",
		Insurance: types.FlexList[string]{"Medicare", "Medicaid", "most major insurance"},
		Phone:     "(555) 678-9012", Email: "rthompson@therapy.com",
	},
	{
		ID: "7", Name: "Lisa Martinez, LMHC", Specialty: "Grief & Loss Counseling",
		Experience: "9 years", Location: "Staten Island, NY", Coordinates: coords(40.5795, -74.1502),
		Bio:    "Compassionate support for those experiencing grief, loss, or major life transitions. You don't have to go through it alone.",
		Tags:   []string{"Grief Counseling", "Loss", "Life Transitions", "Depression"},
		Rating: 5.0, Availability: "Next available: 5 days",
		Insurance: types.FlexList[string]{"Most major insurance accepted"},
		Phone:     "(555) 789-0123", Email: "lmartinez@therapy.com",
	},
	{
		ID: "8", Name: "Dr. David Kim", Specialty: "Mindfulness & Stress Reduction",
		Experience: "11 years", Location: "Manhattan, NY", Coordinates: coords(40.7484, -73.9857),
		Bio:    "Integrating mindfulness-based approaches with traditional therapy to help clients find balance and reduce stress.",
		Tags:   []string{"Mindfulness", "Stress Management", "Meditation", "Work-Life Balance"},
		Rating: 4.9, Availability: "Next available: Tomorrow",
		Insurance: types.FlexList[string]{"Oxford", "UnitedHealthcare", "Cigna"},
		Phone:     "(555) 890-1234", Email: "dkim@therapy.com",
	},
}
