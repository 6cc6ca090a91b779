package matching

// Mood is a selectable mood with the specialty tags it expands to.
type Mood struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
}

// Taxonomy is the fixed mood set, in presentation order. Expansion walks
// this order so results are deterministic.
var Taxonomy = []Mood{
	{Label: "Sad/Depressed", Description: "Feeling down, hopeless, or losing interest", Specialties: []string{"Depression", "Mood Disorders", "CBT"}},
	{Label: "Anxious", Description: "Worried, nervous, or panic attacks", Specialties: []string{"Anxiety", "Panic Disorders", "Stress Management"}},
	{Label: "Angry/Frustrated", Description: "Anger issues or feeling irritable", Specialties: []string{"Anger Management", "Emotional Regulation", "Conflict Resolution"}},
	{Label: "Heartbroken", Description: "Relationship problems or breakup", Specialties: []string{"Relationship Therapy", "Couples Counseling", "Grief Counseling"}},
	{Label: "Stressed/Burnout", Description: "Overwhelmed, exhausted, or burnt out", Specialties: []string{"Stress Management", "Work-Life Balance", "Mindfulness"}},
	{Label: "Confused/Lost", Description: "Life direction or identity questions", Specialties: []string{"Life Coaching", "Career Counseling", "Identity Exploration"}},
	{Label: "Lonely", Description: "Feeling isolated or disconnected", Specialties: []string{"Social Skills", "Connection Building", "Depression"}},
	{Label: "Traumatized", Description: "Past trauma or PTSD symptoms", Specialties: []string{"Trauma Therapy", "PTSD", "EMDR"}},
}

// MoodSpecialtyMap indexes the taxonomy by label.
var MoodSpecialtyMap = func() map[string][]string {
	m := make(map[string][]string, len(Taxonomy))
	for _, mood := range Taxonomy {
		m[mood.Label] = mood.Specialties
	}
	return m
}()

// Expand maps selected mood labels to their union of specialty tags,
// de-duplicated, preserving first-encountered order. Unknown labels are
// ignored.
func Expand(moodLabels []string) []string {
	seen := make(map[string]struct{})
	var specialties []string
	for _, label := range moodLabels {
		for _, spec := range MoodSpecialtyMap[label] {
			if _, ok := seen[spec]; ok {
				continue
			}
			seen[spec] = struct{}{}
			specialties = append(specialties, spec)
		}
	}
	return specialties
}
