package config

// Rate resolves how much XP one logged action is worth for a category.
// This table is configuration, not core logic: categories earn either by
// the hour or as a flat bonus, and users can override any entry in the
// config file.
type Rate struct {
	PerHour float64 `yaml:"per_hour,omitempty"`
	Flat    float64 `yaml:"flat,omitempty"`
}

// Resolve turns a duration choice into an XP magnitude. With hours given,
// hourly categories scale; otherwise the flat bonus applies, falling back
// to one hour's worth for hourly categories logged without a duration.
func (r Rate) Resolve(hours float64) float64 {
	if hours > 0 && r.PerHour > 0 {
		return r.PerHour * hours
	}
	if r.Flat > 0 {
		return r.Flat
	}
	return r.PerHour
}

func DefaultRates() map[string]Rate {
	return map[string]Rate{
		"Admin Work":                {PerHour: 0.5},
		"Design Work":               {PerHour: 0.5},
		"Jiu Jitsu Training":        {PerHour: 1.0},
		"Gym Workout":               {PerHour: 1.0},
		"Italian Studying":          {PerHour: 0.5},
		"Italian Passive listening": {PerHour: 0.2},
		"Chess - Rated Matches":     {PerHour: 0.5},
		"Chess - Study/ Analysis":   {PerHour: 0.5},
		"Reading":                   {PerHour: 0.5},
		"New Skill Learning":        {PerHour: 0.5},
		"Personal Challenge Quest":  {Flat: 2.0},
		"Recovery":                  {PerHour: 0.2},
		"Creative Output":           {PerHour: 0.5},
		"General Life Task":         {Flat: 0.5},
		"Quest 1":                   {Flat: 1.0},
		"Quest 2":                   {Flat: 1.0},
		"Quest 3":                   {Flat: 1.0},
		"Chess Streak":              {Flat: 0.5},
		"Italian Streak":            {Flat: 0.5},
		"Gym Streak":                {Flat: 0.5},
		"Jiu Jitsu Streak":          {Flat: 0.5},
		"Eating Healthy":            {Flat: 1.0},
		"Meet Hydration target":     {Flat: 1.0},
	}
}
