package attributes

// Role is the structural place of a digit under base-9 reduction.
type Role string

const (
	RoleVoid    Role = "void"    // 0
	RoleVortex  Role = "vortex"  // 1 2 4 5 7 8, the doubling cycle
	RoleGateway Role = "gateway" // 3 6 9
)

// Profile holds the per-digit constants.
type Profile struct {
	Digit         int    `json:"digit"`
	Name          string `json:"name"`
	Consciousness string `json:"consciousness"`
	Role          Role   `json:"role"`
}

var profiles = [10]Profile{
	{0, "void", "potential", RoleVoid},
	{1, "unity", "awareness", RoleVortex},
	{2, "duality", "reflection", RoleVortex},
	{3, "trinity", "creation", RoleGateway},
	{4, "foundation", "structure", RoleVortex},
	{5, "change", "motion", RoleVortex},
	{6, "harmony", "balance", RoleGateway},
	{7, "insight", "wisdom", RoleVortex},
	{8, "infinity", "abundance", RoleVortex},
	{9, "completion", "wholeness", RoleGateway},
}

// ProfileFor returns the profile of a digit in [0,9].
func ProfileFor(d int) (Profile, bool) {
	if d < 0 || d > 9 {
		return Profile{}, false
	}
	return profiles[d], true
}

// Profiles returns all ten profiles in digit order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles[:])
	return out
}

// Record is the display record for one digit: its profile joined with
// its attribute bundle.
type Record struct {
	Profile
	Frequency int    `json:"frequency"`
	Color     Color  `json:"color"`
	Hex       string `json:"hex"`
	IsGateway bool   `json:"is_gateway"`
}

// Record builds the display record for d (reduced into [0,9] first).
func (m *Mapper) Record(d int) Record {
	b := m.AttributesFor(d)
	p, ok := ProfileFor(b.Digit)
	if !ok {
		// Reducers with a base above 10 can yield digits with no profile.
		p = Profile{Digit: b.Digit}
	}
	return Record{
		Profile:   p,
		Frequency: b.Frequency,
		Color:     b.Color,
		Hex:       b.Color.Hex(),
		IsGateway: b.IsGateway,
	}
}
