package worksettings

// DefaultIPAllowlist is used when the admin-configured allowlist is empty.
// These are the office egress addresses.
var DefaultIPAllowlist = []string{
	"113.161.72.50",
	"113.161.72.51",
	"171.244.140.160",
}

// Default ceiling when the next day carries no shift to bound overtime.
const DefaultOvertimeCeilingHours = 16.0

// WorkSettings is the global configuration snapshot every attendance
// decision runs against. It is fetched once per invocation and passed
// through the call chain as a value; decision logic never reads ambient
// global state.
type WorkSettings struct {
	OffDays            map[int]bool // time.Weekday ints, Sunday=0
	IPAllowlist        []string
	OfficeLatitude     float64
	OfficeLongitude    float64
	MaxRadiusMeters    float64
	RequireGPSAndWifi  bool
	GracePeriodEnabled bool
	GracePeriodMinutes int
}

// EffectiveAllowlist returns the admin-configured allowlist, or the
// hardcoded default when none is configured.
func (s WorkSettings) EffectiveAllowlist() []string {
	if len(s.IPAllowlist) > 0 {
		return s.IPAllowlist
	}
	return DefaultIPAllowlist
}

// Defaults returns the settings used when no row has been seeded yet.
func Defaults() WorkSettings {
	return WorkSettings{
		OffDays:            map[int]bool{0: true, 6: true},
		IPAllowlist:        nil,
		OfficeLatitude:     10.7769,
		OfficeLongitude:    106.7009,
		MaxRadiusMeters:    200,
		RequireGPSAndWifi:  false,
		GracePeriodEnabled: true,
		GracePeriodMinutes: 5,
	}
}
