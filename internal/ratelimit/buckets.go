package ratelimit

import "time"

// Bucket is a named rate-limit rule: at most Max accepted requests per
// identity within one fixed window of Window length.
type Bucket struct {
	Name   string
	Window time.Duration
	Max    int
}

// Named buckets, one per endpoint group/action.
const (
	AuthLogin    = "auth.login"
	AuthRegister = "auth.register"
	AuthLogout   = "auth.logout"

	APIGetNotes   = "api.get_notes"
	APICreateNote = "api.create_note"
	APIUpdateNote = "api.update_note"
	APIDeleteNote = "api.delete_note"

	ProfileView   = "profile.view"
	ProfileUpdate = "profile.update"
	ProfileAvatar = "profile.avatar"

	AdminLogs = "admin.logs"

	GeneralHome   = "general.home"
	GeneralPing   = "general.ping"
	GeneralLocale = "general.locale"
)

var buckets = map[string]Bucket{
	AuthLogin:    {AuthLogin, time.Minute, 5},
	AuthRegister: {AuthRegister, time.Hour, 3},
	AuthLogout:   {AuthLogout, time.Minute, 10},

	APIGetNotes:   {APIGetNotes, time.Minute, 30},
	APICreateNote: {APICreateNote, time.Minute, 10},
	APIUpdateNote: {APIUpdateNote, time.Minute, 20},
	APIDeleteNote: {APIDeleteNote, time.Minute, 5},

	ProfileView:   {ProfileView, time.Minute, 20},
	ProfileUpdate: {ProfileUpdate, time.Minute, 5},
	ProfileAvatar: {ProfileAvatar, time.Minute, 3},

	AdminLogs: {AdminLogs, time.Hour, 2},

	GeneralHome:   {GeneralHome, time.Minute, 100},
	GeneralPing:   {GeneralPing, time.Hour, 1000},
	GeneralLocale: {GeneralLocale, time.Minute, 10},
}

// fallback for bucket names without an explicit rule
var defaultBucket = Bucket{Name: "default", Window: time.Hour, Max: 50}

// Coarse identity-wide caps checked before any named bucket.
var globalBuckets = []Bucket{
	{Name: "global.day", Window: 24 * time.Hour, Max: 200},
	{Name: "global.hour", Window: time.Hour, Max: 50},
}

// GetBucket returns the rule for name, falling back to the default rule.
func GetBucket(name string) Bucket {
	if b, ok := buckets[name]; ok {
		return b
	}
	b := defaultBucket
	b.Name = name
	return b
}
