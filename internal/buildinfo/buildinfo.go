package buildinfo

// These values are injected via ldflags for release binaries.
var (
	Name    = "marc"
	Version = "dev"
	Commit  = ""
)

// String renders the version line printed by `marc version`.
func String() string {
	if Commit == "" {
		return Name + " version " + Version
	}
	return Name + " version " + Version + " (" + Commit + ")"
}
