package version

// Set with -ldflags "-X github.com/bnema/antigravity-accounts-cli/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

func String() string {
	if Commit == "" {
		return Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "+" + short
}
