package loader

import "github.com/pable/go-cricket-metrics/internal/model"

const noEffectiveMovement = "No Effective Movement"

var dismissalAliases = map[string]string{
	"Caught":    "Caught Out",
	"CaughtSub": "Caught Out",
	"RunOut":    "Run Out",
	"RunOutSub": "Run Out",
}

// NormalizeDismissal unifies caught and run-out variants.
func NormalizeDismissal(s string) string {
	if v, ok := dismissalAliases[s]; ok {
		return v
	}
	return s
}

// NormalizeFoot folds the "no movement" encodings into one label.
func NormalizeFoot(s string) string {
	switch s {
	case "0", "0.0", "NoMovement":
		return noEffectiveMovement
	}
	return s
}

// IsWicketTruthy reports whether a raw is_wicket value marks a dismissal.
func IsWicketTruthy(s string) bool {
	switch s {
	case "true", "True", "TRUE", "1", "1.0":
		return true
	}
	return false
}

// Normalize applies label unification and computes the derived flags.
// Applying it more than once gives the same result. Without a runs column
// the dot and boundary flags stay false.
func Normalize(d *model.Delivery) {
	d.DismissalType = NormalizeDismissal(d.DismissalType)
	d.Foot = NormalizeFoot(d.Foot)

	d.WithControl = d.ParsedControl == "under control" || d.ParsedControl == "well timed"
	d.IsAerial = d.Elevation == "in the air"
	d.IsBoundary = !d.RunsUnknown && (d.RunsScored == 4 || d.RunsScored == 6)
	d.IsDot = !d.RunsUnknown && d.RunsScored == 0
	d.IsOut = IsWicketTruthy(d.IsWicket) || d.DismissalType != ""
}
