package session

// Page paths the guard knows about.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathSignup       = "/signup"
	PathJoin         = "/join"
	PathCategories   = "/categories"
	PathTransactions = "/transactions"
	PathSettings     = "/settings"
)

// Decision is the outcome of Guard. Redirect is empty when Allow is true.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

var (
	loggedOutOnly = map[string]bool{PathLogin: true, PathSignup: true}
	teamPages     = map[string]bool{PathHome: true, PathCategories: true, PathTransactions: true, PathSettings: true}
)

// Guard decides whether s may view path.
func Guard(s Session, path string) Decision {
	switch {
	case loggedOutOnly[path]:
		if s.LoggedIn() {
			return redirect(PathHome)
		}
	case !s.LoggedIn():
		return redirect(PathLogin)
	case teamPages[path] && !s.HasTeamSpace():
		return redirect(PathJoin)
	}
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{Redirect: to}
}
