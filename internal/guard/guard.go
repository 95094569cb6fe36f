// Package guard decides whether a protected view may render. The
// decision is a pure function of the session store's (loading,
// authenticated) pair. A view never bounces to login while the initial
// restore is still running.
package guard

// Outcome is the guard's three-way decision.
type Outcome int

const (
	// Wait: restoration is still in progress; show a neutral
	// placeholder and do not redirect.
	Wait Outcome = iota
	// RedirectLogin: restoration finished and no credential is held.
	RedirectLogin
	// Render: restoration finished and the user is authenticated.
	Render
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case Render:
		return "render"
	}
	return "unknown"
}

// Evaluate maps session state to an outcome. Loading always wins:
// the authenticated value is not consulted until loading is false.
func Evaluate(loading, authenticated bool) Outcome {
	if loading {
		return Wait
	}
	if !authenticated {
		return RedirectLogin
	}
	return Render
}

// Session is the read-only slice of the session store the guard needs.
type Session interface {
	Loading() bool
	Authenticated() bool
}

// Admit evaluates the guard against a live session store.
func Admit(s Session) Outcome {
	return Evaluate(s.Loading(), s.Authenticated())
}
