package guard

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		loading       bool
		authenticated bool
		want          Outcome
	}{
		{true, false, Wait},
		{true, true, Wait},
		{false, false, RedirectLogin},
		{false, true, Render},
	}
	for _, tc := range cases {
		got := Evaluate(tc.loading, tc.authenticated)
		if got != tc.want {
			t.Errorf("Evaluate(%v, %v) = %s, want %s", tc.loading, tc.authenticated, got, tc.want)
		}
	}
}

// The load-bearing property: while restoration is in progress the guard
// must never redirect, whatever the authenticated flag says. Otherwise a
// reload would bounce a logged-in user to the login view.
func TestNeverRedirectsWhileLoading(t *testing.T) {
	for _, authenticated := range []bool{true, false} {
		if got := Evaluate(true, authenticated); got == RedirectLogin {
			t.Errorf("redirected while loading (authenticated=%v)", authenticated)
		}
	}
}

type fakeSession struct {
	loading       bool
	authenticated bool
}

func (f *fakeSession) Loading() bool       { return f.loading }
func (f *fakeSession) Authenticated() bool { return f.authenticated }

func TestAdmitTracksStore(t *testing.T) {
	s := &fakeSession{loading: true}
	if got := Admit(s); got != Wait {
		t.Fatalf("expected Wait, got %s", got)
	}

	// restore completes anonymous
	s.loading = false
	if got := Admit(s); got != RedirectLogin {
		t.Fatalf("expected RedirectLogin, got %s", got)
	}

	// login
	s.authenticated = true
	if got := Admit(s); got != Render {
		t.Fatalf("expected Render, got %s", got)
	}
}
