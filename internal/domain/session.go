package domain

type Session struct {
	Credentials CredentialSet
	// AccessToken is the page-embedded value sent as "at" on every backend call.
	AccessToken string
	Ready       bool
}

func (s Session) Clone() Session {
	return Session{
		Credentials: s.Credentials.Clone(),
		AccessToken: s.AccessToken,
		Ready:       s.Ready,
	}
}

type SessionStatus struct {
	CookieFileExists bool
	ProfileExists    bool
	MarkerPresent    bool
	Probed           bool
	Ready            bool
	DataDir          string
}

func (s SessionStatus) LoggedIn() bool {
	return s.CookieFileExists || s.ProfileExists
}
