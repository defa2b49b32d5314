package app

// MultiStatus fans status updates out to several sinks.
type MultiStatus []StatusUpdater

func (m MultiStatus) SetMuted(muted bool) {
	for _, s := range m {
		s.SetMuted(muted)
	}
}

func (m MultiStatus) SetSuspended(suspended bool) {
	for _, s := range m {
		s.SetSuspended(suspended)
	}
}
