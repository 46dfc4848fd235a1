package health

// KeyChecker reports whether a generation API key is configured.
type KeyChecker interface {
	HasAPIKey() bool
}

// Service encapsulates health-related checks.
type Service struct {
	keys KeyChecker
}

// NewService constructs a new health service.
func NewService(keys KeyChecker) *Service {
	return &Service{keys: keys}
}

// Status reports process liveness and whether generation is ready.
func (s *Service) Status() map[string]bool {
	ready := false
	if s.keys != nil {
		ready = s.keys.HasAPIKey()
	}
	return map[string]bool{"ok": true, "generationReady": ready}
}
