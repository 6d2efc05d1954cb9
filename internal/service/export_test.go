package service

import "time"

// SetHasher swaps the password hasher of an AuthService built by NewAuthService.
func SetHasher(s AuthService, h func([]byte) ([]byte, error)) {
	s.(*authService).hash = h
}

// SetNow fixes the clock of services that compute time windows.
func SetNow(s any, now func() time.Time) {
	switch v := s.(type) {
	case *authService:
		v.now = now
	case *reporteService:
		v.now = now
	}
}
