package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"pharmachain-portal/pkg/scan"
)

// ScanSessionRepository holds in-progress verification attempts. Sessions are
// transient by design: they expire with the portal session and are never
// persisted.
type ScanSessionRepository struct {
	cache *cache.Cache
}

func NewScanSessionRepository() *ScanSessionRepository {
	// Sessions live an hour past last touch; expired ones are purged every
	// ten minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ScanSessionRepository{
		cache: c,
	}
}

func (r *ScanSessionRepository) Save(session *scan.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *ScanSessionRepository) Get(sessionID string) (*scan.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*scan.Session), true
	}
	return nil, false
}

func (r *ScanSessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
