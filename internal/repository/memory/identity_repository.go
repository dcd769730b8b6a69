package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Identity is the current manufacturer identity for a logged-in portal
// session. It replaces the browser-storage strings the old client kept:
// stored explicitly at login, evicted at logout.
type Identity struct {
	ManufacturerID string `json:"manufacturer_id"`
	Manufacturer   string `json:"manufacturer"`
	LoggedInAt     time.Time
}

// IdentityRepository caches manufacturer identities keyed by manufacturer id.
type IdentityRepository struct {
	cache *cache.Cache
}

func NewIdentityRepository() *IdentityRepository {
	c := cache.New(12*time.Hour, 30*time.Minute)
	return &IdentityRepository{
		cache: c,
	}
}

func (r *IdentityRepository) Save(identity *Identity) {
	r.cache.Set(identity.ManufacturerID, identity, cache.DefaultExpiration)
}

func (r *IdentityRepository) Get(manufacturerID string) (*Identity, bool) {
	if x, found := r.cache.Get(manufacturerID); found {
		return x.(*Identity), true
	}
	return nil, false
}

func (r *IdentityRepository) Delete(manufacturerID string) {
	r.cache.Delete(manufacturerID)
}
