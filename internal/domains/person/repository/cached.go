package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"people-service/internal/domains/person"
	"people-service/pkg/cache"
)

// Cache key constants
const (
	personCacheKeyPrefix = "person:"
	defaultCacheTTL      = 15 * time.Minute

	generationStripes = 256
)

// cachedRepository is a read-through cache in front of another Repository.
// Only FindByID is served from cache; every write evicts what it touched.
// Cache failures are logged and never fail the request.
//
// Every write bumps a generation counter for the id's stripe (and the global
// epoch for bulk deletes). FindByID only fills the cache when no write landed
// between its snapshot and the store read, so a slow read can't put back a
// record a concurrent write just replaced.
type cachedRepository struct {
	person.Repository
	cache cache.Cache
	ttl   time.Duration

	mu    sync.Mutex
	gens  [generationStripes]uint64
	epoch uint64
}

// generation identifies the write state observed for one id
type generation struct {
	stripe uint64
	epoch  uint64
}

// NewCachedRepository wraps inner with cache. ttl <= 0 uses 15 minutes.
func NewCachedRepository(inner person.Repository, c cache.Cache, ttl time.Duration) person.Repository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cachedRepository{
		Repository: inner,
		cache:      c,
		ttl:        ttl,
	}
}

func personCacheKey(id uuid.UUID) string {
	return personCacheKeyPrefix + id.String()
}

func (r *cachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	key := personCacheKey(id)

	var p person.Person
	hit, err := r.cache.Get(ctx, key, &p)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] get failed, falling back to store")
	}
	if err == nil && hit {
		return &p, nil
	}

	before := r.snapshot(id)
	found, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.snapshot(id) != before {
		return found, nil
	}
	r.store(ctx, found)
	// A write that bumped between the check and the Set may have evicted
	// before our Set landed; drop the entry again in that case.
	if r.snapshot(id) != before {
		r.evict(ctx, id)
	}
	return found, nil
}

func (r *cachedRepository) AppendFood(ctx context.Context, id uuid.UUID, food string) (*person.Person, error) {
	updated, err := r.Repository.AppendFood(ctx, id, food)
	r.bump(id)
	r.evict(ctx, id)
	return updated, err
}

func (r *cachedRepository) UpdateAgeByName(ctx context.Context, name string, age int) (*person.Person, error) {
	updated, err := r.Repository.UpdateAgeByName(ctx, name, age)
	if err != nil {
		return nil, err
	}
	r.bump(updated.ID)
	r.evict(ctx, updated.ID)
	return updated, nil
}

func (r *cachedRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	removed, err := r.Repository.DeleteByID(ctx, id)
	r.bump(id)
	r.evict(ctx, id)
	return removed, err
}

// DeleteAllByName can't tell which ids went away, so it drops every person key
func (r *cachedRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	n, err := r.Repository.DeleteAllByName(ctx, name)
	if err != nil || n == 0 {
		return n, err
	}

	r.mu.Lock()
	r.epoch++
	r.mu.Unlock()

	if cerr := r.cache.DeletePattern(ctx, personCacheKeyPrefix+"*"); cerr != nil {
		log.Warn().Err(cerr).Msg("[CACHE] pattern eviction failed")
	}
	return n, nil
}

func (r *cachedRepository) Ping(ctx context.Context) error {
	if err := r.Repository.Ping(ctx); err != nil {
		return err
	}
	if err := r.cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("[CACHE] ping failed")
	}
	return nil
}

func (r *cachedRepository) store(ctx context.Context, p *person.Person) {
	if err := r.cache.Set(ctx, personCacheKey(p.ID), p, r.ttl); err != nil {
		log.Warn().Err(err).Str("id", p.ID.String()).Msg("[CACHE] set failed")
	}
}

func stripeOf(id uuid.UUID) int {
	return int(id[len(id)-1]) % generationStripes
}

func (r *cachedRepository) snapshot(id uuid.UUID) generation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return generation{stripe: r.gens[stripeOf(id)], epoch: r.epoch}
}

// bump must run after the store write has completed
func (r *cachedRepository) bump(id uuid.UUID) {
	r.mu.Lock()
	r.gens[stripeOf(id)]++
	r.mu.Unlock()
}

func (r *cachedRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, personCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("id", id.String()).Msg("[CACHE] eviction failed")
	}
}
