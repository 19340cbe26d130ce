package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quizdesk-service/internal/domain"
)

// GroupLoader fetches question-group content from a backing store
// (e.g., document DB).
type GroupLoader interface {
	LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error)
	LoadCatalog(ctx context.Context) ([]domain.GroupInfo, error)
}

// GroupRepository caches question groups with TTL to avoid repeated DB hits.
type GroupRepository struct {
	loader GroupLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedGroup
}

type cachedGroup struct {
	group     domain.QuestionGroup
	expiresAt time.Time
}

func NewGroupRepository(loader GroupLoader, ttl time.Duration) *GroupRepository {
	return &GroupRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedGroup),
	}
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[groupID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.group, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(groupID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[groupID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.group, nil
		}
		r.mu.RUnlock()

		group, err := r.loader.LoadGroup(ctx, groupID)
		if err != nil {
			return domain.QuestionGroup{}, err
		}

		r.mu.Lock()
		r.cache[groupID] = cachedGroup{
			group:     group,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return group, nil
	})
	if err != nil {
		return domain.QuestionGroup{}, err
	}
	return result.(domain.QuestionGroup), nil
}

// ListGroups is not cached; the catalog is small and changes rarely.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.GroupInfo, error) {
	return r.loader.LoadCatalog(ctx)
}

func (r *GroupRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticGroupLoader is a simple loader backed by an in-memory map (useful for
// tests/demos).
type StaticGroupLoader struct {
	groups map[string]domain.QuestionGroup
}

func NewStaticGroupLoader(groups map[string]domain.QuestionGroup) *StaticGroupLoader {
	return &StaticGroupLoader{groups: groups}
}

func (l *StaticGroupLoader) LoadGroup(_ context.Context, groupID string) (domain.QuestionGroup, error) {
	if group, ok := l.groups[groupID]; ok {
		return group, nil
	}
	return domain.QuestionGroup{}, domain.ErrGroupNotFound
}

func (l *StaticGroupLoader) LoadCatalog(_ context.Context) ([]domain.GroupInfo, error) {
	infos := make([]domain.GroupInfo, 0, len(l.groups))
	for _, g := range l.groups {
		infos = append(infos, g.Info)
	}
	return infos, nil
}
