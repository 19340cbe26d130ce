package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizdesk-service/internal/domain"
	"quizdesk-service/internal/infra/memory"
)

// GroupRepository caches question groups in Redis as JSON documents and falls
// back to a loader on cache miss. Groups are stored as:
// SET quizdesk:group:{groupID} {json}
type GroupRepository struct {
	client *redis.Client
	loader memory.GroupLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewGroupRepository(client *redis.Client, loader memory.GroupLoader, ttl time.Duration) *GroupRepository {
	return &GroupRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	key := r.groupKey(groupID)

	if group, ok := r.cached(ctx, key); ok {
		return group, nil
	}

	result, err, _ := r.sf.Do(groupID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if group, ok := r.cached(ctx, key); ok {
			return group, nil
		}

		group, err := r.loader.LoadGroup(ctx, groupID)
		if err != nil {
			return domain.QuestionGroup{}, err
		}

		if data, err := json.Marshal(group); err == nil {
			// best-effort cache fill
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return group, nil
	})
	if err != nil {
		return domain.QuestionGroup{}, err
	}
	return result.(domain.QuestionGroup), nil
}

// ListGroups always goes to the loader; the catalog listing is not cached.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.GroupInfo, error) {
	return r.loader.LoadCatalog(ctx)
}

func (r *GroupRepository) cached(ctx context.Context, key string) (domain.QuestionGroup, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.QuestionGroup{}, false
	}
	var group domain.QuestionGroup
	if err := json.Unmarshal(raw, &group); err != nil {
		return domain.QuestionGroup{}, false
	}
	return group, true
}

func (r *GroupRepository) groupKey(groupID string) string {
	return "quizdesk:group:" + groupID
}

func (r *GroupRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
