package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mercadito/internal/infrastructure/redisx"
)

// Event is the change notification published after every successful write.
// Subscribers treat it as an invalidation signal and refetch the full
// collection; the event never carries the record itself.
type Event struct {
	EventID    string    `json:"eventId"`
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Feed invalidates cached list snapshots and notifies subscribers of
// collection changes. Both operations are best effort: a Redis failure is
// logged and swallowed so writes never fail on the notification path.
type Feed struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(rdb *redis.Client, logger *zap.Logger) *Feed {
	return &Feed{rdb: rdb, logger: logger}
}

func (f *Feed) Changed(ctx context.Context, kind, entityID, action string) {
	key := fmt.Sprintf(redisx.KeySnapshot, kind)
	if err := f.rdb.Del(ctx, key).Err(); err != nil {
		f.logger.Warn("snapshot invalidation failed", zap.String("kind", kind), zap.Error(err))
	}

	ev := Event{
		EventID:    uuid.NewString(),
		Kind:       kind,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		f.logger.Warn("encoding change event failed", zap.Error(err))
		return
	}
	if err := f.rdb.Publish(ctx, redisx.ChannelChanges, payload).Err(); err != nil {
		f.logger.Warn("publishing change event failed", zap.String("kind", kind), zap.Error(err))
	}
}

// CachedSnapshot returns the cached unfiltered listing for kind, if any.
func (f *Feed) CachedSnapshot(ctx context.Context, kind string) ([]byte, bool) {
	key := fmt.Sprintf(redisx.KeySnapshot, kind)
	data, err := f.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *Feed) StoreSnapshot(ctx context.Context, kind string, payload []byte) {
	key := fmt.Sprintf(redisx.KeySnapshot, kind)
	if err := f.rdb.Set(ctx, key, payload, redisx.TTLSnapshot).Err(); err != nil {
		f.logger.Warn("storing snapshot failed", zap.String("kind", kind), zap.Error(err))
	}
}
