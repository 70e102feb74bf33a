package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	HabitsKeyPrefix        = "habits:user:%d"
	DeletedHabitsKeyPrefix = "deleted-habits:user:%d"
)

const (
	HabitsTTL        = 5 * time.Minute
	DeletedHabitsTTL = 10 * time.Minute
)

func HabitsKey(userID uint) string {
	return fmt.Sprintf(HabitsKeyPrefix, userID)
}

func DeletedHabitsKey(userID uint) string {
	return fmt.Sprintf(DeletedHabitsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateHabits drops both per-user list caches. Every habit write goes
// through here; archive/restore touch both lists anyway.
func InvalidateHabits(ctx context.Context, userID uint) {
	Invalidate(ctx, HabitsKey(userID))
	Invalidate(ctx, DeletedHabitsKey(userID))
}
