package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inventory-manager/feature/inventory/models"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLockTimeout is returned when an item stays locked past the lock timeout.
var ErrLockTimeout = errors.New("timed out waiting for item lock")

// staleLockAge is the age past which a lock row is considered abandoned.
const staleLockAge = 10 * time.Minute

// Locker grants per-item mutual exclusion between concurrent inventories.
// The returned release function is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, owner Owner, holder string) (release func(), err error)
}

// GormLocker stores lock rows in inventory_locks. It must use a connection
// outside the inventory transaction so other processes see the row at once.
type GormLocker struct {
	db      *gorm.DB
	timeout time.Duration
	logger  *zap.Logger
}

// NewGormLocker creates a row-based locker.
func NewGormLocker(db *gorm.DB, timeout time.Duration, logger *zap.Logger) *GormLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormLocker{db: db, timeout: timeout, logger: logger}
}

// Lock inserts the lock row, retrying with jittered backoff while another holder
// owns it.
func (l *GormLocker) Lock(ctx context.Context, owner Owner, holder string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	b := &backoff.Backoff{
		Min:    50 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	for {
		acquired, err := l.tryLock(ctx, owner, holder)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, owner)
			}
			return nil, err
		}
		if acquired {
			var once sync.Once
			return func() {
				once.Do(func() { l.unlock(owner, holder) })
			}, nil
		}

		wait := b.Duration()
		l.logger.Debug("Item locked, waiting",
			zap.String("item", owner.String()),
			zap.Duration("wait", wait),
		)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, owner)
		case <-time.After(wait):
		}
	}
}

func (l *GormLocker) tryLock(ctx context.Context, owner Owner, holder string) (bool, error) {
	db := l.db.WithContext(ctx)

	err := db.Where("item_type = ? AND item_id = ? AND created_at < ?", owner.ItemType, owner.ItemID, time.Now().Add(-staleLockAge)).
		Delete(&models.Lock{}).Error
	if err != nil {
		return false, fmt.Errorf("failed to clear stale lock: %w", err)
	}

	row := &models.Lock{ItemType: owner.ItemType, ItemID: owner.ItemID, Owner: holder, CreatedAt: time.Now()}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert lock row: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (l *GormLocker) unlock(owner Owner, holder string) {
	err := l.db.Where("item_type = ? AND item_id = ? AND owner = ?", owner.ItemType, owner.ItemID, holder).
		Delete(&models.Lock{}).Error
	if err != nil {
		l.logger.Error("Failed to release item lock", zap.String("item", owner.String()), zap.Error(err))
	}
}

// MemoryLocker is a process-local Locker. It serves single-process deployments
// (sqlite) and tests.
type MemoryLocker struct {
	timeout time.Duration

	mu   sync.Mutex
	held map[Owner]chan struct{}
}

// NewMemoryLocker creates a process-local locker.
func NewMemoryLocker(timeout time.Duration) *MemoryLocker {
	return &MemoryLocker{timeout: timeout, held: make(map[Owner]chan struct{})}
}

func (l *MemoryLocker) Lock(ctx context.Context, owner Owner, _ string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	for {
		l.mu.Lock()
		released, busy := l.held[owner]
		if !busy {
			ch := make(chan struct{})
			l.held[owner] = ch
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, owner)
					l.mu.Unlock()
					close(ch)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, owner)
		case <-released:
		}
	}
}
