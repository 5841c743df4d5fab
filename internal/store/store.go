// Package store owns the persisted user collection. Every operation passes
// through an artificial latency stage and, when dev mode is enabled, a
// probabilistic fault stage before touching the persistence substrate, so a
// simulated failure never leaves a partial write behind.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-profiles/internal/adapter/kv"
	"user-profiles/internal/domain/user"
	apperrors "user-profiles/pkg/errors"
)

// Substrate keys for the two independent persisted entries.
const (
	collectionKey = "user-profiles"
	devModeKey    = "user-profiles-dev-mode"
)

const defaultFaultProbability = 0.1

// Fields are the caller-supplied attributes of a record. The store does not
// validate them; the controller validates before calling.
type Fields struct {
	Name   string
	Email  string
	Role   user.Role
	Avatar string
}

// FaultFunc decides whether a dev-mode fault fires for one operation.
type FaultFunc func() bool

// ProbabilisticFaults returns a FaultFunc firing with the given probability.
// rand.Rand is not safe for concurrent use, so calls are serialized.
func ProbabilisticFaults(probability float64, rng *rand.Rand) FaultFunc {
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64() < probability
	}
}

// Options configures a Store. The zero value means no artificial latency, a
// real clock, and the default 10% fault probability while dev mode is on.
type Options struct {
	Latency          time.Duration
	FaultProbability float64          // used when Fault is nil; 0 means the default
	Clock            func() time.Time // nil means time.Now
	Fault            FaultFunc        // overrides FaultProbability when set
}

// Store reads and replaces the persisted collection wholesale. Mutations are
// read-modify-write over the full snapshot with no cross-call transaction:
// overlapping un-awaited mutations both read the pre-mutation collection and
// the second writer silently discards the first writer's change. Callers are
// expected to await each mutation before issuing the next.
type Store struct {
	kv      kv.Store
	log     *zap.Logger
	clock   func() time.Time
	latency time.Duration
	fault   FaultFunc
	sample  []user.User
	reads   singleflight.Group
}

// New creates a Store over the given substrate.
func New(kvs kv.Store, log *zap.Logger, opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	fault := opts.Fault
	if fault == nil {
		p := opts.FaultProbability
		if p == 0 {
			p = defaultFaultProbability
		}
		fault = ProbabilisticFaults(p, rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	return &Store{
		kv:      kvs,
		log:     log,
		clock:   clock,
		latency: opts.Latency,
		fault:   fault,
		sample:  SampleUsers(),
	}
}

// wait applies the artificial latency stage. Cancellation is honored here;
// once an operation reaches the substrate it runs to completion.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// injectFault applies the dev-mode fault stage. It runs after the latency
// stage and before any substrate write.
func (s *Store) injectFault(ctx context.Context, op, message string) error {
	enabled, err := s.IsDevMode(ctx)
	if err != nil {
		s.log.Warn("failed to read dev mode flag, assuming off", zap.Error(err))
		return nil
	}
	if enabled && s.fault() {
		s.log.Warn("injected fault", zap.String("op", op))
		return apperrors.NewTransientError(op, message)
	}
	return nil
}

// GetUsers reads the persisted collection. A missing entry and malformed
// stored data both yield an empty collection; malformed data is logged, not
// surfaced. Concurrent calls share one substrate read.
func (s *Store) GetUsers(ctx context.Context) ([]user.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.injectFault(ctx, "get_users", "failed to fetch users"); err != nil {
		return nil, err
	}

	v, err, _ := s.reads.Do(collectionKey, func() (any, error) {
		return s.readCollection(ctx)
	})
	if err != nil {
		return nil, err
	}

	// Each caller gets its own copy; singleflight shares one result value.
	shared := v.([]user.User)
	users := make([]user.User, len(shared))
	copy(users, shared)
	return users, nil
}

func (s *Store) readCollection(ctx context.Context) ([]user.User, error) {
	raw, err := s.kv.Get(ctx, collectionKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return []user.User{}, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read stored users", err)
	}

	var snap user.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.log.Error("malformed stored users, treating as empty", zap.Error(err))
		return []user.User{}, nil
	}
	if snap.Users == nil {
		return []user.User{}, nil
	}
	return snap.Users, nil
}

// SaveUsers overwrites the persisted collection with users, stamping the
// snapshot with the current time.
func (s *Store) SaveUsers(ctx context.Context, users []user.User) (*user.Snapshot, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.injectFault(ctx, "save_users", "failed to save users"); err != nil {
		return nil, err
	}

	snap := user.Snapshot{Users: users, LastUpdated: s.clock()}
	if snap.Users == nil {
		snap.Users = []user.User{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode users", err)
	}
	if err := s.kv.Set(ctx, collectionKey, string(data)); err != nil {
		return nil, apperrors.NewInternalError("failed to persist users", err)
	}

	s.log.Debug("collection persisted", zap.Int("count", len(snap.Users)))
	return &snap, nil
}

// AddUser appends a new record with a generated id and createdAt ==
// lastModified == now, then persists the full collection.
func (s *Store) AddUser(ctx context.Context, f Fields) (*user.User, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	record := user.User{
		ID:           uuid.NewString(),
		Name:         f.Name,
		Email:        f.Email,
		Role:         f.Role,
		Avatar:       f.Avatar,
		CreatedAt:    now,
		LastModified: now,
	}

	if _, err := s.SaveUsers(ctx, append(users, record)); err != nil {
		return nil, err
	}

	s.log.Info("user added", zap.String("id", record.ID), zap.String("email", record.Email))
	return &record, nil
}

// UpdateUser replaces the mutable fields of the record with the given id and
// bumps lastModified. The caller submits the complete field set; id and
// createdAt are never touched.
func (s *Store) UpdateUser(ctx context.Context, id string, f Fields) (*user.User, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Warn("user not found for update", zap.String("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	updated := users[idx]
	updated.Name = f.Name
	updated.Email = f.Email
	updated.Role = f.Role
	updated.Avatar = f.Avatar
	updated.LastModified = s.clock()
	users[idx] = updated

	if _, err := s.SaveUsers(ctx, users); err != nil {
		return nil, err
	}

	s.log.Info("user updated", zap.String("id", id))
	return &updated, nil
}

// DeleteUser removes the record with the given id and persists the reduced
// collection.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return err
	}

	remaining := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			remaining = append(remaining, u)
		}
	}
	if len(remaining) == len(users) {
		s.log.Warn("user not found for delete", zap.String("id", id))
		return apperrors.NewNotFoundError("user", "User not found")
	}

	if _, err := s.SaveUsers(ctx, remaining); err != nil {
		return err
	}

	s.log.Info("user deleted", zap.String("id", id))
	return nil
}

// ResetToSampleData replaces the persisted collection with the seed set and
// returns it. The seed keeps the ids generated at store construction.
func (s *Store) ResetToSampleData(ctx context.Context) ([]user.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.injectFault(ctx, "reset_data", "failed to reset data"); err != nil {
		return nil, err
	}

	seed := make([]user.User, len(s.sample))
	copy(seed, s.sample)

	if _, err := s.SaveUsers(ctx, seed); err != nil {
		return nil, err
	}

	s.log.Info("collection reset to sample data", zap.Int("count", len(seed)))
	return seed, nil
}

// ClearAllData removes the persisted collection entirely.
func (s *Store) ClearAllData(ctx context.Context) ([]user.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.injectFault(ctx, "clear_data", "failed to clear data"); err != nil {
		return nil, err
	}

	if err := s.kv.Delete(ctx, collectionKey); err != nil {
		return nil, apperrors.NewInternalError("failed to clear stored users", err)
	}

	s.log.Info("collection cleared")
	return []user.User{}, nil
}

// IsDevMode reads the persisted dev-mode flag. Unset means off.
func (s *Store) IsDevMode(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, devModeKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to read dev mode flag", err)
	}
	return raw == "true", nil
}

// ToggleDevMode flips and persists the dev-mode flag, returning the new
// value. The toggle itself is never subject to latency or fault injection.
func (s *Store) ToggleDevMode(ctx context.Context) (bool, error) {
	enabled, err := s.IsDevMode(ctx)
	if err != nil {
		return false, err
	}

	next := !enabled
	if err := s.kv.Set(ctx, devModeKey, strconv.FormatBool(next)); err != nil {
		return false, apperrors.NewInternalError("failed to persist dev mode flag", err)
	}

	s.log.Info("dev mode toggled", zap.Bool("enabled", next))
	return next, nil
}
