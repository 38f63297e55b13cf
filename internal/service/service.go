// Package service hosts many matches behind a MatchStore. It serializes
// actions per match, checks that the submitting player is the one whose turn
// it is, persists every result and fans snapshots out to subscribers.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/log"
	"github.com/peterkuimelis/mythduel/internal/store"
)

// ErrMatchNotFound is returned for any operation on an unknown match id.
var ErrMatchNotFound = errors.New("match not found")

// subscriberBuffer is how many updates a slow subscriber may fall behind
// before further updates are dropped for it.
const subscriberBuffer = 16

// Update is pushed to subscribers after every submitted action.
type Update struct {
	Match  *game.Match
	Action game.Action
	Result game.Result
}

// Service is safe for concurrent use.
type Service struct {
	engine *game.Engine
	store  store.MatchStore
	logger *zap.Logger

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	subs    map[string]map[int]chan Update
	nextSub int
}

func New(engine *game.Engine, st store.MatchStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine: engine,
		store:  st,
		logger: logger.Named("service"),
		locks:  map[string]*sync.Mutex{},
		subs:   map[string]map[int]chan Update{},
	}
}

// Engine returns the engine the service resolves actions with.
func (s *Service) Engine() *game.Engine {
	return s.engine
}

// lockFor returns the mutex serializing actions on one match.
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// dropLock forgets the mutex of a match that does not exist, unless another
// caller has already replaced it.
func (s *Service) dropLock(id string, l *sync.Mutex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[id] == l {
		delete(s.locks, id)
	}
}

// CreateMatch builds a new match and stores it.
func (s *Service) CreateMatch(ctx context.Context, p1Name, p2Name, p1Mythology, p2Mythology string) (*game.Match, error) {
	m := s.engine.CreateMatch(p1Name, p2Name, p1Mythology, p2Mythology)
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("match created",
		zap.String("match_id", m.ID),
		zap.String("player1", m.Players[0].ID),
		zap.String("player2", m.Players[1].ID),
		zap.String("mythology1", p1Mythology),
		zap.String("mythology2", p2Mythology),
	)
	return m, nil
}

// Get loads the current snapshot of a match.
func (s *Service) Get(ctx context.Context, id string) (*game.Match, error) {
	return s.load(ctx, id)
}

// List returns the ids of every stored match.
func (s *Service) List(ctx context.Context) ([]string, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return ids, nil
}

// Submit applies one action to a match. Rule violations are reported in the
// Result, not as errors; the only error a caller should expect in normal
// operation is ErrMatchNotFound. Actions must name the current player.
func (s *Service) Submit(ctx context.Context, id string, a game.Action) (game.Result, *game.Match, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	m, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			s.dropLock(id, l)
		}
		return game.Result{}, nil, err
	}

	var res game.Result
	if reason := checkOwnership(m, a); reason != "" {
		ev := log.NewRejectedEvent(m.Turn, m.Phase.String(), m.CurrentPlayer, a.String(), reason)
		ev.MatchID = m.ID
		s.engine.Logger.Log(ev)
		res = game.Result{Reason: reason, Terminal: m.IsOver()}
	} else {
		res = s.engine.Apply(m, a)
		if err := s.save(ctx, m); err != nil {
			return game.Result{}, nil, err
		}
	}

	fields := []zap.Field{
		zap.String("match_id", id),
		zap.String("player_id", a.PlayerID),
		zap.String("action", a.String()),
		zap.Bool("applied", res.Applied),
	}
	if res.Applied {
		s.logger.Debug("action applied", fields...)
	} else {
		s.logger.Info("action rejected", append(fields, zap.String("reason", res.Reason))...)
	}
	if res.Terminal && res.Applied {
		s.logger.Info("match finished", zap.String("match_id", id), zap.String("winner", m.Winner))
	}

	s.broadcast(id, Update{Match: m, Action: a, Result: res})
	return res, m, nil
}

// checkOwnership rejects actions that do not come from the current player.
func checkOwnership(m *game.Match, a game.Action) string {
	if a.PlayerID == "" {
		return "missing player id"
	}
	if m.PlayerIndex(a.PlayerID) < 0 {
		return fmt.Sprintf("player %q is not in this match", a.PlayerID)
	}
	if a.PlayerID != m.Acting().ID {
		return "not your turn"
	}
	return ""
}

// Delete removes a match and closes its subscriptions.
func (s *Service) Delete(ctx context.Context, id string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.dropLock(id, l)
			return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		return fmt.Errorf("delete match %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.locks, id)
	for _, ch := range s.subs[id] {
		close(ch)
	}
	delete(s.subs, id)
	s.mu.Unlock()

	s.logger.Info("match deleted", zap.String("match_id", id))
	return nil
}

// Subscribe registers for updates on a match. The returned cancel function
// must be called once the caller stops reading. The channel is closed when
// the match is deleted or the subscription cancelled.
func (s *Service) Subscribe(id string) (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Update, subscriberBuffer)
	key := s.nextSub
	s.nextSub++
	if s.subs[id] == nil {
		s.subs[id] = map[int]chan Update{}
	}
	s.subs[id][key] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id][key]; ok {
				delete(s.subs[id], key)
				close(c)
			}
			if len(s.subs[id]) == 0 {
				delete(s.subs, id)
			}
		})
	}
	return ch, cancel
}

func (s *Service) broadcast(id string, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, ch := range s.subs[id] {
		select {
		case ch <- u:
		default:
			s.logger.Warn("subscriber lagging, update dropped",
				zap.String("match_id", id), zap.Int("subscriber", key))
		}
	}
}

func (s *Service) load(ctx context.Context, id string) (*game.Match, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	m, err := game.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	return m, nil
}

func (s *Service) save(ctx context.Context, m *game.Match) error {
	rec, err := game.ToRecord(m)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("store match %s: %w", m.ID, err)
	}
	return nil
}
