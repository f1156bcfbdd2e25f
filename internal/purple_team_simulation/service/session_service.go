package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/engine"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/report"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/repository"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	forwardBuffer = 64
	streamBuffer  = 16
	publishTO     = 2 * time.Second
)

// ReportArchive stores generated reports.
type ReportArchive interface {
	CreateOrUpdate(ctx context.Context, rec *domain.ReportRecord) error
	GetByReportID(ctx context.Context, reportID string) (*domain.ReportRecord, error)
	ListBySessions(ctx context.Context, sessionIDs []string) ([]domain.ReportRecord, error)
}

// MetricHistory stores sampled metric snapshots.
type MetricHistory interface {
	InsertBatch(ctx context.Context, points []domain.MetricPoint) error
	GetBySession(ctx context.Context, sessionID string, from, to *time.Time, metricType string) ([]domain.MetricPoint, error)
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}

type Config struct {
	MaxSessions int
	IdleTTL     time.Duration
	Engine      engine.Config
}

type Option func(*SessionService)

func WithReportArchive(a ReportArchive) Option {
	return func(s *SessionService) { s.reports = a }
}

func WithMetricHistory(h MetricHistory) Option {
	return func(s *SessionService) { s.history = h }
}

func WithClock(c clock.Clock) Option {
	return func(s *SessionService) { s.clock = c }
}

func WithCatalogue(c *catalogue.Catalogue) Option {
	return func(s *SessionService) { s.catalogue = c }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *SessionService) { s.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *SessionService) { s.metrics = m }
}

// handle is one live engine and the plumbing attached to it.
type handle struct {
	sessionID  string
	engine     *engine.Engine
	stopFwd    func()
	lastActive atomic.Int64 // unix nanos
}

func (h *handle) touch(now time.Time) { h.lastActive.Store(now.UnixNano()) }

func (h *handle) idleSince() time.Time { return time.Unix(0, h.lastActive.Load()) }

// SessionService runs one engine per session. Engines live in a bounded LRU;
// evicting one disposes it. Session records live in Redis.
type SessionService struct {
	cfg       Config
	sessions  *repository.SessionRepository
	reports   ReportArchive
	history   MetricHistory
	catalogue *catalogue.Catalogue
	clock     clock.Clock
	metrics   *Metrics
	log       *logging.Logger

	mu      sync.Mutex // serializes capacity checks in CreateSession
	engines *lru.Cache[string, *handle]
}

func NewSessionService(cfg Config, sessions *repository.SessionRepository, opts ...Option) (*SessionService, error) {
	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("max sessions must be positive, got %d", cfg.MaxSessions)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}

	s := &SessionService{cfg: cfg, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.catalogue == nil {
		s.catalogue = catalogue.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	cache, err := lru.NewWithEvict[string, *handle](cfg.MaxSessions, func(_ string, h *handle) {
		h.stopFwd()
		h.engine.Close()
		s.metrics.activeSessions.Dec()
		s.log.LogInfof("dispose_engine", "session_id=%s simulation_id=%s", h.sessionID, h.engine.ID())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine cache: %w", err)
	}
	s.engines = cache
	return s, nil
}

func (s *SessionService) Metrics() *Metrics { return s.metrics }

func (s *SessionService) Catalogue() *catalogue.Catalogue { return s.catalogue }

// ArchiveEnabled reports whether reports and metric history can be stored.
func (s *SessionService) ArchiveEnabled() bool { return s.reports != nil }

// CreateSession builds a preparing engine and records the session. When the
// cache is full the least recently used engine is disposed, unless it is
// running or paused.
func (s *SessionService) CreateSession(ctx context.Context, req *domain.CreateSessionRequest) (*domain.Session, error) {
	log := s.log.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.makeRoomLocked(); err != nil {
		return nil, err
	}

	cfg := s.cfg.Engine
	if req.Name != "" {
		cfg.Name = req.Name
	}
	opts := []engine.Option{
		engine.WithID("sim-" + uuid.New().String()),
		engine.WithClock(s.clock),
		engine.WithCatalogue(s.catalogue),
		engine.WithLogger(log),
		engine.WithEventHook(s.metrics.observeEvent),
		engine.WithChainHook(s.metrics.observeChain),
	}
	if req.Seed != nil {
		opts = append(opts, engine.WithSeed(*req.Seed))
	}
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]interface{}, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["seed"] = eng.Seed()

	now := s.clock.Now()
	sess := &domain.Session{
		SessionID:    uuid.New().String(),
		UserID:       req.UserID,
		SimulationID: eng.ID(),
		Status:       eng.Status(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Metadata:     metadata,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		eng.Close()
		return nil, err
	}

	h := &handle{sessionID: sess.SessionID, engine: eng}
	h.touch(now)
	h.stopFwd = s.forward(sess.SessionID, eng)
	s.engines.Add(sess.SessionID, h)
	s.metrics.activeSessions.Inc()

	log.LogInfof("create_session", "session_id=%s simulation_id=%s user_id=%s seed=%d", sess.SessionID, eng.ID(), req.UserID, eng.Seed())
	return sess, nil
}

// makeRoomLocked frees a cache slot for a new engine. Lookups reorder the
// LRU without s.mu, so the entry that was checked is the one removed and Add
// never evicts.
func (s *SessionService) makeRoomLocked() error {
	if s.engines.Len() < s.cfg.MaxSessions {
		return nil
	}
	key, oldest, ok := s.engines.GetOldest()
	if !ok {
		return nil
	}
	switch oldest.engine.Status() {
	case domain.SimRunning, domain.SimPaused:
		return domain.ErrSessionLimit
	}
	s.engines.Remove(key)
	return nil
}

// forward publishes every engine notice to the session's Redis channel until
// the engine is closed or the returned function is called.
func (s *SessionService) forward(sessionID string, eng *engine.Engine) func() {
	ch, cancel := eng.SubscribeNotifications(forwardBuffer)
	go func() {
		for n := range ch {
			ctx, done := context.WithTimeout(context.Background(), publishTO)
			if err := s.sessions.PublishNotification(ctx, sessionID, n); err != nil {
				s.log.LogWarnf("forward", "session_id=%s notification_id=%s error=%v", sessionID, n.ID, err)
			}
			done()
		}
	}()
	return cancel
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

func (s *SessionService) ListSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	return s.sessions.ListByUserID(ctx, userID)
}

// lookup returns the live engine of a session. A session whose engine was
// disposed reports ErrEngineClosed.
func (s *SessionService) lookup(ctx context.Context, sessionID string) (*handle, error) {
	if h, ok := s.engines.Get(sessionID); ok {
		h.touch(s.clock.Now())
		return h, nil
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return nil, domain.ErrEngineClosed
}

func (s *SessionService) Start(ctx context.Context, sessionID string) (*domain.Session, bool, error) {
	return s.command(ctx, sessionID, "start", (*engine.Engine).Start)
}

func (s *SessionService) Pause(ctx context.Context, sessionID string) (*domain.Session, bool, error) {
	return s.command(ctx, sessionID, "pause", (*engine.Engine).Pause)
}

func (s *SessionService) Stop(ctx context.Context, sessionID string) (*domain.Session, bool, error) {
	return s.command(ctx, sessionID, "stop", (*engine.Engine).Stop)
}

// command applies fn to the session engine and persists the resulting status
// when it changed. Invalid transitions are not errors.
func (s *SessionService) command(ctx context.Context, sessionID, name string, fn func(*engine.Engine) bool) (*domain.Session, bool, error) {
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	applied := fn(h.engine)
	s.metrics.observeCommand(name, applied)

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, applied, err
	}
	if applied {
		if err := s.syncStatus(ctx, sess, h.engine.Status()); err != nil {
			return nil, applied, err
		}
	}

	s.log.FromContext(ctx).LogInfof(name, "session_id=%s applied=%t status=%s", sessionID, applied, sess.Status)
	return sess, applied, nil
}

func (s *SessionService) syncStatus(ctx context.Context, sess *domain.Session, status domain.SimulationStatus) error {
	now := s.clock.Now()
	sess.Status = status
	sess.UpdatedAt = now
	if status == domain.SimCompleted && sess.CompletedAt == nil {
		sess.CompletedAt = &now
	}
	return s.sessions.Update(ctx, sess)
}

func (s *SessionService) State(ctx context.Context, sessionID string) (domain.SimulationState, error) {
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return domain.SimulationState{}, err
	}
	return h.engine.State(), nil
}

func (s *SessionService) Notifications(ctx context.Context, sessionID string) ([]domain.NotificationData, error) {
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return h.engine.Notifications(), nil
}

func (s *SessionService) DismissNotification(ctx context.Context, sessionID, notificationID string) (bool, error) {
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return h.engine.DismissNotification(notificationID), nil
}

func (s *SessionService) ClearNotifications(ctx context.Context, sessionID string) error {
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	h.engine.ClearNotifications()
	return nil
}

// Subscribe streams the session's notices from its Redis channel, so any
// instance can serve the stream. The channel closes when cancel is called
// or ctx ends.
func (s *SessionService) Subscribe(ctx context.Context, sessionID string) (<-chan domain.NotificationData, func(), error) {
	if _, err := s.lookup(ctx, sessionID); err != nil {
		return nil, nil, err
	}

	ps := s.sessions.SubscribeNotifications(ctx, sessionID)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	out := make(chan domain.NotificationData, streamBuffer)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			var n domain.NotificationData
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				s.log.LogWarnf("subscribe", "session_id=%s error=%v", sessionID, err)
				continue
			}
			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return out, func() { once.Do(func() { _ = ps.Close() }) }, nil
}

// Report builds a report of the current state. With archive set it is also
// stored and the stored record is returned.
func (s *SessionService) Report(ctx context.Context, sessionID string, opts report.Options, archive bool) (*report.Report, *domain.ReportRecord, error) {
	if archive && s.reports == nil {
		return nil, nil, domain.ErrArchiveDisabled
	}
	h, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	state := h.engine.State()
	rep, err := report.Build(state, opts, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}
	s.metrics.reports.WithLabelValues(string(rep.Metadata.Classification.Level)).Inc()
	if !archive {
		return rep, nil, nil
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	rec := &domain.ReportRecord{
		ReportID:       rep.Metadata.ReportID,
		SessionID:      sessionID,
		SimulationID:   state.ID,
		Classification: string(rep.Metadata.Classification.Level),
		TotalEvents:    len(rep.Events),
		DetectionRate:  rep.ExecutiveSummary.DetectionRate,
		MitigationRate: rep.ExecutiveSummary.MitigationRate,
		Payload:        payload,
	}
	if err := s.reports.CreateOrUpdate(ctx, rec); err != nil {
		return nil, nil, err
	}

	s.log.FromContext(ctx).LogInfof("archive_report", "session_id=%s report_id=%s", sessionID, rec.ReportID)
	return rep, rec, nil
}

func (s *SessionService) ListReports(ctx context.Context, sessionID string) ([]domain.ReportRecord, error) {
	if s.reports == nil {
		return nil, domain.ErrArchiveDisabled
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.reports.ListBySessions(ctx, []string{sessionID})
}

func (s *SessionService) GetReport(ctx context.Context, reportID string) (*domain.ReportRecord, error) {
	if s.reports == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return s.reports.GetByReportID(ctx, reportID)
}

// MetricsHistory returns the sampled metrics of a session, oldest first.
func (s *SessionService) MetricsHistory(ctx context.Context, sessionID string, from, to *time.Time, metricType string) ([]domain.MetricPoint, error) {
	if s.history == nil {
		return nil, domain.ErrArchiveDisabled
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.history.GetBySession(ctx, sessionID, from, to, metricType)
}

// Dispose closes the session engine and removes the session with its metric
// history. Archived reports are kept.
func (s *SessionService) Dispose(ctx context.Context, sessionID string) error {
	removed := s.engines.Remove(sessionID)

	err := s.sessions.Delete(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) && removed {
		err = nil
	}
	if err != nil {
		return err
	}

	if s.history != nil {
		if _, err := s.history.DeleteBySession(ctx, sessionID); err != nil {
			s.log.FromContext(ctx).LogWarnf("dispose", "session_id=%s history error=%v", sessionID, err)
		}
	}
	s.log.FromContext(ctx).LogInfof("dispose", "session_id=%s", sessionID)
	return nil
}

// Close disposes every live engine.
func (s *SessionService) Close() {
	s.engines.Purge()
}
