// Package sync implementa el planificador de sincronización: recomputa
// periódicamente las instantáneas de las sesiones activas y las publica en
// una caché que consultan los clientes por polling.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/jose29di/sisinventario/internal/application/report"
	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/pkg/logger"
	"github.com/jose29di/sisinventario/pkg/metrics"
)

// Aggregator recomputa la instantánea de una sesión.
type Aggregator interface {
	Recompute(ctx context.Context, sessionID string, lines []string) (*report.Snapshot, error)
}

// SessionLister enumera las sesiones a sincronizar.
type SessionLister interface {
	List(ctx context.Context, onlyActive bool) ([]entity.Session, error)
}

// Cached una instantánea publicada. Stale indica que la última
// recomputación falló y se conserva el último valor bueno.
type Cached struct {
	Snapshot  *report.Snapshot
	Stale     bool
	UpdatedAt time.Time
}

// Scheduler ejecuta pasadas de recomputación a intervalo fijo sin solaparse:
// un tick que llega con una pasada en curso se descarta (y se cuenta), no se
// encola. El refresco manual sí espera a la pasada en curso.
type Scheduler struct {
	agg         Aggregator
	sessions    SessionLister
	interval    time.Duration
	joinTimeout time.Duration
	log         *logger.Logger

	passMu sync.Mutex // exclusión de pasadas; único lock compartido del planificador

	cacheMu sync.RWMutex
	cache   map[string]*Cached

	observers []func(sessionID string, c *Cached)

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopped  bool
	stateMu  sync.Mutex
}

// New construye el planificador. interval debe venir ya acotado por la
// configuración; joinTimeout limita la espera de Stop sobre la pasada en
// curso.
func New(agg Aggregator, sessions SessionLister, interval, joinTimeout time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		agg:         agg,
		sessions:    sessions,
		interval:    interval,
		joinTimeout: joinTimeout,
		log:         log,
		cache:       make(map[string]*Cached),
		stopCh:      make(chan struct{}),
	}
}

// Subscribe registra un observador que recibe cada instantánea publicada.
// Debe llamarse antes de Start.
func (s *Scheduler) Subscribe(fn func(sessionID string, c *Cached)) {
	s.observers = append(s.observers, fn)
}

// Start lanza el lazo de ticks en una goroutine propia.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("planificador de sincronización iniciado")
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if !s.passMu.TryLock() {
				metrics.SchedulerOverlap()
				s.log.Warn().Msg("tick descartado: pasada anterior en curso")
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer s.passMu.Unlock()
				s.runPass()
			}()
		}
	}
}

// runPass recomputa todas las sesiones activas. El fallo de una sesión no
// interrumpe las demás: su caché se marca stale conservando el último valor
// bueno.
func (s *Scheduler) runPass() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	sessions, err := s.sessions.List(ctx, true)
	if err != nil {
		s.log.Error().Err(err).Msg("pasada de sincronización: listar sesiones")
		return
	}
	for _, sess := range sessions {
		s.refreshOne(ctx, sess.ID)
	}
	metrics.SchedulerPass(time.Since(start))
	s.log.Debug().Int("sessions", len(sessions)).Dur("took", time.Since(start)).
		Msg("pasada de sincronización completada")
}

func (s *Scheduler) refreshOne(ctx context.Context, sessionID string) {
	snap, err := s.agg.Recompute(ctx, sessionID, nil)
	if err != nil {
		metrics.SnapshotError()
		s.log.Error().Err(err).Str("session_id", sessionID).
			Msg("recomputación fallida, se conserva el último snapshot")
		s.markStale(sessionID)
		return
	}
	c := &Cached{Snapshot: snap, UpdatedAt: time.Now()}
	s.cacheMu.Lock()
	s.cache[sessionID] = c
	s.cacheMu.Unlock()
	s.notify(sessionID, c)
}

func (s *Scheduler) notify(sessionID string, c *Cached) {
	for _, fn := range s.observers {
		fn(sessionID, c)
	}
}

func (s *Scheduler) markStale(sessionID string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if c, ok := s.cache[sessionID]; ok {
		s.cache[sessionID] = &Cached{Snapshot: c.Snapshot, Stale: true, UpdatedAt: c.UpdatedAt}
	}
}

// RefreshNow recomputa una sesión fuera de ciclo. A diferencia de los ticks,
// nunca se descarta: espera a que termine la pasada en curso.
func (s *Scheduler) RefreshNow(ctx context.Context, sessionID string) (*Cached, error) {
	s.stateMu.Lock()
	if s.stopped {
		s.stateMu.Unlock()
		return nil, domain.ErrSchedulerStopped
	}
	s.stateMu.Unlock()

	s.passMu.Lock()
	defer s.passMu.Unlock()

	snap, err := s.agg.Recompute(ctx, sessionID, nil)
	if err != nil {
		metrics.SnapshotError()
		s.markStale(sessionID)
		return nil, err
	}
	c := &Cached{Snapshot: snap, UpdatedAt: time.Now()}
	s.cacheMu.Lock()
	s.cache[sessionID] = c
	s.cacheMu.Unlock()
	s.notify(sessionID, c)
	return c, nil
}

// Snapshot devuelve la instantánea publicada de la sesión, si existe.
func (s *Scheduler) Snapshot(sessionID string) (*Cached, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	c, ok := s.cache[sessionID]
	return c, ok
}

// Stop detiene los ticks y espera la pasada en curso hasta joinTimeout (o el
// contexto). Pasado el límite retorna igual: el proceso se va a apagar.
func (s *Scheduler) Stop(ctx context.Context) {
	s.stateMu.Lock()
	s.stopped = true
	s.stateMu.Unlock()
	s.stopOnce.Do(func() { close(s.stopCh) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.log.Info().Msg("planificador detenido")
	case <-ctx.Done():
		s.log.Warn().Msg("apagado del planificador interrumpido por contexto")
	case <-time.After(s.joinTimeout):
		s.log.Warn().Dur("join_timeout", s.joinTimeout).
			Msg("pasada en curso no terminó a tiempo, se abandona")
	}
}
