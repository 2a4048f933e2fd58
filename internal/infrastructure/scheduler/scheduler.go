// Package scheduler programa con cron las alertas diarias y el cierre mensual.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/logger"
)

// ExpiryScanner busca lotes por vencer.
type ExpiryScanner interface {
	FindExpiringLots(ctx context.Context, daysAhead int, includeExpired bool) ([]dto.ExpiringLotDTO, error)
}

// ReorderSuggester lista los productos bajo el mínimo.
type ReorderSuggester interface {
	SuggestReorders(ctx context.Context) ([]dto.ReorderSuggestionDTO, error)
}

// DigestSender envía los resúmenes diarios al administrador.
type DigestSender interface {
	ExpiryDigest(ctx context.Context, lots []dto.ExpiringLotDTO) error
	LowStockDigest(ctx context.Context, items []dto.ReorderSuggestionDTO) error
}

// MonthCloser guarda los snapshots de un mes.
type MonthCloser interface {
	CloseMonth(ctx context.Context, month, year int) (*dto.CloseMonthResponse, error)
}

// Scheduler administra los trabajos programados.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.AlertsConfig
	expiry   ExpiryScanner
	reorders ReorderSuggester
	digests  DigestSender
	closer   MonthCloser
	log      *logger.Logger
	now      func() time.Time
}

// New crea el scheduler. Usa el parser estándar de 5 campos en hora local.
func New(
	cfg config.AlertsConfig,
	expiry ExpiryScanner,
	reorders ReorderSuggester,
	digests DigestSender,
	closer MonthCloser,
	log *logger.Logger,
) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		expiry:   expiry,
		reorders: reorders,
		digests:  digests,
		closer:   closer,
		log:      log,
		now:      time.Now,
	}
}

// Start registra los trabajos y arranca el cron. Un spec vacío desactiva su trabajo.
func (s *Scheduler) Start() error {
	if s.cfg.DailyCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.DailyCron, s.job("alertas diarias", s.RunDailyAlerts)); err != nil {
			return fmt.Errorf("scheduler: alertas diarias %q: %w", s.cfg.DailyCron, err)
		}
	}
	if s.cfg.MonthCloseCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.MonthCloseCron, s.job("cierre mensual", s.RunMonthClose)); err != nil {
			return fmt.Errorf("scheduler: cierre mensual %q: %w", s.cfg.MonthCloseCron, err)
		}
	}
	s.log.Info().Str("daily", s.cfg.DailyCron).Str("month_close", s.cfg.MonthCloseCron).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que terminen los trabajos en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) job(name string, fn func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("trabajo programado fallido")
			return
		}
		s.log.Info().Str("job", name).Dur("took", time.Since(start)).Msg("trabajo programado completado")
	}
}

// RunDailyAlerts envía el resumen de lotes por vencer (incluye vencidos) y el de stock bajo.
// Si las notificaciones están deshabilitadas no se considera falla.
func (s *Scheduler) RunDailyAlerts(ctx context.Context) error {
	lots, err := s.expiry.FindExpiringLots(ctx, s.cfg.ExpiryDays, true)
	if err != nil {
		return fmt.Errorf("lotes por vencer: %w", err)
	}
	items, err := s.reorders.SuggestReorders(ctx)
	if err != nil {
		return fmt.Errorf("stock bajo: %w", err)
	}
	s.log.Info().Int("lots", len(lots)).Int("low_stock", len(items)).Msg("alertas diarias")

	return errors.Join(
		ignoreDisabled(s.digests.ExpiryDigest(ctx, lots)),
		ignoreDisabled(s.digests.LowStockDigest(ctx, items)),
	)
}

// RunMonthClose cierra el mes anterior al actual (enero cierra diciembre del año previo).
func (s *Scheduler) RunMonthClose(ctx context.Context) error {
	prev := entity.PeriodOf(s.now()).Previous()
	res, err := s.closer.CloseMonth(ctx, prev.Month, prev.Year)
	if err != nil {
		return fmt.Errorf("cierre %s: %w", prev, err)
	}
	s.log.Info().Str("period", prev.String()).Int("snapshots", res.SnapshotsSaved).
		Str("total", res.TotalClosing.StringFixed(2)).Msg("mes cerrado")
	return nil
}

func ignoreDisabled(err error) error {
	if errors.Is(err, domain.ErrNotifierDisabled) {
		return nil
	}
	return err
}
