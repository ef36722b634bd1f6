// Package metrics expone los contadores Prometheus del servicio de corte.
// Usa un registry propio para no arrastrar las métricas Go por defecto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var (
	countsApplied = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "counting",
		Name:      "counts_applied_total",
		Help:      "Conteos aplicados, por acción (NUEVO, SUMA, REEMPLAZO).",
	}, []string{"action"})

	duplicatesDetected = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "counting",
		Name:      "duplicates_detected_total",
		Help:      "Envíos sobre ítems ya contados que requirieron resolución.",
	})

	conflictsDetected = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "counting",
		Name:      "team_conflicts_detected_total",
		Help:      "Duplicados cuyo último conteo fue de un equipo distinto.",
	})

	partialFailures = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "counting",
		Name:      "partial_failures_total",
		Help:      "Conteos aplicados cuyo movimiento de historial falló.",
	})

	schedulerOverlaps = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "sync",
		Name:      "scheduler_overlaps_total",
		Help:      "Ticks descartados porque la pasada anterior seguía en curso.",
	})

	schedulerPassDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "sisinventario",
		Subsystem: "sync",
		Name:      "scheduler_pass_duration_seconds",
		Help:      "Duración de cada pasada de recomputación de snapshots.",
		Buckets:   prometheus.DefBuckets,
	})

	snapshotErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "sisinventario",
		Subsystem: "sync",
		Name:      "snapshot_errors_total",
		Help:      "Recomputaciones fallidas (se conserva el último snapshot bueno).",
	})
)

// CountApplied registra un conteo aplicado con su acción.
func CountApplied(action string) { countsApplied.WithLabelValues(action).Inc() }

// DuplicateDetected registra un envío clasificado como duplicado.
func DuplicateDetected() { duplicatesDetected.Inc() }

// ConflictDetected registra un aviso de conflicto entre equipos.
func ConflictDetected() { conflictsDetected.Inc() }

// PartialFailure registra un fallo de historial con conteo ya aplicado.
func PartialFailure() { partialFailures.Inc() }

// SchedulerOverlap registra un tick descartado por solape.
func SchedulerOverlap() { schedulerOverlaps.Inc() }

// SchedulerPass registra la duración de una pasada completa.
func SchedulerPass(d time.Duration) { schedulerPassDuration.Observe(d.Seconds()) }

// SnapshotError registra una recomputación fallida.
func SnapshotError() { snapshotErrors.Inc() }

// Registry devuelve el registry propio para montarlo en /metrics.
func Registry() *prometheus.Registry { return registry }
