// Package backup implementa el colaborador de archivado: respaldos opacos
// de la base en disco vía pg_dump/psql. El core no conoce el formato.
package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/pkg/config"
	"github.com/jose29di/sisinventario/pkg/logger"
)

// Info metadatos de un respaldo en disco.
type Info struct {
	Name      string
	SizeBytes int64
	CreatedAt time.Time
}

// Manager crea, lista, restaura y elimina respaldos .sql en un directorio
// configurado.
type Manager struct {
	dir string
	db  config.DBConfig
	log *logger.Logger
}

// NewManager construye el manager y asegura el directorio de respaldos.
func NewManager(cfg config.BackupConfig, db config.DBConfig, log *logger.Logger) (*Manager, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de respaldos: %w", err)
	}
	return &Manager{dir: cfg.Dir, db: db, log: log}, nil
}

// Create genera un respaldo con pg_dump. El nombre lleva la marca de tiempo.
func (m *Manager) Create(ctx context.Context) (*Info, error) {
	name := fmt.Sprintf("corte_%s.sql", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.dir, name)

	cmd := exec.CommandContext(ctx, "pg_dump", "--dbname", m.db.ConnectionString(), "-f", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(string(out)))
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat respaldo: %w", err)
	}
	m.log.Info().Str("backup", name).Int64("bytes", fi.Size()).Msg("respaldo creado")
	return &Info{Name: name, SizeBytes: fi.Size(), CreatedAt: fi.ModTime()}, nil
}

// List enumera los respaldos, más recientes primero.
func (m *Manager) List(_ context.Context) ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("listar respaldos: %w", err)
	}
	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: e.Name(), SizeBytes: fi.Size(), CreatedAt: fi.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	return infos, nil
}

// Restore aplica un respaldo existente con psql.
func (m *Manager) Restore(ctx context.Context, name string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "psql", "--dbname", m.db.ConnectionString(), "-f", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("psql restore: %w: %s", err, strings.TrimSpace(string(out)))
	}
	m.log.Warn().Str("backup", name).Msg("respaldo restaurado sobre la base actual")
	return nil
}

// Delete elimina un respaldo del disco.
func (m *Manager) Delete(_ context.Context, name string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("eliminar respaldo: %w", err)
	}
	return nil
}

// resolve valida el nombre (sin separadores de ruta) y confirma existencia.
func (m *Manager) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", domain.ErrInvalidInput
	}
	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("stat respaldo: %w", err)
	}
	return path, nil
}
