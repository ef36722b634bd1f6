package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL crea las tablas si no existen. La diferencia nunca se almacena:
// es una columna generada a partir de contado y stock de sistema.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS sessions (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	responsible  TEXT NOT NULL DEFAULT '',
	warehouse    TEXT NOT NULL DEFAULT '',
	active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS teams (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	members      TEXT NOT NULL DEFAULT '',
	active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
	session_id    UUID NOT NULL REFERENCES sessions(id),
	code          VARCHAR(50) NOT NULL,
	product       TEXT NOT NULL DEFAULT '',
	line          TEXT NOT NULL DEFAULT '',
	system_stock  NUMERIC(14,3) NOT NULL DEFAULT 0,
	counted_qty   NUMERIC(14,3) NOT NULL DEFAULT 0,
	difference    NUMERIC(14,3) GENERATED ALWAYS AS (counted_qty - system_stock) STORED,
	note          TEXT NOT NULL DEFAULT '',
	counted_at    TIMESTAMPTZ,
	last_team_id  UUID REFERENCES teams(id),
	PRIMARY KEY (session_id, code)
);

CREATE INDEX IF NOT EXISTS idx_items_pending
	ON items (session_id) WHERE counted_at IS NULL;

CREATE TABLE IF NOT EXISTS movements (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL REFERENCES sessions(id),
	item_code   VARCHAR(50) NOT NULL,
	team_id     UUID NOT NULL,
	action      VARCHAR(10) NOT NULL,
	qty_before  NUMERIC(14,3) NOT NULL DEFAULT 0,
	qty_after   NUMERIC(14,3) NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_movements_session_created
	ON movements (session_id, created_at DESC);
`

// Migrate aplica el esquema al arranque (idempotente).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
