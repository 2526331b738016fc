package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool for mutable state:
// vessels seen transmitting binary messages, inland static data and
// environmental sensor sites.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Test the connection.
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (d *PostgresDB) Pool() *pgxpool.Pool {
	return d.pool
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- Vessels observed transmitting application-specific messages.
	CREATE TABLE IF NOT EXISTS vessels (
		mmsi            BIGINT PRIMARY KEY,
		last_dac        INTEGER,
		last_fid        INTEGER,
		last_name       TEXT,
		latitude        DOUBLE PRECISION,
		longitude       DOUBLE PRECISION,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		msg_count       INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_vessels_last_seen ON vessels(last_seen);

	-- Inland static data from European inland waterway reports.
	CREATE TABLE IF NOT EXISTS inland_static (
		mmsi            BIGINT PRIMARY KEY,
		eni             TEXT,
		ship_type       INTEGER,
		ship_type_text  TEXT,
		length_m        DOUBLE PRECISION,
		beam_m          DOUBLE PRECISION,
		draught_cm      INTEGER,
		hazard_class    INTEGER,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		msg_count       INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_inland_static_eni ON inland_static(eni);

	-- Environmental sensor sites from shore-station reports.
	CREATE TABLE IF NOT EXISTS sensor_sites (
		mmsi            BIGINT NOT NULL,
		site_id         INTEGER NOT NULL,
		latitude        DOUBLE PRECISION,
		longitude       DOUBLE PRECISION,
		owner           INTEGER,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		report_count    INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (mmsi, site_id)
	);

	CREATE INDEX IF NOT EXISTS idx_sensor_sites_last_seen ON sensor_sites(last_seen);
	`

	_, err := d.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Vessel represents a vessel record.
type Vessel struct {
	MMSI      int64
	LastDAC   int
	LastFID   int
	LastName  string
	Latitude  *float64
	Longitude *float64
	FirstSeen time.Time
	LastSeen  time.Time
	MsgCount  int
}

// UpsertVessel inserts or updates a vessel record. Positions only move
// forward: a message without a position keeps the stored one.
func (d *PostgresDB) UpsertVessel(ctx context.Context, v Vessel) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO vessels (mmsi, last_dac, last_fid, last_name, latitude, longitude, first_seen, last_seen, msg_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		ON CONFLICT (mmsi) DO UPDATE SET
			last_dac = EXCLUDED.last_dac,
			last_fid = EXCLUDED.last_fid,
			last_name = EXCLUDED.last_name,
			latitude = COALESCE(EXCLUDED.latitude, vessels.latitude),
			longitude = COALESCE(EXCLUDED.longitude, vessels.longitude),
			last_seen = EXCLUDED.last_seen,
			msg_count = vessels.msg_count + 1
	`, v.MMSI, v.LastDAC, v.LastFID, v.LastName, v.Latitude, v.Longitude, v.FirstSeen, v.LastSeen)
	return err
}

// GetVessel retrieves a vessel by MMSI, nil when not found.
func (d *PostgresDB) GetVessel(ctx context.Context, mmsi int64) (*Vessel, error) {
	var v Vessel
	err := d.pool.QueryRow(ctx, `
		SELECT mmsi, last_dac, last_fid, last_name, latitude, longitude, first_seen, last_seen, msg_count
		FROM vessels WHERE mmsi = $1
	`, mmsi).Scan(&v.MMSI, &v.LastDAC, &v.LastFID, &v.LastName, &v.Latitude, &v.Longitude, &v.FirstSeen, &v.LastSeen, &v.MsgCount)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVessels retrieves vessels seen since the given time.
func (d *PostgresDB) ListVessels(ctx context.Context, since time.Time) ([]Vessel, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT mmsi, last_dac, last_fid, last_name, latitude, longitude, first_seen, last_seen, msg_count
		FROM vessels WHERE last_seen >= $1 ORDER BY last_seen DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vessels []Vessel
	for rows.Next() {
		var v Vessel
		if err := rows.Scan(&v.MMSI, &v.LastDAC, &v.LastFID, &v.LastName, &v.Latitude, &v.Longitude, &v.FirstSeen, &v.LastSeen, &v.MsgCount); err != nil {
			return nil, err
		}
		vessels = append(vessels, v)
	}
	return vessels, rows.Err()
}

// InlandStatic represents inland static data for a vessel.
type InlandStatic struct {
	MMSI         int64
	ENI          string
	ShipType     int
	ShipTypeText string
	LengthM      *float64
	BeamM        *float64
	DraughtCm    *int
	HazardClass  int
	FirstSeen    time.Time
	LastSeen     time.Time
	MsgCount     int
}

// UpsertInlandStatic inserts or updates inland static data.
func (d *PostgresDB) UpsertInlandStatic(ctx context.Context, s InlandStatic) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO inland_static (mmsi, eni, ship_type, ship_type_text, length_m, beam_m, draught_cm, hazard_class, first_seen, last_seen, msg_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		ON CONFLICT (mmsi) DO UPDATE SET
			eni = EXCLUDED.eni,
			ship_type = EXCLUDED.ship_type,
			ship_type_text = EXCLUDED.ship_type_text,
			length_m = COALESCE(EXCLUDED.length_m, inland_static.length_m),
			beam_m = COALESCE(EXCLUDED.beam_m, inland_static.beam_m),
			draught_cm = COALESCE(EXCLUDED.draught_cm, inland_static.draught_cm),
			hazard_class = EXCLUDED.hazard_class,
			last_seen = EXCLUDED.last_seen,
			msg_count = inland_static.msg_count + 1
	`, s.MMSI, s.ENI, s.ShipType, s.ShipTypeText, s.LengthM, s.BeamM, s.DraughtCm, s.HazardClass, s.FirstSeen, s.LastSeen)
	return err
}

// GetInlandStatic retrieves inland static data by MMSI, nil when not found.
func (d *PostgresDB) GetInlandStatic(ctx context.Context, mmsi int64) (*InlandStatic, error) {
	var s InlandStatic
	err := d.pool.QueryRow(ctx, `
		SELECT mmsi, eni, ship_type, ship_type_text, length_m, beam_m, draught_cm, hazard_class, first_seen, last_seen, msg_count
		FROM inland_static WHERE mmsi = $1
	`, mmsi).Scan(&s.MMSI, &s.ENI, &s.ShipType, &s.ShipTypeText, &s.LengthM, &s.BeamM, &s.DraughtCm, &s.HazardClass, &s.FirstSeen, &s.LastSeen, &s.MsgCount)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SensorSite represents an environmental sensor site.
type SensorSite struct {
	MMSI        int64
	SiteID      int
	Latitude    *float64
	Longitude   *float64
	Owner       int
	FirstSeen   time.Time
	LastSeen    time.Time
	ReportCount int
}

// UpsertSensorSite inserts or updates a sensor site.
func (d *PostgresDB) UpsertSensorSite(ctx context.Context, s SensorSite) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO sensor_sites (mmsi, site_id, latitude, longitude, owner, first_seen, last_seen, report_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		ON CONFLICT (mmsi, site_id) DO UPDATE SET
			latitude = COALESCE(EXCLUDED.latitude, sensor_sites.latitude),
			longitude = COALESCE(EXCLUDED.longitude, sensor_sites.longitude),
			owner = EXCLUDED.owner,
			last_seen = EXCLUDED.last_seen,
			report_count = sensor_sites.report_count + 1
	`, s.MMSI, s.SiteID, s.Latitude, s.Longitude, s.Owner, s.FirstSeen, s.LastSeen)
	return err
}

// ListSensorSites retrieves all known sensor sites.
func (d *PostgresDB) ListSensorSites(ctx context.Context) ([]SensorSite, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT mmsi, site_id, latitude, longitude, owner, first_seen, last_seen, report_count
		FROM sensor_sites ORDER BY mmsi, site_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []SensorSite
	for rows.Next() {
		var s SensorSite
		if err := rows.Scan(&s.MMSI, &s.SiteID, &s.Latitude, &s.Longitude, &s.Owner, &s.FirstSeen, &s.LastSeen, &s.ReportCount); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}
