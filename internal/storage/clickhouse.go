package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for the message archive.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	// Test the connection.
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS binary_messages (
			id              UInt64,
			received_at     DateTime64(3),
			channel         LowCardinality(String),
			mmsi            UInt32,
			msg_type        UInt8,
			dac             UInt16,
			fid             UInt8,
			name            LowCardinality(String),
			raw_sentence    String,
			decoded_json    String,
			error_kind      LowCardinality(String),
			error_text      String,
			created_at      DateTime64(3) DEFAULT now64(3)
		)
		ENGINE = MergeTree()
		PARTITION BY toYYYYMM(received_at)
		ORDER BY (dac, fid, received_at, id)
		SETTINGS index_granularity = 8192`,
	}

	for _, q := range queries {
		if err := d.conn.Exec(ctx, q); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}

// CHMessage represents a message stored in ClickHouse.
type CHMessage struct {
	ID          uint64
	ReceivedAt  time.Time
	Channel     string
	MMSI        uint32
	MsgType     uint8
	DAC         uint16
	FID         uint8
	Name        string
	RawSentence string
	DecodedJSON string
	ErrorKind   string
	ErrorText   string
	CreatedAt   time.Time
}

// CHInsertParams contains parameters for inserting a message.
type CHInsertParams struct {
	ID          uint64
	ReceivedAt  time.Time
	Channel     string
	MMSI        uint32
	MsgType     uint8
	DAC         uint16
	FID         uint8
	Name        string
	RawSentence string
	Decoded     interface{}
	ErrorKind   string
	ErrorText   string
}

func (p CHInsertParams) decodedJSON() (string, error) {
	if p.Decoded == nil {
		return "", nil
	}
	buf, err := json.Marshal(p.Decoded)
	if err != nil {
		return "", fmt.Errorf("marshal decoded message: %w", err)
	}
	return string(buf), nil
}

// Insert stores a single message in ClickHouse.
func (d *ClickHouseDB) Insert(ctx context.Context, p CHInsertParams) error {
	decoded, err := p.decodedJSON()
	if err != nil {
		return err
	}

	err = d.conn.Exec(ctx, `
		INSERT INTO binary_messages (id, received_at, channel, mmsi, msg_type, dac, fid, name, raw_sentence, decoded_json, error_kind, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ReceivedAt, p.Channel, p.MMSI, p.MsgType, p.DAC, p.FID, p.Name, p.RawSentence, decoded, p.ErrorKind, p.ErrorText)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// InsertBatch stores multiple messages in ClickHouse efficiently.
func (d *ClickHouseDB) InsertBatch(ctx context.Context, messages []CHInsertParams) error {
	if len(messages) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO binary_messages (id, received_at, channel, mmsi, msg_type, dac, fid, name, raw_sentence, decoded_json, error_kind, error_text)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range messages {
		decoded, err := p.decodedJSON()
		if err != nil {
			return err
		}
		err = batch.Append(p.ID, p.ReceivedAt, p.Channel, p.MMSI, p.MsgType, p.DAC, p.FID, p.Name, p.RawSentence, decoded, p.ErrorKind, p.ErrorText)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// CHQueryParams contains filtering options for querying messages.
type CHQueryParams struct {
	ID        uint64
	DAC       int
	FID       int
	MMSI      uint32
	Name      string
	ErrorKind string
	HasError  bool
	Limit     int
	Offset    int
	OrderDesc bool
}

// Query retrieves messages matching the given parameters.
func (d *ClickHouseDB) Query(ctx context.Context, p CHQueryParams) ([]CHMessage, error) {
	var conditions []string
	var args []interface{}

	if p.ID != 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, p.ID)
	}
	if p.DAC != 0 {
		conditions = append(conditions, "dac = ?")
		args = append(args, p.DAC)
		if p.FID != 0 {
			conditions = append(conditions, "fid = ?")
			args = append(args, p.FID)
		}
	}
	if p.MMSI != 0 {
		conditions = append(conditions, "mmsi = ?")
		args = append(args, p.MMSI)
	}
	if p.Name != "" {
		conditions = append(conditions, "name = ?")
		args = append(args, p.Name)
	}
	if p.ErrorKind != "" {
		conditions = append(conditions, "error_kind = ?")
		args = append(args, p.ErrorKind)
	}
	if p.HasError {
		conditions = append(conditions, "error_kind != ''")
	}

	query := `SELECT id, received_at, channel, mmsi, msg_type, dac, fid, name, raw_sentence, decoded_json, error_kind, error_text, created_at FROM binary_messages`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	direction := "ASC"
	if p.OrderDesc {
		direction = "DESC"
	}
	query += " ORDER BY id " + direction

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []CHMessage
	for rows.Next() {
		var m CHMessage
		err := rows.Scan(&m.ID, &m.ReceivedAt, &m.Channel, &m.MMSI, &m.MsgType, &m.DAC, &m.FID,
			&m.Name, &m.RawSentence, &m.DecodedJSON, &m.ErrorKind, &m.ErrorText, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return messages, nil
}

// GetByID retrieves a single message by ID.
func (d *ClickHouseDB) GetByID(ctx context.Context, id uint64) (*CHMessage, error) {
	messages, err := d.Query(ctx, CHQueryParams{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// CHStats contains aggregate statistics about stored messages.
type CHStats struct {
	TotalMessages uint64
	ByName        map[string]uint64
	ByDACFID      map[string]uint64
	Failed        uint64
	ByErrorKind   map[string]uint64
}

// GetStats returns statistics about stored messages.
func (d *ClickHouseDB) GetStats(ctx context.Context) (*CHStats, error) {
	stats := &CHStats{
		ByName:      make(map[string]uint64),
		ByDACFID:    make(map[string]uint64),
		ByErrorKind: make(map[string]uint64),
	}

	row := d.conn.QueryRow(ctx, "SELECT count() FROM binary_messages")
	if err := row.Scan(&stats.TotalMessages); err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(ctx, "SELECT name, count() FROM binary_messages GROUP BY name ORDER BY count() DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var count uint64
		if err := rows.Scan(&name, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan name stats: %w", err)
		}
		stats.ByName[name] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate name stats: %w", err)
	}
	rows.Close()

	rows, err = d.conn.Query(ctx, "SELECT dac, fid, count() FROM binary_messages GROUP BY dac, fid ORDER BY count() DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var dac uint16
		var fid uint8
		var count uint64
		if err := rows.Scan(&dac, &fid, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan dac/fid stats: %w", err)
		}
		stats.ByDACFID[fmt.Sprintf("%d/%d", dac, fid)] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate dac/fid stats: %w", err)
	}
	rows.Close()

	row = d.conn.QueryRow(ctx, "SELECT count() FROM binary_messages WHERE error_kind != ''")
	if err := row.Scan(&stats.Failed); err != nil {
		return nil, err
	}

	rows, err = d.conn.Query(ctx, "SELECT error_kind, count() FROM binary_messages WHERE error_kind != '' GROUP BY error_kind")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var kind string
		var count uint64
		if err := rows.Scan(&kind, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan error stats: %w", err)
		}
		stats.ByErrorKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate error stats: %w", err)
	}
	rows.Close()

	return stats, nil
}

// Count returns the total number of messages, optionally filtered by decoder name.
func (d *ClickHouseDB) Count(ctx context.Context, name string) (uint64, error) {
	var count uint64
	var err error
	if name != "" {
		row := d.conn.QueryRow(ctx, "SELECT count() FROM binary_messages WHERE name = ?", name)
		err = row.Scan(&count)
	} else {
		row := d.conn.QueryRow(ctx, "SELECT count() FROM binary_messages")
		err = row.Scan(&count)
	}
	return count, err
}

// MaxID returns the maximum message ID in the table.
func (d *ClickHouseDB) MaxID(ctx context.Context) (uint64, error) {
	var maxID uint64
	row := d.conn.QueryRow(ctx, "SELECT max(id) FROM binary_messages")
	if err := row.Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID, nil
}
