// Package storage provides persistent storage for decoded AIS binary
// messages: a local SQLite capture database for single-node use,
// ClickHouse for the message archive and PostgreSQL for mutable vessel
// and sensor-site state.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// StoredMessage is a decoded binary message as stored locally.
type StoredMessage struct {
	ID          int64
	ReceivedAt  time.Time
	Channel     string
	MMSI        int
	MsgType     int
	DAC         int
	FID         int
	Name        string
	RawSentence string
	DecodedJSON string
	ErrorKind   string
	ErrorText   string
}

// Local wraps a SQLite database for single-node capture. The extract
// subcommand writes here when no ClickHouse is configured.
type Local struct {
	db *sql.DB
}

// OpenLocal opens or creates a SQLite database at the given path.
func OpenLocal(path string) (*Local, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createLocalSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Local{db: db}, nil
}

// Close closes the database connection.
func (d *Local) Close() error {
	return d.db.Close()
}

func createLocalSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS binary_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TEXT NOT NULL,
		channel TEXT,
		mmsi INTEGER NOT NULL,
		msg_type INTEGER NOT NULL,
		dac INTEGER NOT NULL,
		fid INTEGER NOT NULL,
		name TEXT NOT NULL,
		raw_sentence TEXT NOT NULL,
		decoded_json TEXT,
		error_kind TEXT,
		error_text TEXT,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_binary_dac_fid ON binary_messages(dac, fid);
	CREATE INDEX IF NOT EXISTS idx_binary_mmsi ON binary_messages(mmsi);
	CREATE INDEX IF NOT EXISTS idx_binary_name ON binary_messages(name);
	CREATE INDEX IF NOT EXISTS idx_binary_received ON binary_messages(received_at);
	CREATE INDEX IF NOT EXISTS idx_binary_error ON binary_messages(error_kind);
	`

	_, err := db.Exec(schema)
	return err
}

// InsertParams contains the parameters for inserting a message.
type InsertParams struct {
	ReceivedAt  time.Time
	Channel     string
	MMSI        int
	MsgType     int
	DAC         int
	FID         int
	Name        string
	RawSentence string
	Decoded     interface{} // nil when decoding failed
	ErrorKind   string
	ErrorText   string
}

// Insert stores a decoded (or failed) message locally.
func (d *Local) Insert(p InsertParams) (int64, error) {
	var decodedJSON string
	if p.Decoded != nil {
		buf, err := json.Marshal(p.Decoded)
		if err != nil {
			return 0, fmt.Errorf("marshal decoded message: %w", err)
		}
		decodedJSON = string(buf)
	}

	result, err := d.db.Exec(`
		INSERT INTO binary_messages (received_at, channel, mmsi, msg_type, dac, fid, name, raw_sentence, decoded_json, error_kind, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ReceivedAt.UTC().Format(time.RFC3339Nano), p.Channel, p.MMSI, p.MsgType, p.DAC, p.FID, p.Name, p.RawSentence, decodedJSON, p.ErrorKind, p.ErrorText)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	return result.LastInsertId()
}

// QueryParams contains filtering options for querying messages.
type QueryParams struct {
	ID        int64  // Filter by specific message ID.
	DAC       int    // Filter by designated area code.
	FID       int    // Filter by function identifier (requires DAC).
	MMSI      int    // Filter by source MMSI.
	Name      string // Filter by decoder name (exact match).
	ErrorKind string // Filter by decode error kind.
	HasError  bool   // Only show messages that failed to decode.
	Limit     int    // Max results (default 100).
	Offset    int    // Pagination offset.
	OrderDesc bool   // Sort by id descending.
}

// Query retrieves messages matching the given parameters.
func (d *Local) Query(p QueryParams) ([]StoredMessage, error) {
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
		conditions = append(conditions, "error_kind != '' AND error_kind IS NOT NULL")
	}

	query := `SELECT id, received_at, channel, mmsi, msg_type, dac, fid, name,
			raw_sentence, decoded_json, error_kind, error_text
			FROM binary_messages`
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

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var ts string
		var channel, decoded, errKind, errText sql.NullString

		err := rows.Scan(&m.ID, &ts, &channel, &m.MMSI, &m.MsgType, &m.DAC, &m.FID, &m.Name,
			&m.RawSentence, &decoded, &errKind, &errText)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		m.ReceivedAt, _ = time.Parse(time.RFC3339Nano, ts)
		if channel.Valid {
			m.Channel = channel.String
		}
		if decoded.Valid {
			m.DecodedJSON = decoded.String
		}
		if errKind.Valid {
			m.ErrorKind = errKind.String
		}
		if errText.Valid {
			m.ErrorText = errText.String
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// Stats contains aggregate statistics about stored messages.
type Stats struct {
	TotalMessages int
	ByName        map[string]int
	ByDACFID      map[string]int
	Failed        int
	ByErrorKind   map[string]int
}

// GetStats returns statistics about the stored messages.
func (d *Local) GetStats() (*Stats, error) {
	stats := &Stats{
		ByName:      make(map[string]int),
		ByDACFID:    make(map[string]int),
		ByErrorKind: make(map[string]int),
	}

	row := d.db.QueryRow("SELECT COUNT(*) FROM binary_messages")
	if err := row.Scan(&stats.TotalMessages); err != nil {
		return nil, err
	}

	rows, err := d.db.Query("SELECT name, COUNT(*) FROM binary_messages GROUP BY name ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByName[name] = count
	}
	_ = rows.Close()

	rows, err = d.db.Query("SELECT dac, fid, COUNT(*) FROM binary_messages GROUP BY dac, fid ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var dac, fid, count int
		if err := rows.Scan(&dac, &fid, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByDACFID[fmt.Sprintf("%d/%d", dac, fid)] = count
	}
	_ = rows.Close()

	row = d.db.QueryRow("SELECT COUNT(*) FROM binary_messages WHERE error_kind != '' AND error_kind IS NOT NULL")
	if err := row.Scan(&stats.Failed); err != nil {
		return nil, err
	}

	rows, err = d.db.Query("SELECT error_kind, COUNT(*) FROM binary_messages WHERE error_kind != '' AND error_kind IS NOT NULL GROUP BY error_kind")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByErrorKind[kind] = count
	}
	_ = rows.Close()

	return stats, nil
}

// GetByID retrieves a single message by ID, nil when not found.
func (d *Local) GetByID(id int64) (*StoredMessage, error) {
	messages, err := d.Query(QueryParams{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// CountByName returns message counts grouped by decoder name.
func (d *Local) CountByName() (map[string]int, error) {
	counts := make(map[string]int)
	rows, err := d.db.Query("SELECT name, COUNT(*) FROM binary_messages GROUP BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, rows.Err()
}
