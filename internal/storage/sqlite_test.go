package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestLocal(t *testing.T) *Local {
	t.Helper()
	db, err := OpenLocal(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type testDecoded struct {
	Persons int `json:"persons"`
}

func insertTestMessages(t *testing.T, db *Local) {
	t.Helper()
	now := time.Now()
	rows := []InsertParams{
		{
			ReceivedAt:  now,
			Channel:     "A",
			MMSI:        366999663,
			MsgType:     8,
			DAC:         1,
			FID:         16,
			Name:        "persons_on_board",
			RawSentence: "!AIVDM,1,1,,A,85MwpKh0D0Bh,3*2F",
			Decoded:     testDecoded{Persons: 150},
		},
		{
			ReceivedAt:  now.Add(time.Second),
			Channel:     "B",
			MMSI:        211234560,
			MsgType:     8,
			DAC:         200,
			FID:         10,
			Name:        "inland_static",
			RawSentence: "!AIVDM,...",
			Decoded:     map[string]string{"eni": "02325678"},
		},
		{
			ReceivedAt:  now.Add(2 * time.Second),
			Channel:     "A",
			MMSI:        366999663,
			MsgType:     8,
			DAC:         999,
			FID:         63,
			RawSentence: "!AIVDM,...",
			ErrorKind:   "unsupported",
			ErrorText:   "no decoder for dac 999 fid 63",
		},
	}
	for _, p := range rows {
		if _, err := db.Insert(p); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
}

func TestInsertAndQuery(t *testing.T) {
	db := openTestLocal(t)
	insertTestMessages(t, db)

	all, err := db.Query(QueryParams{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d messages, want 3", len(all))
	}
	if !strings.Contains(all[0].DecodedJSON, `"persons":150`) {
		t.Errorf("DecodedJSON = %q", all[0].DecodedJSON)
	}
	if all[2].DecodedJSON != "" || all[2].ErrorKind != "unsupported" {
		t.Errorf("failed row = %+v", all[2])
	}
}

func TestQueryFilters(t *testing.T) {
	db := openTestLocal(t)
	insertTestMessages(t, db)

	byDAC, err := db.Query(QueryParams{DAC: 200, FID: 10})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byDAC) != 1 || byDAC[0].Name != "inland_static" {
		t.Errorf("dac/fid filter = %+v", byDAC)
	}

	byMMSI, err := db.Query(QueryParams{MMSI: 366999663})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byMMSI) != 2 {
		t.Errorf("mmsi filter got %d rows, want 2", len(byMMSI))
	}

	failed, err := db.Query(QueryParams{HasError: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(failed) != 1 || failed[0].DAC != 999 {
		t.Errorf("error filter = %+v", failed)
	}

	desc, err := db.Query(QueryParams{OrderDesc: true, Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(desc) != 1 || desc[0].DAC != 999 {
		t.Errorf("descending first row = %+v", desc)
	}
}

func TestGetByID(t *testing.T) {
	db := openTestLocal(t)
	insertTestMessages(t, db)

	m, err := db.GetByID(2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if m == nil || m.Name != "inland_static" {
		t.Errorf("GetByID(2) = %+v", m)
	}

	missing, err := db.GetByID(12345)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if missing != nil {
		t.Errorf("GetByID(12345) = %+v, want nil", missing)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestLocal(t)
	insertTestMessages(t, db)

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalMessages != 3 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByName["persons_on_board"] != 1 {
		t.Errorf("ByName = %v", stats.ByName)
	}
	if stats.ByDACFID["1/16"] != 1 || stats.ByDACFID["200/10"] != 1 {
		t.Errorf("ByDACFID = %v", stats.ByDACFID)
	}
	if stats.ByErrorKind["unsupported"] != 1 {
		t.Errorf("ByErrorKind = %v", stats.ByErrorKind)
	}
}

func TestCountByName(t *testing.T) {
	db := openTestLocal(t)
	insertTestMessages(t, db)

	counts, err := db.CountByName()
	if err != nil {
		t.Fatalf("CountByName: %v", err)
	}
	if counts["inland_static"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
