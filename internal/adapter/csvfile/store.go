// Package csvfile implements the pressure register as an append-only CSV
// file, the same layout the installation crews already exchange:
//
//	Jacket ID,Case,DateTime,BP (A),BQ (B),AQ (C),AP (D)
//
// New rows are appended at the end; existing rows and column order are never
// rewritten. The header is written once, on first append. Appends are
// serialized through an advisory sidecar lock so concurrent writers cannot
// interleave partial rows.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"github.com/couchcryptid/jacket-load-service/internal/domain"
)

// timeLayout is the register's DateTime column format, local time.
const timeLayout = "2006-01-02 15:04:05"

// lockRetryDelay is how often a blocked Append re-attempts the file lock.
const lockRetryDelay = 25 * time.Millisecond

// header is the register's column order. Pressure columns follow the
// canonical leg order A-D under their position labels.
var header = []string{"Jacket ID", "Case", "DateTime", "BP (A)", "BQ (B)", "AQ (C)", "AP (D)"}

// Store is an append-only CSV record store. It implements
// register.RecordStore.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a Store for the given register file. The file itself may not
// exist yet; the first Append creates it with a header row. The lock file
// lives next to the register so separate processes contend on the same lock.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Append durably persists one reading as a new CSV row. All failures wrap
// domain.ErrStorage and propagate; a reading is never silently dropped.
func (s *Store) Append(ctx context.Context, reading domain.Reading) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return storageErr("lock register", err)
	}
	if !locked {
		return storageErr("lock register", errors.New("lock not acquired"))
	}
	defer s.lock.Unlock() //nolint:errcheck // nothing to do about unlock failure

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return storageErr("open register", err)
	}

	if err := s.writeRow(f, reading); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return err
	}

	// Sync before close so a saved reading survives power loss.
	if err := f.Sync(); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return storageErr("sync register", err)
	}
	if err := f.Close(); err != nil {
		return storageErr("close register", err)
	}
	return nil
}

func (s *Store) writeRow(f *os.File, reading domain.Reading) error {
	info, err := f.Stat()
	if err != nil {
		return storageErr("stat register", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return storageErr("write header", err)
		}
	}

	row := []string{
		reading.JacketID,
		string(reading.Case),
		reading.Timestamp.Local().Format(timeLayout),
	}
	for _, leg := range domain.Legs() {
		// Full precision; display rounding is the presentation layer's concern.
		row = append(row, strconv.FormatFloat(reading.Pressures[leg], 'g', -1, 64))
	}
	if err := w.Write(row); err != nil {
		return storageErr("write row", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return storageErr("flush row", err)
	}
	return nil
}

// LoadAll returns every stored reading in file (insertion) order. A missing
// register file is the empty state, not an error.
func (s *Store) LoadAll(_ context.Context) ([]domain.Reading, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Reading{}, nil
	}
	if err != nil {
		return nil, storageErr("open register", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Reading{}, nil
	}
	if err != nil {
		return nil, storageErr("read header", err)
	}
	if len(head) != len(header) {
		return nil, storageErr("read header", fmt.Errorf("expected %d columns, got %d", len(header), len(head)))
	}

	readings := []domain.Reading{}
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, storageErr(fmt.Sprintf("read line %d", line), err)
		}

		reading, err := parseRecord(record)
		if err != nil {
			return nil, storageErr(fmt.Sprintf("parse line %d", line), err)
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

func parseRecord(record []string) (domain.Reading, error) {
	if len(record) != len(header) {
		return domain.Reading{}, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}

	c, err := domain.ParseCase(record[1])
	if err != nil {
		return domain.Reading{}, err
	}

	ts, err := time.ParseInLocation(timeLayout, record[2], time.Local)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("bad DateTime %q: %w", record[2], err)
	}

	pressures := make(map[domain.Leg]float64, 4)
	for i, leg := range domain.Legs() {
		v, err := strconv.ParseFloat(record[3+i], 64)
		if err != nil {
			return domain.Reading{}, fmt.Errorf("bad pressure %q for leg %s: %w", record[3+i], leg, err)
		}
		pressures[leg] = v
	}

	return domain.Reading{
		JacketID:  record[0],
		Case:      c,
		Timestamp: ts,
		Pressures: pressures,
	}, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}
