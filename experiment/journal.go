// Package experiment implements the run journal: a sqlite file holding
// experiment descriptions and per-epoch measurements, plus the
// markdown report posted when a run finishes.
package experiment

import "database/sql"
import "fmt"
import "strconv"
import "strings"
import "time"

import "github.com/google/uuid"
import "github.com/neurlang/traintools/report"
import "github.com/pkg/errors"
import _ "modernc.org/sqlite"

// Journal records runs and their measurements in a sqlite file. One
// journal can hold any number of experiments.
type Journal struct {
	db *sql.DB
}

// Point is one recorded measurement of a named metric.
type Point struct {
	Epoch int
	Value float64
}

// Open opens the journal at path, creating the schema on first use.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal %s", path)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS experiments(
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			created INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS measurements(
			experiment TEXT NOT NULL,
			epoch INTEGER NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS measurements_by_run
			ON measurements(experiment, name, epoch)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "create journal schema")
		}
	}
	return &Journal{db: db}, nil
}

// Close releases the journal file.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin registers a new experiment and returns its id.
func (j *Journal) Begin(description string) (string, error) {
	var id = uuid.New().String()
	_, err := j.db.Exec(`INSERT INTO experiments(id, description, created) VALUES(?, ?, ?)`,
		id, description, time.Now().Unix())
	if err != nil {
		return "", errors.Wrap(err, "begin experiment")
	}
	return id, nil
}

// Log records one measurement of a named metric at an epoch.
func (j *Journal) Log(id string, epoch int, name string, value float64) error {
	_, err := j.db.Exec(`INSERT INTO measurements(experiment, epoch, name, value) VALUES(?, ?, ?, ?)`,
		id, epoch, name, value)
	return errors.Wrapf(err, "log %s", name)
}

// History returns every measurement of one metric ordered by epoch.
func (j *Journal) History(id, name string) ([]Point, error) {
	rows, err := j.db.Query(`SELECT epoch, value FROM measurements
		WHERE experiment = ? AND name = ? ORDER BY epoch`, id, name)
	if err != nil {
		return nil, errors.Wrapf(err, "history %s", name)
	}
	defer rows.Close()
	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Epoch, &p.Value); err != nil {
			return nil, errors.Wrapf(err, "history %s", name)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "history %s", name)
	}
	return points, nil
}

// Best returns the highest recorded value of a metric.
func (j *Journal) Best(id, name string) (float64, error) {
	var best sql.NullFloat64
	err := j.db.QueryRow(`SELECT MAX(value) FROM measurements
		WHERE experiment = ? AND name = ?`, id, name).Scan(&best)
	if err != nil {
		return 0, errors.Wrapf(err, "best %s", name)
	}
	if !best.Valid {
		return 0, errors.Errorf("no %s measurements for experiment %s", name, id)
	}
	return best.Float64, nil
}

// Markdown renders the experiment report: the escaped description
// header plus one history table per recorded metric.
func (j *Journal) Markdown(id string) (string, error) {
	var description string
	err := j.db.QueryRow(`SELECT description FROM experiments WHERE id = ?`, id).Scan(&description)
	if err == sql.ErrNoRows {
		return "", errors.Errorf("unknown experiment %s", id)
	}
	if err != nil {
		return "", errors.Wrap(err, "read experiment")
	}
	var b strings.Builder
	b.WriteString(report.Description(description, id))
	names, err := j.metricNames(id)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		points, err := j.History(id, name)
		if err != nil {
			return "", err
		}
		var rows = make([][]string, len(points))
		for i, p := range points {
			rows[i] = []string{strconv.Itoa(p.Epoch), fmt.Sprint(p.Value)}
		}
		b.WriteString("\n\n## " + name + "\n\n")
		b.WriteString(report.Rows([]string{"epoch", name}, rows))
	}
	return b.String(), nil
}

func (j *Journal) metricNames(id string) ([]string, error) {
	rows, err := j.db.Query(`SELECT DISTINCT name FROM measurements
		WHERE experiment = ? ORDER BY name`, id)
	if err != nil {
		return nil, errors.Wrap(err, "list metrics")
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "list metrics")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list metrics")
	}
	return names, nil
}
