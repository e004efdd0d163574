package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armcalc/internal/data"
)

// ErrNoDataset is returned when no dataset has been imported yet.
var ErrNoDataset = errors.New("no game data imported")

// Dataset describes one imported version of the game data.
type Dataset struct {
	ID          int64
	Fingerprint string
}

// GameDataRepository stores game data tables, one dataset per distinct
// fingerprint.
type GameDataRepository struct {
	db *pgxpool.Pool
}

// NewGameDataRepository creates a new GameDataRepository.
func NewGameDataRepository(db *pgxpool.Pool) *GameDataRepository {
	return &GameDataRepository{db: db}
}

// Import stores tables as a new dataset. If a dataset with the same
// fingerprint exists it is returned unchanged and created is false.
func (r *GameDataRepository) Import(ctx context.Context, tables *data.Tables) (ds Dataset, created bool, err error) {
	fp, err := data.Fingerprint(tables)
	if err != nil {
		return Dataset{}, false, err
	}

	existing, err := r.datasetByFingerprint(ctx, fp)
	if err == nil {
		slog.Info("game data already imported", "dataset", existing.ID, "fingerprint", fp)
		return existing, false, nil
	}
	if !errors.Is(err, ErrNoDataset) {
		return Dataset{}, false, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Dataset{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("game data rollback failed", "fingerprint", fp, "error", err)
		}
	}()

	ds.Fingerprint = fp
	if err := tx.QueryRow(ctx,
		`INSERT INTO datasets (fingerprint) VALUES ($1) RETURNING id`, fp,
	).Scan(&ds.ID); err != nil {
		return Dataset{}, false, fmt.Errorf("inserting dataset: %w", err)
	}

	if err := r.saveTablesTx(ctx, tx, ds.ID, tables); err != nil {
		return Dataset{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Dataset{}, false, fmt.Errorf("committing dataset: %w", err)
	}

	slog.Info("imported game data", "dataset", ds.ID, "fingerprint", fp, "armaments", len(tables.Armaments))
	return ds, true, nil
}

func (r *GameDataRepository) saveTablesTx(ctx context.Context, tx pgx.Tx, datasetID int64, t *data.Tables) error {
	batch := &pgx.Batch{}
	for name, arm := range t.Armaments {
		batch.Queue(`INSERT INTO armaments (dataset_id, name, payload) VALUES ($1, $2, $3)`, datasetID, name, arm)
	}
	for id, levels := range t.Reinforcements {
		batch.Queue(`INSERT INTO reinforcements (dataset_id, reinforcement_id, levels) VALUES ($1, $2, $3)`, datasetID, int(id), levels)
	}
	for id, profile := range t.CorrectionAttack {
		batch.Queue(`INSERT INTO correction_attacks (dataset_id, correction_attack_id, payload) VALUES ($1, $2, $3)`, datasetID, int(id), profile)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("inserting game data row %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	// Кривые как массивы float8, через COPY.
	rows := make([][]any, 0, len(t.CorrectionGraph))
	for id, curve := range t.CorrectionGraph {
		rows = append(rows, []any{datasetID, int(id), curve})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"correction_graphs"},
		[]string{"dataset_id", "graph_id", "curve"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("inserting correction graphs: %w", err)
	}

	return nil
}

// Latest returns the most recently imported dataset.
func (r *GameDataRepository) Latest(ctx context.Context) (Dataset, error) {
	var ds Dataset
	err := r.db.QueryRow(ctx,
		`SELECT id, fingerprint FROM datasets ORDER BY id DESC LIMIT 1`,
	).Scan(&ds.ID, &ds.Fingerprint)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dataset{}, ErrNoDataset
		}
		return Dataset{}, fmt.Errorf("querying latest dataset: %w", err)
	}
	return ds, nil
}

func (r *GameDataRepository) datasetByFingerprint(ctx context.Context, fp string) (Dataset, error) {
	ds := Dataset{Fingerprint: fp}
	err := r.db.QueryRow(ctx, `SELECT id FROM datasets WHERE fingerprint = $1`, fp).Scan(&ds.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dataset{}, ErrNoDataset
		}
		return Dataset{}, fmt.Errorf("querying dataset %s: %w", fp, err)
	}
	return ds, nil
}

// LoadTables implements data.Source by loading the latest dataset.
func (r *GameDataRepository) LoadTables(ctx context.Context) (*data.Tables, error) {
	ds, err := r.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, ds.ID)
}

// Load reads every table of a dataset. The four tables are queried
// concurrently.
func (r *GameDataRepository) Load(ctx context.Context, datasetID int64) (*data.Tables, error) {
	t := &data.Tables{
		Armaments:        make(map[string]*data.ArmamentData),
		Reinforcements:   make(map[data.TableID][]data.ReinforcementData),
		CorrectionAttack: make(map[data.TableID]*data.CorrectionAttack),
		CorrectionGraph:  make(data.CorrectionGraph),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.queryEach(gctx, `SELECT name, payload FROM armaments WHERE dataset_id = $1`, datasetID,
			func(rows pgx.Rows) error {
				var name string
				arm := &data.ArmamentData{}
				if err := rows.Scan(&name, arm); err != nil {
					return fmt.Errorf("scanning armament row: %w", err)
				}
				t.Armaments[name] = arm
				return nil
			})
	})
	g.Go(func() error {
		return r.queryEach(gctx, `SELECT reinforcement_id, levels FROM reinforcements WHERE dataset_id = $1`, datasetID,
			func(rows pgx.Rows) error {
				var id int
				var levels []data.ReinforcementData
				if err := rows.Scan(&id, &levels); err != nil {
					return fmt.Errorf("scanning reinforcement row: %w", err)
				}
				t.Reinforcements[data.TableID(id)] = levels
				return nil
			})
	})
	g.Go(func() error {
		return r.queryEach(gctx, `SELECT correction_attack_id, payload FROM correction_attacks WHERE dataset_id = $1`, datasetID,
			func(rows pgx.Rows) error {
				var id int
				profile := &data.CorrectionAttack{}
				if err := rows.Scan(&id, profile); err != nil {
					return fmt.Errorf("scanning correction attack row: %w", err)
				}
				t.CorrectionAttack[data.TableID(id)] = profile
				return nil
			})
	})
	g.Go(func() error {
		return r.queryEach(gctx, `SELECT graph_id, curve FROM correction_graphs WHERE dataset_id = $1`, datasetID,
			func(rows pgx.Rows) error {
				var id int
				var curve []float64
				if err := rows.Scan(&id, &curve); err != nil {
					return fmt.Errorf("scanning correction graph row: %w", err)
				}
				t.CorrectionGraph[data.TableID(id)] = curve
				return nil
			})
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dataset %d: %w", datasetID, err)
	}
	if len(t.Armaments) == 0 {
		return nil, fmt.Errorf("loading dataset %d: %w", datasetID, ErrNoDataset)
	}

	slog.Info("loaded game data from database",
		"dataset", datasetID,
		"armaments", len(t.Armaments),
		"reinforcements", len(t.Reinforcements),
		"correction_attack", len(t.CorrectionAttack),
		"correction_graph", len(t.CorrectionGraph))
	return t, nil
}

// queryEach runs query and calls scan for every row. Each table is written
// by exactly one goroutine, so the maps need no locking.
func (r *GameDataRepository) queryEach(ctx context.Context, query string, datasetID int64, scan func(pgx.Rows) error) error {
	rows, err := r.db.Query(ctx, query, datasetID)
	if err != nil {
		return fmt.Errorf("querying game data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating game data rows: %w", err)
	}
	return nil
}
