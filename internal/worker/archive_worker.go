package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/model"
)

const (
	ArchiveBatchSize    = 50
	ArchiveBatchTimeout = 2 * time.Second
	ArchivePollTimeout  = 1 * time.Second
)

// ArchiveWorker drains the persist_results_queue and writes submitted
// attempts into PostgreSQL in batches. Submission never waits on the
// database; this worker is the durable side of that trade.
type ArchiveWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewArchiveWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ArchiveWorker {
	return &ArchiveWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "archive_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ArchiveWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ArchiveWorker started")

	batch := make([]*model.AttemptArchive, 0, ArchiveBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ArchiveBatchSize || time.Since(lastFlush) >= ArchiveBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ArchivePollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var a model.AttemptArchive
			if err := json.Unmarshal([]byte(item[1]), &a); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &a)
		}
	}
}

// ----------------------------------------------------------------
// Batch Upsert Wrapper
// ----------------------------------------------------------------

func (w *ArchiveWorker) flushSafe(ctx context.Context, batch []*model.AttemptArchive) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkUpsertAttempts(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk attempt upsert failed, using fallback")

		for _, a := range batch {
			if err := w.persistSingle(ctx, a); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed, requeueing")
				raw, _ := json.Marshal(a)
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("Archived attempt batch")
}

// ----------------------------------------------------------------
// BULK PostgreSQL UPSERT using UNNEST + alias
// ----------------------------------------------------------------

func (w *ArchiveWorker) bulkUpsertAttempts(ctx context.Context, batch []*model.AttemptArchive) error {
	n := len(batch)

	attemptIDs := make([]uuid.UUID, 0, n)
	testIDs := make([]uuid.UUID, 0, n)
	scores := make([]int, 0, n)
	totals := make([]int, 0, n)
	corrects := make([]int, 0, n)
	attempteds := make([]int, 0, n)
	submittedAts := make([]time.Time, 0, n)
	answers := make([][]byte, 0, n)

	for _, a := range batch {
		raw, err := json.Marshal(a.Answers)
		if err != nil {
			return err
		}
		attemptIDs = append(attemptIDs, a.AttemptID)
		testIDs = append(testIDs, a.TestID)
		scores = append(scores, a.Score)
		totals = append(totals, a.TotalQuestions)
		corrects = append(corrects, a.CorrectAnswers)
		attempteds = append(attempteds, a.Attempted)
		submittedAts = append(submittedAts, a.SubmittedAt)
		answers = append(answers, raw)
	}

	query := `
		INSERT INTO attempts (
			id, test_id, score, total_questions,
			correct_answers, attempted, submitted_at, answers
		)
		SELECT
			u.id, u.test_id, u.score, u.total_questions,
			u.correct_answers, u.attempted, u.submitted_at, u.answers
		FROM UNNEST(
			$1::uuid[],
			$2::uuid[],
			$3::int[],
			$4::int[],
			$5::int[],
			$6::int[],
			$7::timestamptz[],
			$8::jsonb[]
		) AS u (id, test_id, score, total_questions, correct_answers, attempted, submitted_at, answers)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := w.pool.Exec(ctx, query,
		attemptIDs, testIDs, scores, totals, corrects, attempteds, submittedAts, answers)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single insert
// ----------------------------------------------------------------

func (w *ArchiveWorker) persistSingle(ctx context.Context, a *model.AttemptArchive) error {
	raw, err := json.Marshal(a.Answers)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`INSERT INTO attempts (
			id, test_id, score, total_questions,
			correct_answers, attempted, submitted_at, answers
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		a.AttemptID, a.TestID, a.Score, a.TotalQuestions,
		a.CorrectAnswers, a.Attempted, a.SubmittedAt, raw,
	)

	return err
}
