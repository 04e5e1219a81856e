package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) LoadTransactions(ctx context.Context, userID string) (core.TransactionLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount_cents, type, category, description, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txLog := core.TransactionLog{}
	for rows.Next() {
		var (
			tx           core.Transaction
			dateStr      string
			txType       string
			createdAtStr string
		)
		if err := rows.Scan(&tx.ID, &dateStr, &tx.Amount.Cents, &txType, &tx.Category, &tx.Description, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", dateStr, err)
		}
		tx.Type = core.TxType(txType)
		tx.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAtStr, err)
		}
		tx.UserID = userID
		txLog.Add(tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txLog, nil
}

func (r *SQLiteRepository) SaveTransaction(ctx context.Context, userID string, tx core.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, date, amount_cents, type, category, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			amount_cents = excluded.amount_cents,
			type = excluded.type,
			category = excluded.category,
			description = excluded.description`,
		tx.ID, userID, tx.Date.Key(), tx.Amount.Cents, string(tx.Type), tx.Category, tx.Description,
		tx.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Transaction persisted",
		log.FieldTransactionID, tx.ID,
		log.FieldAmountCents, tx.Amount.Cents,
		log.FieldTxType, string(tx.Type))
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SaveAllTransactions(ctx context.Context, userID string, txLog core.TransactionLog) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, user_id, date, amount_cents, type, category, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txLog.Flatten() {
		if _, err := stmt.ExecContext(ctx,
			tx.ID, userID, tx.Date.Key(), tx.Amount.Cents, string(tx.Type), tx.Category, tx.Description,
			tx.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}

	r.logger.InfoContext(ctx, "Transaction log replaced",
		log.FieldUserID, userID,
		"count", len(txLog.Flatten()))
	return nil
}

func (r *SQLiteRepository) LoadProfile(ctx context.Context, userID string) (*core.Profile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT profile FROM profiles WHERE user_id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	var p core.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) SaveProfile(ctx context.Context, userID string, p core.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, profile, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			profile = excluded.profile,
			updated_at = excluded.updated_at`,
		userID, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	r.logger.DebugContext(ctx, "Profile persisted", log.FieldUserID, userID)
	return nil
}
