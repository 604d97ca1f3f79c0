package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

var ErrNotFound = errors.New("not found")

const tradeColumns = `id, user_id, account_id, date, day_of_week, week_of_month, entry_time, exit_time,
	direction, entry_model, result_type, result_amount, had_news, news_description,
	max_rr, drawdown, image_link, no_trade_day, risk_percentage`

const upsertTrade = `
	INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		user_id = excluded.user_id,
		account_id = excluded.account_id,
		date = excluded.date,
		day_of_week = excluded.day_of_week,
		week_of_month = excluded.week_of_month,
		entry_time = excluded.entry_time,
		exit_time = excluded.exit_time,
		direction = excluded.direction,
		entry_model = excluded.entry_model,
		result_type = excluded.result_type,
		result_amount = excluded.result_amount,
		had_news = excluded.had_news,
		news_description = excluded.news_description,
		max_rr = excluded.max_rr,
		drawdown = excluded.drawdown,
		image_link = excluded.image_link,
		no_trade_day = excluded.no_trade_day,
		risk_percentage = excluded.risk_percentage`

// SQLite is the journal Store backed by a single SQLite file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func tradeArgs(t Trade) []any {
	return []any{
		t.ID, t.UserID, t.AccountID, t.Date, string(t.DayOfWeek), t.WeekOfMonth,
		t.EntryTime, t.ExitTime, string(t.Direction), t.EntryModel, string(t.Result),
		t.ResultAmount, t.HadNews, t.NewsDescription, t.MaxRR, t.Drawdown,
		t.ImageLink, t.NoTradeDay, t.RiskPercentage,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		rec       Trade
		dow       string
		direction string
		result    string
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.AccountID, &rec.Date, &dow, &rec.WeekOfMonth,
		&rec.EntryTime, &rec.ExitTime, &direction, &rec.EntryModel, &result,
		&rec.ResultAmount, &rec.HadNews, &rec.NewsDescription, &rec.MaxRR, &rec.Drawdown,
		&rec.ImageLink, &rec.NoTradeDay, &rec.RiskPercentage,
	)
	rec.DayOfWeek = Weekday(dow)
	rec.Direction = Direction(direction)
	rec.Result = ResultType(result)
	return rec, err
}

// Create stores a new trade, assigning an ID when the caller did not.
func (j *SQLite) Create(ctx context.Context, t Trade) (Trade, error) {
	if t.ID == "" {
		t.ID = id.New()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO trades (`+tradeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tradeArgs(t)...)
	if err != nil {
		return Trade{}, fmt.Errorf("create trade: %w", err)
	}
	return t, nil
}

// Get returns a single trade by ID.
func (j *SQLite) Get(ctx context.Context, tradeID string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, tradeID)
	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Trade{}, err
	}
	return rec, nil
}

// ListByOwner returns every trade owned by userID ordered by date and entry time.
func (j *SQLite) ListByOwner(ctx context.Context, userID string) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE user_id = ?
		ORDER BY date ASC, entry_time ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Update(ctx context.Context, t Trade) error {
	if t.ID == "" {
		return fmt.Errorf("update trade: empty id")
	}
	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			user_id = ?, account_id = ?, date = ?, day_of_week = ?, week_of_month = ?,
			entry_time = ?, exit_time = ?, direction = ?, entry_model = ?, result_type = ?,
			result_amount = ?, had_news = ?, news_description = ?, max_rr = ?, drawdown = ?,
			image_link = ?, no_trade_day = ?, risk_percentage = ?
		WHERE id = ?`,
		append(tradeArgs(t)[1:], t.ID)...)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	return expectOne(res, t.ID)
}

func (j *SQLite) Delete(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return expectOne(res, tradeID)
}

// UpsertTrades writes the batch in one transaction so a failure leaves
// nothing from that batch behind. Missing IDs are filled in first.
func (j *SQLite) UpsertTrades(ctx context.Context, trades []Trade) error {
	for i := range trades {
		if trades[i].ID == "" {
			trades[i].ID = id.New()
		}
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertTrade)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx, tradeArgs(t)...); err != nil {
			return fmt.Errorf("upsert trade %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func expectOne(res sql.Result, tradeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}
