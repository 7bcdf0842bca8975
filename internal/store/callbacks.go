// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stconstruction/website/internal/model"
)

const callbackColumns = `cb.id, cb.name, cb.phone, cb.message, cb.project_id,
	p.name, cb.is_processed, cb.created_at`

const callbackFrom = ` FROM callback_requests cb
	LEFT JOIN projects p ON p.id = cb.project_id`

func scanCallback(row interface{ Scan(...any) error }) (model.CallbackRequest, error) {
	var c model.CallbackRequest
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Message, &c.ProjectID,
		&c.ProjectName, &c.IsProcessed, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CallbackRequest{}, ErrNotFound
	}
	return c, err
}

// GetCallbackByID returns the callback request with the given ID.
func (q *Queries) GetCallbackByID(ctx context.Context, id int64) (model.CallbackRequest, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+callbackColumns+callbackFrom+` WHERE cb.id = ?`, id)
	return scanCallback(row)
}

// ListCallbacks returns callback requests newest first.
func (q *Queries) ListCallbacks(ctx context.Context) ([]model.CallbackRequest, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+callbackColumns+callbackFrom+` ORDER BY cb.created_at DESC, cb.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CallbackRequest
	for rows.Next() {
		c, err := scanCallback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountUnprocessedCallbacks returns the number of pending requests.
func (q *Queries) CountUnprocessedCallbacks(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM callback_requests WHERE is_processed = 0`).Scan(&n)
	return n, err
}

// CreateCallbackParams holds the fields for CreateCallback.
type CreateCallbackParams struct {
	Name      string
	Phone     string
	Message   string
	ProjectID sql.NullInt64
}

// CreateCallback inserts a callback request and returns the stored row.
func (q *Queries) CreateCallback(ctx context.Context, arg CreateCallbackParams) (model.CallbackRequest, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO callback_requests (name, phone, message, project_id)
		VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Phone, arg.Message, arg.ProjectID)
	if err != nil {
		return model.CallbackRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CallbackRequest{}, err
	}
	return q.GetCallbackByID(ctx, id)
}

// SetCallbackProcessed marks a request processed or pending.
func (q *Queries) SetCallbackProcessed(ctx context.Context, id int64, processed bool) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE callback_requests SET is_processed = ? WHERE id = ?`, processed, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteCallback removes a request.
func (q *Queries) DeleteCallback(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM callback_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteCallbacksBefore removes requests created before cutoff and
// returns how many were removed.
func (q *Queries) DeleteCallbacksBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM callback_requests WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
