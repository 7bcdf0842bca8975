// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stconstruction/website/internal/model"
	"github.com/stconstruction/website/internal/store"
	"github.com/stconstruction/website/internal/util"
)

// phonePattern accepts international numbers with common separators.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

// Callbacks manages call-me-back leads from the public form.
type Callbacks struct {
	queries *store.Queries
}

// NewCallbacks returns a Callbacks service over queries.
func NewCallbacks(queries *store.Queries) *Callbacks {
	return &Callbacks{queries: queries}
}

// Get returns a lead by ID.
func (s *Callbacks) Get(ctx context.Context, id int64) (model.CallbackRequest, error) {
	c, err := s.queries.GetCallbackByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.CallbackRequest{}, ErrNotFound
	}
	return c, err
}

// List returns all leads newest first.
func (s *Callbacks) List(ctx context.Context) ([]model.CallbackRequest, error) {
	return s.queries.ListCallbacks(ctx)
}

// CountUnprocessed returns the number of pending leads, shown as a
// badge on the back-office dashboard.
func (s *Callbacks) CountUnprocessed(ctx context.Context) (int64, error) {
	return s.queries.CountUnprocessedCallbacks(ctx)
}

// Submit records a new lead from the public form. An optional project
// reference is dropped silently when the project does not exist.
func (s *Callbacks) Submit(ctx context.Context, name, phone, message string, projectID int64) (model.CallbackRequest, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return model.CallbackRequest{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !phonePattern.MatchString(phone) {
		return model.CallbackRequest{}, fmt.Errorf("%w: phone number looks invalid", ErrInvalidInput)
	}

	ref := util.NullInt64(projectID)
	if ref.Valid {
		if _, err := s.queries.GetProjectByID(ctx, projectID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return model.CallbackRequest{}, err
			}
			ref.Valid = false
		}
	}

	return s.queries.CreateCallback(ctx, store.CreateCallbackParams{
		Name:      name,
		Phone:     phone,
		Message:   strings.TrimSpace(message),
		ProjectID: ref,
	})
}

// SetProcessed marks a lead handled or pending.
func (s *Callbacks) SetProcessed(ctx context.Context, id int64, processed bool) error {
	if err := s.queries.SetCallbackProcessed(ctx, id, processed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes a lead.
func (s *Callbacks) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeleteCallback(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// PurgeOlderThan removes leads older than the retention period and
// returns how many were removed.
func (s *Callbacks) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	return s.queries.DeleteCallbacksBefore(ctx, cutoff)
}

// StartRetentionJob schedules a nightly purge of leads past the
// retention period. It returns the started scheduler so the caller
// can stop it on shutdown; nil when retention is disabled.
func (s *Callbacks) StartRetentionJob(retentionDays int) *cron.Cron {
	if retentionDays <= 0 {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("30 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := s.PurgeOlderThan(ctx, retentionDays)
		if err != nil {
			slog.Error("callback retention purge failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("callback retention purge", "removed", n, "retention_days", retentionDays)
		}
	})
	if err != nil {
		slog.Error("scheduling callback retention job", "error", err)
		return nil
	}

	c.Start()
	return c
}
