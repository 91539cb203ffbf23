package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-screener/internal/types"
)

// GetProfile returns the cached profile stored under key
func (db *DB) GetProfile(ctx context.Context, key string) (*types.CandidateProfile, bool, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile FROM candidate_profiles WHERE cache_key = $1`,
		key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, true, nil
}

// PutProfile stores a profile under key. The first write wins.
func (db *DB) PutProfile(ctx context.Context, key string, profile *types.CandidateProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles (cache_key, profile) VALUES ($1, $2)
		 ON CONFLICT (cache_key) DO NOTHING`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to put profile: %w", err)
	}
	return nil
}
