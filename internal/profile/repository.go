package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/profile/mock_repository.go -package=mock_profile

// Repository defines the read/write pair for user learning profiles.
type Repository interface {
	FindByUser(ctx context.Context, userID string) (*UserLearningProfile, error)
	Save(ctx context.Context, profile *UserLearningProfile) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByUser returns the stored profile, or nil when the user has none yet.
func (r *DBRepository) FindByUser(ctx context.Context, userID string) (*UserLearningProfile, error) {
	var profile UserLearningProfile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM user_learning_profiles WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user_learning_profiles) > %w", err)
	}
	return &profile, nil
}

// Save upserts the profile; one row per user.
func (r *DBRepository) Save(ctx context.Context, profile *UserLearningProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_learning_profiles
		(user_id, attention_span_minutes, optimal_session_minutes, chronotype, peak_hour,
		cognitive_load_tolerance, decay_rate, consolidation_factor, preferred_flow_difficulty, recomputed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		attention_span_minutes = VALUES(attention_span_minutes),
		optimal_session_minutes = VALUES(optimal_session_minutes),
		chronotype = VALUES(chronotype),
		peak_hour = VALUES(peak_hour),
		cognitive_load_tolerance = VALUES(cognitive_load_tolerance),
		decay_rate = VALUES(decay_rate),
		consolidation_factor = VALUES(consolidation_factor),
		preferred_flow_difficulty = VALUES(preferred_flow_difficulty),
		recomputed_at = VALUES(recomputed_at)`,
		profile.UserID, profile.AttentionSpanMinutes, profile.OptimalSessionMinutes,
		profile.Chronotype, profile.PeakHour, profile.CognitiveLoadTolerance,
		profile.DecayRate, profile.ConsolidationFactor, profile.PreferredFlowDifficulty,
		profile.RecomputedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert user_learning_profile) > %w", err)
	}
	return nil
}
