// Package domain defines the persistence models for players, daily
// challenges, submissions, vote tallies and leaderboard rows. These types are
// mapped with GORM and form the core data layer of the game backend.
//
// Calendar days are stored as ISO "YYYY-MM-DD" strings so that lexical order
// equals calendar order on every supported driver.
package domain

import (
	"time"
)

// User is a registered player.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identifier, owned by the external auth flow.
//   - Name: unique public display name; nil until the player picks one.
//   - PasswordHash / PasswordSalt: opaque credential material managed by the
//     external auth flow and never read by the game core.
//   - LoginStreak / SubmissionStreak / VotingStreak with their Last*Date
//     companions: consecutive-day counters (see package streak).
//   - DailyVotes: total votes cast for the current voting day, summed over
//     all categories.
//   - LastVoteAt: timestamp of the most recent vote.
type User struct {
	ID            string  `json:"id"             gorm:"type:char(36);primaryKey"`
	Email         string  `json:"-"              gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Name          *string `json:"name,omitempty" gorm:"type:varchar(64);uniqueIndex:ux_users_name"`
	PasswordHash  string  `json:"-"              gorm:"type:varchar(255)"`
	PasswordSalt  string  `json:"-"              gorm:"type:varchar(255)"`
	ExternalAuth  bool    `json:"-"              gorm:"not null;default:false"`
	EmailVerified bool    `json:"email_verified" gorm:"not null;default:false"`
	IsAdmin       bool    `json:"is_admin"       gorm:"not null;default:false"`

	LoginStreak        int     `json:"login_streak"                   gorm:"not null;default:0"`
	LastLoginDate      *string `json:"last_login_date,omitempty"      gorm:"type:varchar(10)"`
	SubmissionStreak   int     `json:"submission_streak"              gorm:"not null;default:0"`
	LastSubmissionDate *string `json:"last_submission_date,omitempty" gorm:"type:varchar(10)"`
	VotingStreak       int     `json:"voting_streak"                  gorm:"not null;default:0"`
	LastVotingDate     *string `json:"last_voting_date,omitempty"     gorm:"type:varchar(10)"`

	DailyVotes int        `json:"daily_votes"            gorm:"not null;default:0"`
	LastVoteAt *time.Time `json:"last_vote_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// DisplayName returns the chosen name or an empty string.
func (u *User) DisplayName() string {
	if u == nil || u.Name == nil {
		return ""
	}
	return *u.Name
}

// Challenge is the generated writing prompt for one category on one day.
// At most one row exists per (category, date).
type Challenge struct {
	ID        string    `json:"challenge_id" gorm:"type:char(36);primaryKey"`
	Category  Category  `json:"category"     gorm:"type:varchar(32);not null;uniqueIndex:ux_challenges_category_date,priority:1"`
	Date      string    `json:"date"         gorm:"type:varchar(10);not null;uniqueIndex:ux_challenges_category_date,priority:2;index:idx_challenges_date"`
	Prompt    string    `json:"prompt"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Challenge.
func (Challenge) TableName() string { return "challenges" }

// Submission is a player's final phrase for a category on a day.
//
// Username and Prompt are snapshots taken at submission time; renaming a
// player or regenerating a prompt never rewrites history implicitly.
// Votes only ever grows, through an atomic increment.
type Submission struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	UserID          string    `json:"user_id"          gorm:"type:char(36);not null;uniqueIndex:ux_submissions_user_category_date,priority:1"`
	Username        string    `json:"username"         gorm:"type:varchar(64);not null;default:''"`
	ChallengeID     string    `json:"challenge_id"     gorm:"type:char(36);not null;index"`
	Category        Category  `json:"category"         gorm:"type:varchar(32);not null;uniqueIndex:ux_submissions_user_category_date,priority:2;index:idx_submissions_category_date,priority:1"`
	Date            string    `json:"date"             gorm:"type:varchar(10);not null;uniqueIndex:ux_submissions_user_category_date,priority:3;index:idx_submissions_category_date,priority:2"`
	Prompt          string    `json:"prompt"           gorm:"type:text;not null"`
	Phrase          string    `json:"phrase"           gorm:"type:text;not null"`
	InitialScore    int       `json:"initial_score"    gorm:"not null;default:0;check:initial_score BETWEEN 0 AND 10"`
	Votes           int       `json:"votes"            gorm:"not null;default:0;check:votes >= 0"`
	ScoredFirst     bool      `json:"scored_first"     gorm:"not null;default:false"`
	FinalSubmission bool      `json:"final_submission" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for Submission.
func (Submission) TableName() string { return "submissions" }

// VoteTally counts the votes a player has spent in one category on one
// voting day. VotesUsed never exceeds the configured quota.
type VoteTally struct {
	UserID    string    `gorm:"type:char(36);primaryKey"`
	Category  Category  `gorm:"type:varchar(32);primaryKey"`
	Date      string    `gorm:"type:varchar(10);primaryKey"`
	VotesUsed int       `gorm:"not null;default:0;check:votes_used >= 0"`
	UpdatedAt time.Time
}

// TableName returns the database table name for VoteTally.
func (VoteTally) TableName() string { return "vote_tallies" }

// LeaderboardEntry is a materialized per-day score for a player in a
// category. Re-aggregating a day overwrites these rows.
type LeaderboardEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_leaderboard_user_category_date,priority:1"`
	Category  Category  `gorm:"type:varchar(32);not null;uniqueIndex:ux_leaderboard_user_category_date,priority:2;index:idx_leaderboard_category_date,priority:1"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:ux_leaderboard_user_category_date,priority:3;index:idx_leaderboard_category_date,priority:2"`
	Score     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name for LeaderboardEntry.
func (LeaderboardEntry) TableName() string { return "leaderboard_entries" }

// ScorePreview remembers a score-first preview so the eventual real submit
// can be flagged and repeated previews do not call the oracle again.
type ScorePreview struct {
	UserID      string    `json:"-"            gorm:"type:char(36);primaryKey"`
	ChallengeID string    `json:"challenge_id" gorm:"type:char(36);primaryKey"`
	Phrase      string    `json:"phrase"       gorm:"type:text;not null"`
	Score       int       `json:"score"        gorm:"not null"`
	Feedback    string    `json:"feedback"     gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"   gorm:"not null;index"`
}

// TableName returns the database table name for ScorePreview.
func (ScorePreview) TableName() string { return "score_previews" }
