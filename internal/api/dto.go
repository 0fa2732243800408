package api

import (
	"time"

	"github.com/vovakirdan/ball-breaker/internal/storage"
)

// ScoreResponse is one high score row.
type ScoreResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is one finished session.
type SessionResponse struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Player     string    `json:"player,omitempty"`
	Seed       int64     `json:"seed"`
	Won        bool      `json:"won"`
	Score      int       `json:"score"`
	SpinsUsed  int       `json:"spins_used"`
	BlocksLeft int       `json:"blocks_left"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatsResponse aggregates every stored session.
type StatsResponse struct {
	Game       string    `json:"game"`
	Sessions   int       `json:"sessions"`
	Wins       int       `json:"wins"`
	WinRate    float64   `json:"win_rate"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	LastPlayed time.Time `json:"last_played"`
}

// ErrorResponse wraps a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toScores(entries []storage.ScoreEntry) []ScoreResponse {
	out := make([]ScoreResponse, len(entries))
	for i, e := range entries {
		out[i] = ScoreResponse{Rank: i + 1, Score: e.Score, CreatedAt: e.CreatedAt}
	}
	return out
}

func toSession(rec storage.SessionRecord) SessionResponse {
	return SessionResponse{
		ID:         rec.ID,
		Source:     rec.Source,
		Player:     rec.Player,
		Seed:       rec.Seed,
		Won:        rec.Won,
		Score:      rec.Score,
		SpinsUsed:  rec.SpinsUsed,
		BlocksLeft: rec.BlocksLeft,
		DurationMs: rec.DurationMs,
		CreatedAt:  rec.CreatedAt,
	}
}

func toSessions(recs []storage.SessionRecord) []SessionResponse {
	out := make([]SessionResponse, len(recs))
	for i, r := range recs {
		out[i] = toSession(r)
	}
	return out
}

func toStats(s *storage.GameStats) StatsResponse {
	return StatsResponse{
		Game:       s.GameID,
		Sessions:   s.GamesCount,
		Wins:       s.Wins,
		WinRate:    s.WinRate(),
		HighScore:  s.HighScore,
		AvgScore:   s.AvgScore,
		LastPlayed: s.LastPlayed,
	}
}
