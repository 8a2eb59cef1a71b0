package model

// LeaderboardEntry is one ranked row of the win/loss leaderboard.
// Entries are keyed by display name, the only identity the system has.
type LeaderboardEntry struct {
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	ForfeitWins int    `json:"forfeitWins"` // Subset of Wins earned by opponent disconnect
	Losses      int    `json:"losses"`
}
