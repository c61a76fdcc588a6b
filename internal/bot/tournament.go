package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TournamentConfig configures a round robin over every group of GroupSize
// roster entries.
type TournamentConfig struct {
	Roster        []string // strategy names; duplicates are separate entrants
	GroupSize     int      // 2 or 3
	GamesPerGroup int
	Workers       int
	Seed          int64 // 0 = random
	Game          GameConfig
}

// Standing is one entrant's accumulated score.
type Standing struct {
	Entrant int    `json:"entrant"` // index into the roster
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Wins    int    `json:"wins"` // raw game wins, the tie-break
	Groups  int    `json:"groups"`
	Games   int    `json:"games"`
}

// GroupResult is the outcome of one group's match.
type GroupResult struct {
	Entrants []int        `json:"entrants"`
	Points   []int        `json:"points"`
	Match    *MatchResult `json:"match"`
}

// TournamentResult holds the final ranking, best first.
type TournamentResult struct {
	RunID     string        `json:"runId"`
	Seed      int64         `json:"seed"`
	GroupSize int           `json:"groupSize"`
	Standings []Standing    `json:"standings"`
	Groups    []GroupResult `json:"groups"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Groups returns every size-k combination of [0, n) in lexicographic order.
func Groups(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, append([]int(nil), idx...))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// groupPoints ranks seats by wins, ties kept in seat order, and awards
// len(wins)-1 points to the first down to 0 for the last.
func groupPoints(wins []int) []int {
	order := make([]int, len(wins))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return wins[order[a]] > wins[order[b]] })
	points := make([]int, len(wins))
	for rank, seat := range order {
		points[seat] = len(wins) - 1 - rank
	}
	return points
}

// RunTournament plays every group of cfg.GroupSize entrants and ranks
// entrants by points, then raw wins.
func RunTournament(ctx context.Context, cfg TournamentConfig) (*TournamentResult, error) {
	if cfg.GroupSize < 2 || cfg.GroupSize > 3 {
		return nil, fmt.Errorf("%w: group size %d, want 2 or 3", ErrInvalidConfig, cfg.GroupSize)
	}
	if len(cfg.Roster) < cfg.GroupSize {
		return nil, fmt.Errorf("%w: roster of %d cannot fill groups of %d", ErrInvalidConfig, len(cfg.Roster), cfg.GroupSize)
	}
	if cfg.GamesPerGroup <= 0 {
		return nil, fmt.Errorf("%w: %d games per group", ErrInvalidConfig, cfg.GamesPerGroup)
	}
	for _, name := range cfg.Roster {
		if _, err := StrategyForName(name); err != nil {
			return nil, err
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	top := rand.New(rand.NewSource(seed))

	result := &TournamentResult{
		RunID:     uuid.NewString(),
		Seed:      seed,
		GroupSize: cfg.GroupSize,
		Standings: make([]Standing, len(cfg.Roster)),
	}
	for i, name := range cfg.Roster {
		result.Standings[i] = Standing{Entrant: i, Name: name}
	}
	start := time.Now()

	for _, group := range Groups(len(cfg.Roster), cfg.GroupSize) {
		players := make([]string, len(group))
		for i, e := range group {
			players[i] = cfg.Roster[e]
		}
		match, err := RunMatch(ctx, MatchConfig{
			Players: players,
			Games:   cfg.GamesPerGroup,
			Workers: cfg.Workers,
			Seed:    top.Int63() | 1, // never 0, which means random
			Game:    cfg.Game,
		})
		if err != nil {
			return nil, fmt.Errorf("group %v: %w", group, err)
		}

		points := groupPoints(match.Wins)
		for i, e := range group {
			st := &result.Standings[e]
			st.Points += points[i]
			st.Wins += match.Wins[i]
			st.Groups++
			st.Games += match.Games
		}
		result.Groups = append(result.Groups, GroupResult{Entrants: group, Points: points, Match: match})
		log.Debug().Str("runId", result.RunID).Ints("entrants", group).Ints("wins", match.Wins).Ints("points", points).Msg("Group completed")
	}

	sort.SliceStable(result.Standings, func(a, b int) bool {
		sa, sb := result.Standings[a], result.Standings[b]
		if sa.Points != sb.Points {
			return sa.Points > sb.Points
		}
		return sa.Wins > sb.Wins
	})
	result.Elapsed = time.Since(start)

	log.Info().Str("runId", result.RunID).Int("entrants", len(cfg.Roster)).Int("groups", len(result.Groups)).Dur("elapsed", result.Elapsed).Msg("Tournament completed")
	return result, nil
}
