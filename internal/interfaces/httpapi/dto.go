package httpapi

import (
	"time"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/usecase"
)

type createPlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createSeriesRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createTournamentRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PlayerIDs []int64 `json:"player_ids" validate:"required,min=2,dive,gt=0"`
	SeriesID  string  `json:"series_id" validate:"omitempty,max=64"`
	Seed      *uint64 `json:"seed"`
}

type matchStatsRequest struct {
	Count180s     int `json:"count_180s" validate:"gte=0"`
	Count171s     int `json:"count_171s" validate:"gte=0"`
	HighestFinish int `json:"highest_finish" validate:"gte=0,lte=170"`
	BestLeg       int `json:"best_leg" validate:"gte=0"`
}

type recordResultRequest struct {
	Player1Score *int              `json:"player1_score" validate:"required,gte=0"`
	Player2Score *int              `json:"player2_score" validate:"required,gte=0"`
	Player1Stats matchStatsRequest `json:"player1_stats"`
	Player2Stats matchStatsRequest `json:"player2_stats"`
}

type startKnockoutRequest struct {
	Qualifiers int `json:"qualifiers" validate:"omitempty,oneof=8 16"`
}

type playerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type seriesDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type matchStatsDTO struct {
	Count180s     int `json:"count_180s"`
	Count171s     int `json:"count_171s"`
	HighestFinish int `json:"highest_finish"`
	BestLeg       int `json:"best_leg"`
}

type matchDTO struct {
	ID           int64         `json:"id"`
	GroupID      *int          `json:"group_id,omitempty"`
	Round        string        `json:"round,omitempty"`
	Player1      *playerDTO    `json:"player1"`
	Player2      *playerDTO    `json:"player2"`
	Player1Score *int          `json:"player1_score"`
	Player2Score *int          `json:"player2_score"`
	Completed    bool          `json:"completed"`
	Player1Stats matchStatsDTO `json:"player1_stats"`
	Player2Stats matchStatsDTO `json:"player2_stats"`
}

type groupDTO struct {
	ID      int         `json:"id"`
	Players []playerDTO `json:"players"`
	Matches []matchDTO  `json:"matches"`
}

type tournamentDTO struct {
	ID                   int64       `json:"id"`
	Name                 string      `json:"name"`
	DateUTC              string      `json:"date_utc"`
	SeriesID             string      `json:"series_id,omitempty"`
	Completed            bool        `json:"completed"`
	KnockoutStageStarted bool        `json:"knockout_stage_started"`
	Participants         []playerDTO `json:"participants"`
	Groups               []groupDTO  `json:"groups"`
	KnockoutMatches      []matchDTO  `json:"knockout_matches"`
}

type tournamentListItemDTO struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	DateUTC              string `json:"date_utc"`
	SeriesID             string `json:"series_id,omitempty"`
	Completed            bool   `json:"completed"`
	KnockoutStageStarted bool   `json:"knockout_stage_started"`
	Participants         int    `json:"participants"`
}

type standingDTO struct {
	Position      int       `json:"position"`
	Player        playerDTO `json:"player"`
	Matches       int       `json:"matches"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Points        int       `json:"points"`
	LegDifference int       `json:"leg_difference"`
}

type groupStandingsDTO struct {
	GroupID   int           `json:"group_id"`
	Completed bool          `json:"completed"`
	Standings []standingDTO `json:"standings"`
}

type bracketRoundDTO struct {
	Round   string     `json:"round"`
	Matches []matchDTO `json:"matches"`
}

type performerDTO struct {
	Player playerDTO `json:"player"`
	Points int       `json:"points"`
}

type summaryDTO struct {
	TournamentID int64          `json:"tournament_id"`
	Name         string         `json:"name"`
	Winner       *playerDTO     `json:"winner,omitempty"`
	RunnerUp     *playerDTO     `json:"runner_up,omitempty"`
	TopPlayers   []performerDTO `json:"top_players"`
}

type awardDTO struct {
	Player    playerDTO `json:"player"`
	Placement string    `json:"placement"`
	Points    int       `json:"points"`
}

type playerRankingDTO struct {
	CurrentRank          int       `json:"current_rank"`
	RankChange           int       `json:"rank_change"`
	Player               playerDTO `json:"player"`
	TotalPoints          int       `json:"total_points"`
	TournamentPoints     []int     `json:"tournament_points"`
	Total180s            int       `json:"total_180s"`
	Total171s            int       `json:"total_171s"`
	HighestFinish        int       `json:"highest_finish"`
	BestLeg              int       `json:"best_leg"`
	LegDifference        int       `json:"leg_difference"`
	MatchesPlayed        int       `json:"matches_played"`
	MatchesWon           int       `json:"matches_won"`
	LegsPlayed           int       `json:"legs_played"`
	LegsWon              int       `json:"legs_won"`
	WonLegsPercentage    float64   `json:"won_legs_percentage"`
	WonMatchesPercentage float64   `json:"won_matches_percentage"`
}

type seriesOverviewDTO struct {
	Series      seriesDTO          `json:"series"`
	Tournaments int                `json:"tournaments"`
	Leader      *playerRankingDTO  `json:"leader,omitempty"`
	Rankings    []playerRankingDTO `json:"rankings"`
}

func formatUTC(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{ID: p.ID, Name: p.Name}
}

func playerPtrToDTO(p *player.Player) *playerDTO {
	if p == nil {
		return nil
	}
	out := playerToDTO(*p)
	return &out
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func seriesToDTO(s series.Series) seriesDTO {
	return seriesDTO{ID: s.ID, Name: s.Name, CreatedAtUTC: formatUTC(s.CreatedAt)}
}

func matchStatsToDTO(s tournament.MatchStatistics) matchStatsDTO {
	return matchStatsDTO{
		Count180s:     s.Count180s,
		Count171s:     s.Count171s,
		HighestFinish: s.HighestFinish,
		BestLeg:       s.BestLeg,
	}
}

func matchStatsFromRequest(s matchStatsRequest) tournament.MatchStatistics {
	return tournament.MatchStatistics{
		Count180s:     s.Count180s,
		Count171s:     s.Count171s,
		HighestFinish: s.HighestFinish,
		BestLeg:       s.BestLeg,
	}
}

func matchToDTO(m tournament.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		GroupID:      m.GroupID,
		Round:        string(m.Round),
		Player1:      playerPtrToDTO(m.Player1),
		Player2:      playerPtrToDTO(m.Player2),
		Player1Score: m.Player1Score,
		Player2Score: m.Player2Score,
		Completed:    m.Completed,
		Player1Stats: matchStatsToDTO(m.Player1Stats),
		Player2Stats: matchStatsToDTO(m.Player2Stats),
	}
}

func matchesToDTO(items []tournament.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	groups := make([]groupDTO, 0, len(t.Groups))
	for _, g := range t.Groups {
		groups = append(groups, groupDTO{
			ID:      g.ID,
			Players: playersToDTO(g.Players),
			Matches: matchesToDTO(g.Matches),
		})
	}
	return tournamentDTO{
		ID:                   t.ID,
		Name:                 t.Name,
		DateUTC:              formatUTC(t.Date),
		SeriesID:             t.SeriesID,
		Completed:            t.Completed,
		KnockoutStageStarted: t.KnockoutStageStarted,
		Participants:         playersToDTO(t.Participants),
		Groups:               groups,
		KnockoutMatches:      matchesToDTO(t.KnockoutMatches),
	}
}

func tournamentToListItemDTO(t tournament.Tournament) tournamentListItemDTO {
	return tournamentListItemDTO{
		ID:                   t.ID,
		Name:                 t.Name,
		DateUTC:              formatUTC(t.Date),
		SeriesID:             t.SeriesID,
		Completed:            t.Completed,
		KnockoutStageStarted: t.KnockoutStageStarted,
		Participants:         len(t.Participants),
	}
}

func groupStandingsToDTO(items []usecase.GroupStandings) []groupStandingsDTO {
	out := make([]groupStandingsDTO, 0, len(items))
	for _, g := range items {
		rows := make([]standingDTO, 0, len(g.Standings))
		for _, s := range g.Standings {
			rows = append(rows, standingDTO{
				Position:      s.Position,
				Player:        playerToDTO(s.Player),
				Matches:       s.Played,
				Wins:          s.Wins,
				Losses:        s.Losses,
				Points:        s.Points,
				LegDifference: s.LegDifference,
			})
		}
		out = append(out, groupStandingsDTO{GroupID: g.GroupID, Completed: g.Completed, Standings: rows})
	}
	return out
}

func bracketToDTO(rounds []tournament.BracketRound) []bracketRoundDTO {
	out := make([]bracketRoundDTO, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, bracketRoundDTO{Round: string(r.Round), Matches: matchesToDTO(r.Matches)})
	}
	return out
}

func summaryToDTO(s tournament.Summary) summaryDTO {
	top := make([]performerDTO, 0, len(s.TopPlayers))
	for _, p := range s.TopPlayers {
		top = append(top, performerDTO{Player: playerToDTO(p.Player), Points: p.Points})
	}
	return summaryDTO{
		TournamentID: s.TournamentID,
		Name:         s.Name,
		Winner:       playerPtrToDTO(s.Winner),
		RunnerUp:     playerPtrToDTO(s.RunnerUp),
		TopPlayers:   top,
	}
}

func awardsToDTO(items []ranking.Award) []awardDTO {
	out := make([]awardDTO, 0, len(items))
	for _, a := range items {
		out = append(out, awardDTO{Player: playerToDTO(a.Player), Placement: string(a.Placement), Points: a.Points})
	}
	return out
}

func playerRankingToDTO(r ranking.PlayerRanking) playerRankingDTO {
	points := r.TournamentPoints
	if points == nil {
		points = []int{}
	}
	return playerRankingDTO{
		CurrentRank:          r.CurrentRank,
		RankChange:           r.RankChange,
		Player:               playerToDTO(r.Player),
		TotalPoints:          r.TotalPoints,
		TournamentPoints:     points,
		Total180s:            r.Total180s,
		Total171s:            r.Total171s,
		HighestFinish:        r.HighestFinish,
		BestLeg:              r.BestLeg,
		LegDifference:        r.LegDifference,
		MatchesPlayed:        r.MatchesPlayed,
		MatchesWon:           r.MatchesWon,
		LegsPlayed:           r.LegsPlayed,
		LegsWon:              r.LegsWon,
		WonLegsPercentage:    r.WonLegsPercentage,
		WonMatchesPercentage: r.WonMatchesPercentage,
	}
}

func rankingsToDTO(rows []ranking.PlayerRanking) []playerRankingDTO {
	out := make([]playerRankingDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, playerRankingToDTO(r))
	}
	return out
}

func seriesOverviewToDTO(items []usecase.SeriesOverview) []seriesOverviewDTO {
	out := make([]seriesOverviewDTO, 0, len(items))
	for _, item := range items {
		dto := seriesOverviewDTO{
			Series:      seriesToDTO(item.Series),
			Tournaments: item.Tournaments,
			Rankings:    rankingsToDTO(item.Rankings),
		}
		if item.Leader != nil {
			leader := playerRankingToDTO(*item.Leader)
			dto.Leader = &leader
		}
		out = append(out, dto)
	}
	return out
}
