package playoffs

// Column headers as published in basketball-reference per-game playoff tables.
const (
	ColumnRank    = "Rk"
	ColumnPlayer  = "Player"
	ColumnTeam    = "Tm"
	ColumnTeamAlt = "Team"
	ColumnGames   = "G"
	ColumnMinutes = "MP"
	ColumnPoints  = "PTS"
	ColumnSeason  = "Season"
)

// RawRow is one untyped line of a raw table keyed by column header.
type RawRow map[string]string

// RawTable is a season's table as delivered by a provider, before cleaning.
type RawTable struct {
	Season  int      `json:"season"`
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}

// HasColumn reports whether the table declares the given header.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PlayerSeasonRecord is one player's cleaned per-game line for a playoff season.
type PlayerSeasonRecord struct {
	Season         int     `json:"season"`
	Player         string  `json:"player"`
	Team           string  `json:"team,omitempty"`
	Games          int     `json:"games"`
	MinutesPerGame float64 `json:"minutesPerGame"`
	PointsPerGame  float64 `json:"pointsPerGame"`
	TotalPoints    float64 `json:"totalPoints"`
	PointsPer48    float64 `json:"pointsPer48"`
}

// SeasonRecords groups cleaned records under the season they were cleaned for.
type SeasonRecords struct {
	Season  int                  `json:"season"`
	Records []PlayerSeasonRecord `json:"records"`
}

// SeasonSummary is the per-season scoring efficiency rollup.
type SeasonSummary struct {
	Season         int     `json:"season"`
	AvgPointsPer48 float64 `json:"avgPointsPer48"`
}

// UsageCategory labels how a player-season's scoring relates to playing time.
type UsageCategory string

const (
	CategoryMinutesDependent UsageCategory = "minutes_dependent"
	CategoryUnderutilized    UsageCategory = "underutilized"
	CategoryStandard         UsageCategory = "standard"
)

// Categories lists every usage category in display order.
func Categories() []UsageCategory {
	return []UsageCategory{CategoryMinutesDependent, CategoryUnderutilized, CategoryStandard}
}

// Valid reports whether c is one of the known categories.
func (c UsageCategory) Valid() bool {
	switch c {
	case CategoryMinutesDependent, CategoryUnderutilized, CategoryStandard:
		return true
	default:
		return false
	}
}

// ClassifiedRecord is a record with its derived usage category attached.
type ClassifiedRecord struct {
	PlayerSeasonRecord
	Category UsageCategory `json:"category"`
}
