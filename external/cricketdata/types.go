package cricketdata

// envelope is the provider's standard response wrapper. Every endpoint wraps
// its payload in {status, data, info}; info carries pagination counters.
type envelope[T any] struct {
	Status string   `json:"status"`
	Data   []T      `json:"data"`
	Info   pageInfo `json:"info"`
}

type pageInfo struct {
	HitsToday  int `json:"hitsToday"`
	HitsLimit  int `json:"hitsLimit"`
	Credits    int `json:"credits"`
	OffsetRows int `json:"offsetRows"`
	TotalRows  int `json:"totalRows"`
}

// RawCountry is an as-received country record.
type RawCountry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawSeries is an as-received series record.
type RawSeries struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ODI       int    `json:"odi"`
	T20       int    `json:"t20"`
	Test      int    `json:"test"`
	Squads    int    `json:"squads"`
	Matches   int    `json:"matches"`
}

// RawPlayer is an as-received player record. Optional style fields may be
// empty; the resolver decides their defaults.
type RawPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle"`
}

// RawMatch is an as-received match record. Teams is the provider's pair of
// team names; records with fewer than two names cannot be resolved.
type RawMatch struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MatchType      string   `json:"matchType"`
	Status         string   `json:"status"`
	Venue          string   `json:"venue"`
	Date           string   `json:"date"`
	DateTimeGMT    string   `json:"dateTimeGMT"`
	Teams          []string `json:"teams"`
	SeriesID       string   `json:"series_id"`
	FantasyEnabled bool     `json:"fantasyEnabled"`
	BBBEnabled     bool     `json:"bbbEnabled"`
	HasSquad       bool     `json:"hasSquad"`
	MatchStarted   bool     `json:"matchStarted"`
	MatchEnded     bool     `json:"matchEnded"`
}
