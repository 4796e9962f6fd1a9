package leaguestat

// RawGameEntry mirrors one schedule row exactly as the feed delivers it.
// Every scalar arrives as a string, including the goal counts, and the date
// carries no year ("Sat, Nov 30").
type RawGameEntry struct {
	GameID            string `json:"game_id"`
	DateWithDay       string `json:"date_with_day"`
	GameTime          string `json:"game_time"`
	HomeTeamCity      string `json:"home_team_city"`
	VisitingTeamCity  string `json:"visiting_team_city"`
	HomeGoalCount     string `json:"home_goal_count"`
	VisitingGoalCount string `json:"visiting_goal_count"`
	GameStatus        string `json:"game_status"`
	Attendance        string `json:"attendance"`
	VenueName         string `json:"venue_name"`
	HomeTeamID        string `json:"home_team_id"`
	VisitingTeamID    string `json:"visiting_team_id"`
}

// The schedule view nests rows three levels deep:
// [{"sections":[{"data":[{"row":{...}}]}]}].
type scheduleEnvelope []scheduleElement

type scheduleElement struct {
	Sections []scheduleSection `json:"sections"`
}

type scheduleSection struct {
	Data []scheduleRow `json:"data"`
}

type scheduleRow struct {
	Row RawGameEntry `json:"row"`
}
