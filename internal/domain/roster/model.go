package roster

// Club is an active franchise, identified by its three-letter abbreviation.
type Club struct {
	Abbrev string
	Name   string
}

// Player is a rostered skater or goalie selectable for analysis.
type Player struct {
	ID         int64
	Name       string
	ClubAbbrev string
	Position   string
}
