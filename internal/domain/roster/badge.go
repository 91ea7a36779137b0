package roster

// Badge is the podium tier shown next to the top three ranks.
type Badge string

// Badge tiers. BadgeNone is the zero value.
const (
	BadgeNone   Badge = ""
	BadgeGold   Badge = "gold"
	BadgeSilver Badge = "silver"
	BadgeBronze Badge = "bronze"
)

// BadgeFor maps a rank to its tier.
func BadgeFor(rank int) Badge {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return BadgeNone
	}
}
