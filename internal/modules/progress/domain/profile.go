package domain

const (
	SessionXP = 50
	TaskXP    = 20
)

// Profile is the XP ladder. XP is the progress inside the current level.
type Profile struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

func NewProfile() Profile {
	return Profile{Level: 1}
}

func (p Profile) NextLevelXP() int {
	if p.Level < 1 {
		return 100
	}
	return p.Level * 100
}

// AddXP awards amount and promotes at most one level per award.
func (p Profile) AddXP(amount int) (Profile, bool) {
	if p.Level < 1 {
		p.Level = 1
	}
	if amount <= 0 {
		return p, false
	}
	p.XP += amount
	threshold := p.NextLevelXP()
	if p.XP >= threshold {
		p.Level++
		p.XP -= threshold
		return p, true
	}
	return p, false
}

func (p Profile) Rank() string {
	switch {
	case p.Level >= 50:
		return "Grandmaster"
	case p.Level >= 25:
		return "Expert"
	case p.Level >= 10:
		return "Apprentice"
	default:
		return "Novice"
	}
}
