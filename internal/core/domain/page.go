package domain

// Page bounds a list query. A zero Limit means no bound.
type Page struct {
	Limit  int
	Offset int
}

// MaxPageLimit caps client supplied limits.
const MaxPageLimit = 100

// Normalize clamps negative values and caps Limit.
func (p Page) Normalize() Page {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
