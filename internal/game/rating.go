package game

const (
	MaxStars = 5
	MinStars = 2
)

// Stars maps a mistake count to a star rating: 5 for a clean run, one star
// lost per mistake, never below MinStars.
func Stars(mistakes int) int {
	if mistakes < 0 {
		mistakes = 0
	}
	return max(MinStars, MaxStars-mistakes)
}
