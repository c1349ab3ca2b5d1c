package evalsrvc

// Score awards totalMarks in proportion to accepted tests, rounding half
// up. Integer arithmetic keeps it exact: floor((2·T·ac + n) / 2n).
// Only accepted verdicts count; every other outcome is zero credit.
func Score(verdicts []TestVerdict, totalMarks int) int {
	n := len(verdicts)
	if n == 0 || totalMarks <= 0 {
		return 0
	}
	accepted := 0
	for _, v := range verdicts {
		if v.Accepted() {
			accepted++
		}
	}
	return (2*totalMarks*accepted + n) / (2 * n)
}
