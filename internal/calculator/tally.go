// Package calculator aggregates the votes cast within a group.
// Everything here is pure: no storage, no context.
package calculator

import "sort"

// Ballot is one member's selections, the minimal input for a tally.
type Ballot struct {
	MemberID   string
	Categories []string
	Rating     *float64
}

// CategoryCount is the number of ballots naming a category.
type CategoryCount struct {
	Category string
	Votes    int
}

// Result summarizes a group's ballots.
type Result struct {
	// Ballots is the input, in cast order.
	Ballots []Ballot

	// Counts is sorted by votes descending; ties keep first-appearance order.
	Counts []CategoryCount

	// Winners holds every category tied for the most votes.
	// Empty when no ballot names any category.
	Winners []string

	// MeanRating averages the ballots that carry a rating. Nil if none do.
	MeanRating *float64

	// RatedBallots is the number of ballots included in MeanRating.
	RatedBallots int
}

// Tally counts each category once per ballot and picks the most-voted ones.
//
// A category listed twice on the same ballot counts once. Empty labels are
// ignored.
func Tally(ballots []Ballot) Result {
	result := Result{Ballots: ballots}

	index := make(map[string]int)
	var ratingSum float64

	for _, ballot := range ballots {
		seen := make(map[string]bool, len(ballot.Categories))
		for _, category := range ballot.Categories {
			if category == "" || seen[category] {
				continue
			}
			seen[category] = true

			i, ok := index[category]
			if !ok {
				i = len(result.Counts)
				index[category] = i
				result.Counts = append(result.Counts, CategoryCount{Category: category})
			}
			result.Counts[i].Votes++
		}

		if ballot.Rating != nil {
			ratingSum += *ballot.Rating
			result.RatedBallots++
		}
	}

	// Stable sort keeps first-appearance order among equal counts
	sort.SliceStable(result.Counts, func(i, j int) bool {
		return result.Counts[i].Votes > result.Counts[j].Votes
	})

	result.Winners = MostVoted(result.Counts)

	if result.RatedBallots > 0 {
		mean := ratingSum / float64(result.RatedBallots)
		result.MeanRating = &mean
	}

	return result
}

// MostVoted returns the categories sharing the highest count.
// counts must already be sorted by votes descending.
func MostVoted(counts []CategoryCount) []string {
	if len(counts) == 0 {
		return nil
	}

	top := counts[0].Votes
	var winners []string
	for _, c := range counts {
		if c.Votes != top {
			break
		}
		winners = append(winners, c.Category)
	}
	return winners
}
