// Package scoring turns logged exercises into points and rolls them up into
// workout and user totals. Every function here is pure: missing data scores
// zero and nothing returns an error.
package scoring

import (
	"math"

	"github.com/misterclayt0n/fittrack/internal/models"
)

const (
	cardioDistancePoints = 20.0
	cardioPacePoints     = 10.0

	liftingVolumeDivisor = 10.0

	strengthMaxReps    = 5
	hypertrophyMaxReps = 12

	strengthMultiplier    = 1.5
	hypertrophyMultiplier = 1.0
	enduranceMultiplier   = 0.8

	// scoreQuantum is the resolution at which totals are compared.
	scoreQuantum = 1e6
)

// ExerciseScore returns the points earned by a single exercise.
func ExerciseScore(ex models.Exercise) float64 {
	switch ex.Type {
	case models.ExerciseTypeCardio:
		return CardioScore(ex.Distance, ex.Duration)
	case models.ExerciseTypeLifting:
		return LiftingScore(ex.Weight, ex.Reps, ex.Sets)
	default:
		return 0
	}
}

// CardioScore awards 20 points per unit of distance plus a pace bonus of
// 10 points per unit of distance per hour. Duration alone earns nothing.
func CardioScore(distance, duration *float64) float64 {
	if distance == nil {
		return 0
	}

	score := *distance * cardioDistancePoints
	if duration != nil && *duration > 0 {
		hours := *duration / 3600
		pace := *distance / hours
		score += pace * cardioPacePoints
	}
	return score
}

// LiftingScore is volume/10 scaled by the rep range multiplier. Any missing
// attribute yields zero.
func LiftingScore(weight *float64, reps, sets *int) float64 {
	if weight == nil || reps == nil || sets == nil {
		return 0
	}

	volume := *weight * float64(*reps) * float64(*sets) / liftingVolumeDivisor
	return volume * RepMultiplier(*reps)
}

// RepMultiplier maps reps to the intensity multiplier. Boundaries are
// inclusive: 5 reps is strength work, 6 through 12 hypertrophy, 13 and up
// endurance.
func RepMultiplier(reps int) float64 {
	switch {
	case reps <= strengthMaxReps:
		return strengthMultiplier
	case reps <= hypertrophyMaxReps:
		return hypertrophyMultiplier
	default:
		return enduranceMultiplier
	}
}

func WorkoutScore(w models.Workout) float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += ExerciseScore(ex)
	}
	return total
}

// UserTotalScore derives the user's total from their current workouts.
func UserTotalScore(u models.User) float64 {
	return WorkoutsScore(u.Workouts)
}

func WorkoutsScore(workouts []models.Workout) float64 {
	var total float64
	for _, w := range workouts {
		total += WorkoutScore(w)
	}
	return total
}

// RoundScore quantizes a total to six decimal places. Totals are compared
// through it so that sums taken in a different order, or by the database,
// still tie.
func RoundScore(score float64) float64 {
	return math.Round(score*scoreQuantum) / scoreQuantum
}
