package scoring

import "github.com/raphaelgruber/rebuttal-go/internal/models"

// Rate classifies an overall score into a rating band. Bounds are inclusive
// on the lower edge of each band.
func Rate(overall int) models.Rating {
	switch {
	case overall >= 90:
		return models.RatingExcellent
	case overall >= 75:
		return models.RatingStrong
	case overall >= 60:
		return models.RatingGood
	case overall >= 45:
		return models.RatingFair
	default:
		return models.RatingNeedsImprovement
	}
}
