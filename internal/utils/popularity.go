package utils

import "math"

// PopularityConfig weights the signals that feed a snippet's popularity score.
type PopularityConfig struct {
	WeightRating   float64
	WeightBookmark float64
	WeightDownload float64
	ScaleFactor    float64
}

var DefaultPopularity = PopularityConfig{
	WeightRating:   2.0,
	WeightBookmark: 3.0,
	WeightDownload: 0.5,
	ScaleFactor:    100.0,
}

// CalculatePopularity folds ratings, bookmarks and downloads into a single
// integer score. Downloads dwarf the other signals in raw counts, so the
// weighted sum is log-smoothed before scaling.
func CalculatePopularity(ratingSum, bookmarks, downloads int) int {
	weightedSum := float64(ratingSum)*DefaultPopularity.WeightRating +
		float64(bookmarks)*DefaultPopularity.WeightBookmark +
		float64(downloads)*DefaultPopularity.WeightDownload

	if weightedSum < 0 {
		weightedSum = 0 // heavily downvoted snippets bottom out at zero
	}

	// log10(sum + 1) keeps sum=0 at exactly 0
	logScore := math.Log10(weightedSum + 1)

	return int(math.Round(logScore * DefaultPopularity.ScaleFactor))
}
