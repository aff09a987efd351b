package scoring

import "github.com/raphaelgruber/rebuttal-go/internal/models"

// tipThreshold is the sub-score below which a dimension gets remediation tips.
const tipThreshold = 70

// Tip tables are data, not templates. Each dimension below the threshold
// contributes its fixed pair, checked in logical, confidence, clarity order;
// a transcript with no weak dimension gets the affirming pair instead.
var (
	logicalTips = []string{
		"Structure your arguments with clear premises and conclusions",
		"Support your claims with specific examples or evidence",
	}

	confidenceTips = []string{
		"Use stronger, more assertive language",
		"Avoid hedging words like 'maybe', 'perhaps', or 'I think'",
	}

	clarityTips = []string{
		"Break down complex ideas into simpler points",
		"Use transition words to connect your arguments",
	}

	affirmingTips = []string{
		"Excellent work! Continue practicing with more challenging topics",
		"Try the Competitive mode for deeper analysis",
	}
)

// Tips returns the improvement tips for a score breakdown. The result is
// never empty.
func Tips(s models.Score) []string {
	var tips []string
	if s.Logical < tipThreshold {
		tips = append(tips, logicalTips...)
	}
	if s.Confidence < tipThreshold {
		tips = append(tips, confidenceTips...)
	}
	if s.Clarity < tipThreshold {
		tips = append(tips, clarityTips...)
	}
	if len(tips) == 0 {
		tips = append(tips, affirmingTips...)
	}
	return tips
}
