package analyzer

import (
	"strings"

	"flipscan/internal/domain/entity"
)

// verdictFromText sniffs the agent's free-form answer for a verdict so the
// structured Report field stays populated even though the model writes
// prose. Order matters: "UNDERPRICED" must win over "PRICED".
func verdictFromText(text string) entity.Verdict {
	upper := strings.ToUpper(text)

	switch {
	case strings.Contains(upper, string(entity.VerdictUnderpriced)) || strings.Contains(upper, "ALERT"):
		return entity.VerdictUnderpriced
	case strings.Contains(upper, string(entity.VerdictGoodDeal)):
		return entity.VerdictGoodDeal
	case strings.Contains(upper, string(entity.VerdictOverpriced)):
		return entity.VerdictOverpriced
	case strings.Contains(upper, "FAIR"):
		return entity.VerdictFair
	default:
		return entity.VerdictUnknown
	}
}
