package overlap

// QualityLabel buckets the mean of an assignment's symmetry and
// consistency scores.
type QualityLabel int

const (
	QualityPoor QualityLabel = iota
	QualityAcceptable
	QualityGood
	QualityExcellent
)

func (q QualityLabel) String() string {
	switch q {
	case QualityExcellent:
		return "Excellent"
	case QualityGood:
		return "Good"
	case QualityAcceptable:
		return "Acceptable"
	case QualityPoor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// LabelForScore buckets a combined score into a quality label.
func LabelForScore(score float64) QualityLabel {
	switch {
	case score >= 0.90:
		return QualityExcellent
	case score >= 0.80:
		return QualityGood
	case score >= 0.70:
		return QualityAcceptable
	default:
		return QualityPoor
	}
}
