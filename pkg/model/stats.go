package model

// UsageStats holds per-kind record counts for one owner
type UsageStats struct {
	ChatCount      int `json:"chatCount"`
	CodeCount      int `json:"codeCount"`
	ImageCount     int `json:"imageCount"`
	OptimizerCount int `json:"optimizerCount"`
}

// Set assigns the count for the given kind
func (s *UsageStats) Set(kind Kind, count int) {
	switch kind {
	case KindChat:
		s.ChatCount = count
	case KindCode:
		s.CodeCount = count
	case KindImage:
		s.ImageCount = count
	case KindOptimizer:
		s.OptimizerCount = count
	}
}
