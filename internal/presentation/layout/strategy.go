package layout

import "io"

const (
	StyleFull = iota
	StyleMinimal
)

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(w io.Writer, view View, width int)
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		StyleFull:    &FullLayoutStrategy{},
		StyleMinimal: &MinimalLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to full dashboard if invalid style
	return &FullLayoutStrategy{}
}
