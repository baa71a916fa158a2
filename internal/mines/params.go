package mines

import (
	"fmt"
)

type GameParams struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) ValidatePosition(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.CellCount() {
		return fmt.Errorf(
			"mine count %d out of range for a %dx%d board",
			p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

// Seed renders params in a short "width:height:mines" form usable in
// urls and logs.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	var p GameParams
	_, err := fmt.Sscanf(seed, "%d:%d:%d", &p.Width, &p.Height, &p.MineCount)
	if err != nil {
		return nil, fmt.Errorf("malformed seed %q: %w", seed, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
