package rating

import "github.com/mcoot/pongarena-go/internal/model"

// tierBand is one named rating band. Bands are ordered by ascending floor;
// the lowest band is the fallback for any rating below every floor.
type tierBand struct {
	tier  model.Tier
	floor int
}

// Six ordered bands. The top band is undivided.
var tierBands = []tierBand{
	{model.TierBronze, 0},
	{model.TierSilver, 1000},
	{model.TierGold, 1200},
	{model.TierPlatinum, 1400},
	{model.TierDiamond, 1600},
	{model.TierMaster, 1800},
}

var divisions = []model.Division{
	model.DivisionIV, // lowest quarter of the band
	model.DivisionIII,
	model.DivisionII,
	model.DivisionI,
}

// TierFor maps a rating to its tier and division. Total over all
// ratings >= 0; the top tier reports DivisionNone, every other tier
// splits its band into four equal-width divisions.
func TierFor(ratingValue int) (model.Tier, model.Division) {
	idx := 0
	for i, band := range tierBands {
		if ratingValue >= band.floor {
			idx = i
		}
	}

	band := tierBands[idx]
	if idx == len(tierBands)-1 {
		return band.tier, model.DivisionNone
	}

	width := tierBands[idx+1].floor - band.floor
	quarter := (ratingValue - band.floor) * 4 / width
	if quarter > 3 {
		quarter = 3
	}
	if quarter < 0 {
		quarter = 0
	}
	return band.tier, divisions[quarter]
}
