package rating

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pongarena-go/internal/model"
)

type TiersSuite struct {
	suite.Suite
}

func TestTiersSuite(t *testing.T) {
	suite.Run(t, new(TiersSuite))
}

func (s *TiersSuite) TestTierFloors() {
	cases := []struct {
		rating int
		tier   model.Tier
	}{
		{0, model.TierBronze},
		{999, model.TierBronze},
		{1000, model.TierSilver},
		{1199, model.TierSilver},
		{1200, model.TierGold},
		{1399, model.TierGold},
		{1400, model.TierPlatinum},
		{1599, model.TierPlatinum},
		{1600, model.TierDiamond},
		{1799, model.TierDiamond},
		{1800, model.TierMaster},
		{5000, model.TierMaster},
	}

	for _, tc := range cases {
		tier, _ := TierFor(tc.rating)
		s.Equal(tc.tier, tier, "rating %d", tc.rating)
	}
}

func (s *TiersSuite) TestDivisionsAscendWithinBand() {
	// Silver spans 1000-1199, split into four 50-point divisions
	cases := []struct {
		rating   int
		division model.Division
	}{
		{1000, model.DivisionIV},
		{1049, model.DivisionIV},
		{1050, model.DivisionIII},
		{1100, model.DivisionII},
		{1150, model.DivisionI},
		{1199, model.DivisionI},
	}

	for _, tc := range cases {
		tier, division := TierFor(tc.rating)
		s.Equal(model.TierSilver, tier, "rating %d", tc.rating)
		s.Equal(tc.division, division, "rating %d", tc.rating)
	}
}

func (s *TiersSuite) TestBronzeDivisionsSpanWideBand() {
	// Bronze spans 0-999, split into four 250-point divisions
	_, division := TierFor(0)
	s.Equal(model.DivisionIV, division)

	_, division = TierFor(499)
	s.Equal(model.DivisionIII, division)

	_, division = TierFor(750)
	s.Equal(model.DivisionI, division)
}

func (s *TiersSuite) TestTopTierIsUndivided() {
	_, division := TierFor(1800)
	s.Equal(model.DivisionNone, division)

	_, division = TierFor(3000)
	s.Equal(model.DivisionNone, division)
}

func (s *TiersSuite) TestTotalOverAllRatings() {
	// Every rating maps to some tier; divisions only vanish in the top tier
	for ratingValue := 0; ratingValue <= 2000; ratingValue += 7 {
		tier, division := TierFor(ratingValue)
		s.NotEmpty(tier, "rating %d", ratingValue)
		if tier != model.TierMaster {
			s.NotEqual(model.DivisionNone, division, "rating %d", ratingValue)
		}
	}
}
