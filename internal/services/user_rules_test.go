package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshmart/backend/internal/models"
)

func TestNextMembershipTier(t *testing.T) {
	tests := []struct {
		name    string
		current models.MembershipTier
		points  int
		want    models.MembershipTier
	}{
		{"below first threshold stays bronze", models.TierBronze, 1999, models.TierBronze},
		{"silver at 2000", models.TierBronze, 2000, models.TierSilver},
		{"gold at 5000", models.TierBronze, 5000, models.TierGold},
		{"platinum at 10000", models.TierBronze, 10000, models.TierPlatinum},
		{"well past platinum", models.TierBronze, 250000, models.TierPlatinum},
		{"silver upgrades to gold", models.TierSilver, 6000, models.TierGold},
		{"never downgrades on low points", models.TierGold, 100, models.TierGold},
		{"never downgrades across a lower threshold", models.TierPlatinum, 2500, models.TierPlatinum},
		{"equal tier is kept", models.TierSilver, 2100, models.TierSilver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextMembershipTier(tt.current, tt.points))
		})
	}
}
