package services

import (
	"abconfig/internal/models"
	"time"
)

// defaultEventVariants seeds the variant store the way the shipped config
// asset would: every variant present with a safe baseline payload, ready to
// receive server data.
func defaultEventVariants() *models.AbData[*models.EventAbData] {
	ab := &models.AbData[*models.EventAbData]{}

	weekend := &models.ActivityPeriod{
		Start: models.WeekAnchor{Day: time.Friday, Time: models.TimeOfDay{Hour: 16}},
		End:   models.WeekAnchor{Day: time.Sunday, Time: models.TimeOfDay{Hour: 22}},
	}

	baseRewards := []models.RewardTier{
		{Points: 10, Rewards: []models.Reward{{Type: models.RewardSmall, Count: 1}}},
		{Points: 50, Rewards: []models.Reward{{Type: models.RewardBig, Count: 1}}},
		{Points: 100, Rewards: []models.Reward{{Type: models.RewardMega, Count: 1}}},
	}

	for _, v := range []models.Variant{models.VariantA, models.VariantB, models.VariantC} {
		ab.Set(v, &models.EventAbData{
			UnlockLevel:     0,
			ActivityPeriods: []*models.ActivityPeriod{weekend},
			Rewards:         baseRewards,
		})
	}

	return ab
}

func defaultEventIcons() []models.IconData {
	return []models.IconData{
		{Points: 10, Icon: "event_icon_bronze"},
		{Points: 50, Icon: "event_icon_silver"},
		{Points: 100, Icon: "event_icon_gold"},
	}
}
