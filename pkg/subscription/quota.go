package subscription

import (
	"Menu-Builder-Backend/domain"
)

// Unlimited marks a ceiling that never blocks.
const Unlimited = -1

type TierLimits struct {
	Restaurants int
	MenuItems   int
}

var tierLimits = map[string]TierLimits{
	domain.TierFree:    {Restaurants: 1, MenuItems: 20},
	domain.TierPremium: {Restaurants: 2, MenuItems: Unlimited},
	domain.TierAgency:  {Restaurants: 100, MenuItems: Unlimited},
}

// LimitsFor returns the ceilings of tier. Unknown tiers get the free limits.
func LimitsFor(tier string) TierLimits {
	if l, ok := tierLimits[tier]; ok {
		return l
	}
	return tierLimits[domain.TierFree]
}

func IsKnownTier(tier string) bool {
	_, ok := tierLimits[tier]
	return ok
}

// CheckRestaurantQuota reports whether one more restaurant fits.
func CheckRestaurantQuota(tier string, currentCount int) bool {
	return fits(LimitsFor(tier).Restaurants, currentCount, 1)
}

// CheckItemQuota reports whether one more menu item fits.
func CheckItemQuota(tier string, currentCount int) bool {
	return fits(LimitsFor(tier).MenuItems, currentCount, 1)
}

func CanImportMoreItems(tier string, currentItemCount int) bool {
	return CheckItemQuota(tier, currentItemCount)
}

// CheckItemBatch reports whether adding requested items stays within the
// ceiling.
func CheckItemBatch(tier string, currentCount, requested int) bool {
	return fits(LimitsFor(tier).MenuItems, currentCount, requested)
}

// RemainingItems returns how many items can still be added. The second
// value is false when the tier is unlimited.
func RemainingItems(tier string, currentCount int) (int, bool) {
	limit := LimitsFor(tier).MenuItems
	if limit == Unlimited {
		return 0, false
	}
	return max(limit-currentCount, 0), true
}

func fits(limit, current, requested int) bool {
	if limit == Unlimited {
		return true
	}
	return current+requested <= limit
}
