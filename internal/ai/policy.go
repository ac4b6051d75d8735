package ai

import (
	"fmt"
	"strings"

	"github.com/udisondev/horde/internal/model"
)

// TargetPolicy decides which qualifying scan candidate becomes the committed target.
type TargetPolicy int32

const (
	// PolicyFirst takes the first qualifying candidate in query order.
	// No distance ranking: whoever the spatial query reports first wins.
	PolicyFirst TargetPolicy = iota
	// PolicyNearest takes the closest qualifying candidate, ties broken by query order.
	PolicyNearest
)

// String returns policy name as used in config.
func (p TargetPolicy) String() string {
	switch p {
	case PolicyFirst:
		return "first"
	case PolicyNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ParseTargetPolicy parses a config value. Empty means PolicyFirst.
func ParseTargetPolicy(s string) (TargetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return PolicyFirst, nil
	case "nearest":
		return PolicyNearest, nil
	default:
		return PolicyFirst, fmt.Errorf("unknown target policy %q", s)
	}
}

// qualifies reports whether obj can be committed to: not self, has Target capability, alive.
func qualifies(self, obj *model.WorldObject) (model.Target, bool) {
	if obj == nil || obj.ObjectID() == self.ObjectID() {
		return nil, false
	}
	t, ok := model.TargetOf(obj)
	if !ok || t.IsDead() {
		return nil, false
	}
	return t, true
}

// selectTarget picks a candidate according to policy. Returns nil if none qualifies.
func selectTarget(policy TargetPolicy, self *model.WorldObject, candidates []*model.WorldObject) *model.WorldObject {
	var (
		best   *model.WorldObject
		bestSq float64
	)
	origin := self.Position()

	for _, obj := range candidates {
		if _, ok := qualifies(self, obj); !ok {
			continue
		}
		if policy == PolicyFirst {
			return obj
		}

		distSq := origin.DistanceSquared(obj.Position())
		if best == nil || distSq < bestSq {
			best = obj
			bestSq = distSq
		}
	}
	return best
}
