package engine

import (
	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
)

// Failure probability bounds. No risk-rolled action is ever a guaranteed
// success or a guaranteed failure.
const (
	minFailureChance = 0.05
	maxFailureChance = 0.95
)

const (
	attributeRiskWeight = 0.01
	charismaRiskWeight  = 0.02
	stressRiskWeight    = 0.002
)

// failureChance computes the probability that a risk-rolled action fails,
// from its declared base risk, the effective attributes, and current stress:
//
//	labor:     risk - (STR+CON)*0.01    + stress*0.002
//	adventure: risk - (STR+DEX+AC)*0.01 + stress*0.002
//	social:    risk - CHA*0.02          + stress*0.002
//
// Postcondition: the result is within [minFailureChance, maxFailureChance].
func failureChance(a *content.Action, d character.Derived, stress int) float64 {
	p := a.Risk + float64(stress)*stressRiskWeight
	switch a.Category {
	case content.CategoryLabor:
		p -= float64(d.Str+d.Con) * attributeRiskWeight
	case content.CategoryAdventure:
		p -= float64(d.Str+d.Dex+d.AC) * attributeRiskWeight
	case content.CategorySocial:
		p -= float64(d.Cha) * charismaRiskWeight
	}
	if p < minFailureChance {
		return minFailureChance
	}
	if p > maxFailureChance {
		return maxFailureChance
	}
	return p
}
