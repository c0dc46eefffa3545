// Package scoring computes pillar scores and the overall readiness score
// for audit reports. All scoring constants live here so the scale of each
// pillar is visible in one place.
package scoring
