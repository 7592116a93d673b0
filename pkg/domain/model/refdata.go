package model

// ReferenceData bundles the authored lookup tables the engines are fed:
// sector risk profiles, geography regulatory profiles, and evidence
// requirements. The host loads it once at startup; it is never mutated.
type ReferenceData struct {
	Sectors      map[string]SectorProfile
	Geographies  map[string]GeographyProfile
	Requirements []EvidenceRequirement
}

// Sector looks up a sector profile by code. Returns nil when the sector is
// unknown; absent reference data contributes zero score, it is not an error.
func (r *ReferenceData) Sector(code string) *SectorProfile {
	if r == nil {
		return nil
	}
	if p, ok := r.Sectors[code]; ok {
		return &p
	}
	return nil
}

// GeographyList resolves geography codes to profiles, preserving input
// order and silently skipping unknown codes.
func (r *ReferenceData) GeographyList(codes []string) []GeographyProfile {
	if r == nil {
		return nil
	}
	profiles := make([]GeographyProfile, 0, len(codes))
	for _, code := range codes {
		if p, ok := r.Geographies[code]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// RequirementsFor filters requirements by the organization's sector and
// geographies. A requirement with an empty filter list applies to everyone.
func (r *ReferenceData) RequirementsFor(sector string, geographies []string) []EvidenceRequirement {
	if r == nil {
		return nil
	}
	geoSet := make(map[string]bool, len(geographies))
	for _, g := range geographies {
		geoSet[g] = true
	}

	var out []EvidenceRequirement
	for _, req := range r.Requirements {
		if len(req.AppliesTo.Sectors) > 0 && !contains(req.AppliesTo.Sectors, sector) {
			continue
		}
		if len(req.AppliesTo.Geographies) > 0 && !containsAny(req.AppliesTo.Geographies, geoSet) {
			continue
		}
		out = append(out, req)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAny(list []string, set map[string]bool) bool {
	for _, s := range list {
		if set[s] {
			return true
		}
	}
	return false
}
