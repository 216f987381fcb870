package cwe

import (
	"encoding/json"
	"strings"
)

// Wire shapes for the weakness endpoint. Every reference field arrives as an
// array of objects; normalization flattens each to the string leaves we
// actually use and drops entries with empty text.

type weaknessEnvelope struct {
	Weaknesses []wireWeakness `json:"Weaknesses"`
}

type wireWeakness struct {
	ID                    json.Number      `json:"ID"`
	Name                  string           `json:"Name"`
	Description           string           `json:"Description"`
	ExtendedDescription   string           `json:"ExtendedDescription"`
	PotentialMitigations  []wireMitigation `json:"PotentialMitigations"`
	DetectionMethods      []wireDetection  `json:"DetectionMethods"`
	DemonstrativeExamples []wireExample    `json:"DemonstrativeExamples"`
	RelatedWeaknesses     []wireRelated    `json:"RelatedWeaknesses"`
	ApplicablePlatforms   []wirePlatform   `json:"ApplicablePlatforms"`
}

type wireMitigation struct {
	Phase       string `json:"Phase"`
	Description string `json:"Description"`
}

type wireDetection struct {
	Method      string `json:"Method"`
	Description string `json:"Description"`
}

type wireExample struct {
	IntroText string `json:"IntroText"`
}

type wireRelated struct {
	Nature string `json:"Nature"`
	CweID  string `json:"CweID"`
}

type wirePlatform struct {
	Type string `json:"Type"`
	Name string `json:"Name"`
}

func normalizeWeakness(w wireWeakness) WeaknessRecord {
	rec := WeaknessRecord{
		ID:                  Normalize(w.ID.String()),
		Name:                strings.TrimSpace(w.Name),
		Description:         strings.TrimSpace(w.Description),
		ExtendedDescription: strings.TrimSpace(w.ExtendedDescription),
	}
	for _, m := range w.PotentialMitigations {
		if s := strings.TrimSpace(m.Description); s != "" {
			rec.Mitigations = append(rec.Mitigations, s)
		}
	}
	for _, d := range w.DetectionMethods {
		s := strings.TrimSpace(d.Description)
		if s == "" {
			s = strings.TrimSpace(d.Method)
		}
		if s != "" {
			rec.DetectionMethods = append(rec.DetectionMethods, s)
		}
	}
	for _, e := range w.DemonstrativeExamples {
		if s := strings.TrimSpace(e.IntroText); s != "" {
			rec.Examples = append(rec.Examples, s)
		}
	}
	for _, r := range w.RelatedWeaknesses {
		if r.CweID != "" {
			rec.RelatedWeaknesses = append(rec.RelatedWeaknesses, Normalize(r.CweID))
		}
	}
	for _, p := range w.ApplicablePlatforms {
		if s := strings.TrimSpace(p.Name); s != "" {
			rec.ApplicablePlatforms = append(rec.ApplicablePlatforms, s)
		}
	}
	return rec
}
