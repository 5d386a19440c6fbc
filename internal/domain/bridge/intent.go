// Package bridge converts informal patient interactions (chat messages)
// into formal intake cases. Classification is a deliberately crude keyword
// scan rather than a learned model: its output feeds safety-relevant
// routing, so every verdict must be explainable from the tables below.
package bridge

import "strings"

// bucket is one symptom category with its keyword list.
type bucket struct {
	Category string
	Keywords []string
}

// intentBuckets is the fixed classification table. Order matters: when two
// categories tie on match count, the earlier bucket wins.
var intentBuckets = []bucket{
	{"gastric", []string{
		"stomach", "acidity", "gas", "bloating", "indigestion",
		"constipation", "diarrhea", "vomiting", "nausea", "ulcer",
	}},
	{"respiratory", []string{
		"cough", "cold", "breathing", "breathless", "wheezing",
		"asthma", "congestion", "sore throat", "sinus",
	}},
	{"cardiac", []string{
		"chest", "palpitation", "heart", "blood pressure", "hypertension",
	}},
	{"stress", []string{
		"stress", "anxiety", "insomnia", "sleepless", "fatigue",
		"tension", "restless",
	}},
	{"pain", []string{
		"pain", "ache", "headache", "migraine", "cramp", "stiffness",
	}},
	{"skin", []string{
		"skin", "rash", "itching", "acne", "eczema", "allergy", "hair fall",
	}},
}

// autoCreateThreshold is the minimum confidence (one keyword hit) at which
// a chat message becomes a case.
const autoCreateThreshold = 25

// Intent is the classification of a free-text symptom message.
type Intent struct {
	Category   string   `json:"category"`
	Symptoms   []string `json:"symptoms,omitempty"`
	Confidence int      `json:"confidence"`
}

// InferIntent classifies a message by substring keyword matching. The
// category is the bucket with the most hits; ties keep the first bucket in
// declaration order. Confidence is min(100, total hits × 25).
func InferIntent(message string) Intent {
	lower := strings.ToLower(message)

	best := Intent{Category: "unknown"}
	bestCount := 0
	total := 0
	for _, b := range intentBuckets {
		var matched []string
		for _, kw := range b.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
		total += len(matched)
		if len(matched) > bestCount {
			bestCount = len(matched)
			best.Category = b.Category
			best.Symptoms = matched
		}
	}

	best.Confidence = total * 25
	if best.Confidence > 100 {
		best.Confidence = 100
	}
	return best
}
