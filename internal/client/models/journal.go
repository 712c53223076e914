// Package models contains the record types persisted by the journal client.
package models

import "time"

// JournalEntry is one caregiver observation about a child. MedicationNotes
// holds ciphertext; the storage layer never inspects it.
type JournalEntry struct {
	ID                    string `json:"id"`
	ChildName             string `json:"childName"`
	Timestamp             int64  `json:"timestamp"`
	MedicationNotes       string `json:"medicationNotes"`
	EducationNotes        string `json:"educationNotes"`
	SocialEngagementNotes string `json:"socialEngagementNotes"`
	SensoryProfileNotes   string `json:"sensoryProfileNotes"`
	FoodNutritionNotes    string `json:"foodNutritionNotes"`
	BehavioralNotes       string `json:"behavioralNotes"`
	MagicMoments          string `json:"magicMoments"`
	Synced                bool   `json:"synced"`
}

// Time converts the millisecond timestamp.
func (e *JournalEntry) Time() time.Time {
	return TimeOf(e.Timestamp)
}

// TimeOf converts a record timestamp in unix milliseconds.
func TimeOf(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// NowMillis is the timestamp format used on every record.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
