package entities

// AttendanceDecision is the outcome of matching a probe image against a
// user's registered embeddings. The caller records it; nothing here is
// persisted. ID identifies the decision itself so stored attendance
// records and audit logs can reference it.
type AttendanceDecision struct {
	ID             string  `bson:"_id" json:"id"`
	Matched        bool    `bson:"matched" json:"matched"`
	Similarity     float64 `bson:"similarity" json:"similarity"`
	BestMatchIndex *int    `bson:"bestMatchIndex" json:"bestMatchIndex"`
}
