// Package models defines the client-side data shapes of cpguide: the backend's
// nested progress record, its flattened form, the solved-problems index and the
// user identity.
package models

// Category is the top level of the backend progress record.
type Category struct {
	SubCategories []SubCategory `json:"sub_categories"`
}

// SubCategory lists the topic ids completed inside it.
type SubCategory struct {
	Topics []string `json:"topics"`
}

// ProgressRecord is the nested category → sub-category → topic structure the
// backend returns. Topic ids are opaque.
type ProgressRecord []Category

// ProgressMap maps a topic id to true when the topic is completed. Absence
// means not completed.
type ProgressMap map[string]bool

// Completed flattens the record into a ProgressMap. Every topic that appears
// anywhere is present with value true; ordering and duplicates do not matter.
// The result is never nil.
func (r ProgressRecord) Completed() ProgressMap {
	completed := make(ProgressMap)
	for _, category := range r {
		for _, sub := range category.SubCategories {
			for _, topic := range sub.Topics {
				completed[topic] = true
			}
		}
	}
	return completed
}

// IsCompleted reports whether topicID is marked done.
func (m ProgressMap) IsCompleted(topicID string) bool {
	return m[topicID]
}

// SolvedTopic holds the problems solved within one topic.
type SolvedTopic struct {
	TopicID  string   `json:"topic_id"`
	Problems []string `json:"problems"`
}

// SolvedIndex is the backend's per-topic solved list, kept verbatim.
type SolvedIndex []SolvedTopic

// Problems returns the solved problem ids for topicID by linear search, or an
// empty slice when the topic is not listed.
func (idx SolvedIndex) Problems(topicID string) []string {
	for _, t := range idx {
		if t.TopicID == topicID {
			if t.Problems == nil {
				return []string{}
			}
			return t.Problems
		}
	}
	return []string{}
}
