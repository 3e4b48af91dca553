package domain

import "encoding/json"

// Turn is one utterance within a dialogue.
type Turn struct {
	Speaker   string `json:"speaker"`
	Utterance string `json:"utterance"`
	Strategy  string `json:"strategy,omitempty"`
}

// Dialogue is a normalized transcript unit served to annotators.
// PersonaProfile is carried through as raw JSON and omitted when the
// source entry has none.
type Dialogue struct {
	EntryID         string          `json:"entry_id"`
	DialogueHistory []Turn          `json:"dialogue_history"`
	PersonaProfile  json.RawMessage `json:"persona_profile,omitempty"`
}
