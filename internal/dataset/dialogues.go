package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// ErrDecode is returned when the dataset file is not a valid JSON object of entries.
var ErrDecode = errors.New("dataset: malformed JSON")

type sourceTurn struct {
	Speaker   string `json:"speaker"`
	Utterance string `json:"utterance"`
	Content   string `json:"content"`
	Strategy  string `json:"strategy"`
}

type sourceEntry struct {
	PersonaProfile  json.RawMessage `json:"persona_profile"`
	DialogueHistory []sourceTurn    `json:"dialogue_history"`
}

// LoadDialogues reads the dataset at path and returns its entries in file order.
func LoadDialogues(path string) ([]domain.Dialogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	dialogues, err := DecodeDialogues(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return dialogues, nil
}

// DecodeDialogues streams a JSON object of entry-id -> entry and normalizes
// each entry. Tokens are consumed one key at a time so that the output keeps
// the order in which entries appear in the source.
func DecodeDialogues(r io.Reader) ([]domain.Dialogue, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrDecode)
	}

	dialogues := make([]domain.Dialogue, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		entryID, _ := tok.(string)

		var src sourceEntry
		if err := dec.Decode(&src); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrDecode, entryID, err)
		}
		dialogues = append(dialogues, normalizeEntry(entryID, src))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return dialogues, nil
}

func normalizeEntry(entryID string, src sourceEntry) domain.Dialogue {
	d := domain.Dialogue{
		EntryID:         entryID,
		PersonaProfile:  src.PersonaProfile,
		DialogueHistory: make([]domain.Turn, 0, len(src.DialogueHistory)),
	}

	for _, t := range src.DialogueHistory {
		utterance := t.Utterance
		if utterance == "" {
			utterance = t.Content
		}
		d.DialogueHistory = append(d.DialogueHistory, domain.Turn{
			Speaker:   strings.ToLower(t.Speaker),
			Utterance: utterance,
			Strategy:  t.Strategy,
		})
	}

	return d
}
