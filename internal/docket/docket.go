// Package docket handles case intake: reading case documents, validating
// the facts, and assigning docket numbers.
package docket

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexumbra/lexumbra/internal/errors"
)

// DefaultTitle is used when a case is filed without a caption.
const DefaultTitle = "Plaintiff v. Defendant"

// Case is a filed matter ready for trial.
type Case struct {
	DocketID string    `json:"docket_id"`
	Title    string    `json:"title"`
	Facts    string    `json:"facts"`
	FiledAt  time.Time `json:"filed_at"`
}

// FileCase validates and files a case, assigning it a docket number. Facts
// are required; the title defaults when blank.
func FileCase(title, facts string) (Case, error) {
	facts = strings.TrimSpace(facts)
	if facts == "" {
		return Case{}, errors.ErrNoCaseFiled
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	now := time.Now().UTC()
	return Case{
		DocketID: NewDocketID(now),
		Title:    title,
		Facts:    facts,
		FiledAt:  now,
	}, nil
}

// LoadCaseFile reads the case facts from a plain-text document.
func LoadCaseFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError("case document", path)
		}
		return "", fmt.Errorf("reading case document: %w", err)
	}
	facts := strings.TrimSpace(string(data))
	if facts == "" {
		return "", errors.ErrNoCaseFiled
	}
	return facts, nil
}

// NewDocketID assigns a docket number in the court's JEM-<year>-<serial>
// format. The serial is drawn from a random UUID, so collisions within a
// year are vanishingly unlikely at this court's caseload.
func NewDocketID(now time.Time) string {
	id := uuid.New()
	serial := binary.BigEndian.Uint32(id[:4]) % 100000
	return fmt.Sprintf("JEM-%d-%05d", now.Year(), serial)
}
