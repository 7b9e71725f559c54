package trial

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/transcript"
)

// ExportDocument is the on-disk record of a trial. It can be written at any
// point in the proceeding; fields the trial has not reached yet are empty.
type ExportDocument struct {
	DocketID        string               `json:"docket_id"`
	CaseTitle       string               `json:"case_title"`
	CaseFacts       string               `json:"case_facts"`
	Phase           string               `json:"phase"`
	RoundsCompleted int                  `json:"rounds_completed"`
	JurorScores     map[string]int       `json:"juror_scores,omitempty"`
	AverageScore    float64              `json:"average_score"`
	Verdict         *jury.Verdict        `json:"verdict,omitempty"`
	Transcript      []transcript.Message `json:"transcript"`
	ExportedAt      time.Time            `json:"exported_at"`
}

// ExportDocument snapshots the trial's current state.
func (o *Orchestrator) ExportDocument() ExportDocument {
	doc := ExportDocument{
		DocketID:        o.matter.DocketID,
		CaseTitle:       o.matter.Title,
		CaseFacts:       o.matter.Facts,
		Phase:           o.phase.String(),
		RoundsCompleted: o.RoundsCompleted(),
		AverageScore:    jury.NeutralScore,
		Verdict:         o.verdict,
		Transcript:      o.record.All(),
		ExportedAt:      time.Now().UTC(),
	}
	if o.panel != nil {
		doc.JurorScores = o.panel.Scores()
		doc.AverageScore = o.panel.AverageScore()
	}
	return doc
}

// Export writes the trial record to path as indented JSON.
func (o *Orchestrator) Export(path string) error {
	doc := o.ExportDocument()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trial record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trial record: %w", err)
	}
	o.logger.Info("trial record exported", "path", path, "messages", len(doc.Transcript))
	return nil
}
