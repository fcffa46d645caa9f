package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"researchconnect/internal/domain"
)

// Fetcher is the slice of the remote API the export needs.
type Fetcher interface {
	ListQuestions(ctx context.Context, questionnaireID string) ([]domain.Question, error)
	ListAnswers(ctx context.Context, questionID string) ([]domain.Answer, error)
	ListResponses(ctx context.Context, questionnaireID string) ([]domain.Response, error)
}

var header = []string{"participantId", "questionIndex", "questionText", "selectedAnswers", "openText", "recordedAt"}

// WriteResponsesCSV flattens every recorded response of a questionnaire into
// CSV rows, one row per response, ordered by participant and question index.
func WriteResponsesCSV(ctx context.Context, w io.Writer, f Fetcher, questionnaireID string) error {
	var (
		questions []domain.Question
		responses []domain.Response
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = f.ListQuestions(gctx, questionnaireID)
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = f.ListResponses(gctx, questionnaireID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("exporting responses: %w", err)
	}

	answersPerQuestion := make([][]domain.Answer, len(questions))
	ag, agctx := errgroup.WithContext(ctx)
	for i := range questions {
		i := i
		ag.Go(func() error {
			var err error
			answersPerQuestion[i], err = f.ListAnswers(agctx, questions[i].ID)
			return err
		})
	}
	if err := ag.Wait(); err != nil {
		return fmt.Errorf("exporting responses: %w", err)
	}

	questionByID := make(map[string]domain.Question, len(questions))
	answerText := make(map[string]string)
	for i, q := range questions {
		questionByID[q.ID] = q
		for _, a := range answersPerQuestion[i] {
			answerText[a.ID] = a.Text
		}
	}

	rows := make([][]string, 0, len(responses))
	for _, resp := range responses {
		q := questionByID[resp.QuestionID]
		selected := make([]string, 0, len(resp.AnswerIDs))
		for _, id := range resp.AnswerIDs {
			if text, ok := answerText[id]; ok {
				selected = append(selected, text)
			}
		}
		rows = append(rows, []string{
			resp.ParticipantID,
			strconv.Itoa(q.Index),
			q.Text,
			strings.Join(selected, "; "),
			resp.OpenText,
			resp.RecordedAt.Format(time.RFC3339),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
