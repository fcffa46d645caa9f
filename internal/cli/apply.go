package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"researchconnect/internal/domain"
	"researchconnect/internal/editor"
	"researchconnect/internal/reconcile"
)

// applyFile is the YAML description of a questionnaire's questions. Applying
// it replaces the questionnaire's entire question set, mirroring the save
// semantics of the editor.
type applyFile struct {
	Questions []applyQuestion `yaml:"questions"`
}

type applyQuestion struct {
	Text          string        `yaml:"text"`
	Description   string        `yaml:"description"`
	Mode          string        `yaml:"mode"` // single | multiple
	AllowMultiple bool          `yaml:"allowMultiple"`
	OpenResponse  bool          `yaml:"openResponse"`
	Format        string        `yaml:"format"`
	Answers       []applyAnswer `yaml:"answers"`
}

type applyAnswer struct {
	Text     string `yaml:"text"`
	FollowUp int    `yaml:"followUp"` // 1-based number of a later question, 0 for none
}

func newQuestionnaireApplyCmd() *cobra.Command {
	var questionnaireID string
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Replace a questionnaire's questions from a YAML file",
		Long: `Reads a YAML question list, builds a draft through the questionnaire
editor, and saves it, replacing whatever questions the questionnaire had.
Follow-up links may only point at later questions; invalid links are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, log, err := buildClient(true)
			if err != nil {
				return err
			}
			defer log.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var file applyFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			questions, err := client.ListQuestions(ctx, questionnaireID)
			if err != nil {
				return err
			}
			answersByQuestion := make(map[string][]domain.Answer, len(questions))
			for _, q := range questions {
				answers, err := client.ListAnswers(ctx, q.ID)
				if err != nil {
					return err
				}
				answersByQuestion[q.ID] = answers
			}

			draft, err := buildDraft(questionnaireID, questions, answersByQuestion, file)
			if err != nil {
				return err
			}

			rec := reconcile.NewReconciler(client, client, log)
			if err := rec.Save(ctx, draft); err != nil {
				return err
			}
			fmt.Printf("saved %d questions to questionnaire %s\n", len(file.Questions), questionnaireID)
			return nil
		},
	}
	cmd.Flags().StringVar(&questionnaireID, "questionnaire", "", "questionnaire id")
	_ = cmd.MarkFlagRequired("questionnaire")
	return cmd
}

// buildDraft loads the existing question set (so the save deletes it) and
// recreates the draft from the file's questions.
func buildDraft(questionnaireID string, existing []domain.Question, answersByQuestion map[string][]domain.Answer, file applyFile) (*editor.Coordinator, error) {
	draft := editor.NewCoordinator(questionnaireID)
	draft.LoadExisting(existing, answersByQuestion)
	for _, id := range draft.NodeIDs() {
		draft.RemoveNode(id)
	}

	nodes := make([]*editor.Node, 0, len(file.Questions))
	for i, q := range file.Questions {
		mode := editor.ModeMultiple
		if q.Mode == string(editor.ModeSingle) {
			mode = editor.ModeSingle
		}
		node := draft.CreateNode(mode)
		node.SetText(q.Text)
		node.SetDescription(q.Description)
		node.SetAllowMultipleResponse(q.AllowMultiple)
		node.SetAllowOpenResponse(q.OpenResponse)
		node.SetOpenResponseFormat(q.Format)

		if mode == editor.ModeMultiple {
			for len(node.Answers()) < len(q.Answers) {
				node.AddAnswer()
			}
			for len(node.Answers()) > len(q.Answers) {
				node.RemoveAnswer(len(node.Answers()) - 1)
			}
			for pos, a := range q.Answers {
				node.SetAnswerText(pos, a.Text)
			}
		} else if len(q.Answers) > 0 {
			return nil, fmt.Errorf("question %d: single-response questions cannot have answers", i+1)
		}
		nodes = append(nodes, node)
	}

	// Follow-ups are wired after all questions exist so forward references
	// resolve. The editor drops anything that is not a strictly later question.
	for i, q := range file.Questions {
		for pos, a := range q.Answers {
			if a.FollowUp == 0 {
				continue
			}
			if a.FollowUp < 1 || a.FollowUp > len(nodes) {
				return nil, fmt.Errorf("question %d answer %d: followUp %d does not exist", i+1, pos+1, a.FollowUp)
			}
			if a.FollowUp <= i {
				return nil, fmt.Errorf("question %d answer %d: followUp must point at a later question", i+1, pos+1)
			}
			nodes[i].SetFollowUp(pos, nodes[a.FollowUp-1].LocalID())
		}
	}
	return draft, nil
}
