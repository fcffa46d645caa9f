package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"researchconnect/internal/api"
)

func newQuestionnaireCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questionnaire",
		Short: "Manage questionnaires and their questions",
	}
	cmd.AddCommand(newQuestionnaireListCmd())
	cmd.AddCommand(newQuestionnaireCreateCmd())
	cmd.AddCommand(newQuestionnaireDeleteCmd())
	cmd.AddCommand(newQuestionnaireShowCmd())
	cmd.AddCommand(newQuestionnaireApplyCmd())
	return cmd
}

func newQuestionnaireListCmd() *cobra.Command {
	var experimentID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an experiment's questionnaires",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			questionnaires, err := client.ListQuestionnaires(cmd.Context(), experimentID)
			if err != nil {
				return err
			}
			for _, q := range questionnaires {
				fmt.Printf("%s\t%s\n", q.ID, q.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&experimentID, "experiment", "", "experiment id")
	_ = cmd.MarkFlagRequired("experiment")
	return cmd
}

func newQuestionnaireCreateCmd() *cobra.Command {
	var experimentID, name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			created, err := client.CreateQuestionnaire(cmd.Context(), api.QuestionnaireInput{
				Name:         name,
				ExperimentID: experimentID,
			})
			if err != nil {
				return err
			}
			fmt.Println("created questionnaire", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&experimentID, "experiment", "", "experiment id")
	cmd.Flags().StringVar(&name, "name", "", "questionnaire name")
	_ = cmd.MarkFlagRequired("experiment")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newQuestionnaireDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <questionnaire-id>",
		Short: "Delete a questionnaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			if err := client.DeleteQuestionnaire(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted questionnaire", args[0])
			return nil
		},
	}
}

func newQuestionnaireShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <questionnaire-id>",
		Short: "Print a questionnaire's questions and branching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			questionnaire, err := client.GetQuestionnaire(ctx, args[0])
			if err != nil {
				return err
			}
			questions, err := client.ListQuestions(ctx, questionnaire.ID)
			if err != nil {
				return err
			}
			sort.SliceStable(questions, func(i, j int) bool { return questions[i].Index < questions[j].Index })
			fmt.Printf("%s (%d questions)\n", questionnaire.Name, len(questions))
			for _, q := range questions {
				fmt.Printf("%d. %s\n", q.Index, q.Text)
				answers, err := client.ListAnswers(ctx, q.ID)
				if err != nil {
					return err
				}
				sort.SliceStable(answers, func(i, j int) bool { return answers[i].Index < answers[j].Index })
				for _, a := range answers {
					line := fmt.Sprintf("   %d) %s", a.Index, a.Text)
					if a.NextQuestionID != "" {
						line += "  -> " + a.NextQuestionID
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}
