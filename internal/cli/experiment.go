package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"researchconnect/internal/api"
)

func newExperimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Manage field experiments",
	}
	cmd.AddCommand(newExperimentListCmd())
	cmd.AddCommand(newExperimentCreateCmd())
	cmd.AddCommand(newExperimentDeleteCmd())
	return cmd
}

func newExperimentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			experiments, err := client.ListExperiments(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range experiments {
				fmt.Printf("%s\t%s\t(%s to %s)\n", e.ID, e.Name,
					e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newExperimentCreateCmd() *cobra.Command {
	var name, description, start, end string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an experiment",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			in := api.ExperimentInput{Name: name, Description: description}
			if start != "" {
				if in.StartDate, err = time.Parse("2006-01-02", start); err != nil {
					return fmt.Errorf("parsing --start: %w", err)
				}
			}
			if end != "" {
				if in.EndDate, err = time.Parse("2006-01-02", end); err != nil {
					return fmt.Errorf("parsing --end: %w", err)
				}
			}
			created, err := client.CreateExperiment(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Println("created experiment", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "experiment name")
	cmd.Flags().StringVar(&description, "description", "", "experiment description")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newExperimentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <experiment-id>",
		Short: "Delete an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			if err := client.DeleteExperiment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted experiment", args[0])
			return nil
		},
	}
}
