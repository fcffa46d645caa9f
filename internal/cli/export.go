package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"researchconnect/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export collected data",
	}
	cmd.AddCommand(newExportResponsesCmd())
	return cmd
}

func newExportResponsesCmd() *cobra.Command {
	var questionnaireID, outPath string
	cmd := &cobra.Command{
		Use:   "responses",
		Short: "Export a questionnaire's responses as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := export.WriteResponsesCSV(cmd.Context(), out, client, questionnaireID); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Println("wrote", outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&questionnaireID, "questionnaire", "", "questionnaire id")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("questionnaire")
	return cmd
}
