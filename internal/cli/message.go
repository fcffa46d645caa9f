package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"researchconnect/internal/api"
	"researchconnect/internal/config"
	"researchconnect/internal/domain"
	"researchconnect/internal/infra/refdata"
)

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Manage triggered messages",
	}
	cmd.AddCommand(newMessageListCmd())
	cmd.AddCommand(newMessageCreateCmd())
	cmd.AddCommand(newMessageDeleteCmd())
	cmd.AddCommand(newMessageOptionsCmd())
	return cmd
}

func newMessageListCmd() *cobra.Command {
	var experimentID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an experiment's triggered messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			messages, err := client.ListMessages(cmd.Context(), experimentID)
			if err != nil {
				return err
			}
			for _, m := range messages {
				fmt.Printf("%s\t%s\t[%s]\n", m.ID, m.Title, m.Trigger)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&experimentID, "experiment", "", "experiment id")
	_ = cmd.MarkFlagRequired("experiment")
	return cmd
}

func newMessageCreateCmd() *cobra.Command {
	var (
		experimentID, title, body, trigger string
		speciesName, answerID              string
		radius                             int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a triggered message",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			in := api.MessageInput{
				ExperimentID: experimentID,
				Title:        title,
				Body:         body,
				Trigger:      domain.TriggerKind(trigger),
				RadiusMeters: radius,
				AnswerID:     answerID,
			}
			if speciesName != "" {
				cfg := loadConfig()
				cache := refdata.NewCache(client, config.Duration(cfg.RefData.TTL, 0))
				species, err := cache.Species(ctx)
				if err != nil {
					return err
				}
				for _, s := range species {
					if s.Name == speciesName {
						in.SpeciesID = s.ID
						break
					}
				}
				if in.SpeciesID == "" {
					return fmt.Errorf("unknown species %q, see 'message options'", speciesName)
				}
			}

			created, err := client.CreateMessage(ctx, in)
			if err != nil {
				return err
			}
			fmt.Println("created message", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&experimentID, "experiment", "", "experiment id")
	cmd.Flags().StringVar(&title, "title", "", "message title")
	cmd.Flags().StringVar(&body, "body", "", "message body")
	cmd.Flags().StringVar(&trigger, "trigger", "", "trigger kind: species_encounter, proximity, or answer_linked")
	cmd.Flags().StringVar(&speciesName, "species", "", "species name (species_encounter trigger)")
	cmd.Flags().IntVar(&radius, "radius", 0, "radius in meters (proximity trigger)")
	cmd.Flags().StringVar(&answerID, "answer", "", "answer id (answer_linked trigger)")
	_ = cmd.MarkFlagRequired("experiment")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("trigger")
	return cmd
}

func newMessageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete a triggered message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			if err := client.DeleteMessage(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted message", args[0])
			return nil
		},
	}
}

func newMessageOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the species and interaction types triggers can reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cfg := loadConfig()
			cache := refdata.NewCache(client, config.Duration(cfg.RefData.TTL, 0))

			species, err := cache.Species(ctx)
			if err != nil {
				return err
			}
			fmt.Println("species:")
			for _, s := range species {
				fmt.Printf("  %s\t%s\n", s.ID, s.Name)
			}

			interactions, err := cache.InteractionTypes(ctx)
			if err != nil {
				return err
			}
			fmt.Println("interaction types:")
			for _, it := range interactions {
				fmt.Printf("  %s\t%s\n", it.ID, it.Name)
			}
			return nil
		},
	}
}
