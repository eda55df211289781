package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/triggr-io/triggr/pkg/dsl"
	"github.com/triggr-io/triggr/pkg/types"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Manage per-contract triggers",
}

var triggerStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Parse a DSL script and upsert it as a trigger for a contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		scriptPath, _ := cmd.Flags().GetString("script")
		projectID, _ := cmd.Flags().GetString("project")
		description, _ := cmd.Flags().GetString("description")
		id, _ := cmd.Flags().GetString("id")

		if address == "" || scriptPath == "" {
			return fmt.Errorf("--address and --script are required")
		}

		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}

		result, err := dsl.Parse(string(source))
		if err != nil {
			return fmt.Errorf("failed to parse script: %w", err)
		}

		if id == "" {
			id = uuid.New().String()
		}

		trigger := types.Trigger{
			ID:          id,
			ProjectID:   projectID,
			Description: description,
			DSL:         string(source),
			Rules:       result.Rules,
			Active:      true,
		}

		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.triggers.StoreTrigger(address, trigger); err != nil {
			return err
		}
		return printJSON(trigger)
	},
}

var triggerListCmd = &cobra.Command{
	Use:   "list <address>",
	Short: "List triggers registered for a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		triggers, err := p.triggers.ListTriggers(args[0])
		if err != nil {
			return err
		}
		return printJSON(triggers)
	},
}

var triggerGetCmd = &cobra.Command{
	Use:   "get <address> <id>",
	Short: "Get one trigger by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		trigger, err := p.triggers.GetTrigger(args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(trigger)
	},
}

var triggerDeleteCmd = &cobra.Command{
	Use:   "delete <address> <id>",
	Short: "Delete a trigger",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.triggers.DeleteTrigger(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("trigger deleted")
		return nil
	},
}

func triggerSetState(active bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.triggers.SetTriggerState(args[0], args[1], active); err != nil {
			return err
		}
		fmt.Printf("trigger %s active=%v\n", args[1], active)
		return nil
	}
}

var triggerEnableCmd = &cobra.Command{
	Use:   "enable <address> <id>",
	Short: "Activate a trigger",
	Args:  cobra.ExactArgs(2),
	RunE:  triggerSetState(true),
}

var triggerDisableCmd = &cobra.Command{
	Use:   "disable <address> <id>",
	Short: "Deactivate a trigger",
	Args:  cobra.ExactArgs(2),
	RunE:  triggerSetState(false),
}

func init() {
	triggerStoreCmd.Flags().String("address", "", "contract address")
	triggerStoreCmd.Flags().String("script", "", "path to the DSL script file")
	triggerStoreCmd.Flags().String("project", "", "owning project id")
	triggerStoreCmd.Flags().String("description", "", "trigger description")
	triggerStoreCmd.Flags().String("id", "", "trigger id (generated if omitted)")

	triggerCmd.AddCommand(triggerStoreCmd, triggerListCmd, triggerGetCmd,
		triggerDeleteCmd, triggerEnableCmd, triggerDisableCmd)
}
