package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triggr-io/triggr/pkg/metadata"
	"github.com/triggr-io/triggr/pkg/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project and register its contract metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		address, _ := cmd.Flags().GetString("address")
		metadataPath, _ := cmd.Flags().GetString("metadata")
		description, _ := cmd.Flags().GetString("description")

		if owner == "" || address == "" || metadataPath == "" {
			return fmt.Errorf("--owner, --address, and --metadata are required")
		}

		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()
		if p.keys == nil {
			return fmt.Errorf("TRIGGR_ENCRYPTION_KEY must be set to create projects")
		}

		meta, err := metadata.ReadFile(metadataPath)
		if err != nil {
			return fmt.Errorf("failed to read contract metadata: %w", err)
		}

		summary := make([]string, 0, len(meta.Events))
		for _, ev := range meta.Events {
			summary = append(summary, ev.Label)
		}

		project := types.Project{
			Owner:                 owner,
			ContractAddress:       address,
			ContractMetadataPath:  metadataPath,
			ContractEventsSummary: summary,
			Description:           description,
		}

		stored, rawKey, err := p.projects.Create(project)
		if err != nil {
			return err
		}

		if err := p.loader.Register(address, metadataPath, *meta); err != nil {
			return fmt.Errorf("project stored but metadata registration failed: %w", err)
		}

		out, _ := json.MarshalIndent(map[string]any{
			"project": stored,
			"api_key": rawKey,
		}, "", "  ")
		fmt.Println(string(out))
		return nil
	},
}

var projectGetCmd = &cobra.Command{
	Use:   "get <api-key>",
	Short: "Look up a project by its raw API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		project, err := p.projects.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(project)
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects for an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			return fmt.Errorf("--owner is required")
		}

		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		projects, err := p.projects.ListForUser(owner)
		if err != nil {
			return err
		}
		return printJSON(projects)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <api-key>",
	Short: "Delete a project (does not cascade to its documents, triggers, or metadata)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			return fmt.Errorf("--owner is required")
		}

		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.projects.Delete(args[0], owner); err != nil {
			return err
		}
		fmt.Println("project deleted")
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().String("owner", "", "owning console user id")
	projectCreateCmd.Flags().String("address", "", "contract address")
	projectCreateCmd.Flags().String("metadata", "", "path to the contract metadata JSON file")
	projectCreateCmd.Flags().String("description", "", "project description")

	projectListCmd.Flags().String("owner", "", "owning console user id")
	projectDeleteCmd.Flags().String("owner", "", "owning console user id")

	projectCmd.AddCommand(projectCreateCmd, projectGetCmd, projectListCmd, projectDeleteCmd)
}
