package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triggr-io/triggr/pkg/types"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Inspect documents (operational debugging only; console CRUD is out of scope for this CLI)",
}

var docGetCmd = &cobra.Command{
	Use:   "get <project-id> <collection> <id>",
	Short: "Get one document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		doc, err := p.docs.Get(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}

var docListCmd = &cobra.Command{
	Use:   "list <project-id> <collection>",
	Short: "List documents in a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		docs, err := p.docs.List(args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(docs)
	},
}

var docListCollectionsCmd = &cobra.Command{
	Use:   "list-collections <project-id>",
	Short: "List collections (with counts and last-updated) for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		collections, err := p.docs.ListCollections(args[0])
		if err != nil {
			return err
		}
		return printJSON(collections)
	},
}

var docInsertCmd = &cobra.Command{
	Use:   "insert <project-id> <collection> <json-fields>",
	Short: "Insert a document (operator debugging helper)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data map[string]any
		if err := json.Unmarshal([]byte(args[2]), &data); err != nil {
			return fmt.Errorf("invalid JSON fields: %w", err)
		}

		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		doc, err := p.docs.Insert(args[0], args[1], types.Document{Data: data})
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}

func init() {
	docCmd.AddCommand(docGetCmd, docListCmd, docListCollectionsCmd, docInsertCmd)
}
