package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}

	cmd.AddCommand(newNoteAddCmd(), newNoteEditCmd(), newNoteRmCmd(), newNoteLsCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var text string
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a note",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("note title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.AddNote(ctx, args[0], text, category); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconNote+" Note added:")+" "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Note body")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (empty for uncategorized)")
	return cmd
}

func newNoteEditCmd() *cobra.Command {
	var title string
	var text string
	var category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a note's content",
		Args:  requireID("note"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.UpdateNote(ctx, args[0], title, text, category); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Note updated."))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&text, "text", "t", "", "New body")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category (empty for uncategorized)")
	return cmd
}

func newNoteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  requireID("note"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.DeleteNote(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Note deleted."))
			return nil
		},
	}
}

func newNoteLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.Refresh(ctx, syncer.DomainNotes); err != nil {
				return err
			}

			notes := orch.Store().Notes()
			if notes.State != store.Loaded || len(notes.Value) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no notes)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconNote+" Notes"))
			for _, n := range notes.Value {
				cat := "uncategorized"
				if n.Category != nil {
					cat = *n.Category
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s  %s  %s\n", n.Title, ui.Muted.Render("["+cat+"]"), ui.Muted.Render(n.ID))
			}
			return nil
		},
	}
}
