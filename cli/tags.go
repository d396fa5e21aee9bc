package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewTagsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}

	var name string

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a tag",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			tag := &ledger.Tag{Name: name}
			_, err := ledger.StoreTag(s.app.Storage, tag)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", tag.Id())
			return nil
		}),
	}
	add.Flags().StringVar(&name, "name", "", "tag name")
	add.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			tag, err := ledger.GetTag(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			tag.Name = name
			_, err = ledger.StoreTag(s.app.Storage, tag)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", tag.Id())
			return nil
		}),
	}
	update.Flags().StringVar(&name, "name", "", "tag name")
	update.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			tags, err := ledger.GetTags(s.app.Storage)
			if err != nil {
				return err
			}

			table := s.table("name", "id")
			for _, tag := range tags {
				table.Add(output.Text(tag.Name), output.Text(tag.Id()))
			}

			return s.print(cmd, table)
		}),
	}

	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a tag",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveTag(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}

	cmd.AddCommand(list, add, update, remove)

	return cmd
}
