package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewContactsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contacts",
	}

	cmd.AddCommand(newContactsList(s))
	cmd.AddCommand(newContactsAdd(s))
	cmd.AddCommand(newContactsUpdate(s))
	cmd.AddCommand(newContactsRemove(s))

	return cmd
}

type contactFlags struct {
	name string
	city string
}

func (f *contactFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "contact name")
	cmd.Flags().StringVar(&f.city, "city", "", "city of the contact")
}

func (f *contactFlags) apply(cmd *cobra.Command, c *ledger.Contact) {
	if cmd.Flags().Changed("name") {
		c.Name = f.name
	}
	if cmd.Flags().Changed("city") {
		c.CityLocation = f.city
	}
}

func newContactsList(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			contacts, err := ledger.GetContacts(s.app.Storage)
			if err != nil {
				return err
			}

			table := s.table("name", "city", "id")
			for _, c := range contacts {
				table.Add(output.Text(c.Name), output.Text(c.CityLocation), output.Text(c.Id()))
			}

			return s.print(cmd, table)
		}),
	}
}

func newContactsAdd(s *session) *cobra.Command {
	flags := &contactFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			contact := &ledger.Contact{}
			flags.apply(cmd, contact)

			_, err := ledger.StoreContact(s.app.Storage, contact)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", contact.Id())
			return nil
		}),
	}

	flags.bind(cmd)
	cmd.MarkFlagRequired("name")

	return cmd
}

func newContactsUpdate(s *session) *cobra.Command {
	flags := &contactFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			contact, err := ledger.GetContact(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			flags.apply(cmd, contact)

			_, err = ledger.StoreContact(s.app.Storage, contact)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", contact.Id())
			return nil
		}),
	}

	flags.bind(cmd)

	return cmd
}

func newContactsRemove(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveContact(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}
}
