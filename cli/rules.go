package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewRulesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the rules applied to imported transactions",
	}

	cmd.AddCommand(newRulesList(s))
	cmd.AddCommand(newRulesAdd(s))
	cmd.AddCommand(newRulesUpdate(s))
	cmd.AddCommand(newRulesRemove(s))

	return cmd
}

type ruleFlags struct {
	term          string
	description   string
	expectedValue string
	contact       string
	tags          []string
}

func (f *ruleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.term, "term", "", "text searched in the description, case insensitive")
	cmd.Flags().StringVar(&f.description, "description", "", "description given to the matching transactions")
	cmd.Flags().StringVar(&f.expectedValue, "expected-value", "", "only match transactions with this value, empty matches any")
	cmd.Flags().StringVar(&f.contact, "contact", "", "contact id given to the matching transactions")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "tag ids given to the matching transactions")
}

func (s *session) applyRule(cmd *cobra.Command, f *ruleFlags, rule *ledger.Rule) error {
	var err error
	changed := cmd.Flags().Changed

	if changed("term") {
		rule.Term = f.term
	}
	if changed("description") {
		rule.Description = f.description
	}
	if changed("expected-value") {
		rule.ExpectedValue = nil
		if f.expectedValue != "" {
			v, err := parseMoney(f.expectedValue)
			if err != nil {
				return err
			}
			rule.ExpectedValue = &v
		}
	}
	if changed("contact") {
		rule.Contact = nil
		if f.contact != "" {
			rule.Contact, err = ledger.GetContact(s.app.Storage, f.contact)
			if err != nil {
				return err
			}
		}
	}
	if changed("tags") {
		rule.Tags, err = s.tags(f.tags)
		if err != nil {
			return err
		}
	}

	return nil
}

func newRulesList(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			rules, err := ledger.GetRules(s.app.Storage)
			if err != nil {
				return err
			}

			table := s.table("term", "description", "expected_value", "contact", "tags", "id")
			for _, r := range rules {
				expected, contact := "", ""
				if r.ExpectedValue != nil {
					expected = s.money(nil, *r.ExpectedValue)
				}
				if r.Contact != nil {
					contact = r.Contact.Name
				}

				table.Add(
					output.Text(r.Term),
					output.Text(r.Description),
					output.Text(expected),
					output.Text(contact),
					output.Text(tagNames(r.Tags)),
					output.Text(r.Id()),
				)
			}

			return s.print(cmd, table)
		}),
	}
}

func newRulesAdd(s *session) *cobra.Command {
	flags := &ruleFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a rule",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			rule := &ledger.Rule{}
			err := s.applyRule(cmd, flags, rule)
			if err != nil {
				return err
			}

			_, err = ledger.StoreRule(s.app.Storage, rule)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", rule.Id())
			return nil
		}),
	}

	flags.bind(cmd)
	cmd.MarkFlagRequired("term")
	cmd.MarkFlagRequired("description")

	return cmd
}

func newRulesUpdate(s *session) *cobra.Command {
	flags := &ruleFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a rule",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			rule, err := ledger.GetRule(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			err = s.applyRule(cmd, flags, rule)
			if err != nil {
				return err
			}

			_, err = ledger.StoreRule(s.app.Storage, rule)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", rule.Id())
			return nil
		}),
	}

	flags.bind(cmd)

	return cmd
}

func newRulesRemove(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a rule",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveRule(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}
}
