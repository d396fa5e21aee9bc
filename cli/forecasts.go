package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewForecastsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecasts",
		Short: "Manage the expected amount of each tag",
	}

	cmd.AddCommand(newForecastsList(s))
	cmd.AddCommand(newForecastsAdd(s))
	cmd.AddCommand(newForecastsUpdate(s))
	cmd.AddCommand(newForecastsRemove(s))

	return cmd
}

type forecastFlags struct {
	account string
	tag     string
	value   string
}

func (f *forecastFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.account, "account", "", "account id")
	cmd.Flags().StringVar(&f.tag, "tag", "", "tag id")
	cmd.Flags().StringVar(&f.value, "value", "", "expected amount, negative for expenses")
}

func (s *session) applyForecast(cmd *cobra.Command, f *forecastFlags, forecast *ledger.Forecast) error {
	var err error
	changed := cmd.Flags().Changed

	if changed("account") {
		forecast.Account, err = ledger.GetAccount(s.app.Storage, f.account)
		if err != nil {
			return err
		}
	}
	if changed("tag") {
		forecast.Tag, err = ledger.GetTag(s.app.Storage, f.tag)
		if err != nil {
			return err
		}
	}
	if changed("value") {
		forecast.Value, err = parseMoney(f.value)
		if err != nil {
			return err
		}
	}

	return nil
}

func newForecastsList(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List forecasts",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			forecasts, err := ledger.GetForecasts(s.app.Storage)
			if err != nil {
				return err
			}

			table := s.table("account", "tag", "value", "id")
			for _, f := range forecasts {
				table.Add(
					output.Text(f.Account.Name),
					output.Text(f.Tag.Name),
					s.valueCell(f.Account, f.Value),
					output.Text(f.Id()),
				)
			}

			return s.print(cmd, table)
		}),
	}
}

func newForecastsAdd(s *session) *cobra.Command {
	flags := &forecastFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a forecast",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			forecast := &ledger.Forecast{}
			err := s.applyForecast(cmd, flags, forecast)
			if err != nil {
				return err
			}

			_, err = ledger.StoreForecast(s.app.Storage, forecast)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", forecast.Id())
			return nil
		}),
	}

	flags.bind(cmd)
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("tag")
	cmd.MarkFlagRequired("value")

	return cmd
}

func newForecastsUpdate(s *session) *cobra.Command {
	flags := &forecastFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a forecast",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			forecast, err := ledger.GetForecast(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			err = s.applyForecast(cmd, flags, forecast)
			if err != nil {
				return err
			}

			_, err = ledger.StoreForecast(s.app.Storage, forecast)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", forecast.Id())
			return nil
		}),
	}

	flags.bind(cmd)

	return cmd
}

func newForecastsRemove(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a forecast",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveForecast(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}
}
