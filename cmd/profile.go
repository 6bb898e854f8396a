package cmd

import (
	"context"

	businessrender "github.com/simplu-io/simplu-cli/internal/adapters/render/business"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Your billing profile and saved cards",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileUpdateCmd(app),
		newProfileCardsCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := fetch(cmd, "Loading profile...", app.payments.Profile)
			if err != nil {
				return err
			}
			return writeOutput(cmd, user, businessrender.Profile)
		},
	}
}

func newProfileUpdateCmd(app *app) *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields, e.g. --set billingAddress.city=Cluj",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			user, err := fetch(cmd, "Saving profile...", func(ctx context.Context) (domain.User, error) {
				return app.payments.UpdateProfile(ctx, fields)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, user, businessrender.Profile)
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Field to change as name=value (repeatable)")

	return cmd
}

func newProfileCardsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List saved cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cards, err := fetch(cmd, "Loading cards...", app.payments.Cards)
			if err != nil {
				return err
			}
			return writeOutput(cmd, cards, businessrender.Cards)
		},
	}

	cmd.AddCommand(
		newProfileCardsAddCmd(app),
		newProfileCardsDefaultCmd(app),
	)

	return cmd
}

func newProfileCardsAddCmd(app *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <payment-method-id>",
		Short: "Attach a payment method created with the payment provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := fetch(cmd, "Saving card...", func(ctx context.Context) ([]domain.PaymentMethod, error) {
				return app.payments.AddCard(ctx, args[0], description)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, cards, businessrender.Cards)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Note stored with the card")

	return cmd
}

func newProfileCardsDefaultCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "default <payment-method-id>",
		Short: "Make a saved card the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := fetch(cmd, "Saving default card...", func(ctx context.Context) ([]domain.PaymentMethod, error) {
				return app.payments.SetDefaultCard(ctx, args[0])
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, cards, businessrender.Cards)
		},
	}
}
