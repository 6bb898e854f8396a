package cmd

import (
	"context"

	businessrender "github.com/simplu-io/simplu-cli/internal/adapters/render/business"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPaymentsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"billing"},
		Short:   "Plans, invoices and subscriptions",
	}

	cmd.AddCommand(
		newPaymentsPlansCmd(app),
		newPaymentsInvoicesCmd(app),
		newPaymentsSubscribeCmd(app),
		newPaymentsSubscriptionsCmd(app),
		newPaymentsCancelCmd(app),
		newPaymentsValidateCmd(app),
		newPaymentsStatusCmd(app),
		newPaymentsPayWithSavedCardCmd(app),
	)

	return cmd
}

func newPaymentsPlansCmd(app *app) *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans and their prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if byCategory {
				grouped, err := fetch(cmd, "Loading plans...", app.payments.PlansByCategory)
				if err != nil {
					return err
				}
				return writeOutput(cmd, grouped, businessrender.PlansByCategory)
			}

			plans, err := fetch(cmd, "Loading plans...", app.payments.Plans)
			if err != nil {
				return err
			}
			return writeOutput(cmd, plans, businessrender.Plans)
		},
	}

	cmd.Flags().BoolVar(&byCategory, "by-category", false, "Group plans by business category")

	return cmd
}

func newPaymentsInvoicesCmd(app *app) *cobra.Command {
	var unpaid bool

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List your invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			invoices, err := fetch(cmd, "Loading invoices...", func(ctx context.Context) ([]domain.Invoice, error) {
				return app.payments.Invoices(ctx, unpaid)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, invoices, businessrender.Invoices)
		},
	}

	cmd.Flags().BoolVar(&unpaid, "unpaid", false, "Only invoices that are not paid")

	return cmd
}

func newPaymentsSubscribeCmd(app *app) *cobra.Command {
	var (
		price string
		card  string
	)

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe to a plan price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub, err := fetch(cmd, "Creating subscription...", func(ctx context.Context) (domain.Subscription, error) {
				return app.payments.Subscribe(ctx, application.SubscribeCommand{
					PriceID:         price,
					PaymentMethodID: card,
				})
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, sub)
			}
			return writeLine(cmd, "Subscription %s is %s.", sub.ID, sub.Status)
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "Price id (defaults to the configured default price)")
	cmd.Flags().StringVar(&card, "card", "", "Saved card used to pay the first invoice")

	return cmd
}

func newPaymentsSubscriptionsCmd(app *app) *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List your subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := fetch(cmd, "Loading subscriptions...", func(ctx context.Context) ([]domain.Subscription, error) {
				return app.payments.Subscriptions(ctx, active)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, subs, businessrender.Subscriptions)
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "Only active subscriptions")

	return cmd
}

func newPaymentsCancelCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <subscription-id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := fetch(cmd, "Cancelling subscription...", func(ctx context.Context) (domain.Subscription, error) {
				return app.payments.CancelSubscription(ctx, args[0])
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, sub)
			}
			return writeLine(cmd, "Subscription %s is %s.", sub.ID, sub.Status)
		},
	}
}

func newPaymentsValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <subscription-id>",
		Short: "Check whether a subscription is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fetch(cmd, "Validating subscription...", func(ctx context.Context) (domain.SubscriptionValidation, error) {
				return app.payments.ValidateSubscription(ctx, args[0])
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, result)
			}
			verdict := "invalid"
			if result.Valid {
				verdict = "valid"
			}
			if result.Message != "" {
				return writeLine(cmd, "%s (%s): %s", verdict, result.Status, result.Message)
			}
			return writeLine(cmd, "%s (%s)", verdict, result.Status)
		},
	}
}

func newPaymentsStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <business-id>",
		Short: "Show the subscription status of a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := fetch(cmd, "Checking subscription...", func(ctx context.Context) (domain.SubscriptionStatus, error) {
				return app.payments.BusinessSubscriptionStatus(ctx, domain.BusinessID(args[0]))
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, status)
			}
			return writeLine(cmd, "subscription %s: %s, payment: %s, active: %t",
				orNone(status.SubscriptionID), status.Status, status.PaymentStatus, status.Active)
		},
	}
}

func newPaymentsPayWithSavedCardCmd(app *app) *cobra.Command {
	var (
		card  string
		price string
	)

	cmd := &cobra.Command{
		Use:   "pay-with-saved-card <business-id>",
		Short: "Pay for a business with a saved card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fetch(cmd, "Charging card...", func(ctx context.Context) (domain.SavedCardPayment, error) {
				return app.payments.PayWithSavedCard(ctx, application.SavedCardCommand{
					BusinessID:      domain.BusinessID(args[0]),
					PaymentMethodID: card,
					PriceID:         price,
				})
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, result)
			}
			if result.Message != "" {
				return writeLine(cmd, "Payment %s: %s", result.Status, result.Message)
			}
			return writeLine(cmd, "Payment %s.", result.Status)
		},
	}

	cmd.Flags().StringVar(&card, "card", "", "Saved card id (defaults to the default card)")
	cmd.Flags().StringVar(&price, "price", "", "Price id (defaults to the configured default price)")

	return cmd
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}
