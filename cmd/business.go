package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	businessrender "github.com/simplu-io/simplu-cli/internal/adapters/render/business"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBusinessCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "business",
		Aliases: []string{"businesses"},
		Short:   "List and manage your businesses",
	}

	cmd.AddCommand(
		newBusinessListCmd(app),
		newBusinessGetCmd(app),
		newBusinessUpdateCmd(app),
		newBusinessStatusCmd(app),
		newBusinessInvitationCmd(app),
		newBusinessSetupPaymentCmd(app),
		newBusinessLaunchCmd(app),
	)

	return cmd
}

func newBusinessListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List businesses, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := fetch(cmd, "Loading businesses...", func(ctx context.Context) ([]application.BusinessView, error) {
				return app.businesses.List(ctx)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, views, businessrender.Businesses)
		},
	}
}

func newBusinessGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <business-id>",
		Short: "Show one business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := fetch(cmd, "Loading business...", func(ctx context.Context) (application.BusinessView, error) {
				return app.businesses.Get(ctx, domain.BusinessID(args[0]))
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, view, businessrender.Business)
		},
	}
}

func newBusinessUpdateCmd(app *app) *cobra.Command {
	var (
		file        string
		assignments []string
	)

	cmd := &cobra.Command{
		Use:   "update <business-id>",
		Short: "Change fields of an existing business",
		Long:  "Fields come from a TOML file of name = value pairs and/or --set name=value flags; flags win over the file. Field names are camelCase, e.g. companyName, domainLabel, currency.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := updateFields(file, assignments)
			if err != nil {
				return err
			}

			updated, err := fetch(cmd, "Updating business...", func(ctx context.Context) (domain.Business, error) {
				return app.businesses.Update(ctx, domain.BusinessID(args[0]), fields)
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, updated)
			}
			return writeLine(cmd, "Updated %s (%s).", updated.CompanyName, updated.ID)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML file with the fields to change")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Field to change as name=value (repeatable)")

	return cmd
}

// updateFields merges a flat TOML file with --set assignments.
func updateFields(file string, assignments []string) (map[string]string, error) {
	fields := map[string]string{}

	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var decoded map[string]any
		if err := toml.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decode %s: %w", file, err)
		}
		for name, value := range decoded {
			switch value.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("field %q in %s must be a plain value", name, file)
			}
			fields[name] = fmt.Sprint(value)
		}
	}

	set, err := parseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	for name, value := range set {
		fields[name] = value
	}

	if len(fields) == 0 {
		return nil, errors.New("nothing to update: pass --file or --set")
	}
	return fields, nil
}

func newBusinessStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <business-id>",
		Short: "Show the activation and payment status of a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := fetch(cmd, "Checking status...", func(ctx context.Context) (domain.StatusSnapshot, error) {
				return app.businesses.Status(ctx, domain.BusinessID(args[0]))
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, snapshot)
			}
			return writeLine(cmd, "status: %s, payment: %s", snapshot.Status, snapshot.PaymentStatus)
		},
	}
}

func newBusinessInvitationCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "invitation <business-id>",
		Short: "Show the invitation a business holds for an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invitation, err := fetch(cmd, "Loading invitation...", func(ctx context.Context) (domain.Invitation, error) {
				return app.businesses.Invitation(ctx, domain.BusinessID(args[0]), email)
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, invitation)
			}
			return writeLine(cmd, "%s invites %s (business %s)", invitation.CompanyName, invitation.Email, invitation.Status)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Invited email (defaults to the signed-in user)")

	return cmd
}

func newBusinessSetupPaymentCmd(app *app) *cobra.Command {
	var (
		interval     string
		currency     string
		subscription string
	)

	cmd := &cobra.Command{
		Use:   "setup-payment <business-id>",
		Short: "Create the subscription intent for a business awaiting payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.PaymentSetupRequest{
				SubscriptionType: domain.SubscriptionType(subscription),
				BillingInterval:  domain.BillingInterval(interval),
				Currency:         currency,
			}

			setup, err := fetch(cmd, "Setting up payment...", func(ctx context.Context) (domain.PaymentSetup, error) {
				return app.businesses.SetupPayment(ctx, domain.BusinessID(args[0]), req)
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, setup)
			}
			return writeLine(cmd, "Subscription %s is %s. Pay it with `simplu wizard pay` or `simplu payments pay-with-saved-card`.", setup.SubscriptionID, setup.Status)
		},
	}

	cmd.Flags().StringVar(&interval, "interval", string(domain.BillingMonthly), "Billing interval: month or year")
	cmd.Flags().StringVar(&currency, "currency", "", "Billing currency (defaults to the business currency)")
	cmd.Flags().StringVar(&subscription, "subscription", "", "Subscription type (defaults to the business subscription)")

	return cmd
}

func newBusinessLaunchCmd(app *app) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "launch <business-id>",
		Short: "Activate a paid, suspended business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("launching makes the business public: pass --confirm to proceed")
			}

			launched, err := fetch(cmd, "Launching business...", func(ctx context.Context) (domain.Business, error) {
				return app.businesses.Launch(ctx, domain.BusinessID(args[0]))
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, launched)
			}
			return writeLine(cmd, "%s is live at https://%s", launched.CompanyName, launched.PublicURL())
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the launch")

	return cmd
}
