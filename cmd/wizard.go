package cmd

import (
	"context"
	"errors"
	"fmt"

	businessrender "github.com/simplu-io/simplu-cli/internal/adapters/render/business"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/cobra"
)

const draftFlag = "draft"

func newWizardCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Create or edit a business step by step",
		Long:  "The wizard keeps its progress in a local draft, so every step is its own command. Without --draft the commands act on the most recent open draft.",
	}
	cmd.PersistentFlags().String(draftFlag, "", "Draft id (defaults to the most recent open draft)")

	cmd.AddCommand(
		newWizardStartCmd(app),
		newWizardShowCmd(app),
		newWizardListCmd(app),
		newWizardSetCmd(app),
		newWizardLocationCmd(app),
		newWizardStepCmd(app, "next", "Move to the next step", app.wizard.Next),
		newWizardStepCmd(app, "back", "Move to the previous step", app.wizard.Back),
		newWizardSubmitCmd(app),
		newWizardPayCmd(app),
		newWizardRefreshCmd(app),
		newWizardConfirmCmd(app),
		newWizardLaunchCmd(app),
		newWizardDiscardCmd(app),
	)

	return cmd
}

// resolveDraft picks the --draft id or falls back to the current open draft.
func resolveDraft(cmd *cobra.Command, app *app) (domain.DraftID, error) {
	id, err := cmd.Flags().GetString(draftFlag)
	if err != nil {
		return "", err
	}
	if id != "" {
		return domain.DraftID(id), nil
	}

	current, err := app.wizard.Current(cmd.Context())
	if errors.Is(err, domain.ErrDraftNotFound) {
		return "", errors.New("no open wizard draft; run `simplu wizard start`")
	}
	if err != nil {
		return "", err
	}
	return current.ID, nil
}

type draftAction func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error)

// runDraftAction resolves the draft, runs action behind the spinner and
// prints the resulting draft.
func runDraftAction(cmd *cobra.Command, app *app, label string, action draftAction) error {
	id, err := resolveDraft(cmd, app)
	if err != nil {
		return err
	}

	draft, err := fetch(cmd, label, func(ctx context.Context) (domain.WizardDraft, error) {
		return action(ctx, id)
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, draft, businessrender.Wizard)
}

func newWizardStartCmd(app *app) *cobra.Command {
	var edit string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a new draft, or an edit draft with --edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := fetch(cmd, "Opening wizard...", func(ctx context.Context) (domain.WizardDraft, error) {
				if edit != "" {
					return app.wizard.Edit(ctx, domain.BusinessID(edit))
				}
				return app.wizard.Start(ctx)
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, draft, businessrender.Wizard)
		},
	}

	cmd.Flags().StringVar(&edit, "edit", "", "Edit the business with this id instead of creating one")

	return cmd
}

func newWizardShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveDraft(cmd, app)
			if err != nil {
				return err
			}
			draft, err := app.wizard.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeOutput(cmd, draft, businessrender.Wizard)
		},
	}
}

func newWizardListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List local drafts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts, err := app.wizard.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, drafts, businessrender.Drafts)
		},
	}
}

func newWizardSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name=value>...",
		Short: "Change form fields",
		Long:  fmt.Sprintf("Change form fields. Known fields: %v.", domain.FormFields()),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(args)
			if err != nil {
				return err
			}
			id, err := resolveDraft(cmd, app)
			if err != nil {
				return err
			}

			var draft domain.WizardDraft
			for _, name := range sortedKeys(fields) {
				draft, err = app.wizard.SetField(cmd.Context(), id, name, fields[name])
				if err != nil {
					return err
				}
			}
			return writeOutput(cmd, draft, businessrender.Wizard)
		},
	}
}

func newWizardLocationCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Add, change or remove locations",
	}

	cmd.AddCommand(
		newWizardLocationAddCmd(app),
		newWizardLocationUpdateCmd(app),
		newWizardLocationRemoveCmd(app),
	)

	return cmd
}

func newWizardLocationAddCmd(app *app) *cobra.Command {
	var (
		name     string
		address  string
		timezone string
		inactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := domain.Location{
				Name:     name,
				Address:  address,
				Timezone: timezone,
				Active:   !inactive,
			}
			return runDraftAction(cmd, app, "Saving draft...", func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
				return app.wizard.AddLocation(ctx, id, location)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Location name")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default "+domain.DefaultTimezone+")")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Add the location as inactive")

	return cmd
}

func newWizardLocationUpdateCmd(app *app) *cobra.Command {
	var (
		name     string
		address  string
		timezone string
		inactive bool
	)

	cmd := &cobra.Command{
		Use:   "update <location-id>",
		Short: "Change a location; only the flags given are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			patch := func(location *domain.Location) {
				if flags.Changed("name") {
					location.Name = name
				}
				if flags.Changed("address") {
					location.Address = address
				}
				if flags.Changed("timezone") {
					location.Timezone = timezone
				}
				if flags.Changed("inactive") {
					location.Active = !inactive
				}
			}
			return runDraftAction(cmd, app, "Saving draft...", func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
				return app.wizard.UpdateLocation(ctx, id, args[0], patch)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Location name")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Mark the location inactive (--inactive=false re-activates it)")

	return cmd
}

func newWizardLocationRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <location-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a location",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraftAction(cmd, app, "Saving draft...", func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
				return app.wizard.RemoveLocation(ctx, id, args[0])
			})
		},
	}
}

func newWizardStepCmd(app *app, use string, short string, action draftAction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Saving draft...", action)
		},
	}
}

func newWizardSubmitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Send the reviewed form to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Submitting business...", app.wizard.Submit)
		},
	}
}

func newWizardPayCmd(app *app) *cobra.Command {
	var (
		card         string
		interval     string
		currency     string
		subscription string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay for the business with a saved card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Confirming payment...", func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
				cards, err := app.payments.Cards(ctx)
				if err != nil {
					return domain.WizardDraft{}, err
				}
				selected, err := application.SelectCard(cards, card)
				if err != nil {
					return domain.WizardDraft{}, err
				}

				return app.wizard.Pay(ctx, id, application.PayCommand{
					PaymentMethodID:  selected.ID,
					BillingInterval:  domain.BillingInterval(interval),
					Currency:         currency,
					SubscriptionType: domain.SubscriptionType(subscription),
				})
			})
		},
	}

	cmd.Flags().StringVar(&card, "card", "", "Saved card id (defaults to the default card)")
	cmd.Flags().StringVar(&interval, "interval", string(domain.BillingMonthly), "Billing interval: month or year")
	cmd.Flags().StringVar(&currency, "currency", "", "Billing currency (defaults to the form currency)")
	cmd.Flags().StringVar(&subscription, "subscription", "", "Subscription type (defaults to the form subscription)")

	return cmd
}

func newWizardRefreshCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the business status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Refreshing business...", app.wizard.Refresh)
		},
	}
}

func newWizardConfirmCmd(app *app) *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Saving draft...", func(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
				return app.wizard.ConfirmLaunch(ctx, id, !revoke)
			})
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "Withdraw an earlier confirmation")

	return cmd
}

func newWizardLaunchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Launch the confirmed, paid business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraftAction(cmd, app, "Launching business...", app.wizard.Launch)
		},
	}
}

func newWizardDiscardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Delete the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveDraft(cmd, app)
			if err != nil {
				return err
			}
			if err := app.wizard.Discard(cmd.Context(), id); err != nil {
				return err
			}
			return writeLine(cmd, "Discarded draft %s.", id)
		},
	}
}
