package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"procurement/client/gateway"
	"procurement/client/workflow"
	"procurement/models"
)

func (a *app) loginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := newPrompter(a.in, a.out)
			var err error
			if username == "" {
				if username, err = p.ask(ctx, "Username", ""); err != nil {
					return err
				}
			}
			password, err := p.secret(ctx, "Password")
			if err != nil {
				return err
			}

			res, err := a.gw.Login(ctx, username, password)
			if err != nil {
				if msg := gateway.ServerMessage(err); msg != "" {
					return errors.New(msg)
				}
				return err
			}
			if err := a.store.Save(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s), token saved to %s\n", res.User.Username, res.User.Role, a.store.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the access token and remove it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.gw.Logout(cmd.Context()); err != nil {
				a.logger.Warn("server-side logout failed", "error", err)
			}
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var q gateway.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				q.Limit = a.cfg.PageSize
			}
			wf := a.newWorkflow(nil, func() {})
			if err := wf.List().Fetch(cmd.Context(), q); err != nil {
				var verr *workflow.ValidationError
				if errors.As(err, &verr) {
					return verr
				}
				renderVendors(a.out, wf.List().Snapshot())
				return errReported
			}
			renderVendors(a.out, wf.List().Snapshot())
			return nil
		},
	}
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", workflow.DefaultPageSize, "vendors per page")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "filter by name, code or contact person")
	return cmd
}

func (a *app) itemsCmd() *cobra.Command {
	q := gateway.Query{Page: 1, Limit: 10}
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.gw.ListItems(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderItems(a.out, page)
			return nil
		},
	}
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 10, "items per page")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "filter by item code or name")
	return cmd
}

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Register a new vendor and its login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			promptCtx, cancelPrompt := context.WithCancel(cmd.Context())
			defer cancelPrompt()
			p := newPrompter(a.in, a.out)
			wf := a.newWorkflow(nil, cancelPrompt)
			defer wf.Close()

			if err := wf.Create(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Create New Vendor (Ctrl-C to cancel)")
			if err := a.runForm(cmd.Context(), promptCtx, p, wf); err != nil {
				return a.finishForm(wf, err)
			}
			return a.finishForm(wf, a.runPassword(cmd.Context(), promptCtx, p, wf))
		},
	}
}

// runPassword prompts the password pair until the registration goes through or the
// user gives up.
func (a *app) runPassword(reqCtx, promptCtx context.Context, p *prompter, wf *workflow.Workflow) error {
	if wf.State() == workflow.PasswordPending {
		fmt.Fprintln(a.out, "Set Vendor Password (at least 6 characters)")
	}
	for wf.State() == workflow.PasswordPending {
		password, err := p.secret(promptCtx, "Password")
		if err != nil {
			return a.abandoned(wf, err)
		}
		confirm, err := p.secret(promptCtx, "Confirm Password")
		if err != nil {
			return a.abandoned(wf, err)
		}
		err = wf.ConfirmPassword(reqCtx, password, confirm)
		if err == nil {
			return nil
		}
		if err := a.retryOrCancel(promptCtx, p, wf, err); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendor, err := a.gw.GetVendor(cmd.Context(), args[0])
			if err != nil {
				if msg := gateway.ServerMessage(err); msg != "" {
					return errors.New(msg)
				}
				return err
			}

			promptCtx, cancelPrompt := context.WithCancel(cmd.Context())
			defer cancelPrompt()
			p := newPrompter(a.in, a.out)
			wf := a.newWorkflow(nil, cancelPrompt)
			defer wf.Close()

			if err := wf.Edit(*vendor); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Edit Vendor (Enter keeps the current value, Ctrl-C to cancel)")
			return a.finishForm(wf, a.runForm(cmd.Context(), promptCtx, p, wf))
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := ""
			if vendor, err := a.gw.GetVendor(ctx, args[0]); err == nil {
				name = vendor.Name
			} else {
				a.logger.Debug("could not look up vendor name", "id", args[0], "error", err)
			}

			var confirm workflow.Confirmer = assumeYes
			if !yes {
				confirm = a.promptConfirmer(newPrompter(a.in, a.out))
			}
			wf := a.newWorkflow(confirm, func() {})

			err := wf.Delete(ctx, args[0], name)
			switch {
			case errors.Is(err, workflow.ErrDeleteDeclined):
				fmt.Fprintln(a.out, "Cancelled")
				return nil
			case err != nil:
				return errReported
			}
			renderVendors(a.out, wf.List().Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

// runForm prompts the vendor fields until Submit accepts them.
func (a *app) runForm(reqCtx, promptCtx context.Context, p *prompter, wf *workflow.Workflow) error {
	for wf.State() == workflow.FormOpen {
		form, err := promptVendor(promptCtx, p, wf.Snapshot().Form)
		if err != nil {
			return a.abandoned(wf, err)
		}
		err = wf.Submit(reqCtx, form)
		if err == nil {
			return nil
		}
		if err := a.retryOrCancel(promptCtx, p, wf, err); err != nil {
			return err
		}
	}
	return nil
}

// retryOrCancel shows the inline error after a failed attempt and decides whether the
// loop goes around again.
func (a *app) retryOrCancel(promptCtx context.Context, p *prompter, wf *workflow.Workflow, err error) error {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(a.out, "  %s\n", verr.Message)
		return nil
	}
	if wf.State() == workflow.Closed {
		return a.abandoned(wf, errCancelled)
	}
	if banner := wf.Err(); banner != "" {
		fmt.Fprintf(a.out, "Error! %s\n", banner)
	}
	again, perr := p.confirm(promptCtx, "Try again?", true)
	if perr != nil {
		return a.abandoned(wf, perr)
	}
	if !again {
		wf.Cancel()
		return errReported
	}
	return nil
}

// abandoned closes the form after a prompt failed or was interrupted.
func (a *app) abandoned(wf *workflow.Workflow, err error) error {
	wf.Cancel()
	return err
}

// finishForm renders the refreshed list once the workflow has closed, or reports
// that the form was cancelled.
func (a *app) finishForm(wf *workflow.Workflow, err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	if wf.State() != workflow.Closed {
		return nil
	}
	if snap := wf.List().Snapshot(); snap.State != workflow.ListIdle {
		renderVendors(a.out, snap)
	}
	return nil
}

func promptVendor(ctx context.Context, p *prompter, cur models.Vendor) (models.Vendor, error) {
	v := cur
	addr := models.Address{}
	if cur.Address != nil {
		addr = *cur.Address
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Vendor Code*", &v.VendorCode},
		{"Name*", &v.Name},
		{"Contact Person", &v.ContactPerson},
		{"Mobile Number", &v.MobileNumber},
		{"Email", &v.Email},
		{"Street", &addr.Street},
		{"City", &addr.City},
		{"State", &addr.State},
		{"Pincode", &addr.Pincode},
	}
	for _, f := range fields {
		answer, err := p.ask(ctx, f.label, *f.dst)
		if err != nil {
			return models.Vendor{}, err
		}
		*f.dst = answer
	}

	if addr != (models.Address{}) {
		v.Address = &addr
	} else {
		v.Address = nil
	}
	return v, nil
}
