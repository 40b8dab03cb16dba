package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marllondevsec/store-pos/internal/config"
)

// NewEmailCommand creates the email configuration command tree.
func NewEmailCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Configure email delivery",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "configure",
		Short: "Set sender, recipient, and SMTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			_, err = app.EmailConfigureFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout(), false)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "password",
		Short: "Set or clear the stored sender password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.EmailPasswordFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	})

	return cmd
}

// promptAddress insists on a valid address, re-asking until it gets
// one. An empty answer keeps the default.
func promptAddress(p *Prompter, out io.Writer, label, def string) (string, error) {
	for {
		addr, err := p.Line(label, def)
		if err != nil {
			return "", err
		}
		if config.ValidEmail(addr) {
			return addr, nil
		}
		fmt.Fprintln(out, "Invalid email address. Try again (e.g. caixa@example.com).")
		if addr == def {
			// Non-interactive input exhausted; stop rather than loop.
			return "", NewExitError(ExitFailure, "invalid email address")
		}
	}
}

// EmailConfigureFlow prompts for addresses and SMTP settings and saves
// them. With askPassword it also offers to store the credential, for
// the first-run setup.
func (a *App) EmailConfigureFlow(p *Prompter, out io.Writer, askPassword bool) (config.EmailConfig, error) {
	ec := a.EmailConfig()
	fmt.Fprintln(out, "=== Email configuration ===")

	from, err := promptAddress(p, out, "Register (sender) email", ec.EmailFrom)
	if err != nil {
		return ec, err
	}
	ec.EmailFrom = from

	if askPassword {
		fmt.Fprintln(out, "If you use Gmail, supply an app password, not the account password.")
		pwd, err := p.Password("Sender password (blank to skip storing)")
		if err != nil {
			return ec, err
		}
		if pwd != "" {
			ec.SetPassword(pwd)
		}
	}

	to, err := promptAddress(p, out, "Shop (recipient) email", ec.EmailTo)
	if err != nil {
		return ec, err
	}
	ec.EmailTo = to

	server, err := p.Line("SMTP server", ec.SMTPServer)
	if err != nil {
		return ec, err
	}
	ec.SMTPServer = server

	portRaw, err := p.Line("SMTP port", strconv.Itoa(ec.SMTPPort))
	if err != nil {
		return ec, err
	}
	if port, err := strconv.Atoi(portRaw); err == nil {
		ec.SMTPPort = port
	}

	if err := ec.Save(a.Config.EmailConfigFile); err != nil {
		return ec, WrapExitError(ExitCommandError, "failed to save email configuration", err)
	}
	fmt.Fprintf(out, "Email configuration saved to: %s\n", a.Config.EmailConfigFile)
	return ec, nil
}

// EmailPasswordFlow stores (obfuscated) or clears the sender password.
func (a *App) EmailPasswordFlow(p *Prompter, out io.Writer) error {
	ec := a.EmailConfig()
	fmt.Fprintln(out, "=== Sender password ===")
	fmt.Fprintln(out, "Use an app password if your provider requires one (e.g. Gmail).")
	pwd, err := p.Password("Password (blank to remove the stored one)")
	if err != nil {
		return err
	}
	if pwd == "" {
		if _, had := ec.Credential(); !had {
			fmt.Fprintln(out, "No password was stored.")
			return nil
		}
		ec.SetPassword("")
		if err := ec.Save(a.Config.EmailConfigFile); err != nil {
			return WrapExitError(ExitCommandError, "failed to save email configuration", err)
		}
		fmt.Fprintln(out, "Stored password removed.")
		return nil
	}
	ec.SetPassword(pwd)
	if err := ec.Save(a.Config.EmailConfigFile); err != nil {
		return WrapExitError(ExitCommandError, "failed to save email configuration", err)
	}
	fmt.Fprintln(out, "Password stored (encoded) in email_config.json.")
	return nil
}
