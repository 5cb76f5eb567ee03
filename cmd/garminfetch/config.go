package garminfetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paddlelog/garmin-fetch/internal/credentials"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect garmin-fetch configuration",
}

type configReport struct {
	Path        string             `json:"path"`
	Searched    []string           `json:"searched"`
	OnePassword *onePasswordReport `json:"onepassword,omitempty"`
}

type onePasswordReport struct {
	Account       string `json:"account"`
	Item          string `json:"item"`
	Vault         string `json:"vault"`
	EmailRef      string `json:"email_ref"`
	PasswordRef   string `json:"password_ref"`
	EmailField    string `json:"email_field"`
	PasswordField string `json:"password_field"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file in use and the 1Password settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		report := configReport{Path: cfg.Path, Searched: configSearchPaths()}
		if op := cfg.Garmin.OnePassword; op.Enabled() {
			report.OnePassword = &onePasswordReport{
				Account:       op.Account,
				Item:          op.Item,
				Vault:         op.Vault(),
				EmailField:    op.EmailField(),
				PasswordField: op.PasswordField(),
				EmailRef:      credentials.SecretReference(op.Vault(), op.Item, op.EmailField()),
				PasswordRef:   credentials.SecretReference(op.Vault(), op.Item, op.PasswordField()),
			}
		}
		if configJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}

		out := cmd.OutOrStdout()
		path := report.Path
		if path == "" {
			path = "(none found)"
		}
		fmt.Fprintf(out, "Config file: %s\n", path)
		for _, p := range report.Searched {
			fmt.Fprintf(out, "  searched: %s\n", p)
		}
		if report.OnePassword == nil {
			fmt.Fprintf(out, "1Password: not configured (using %s and %s)\n", credentials.EnvEmail, credentials.EnvPassword)
			return nil
		}
		fmt.Fprintf(out, "1Password account: %s\n", report.OnePassword.Account)
		fmt.Fprintf(out, "Email reference: %s\n", report.OnePassword.EmailRef)
		fmt.Fprintf(out, "Password reference: %s\n", report.OnePassword.PasswordRef)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "Output as JSON")
}
