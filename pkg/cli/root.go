// Package cli implements the shukketsu command-line interface on top of the
// pkg/api client.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultHost = "http://localhost:3000/api"

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				_ = PrintJSON(os.Stdout, apiErr)
			} else {
				_ = PrintJSON(os.Stdout, map[string]any{"success": false, "message": err.Error()})
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app carries the resolved client and session into subcommands. Both are
// built once in the root PersistentPreRunE, after configuration precedence
// is applied.
type app struct {
	client  *api.Client
	session *api.Session
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		output  string
		profile string
		quiet   bool
	)

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shukketsu",
		Short:         "School attendance platform CLI",
		Long:          "Command-line interface for the school attendance platform API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load config from profile if flags/env not set
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			p := cfg.ActiveProfile(profile)

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("SHUKKETSU_HOST"); v != "" {
					host = v
				} else if p.Host != "" {
					host = p.Host
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("SHUKKETSU_OUTPUT"); v != "" {
					output = v
				} else if p.Output != "" {
					output = p.Output
				}
			}

			if err := validateOutputFormat(output); err != nil {
				return err
			}
			if err := validateHostURL(host); err != nil {
				return err
			}

			jar, err := loadCookieJar(CookiesPath())
			if err != nil {
				return fmt.Errorf("load session cookies: %w", err)
			}
			client, err := api.NewClient(host, api.WithCookieJar(jar))
			if err != nil {
				return err
			}
			a.client = client
			a.session = api.NewSession(client)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", defaultHost, "API host URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress result output; rely on the exit code")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd(a))
	rootCmd.AddCommand(newAttendanceCmd(a))
	rootCmd.AddCommand(newAbsenceCmd(a))
	rootCmd.AddCommand(newStudentCmd(a))
	rootCmd.AddCommand(newGroupCmd(a))
	rootCmd.AddCommand(newOrgCmd(a))
	rootCmd.AddCommand(newTimetableCmd(a))
	rootCmd.AddCommand(newQRCmd(a))
	rootCmd.AddCommand(newNotificationCmd(a))
	rootCmd.AddCommand(newRoleCmd(a))
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
