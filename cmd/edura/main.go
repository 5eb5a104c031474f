package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"edura/internal/bootstrap"
	dashdto "edura/internal/modules/dashboard/dto"
	sessiondto "edura/internal/modules/session/dto"
	"edura/internal/platform/config"
	"edura/internal/platform/logging"
)

type globalFlags struct {
	dataDir string
	apiURL  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "edura",
		Short:         "Edura e-learning terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for config, session storage and logs")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "platform API base URL")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newRegisterCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoAmICmd(flags))
	root.AddCommand(newResolveCmd(flags))
	root.AddCommand(newDashboardCmd(flags))
	root.AddCommand(newVersionCmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.New(config.Options{DataDir: flags.dataDir})
	if err != nil {
		return config.Config{}, err
	}
	return cfg.WithAPIURL(flags.apiURL), nil
}

// loadApp wires the app for a one-shot command and restores the stored
// session.
func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg, os.Stderr)
	if cfg.LogLevel == config.DefaultLogLevel {
		logger.SetLevel(hclog.Warn)
	}
	app, err := bootstrap.New(cfg, logger, "/")
	if err != nil {
		return nil, err
	}
	app.SessionCLI.Rehydrate(context.Background())
	return app, nil
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var startURL, themeName string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the Edura terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closer, err := logging.NewFile(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			app, err := bootstrap.New(cfg, logger, startURL)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app, themeName)
		},
	}
	cmd.Flags().StringVar(&startURL, "url", "/", "initial location, e.g. /login or /student-profile")
	cmd.Flags().StringVar(&themeName, "theme", "dark", "color theme: dark|light")
	return cmd
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var role, email, password string
	injected := sessiondto.CredentialsInput{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: "Sign in with --email and --password, or install a token issued elsewhere " +
			"with --token (plus --user-id, --email and --first-name to describe the account).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if injected.Token == "" && (email == "" || password == "") {
				return fmt.Errorf("login needs --email and --password, or --token")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()

			var out sessiondto.SessionOutput
			if injected.Token != "" {
				injected.Role, injected.Email = role, email
				out, err = app.SessionCLI.SetCredentials(context.Background(), injected)
			} else {
				out, err = app.SessionCLI.Login(context.Background(), role, email, password)
			}
			if err != nil {
				return authError(out, err)
			}
			printSession(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "student", "account type: student|teacher|admin")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&injected.Token, "token", "", "already-issued bearer token to store instead of signing in")
	cmd.Flags().StringVar(&injected.ID, "user-id", "", "account id for --token")
	cmd.Flags().StringVar(&injected.FirstName, "first-name", "", "first name for --token")
	cmd.Flags().StringVar(&injected.LastName, "last-name", "", "last name for --token")
	return cmd
}

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	in := sessiondto.RegisterInput{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Register(context.Background(), in)
			if err != nil {
				return authError(out, err)
			}
			printSession(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Role, "role", "student", "account type: student|teacher|admin")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Mobile, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&in.NIC, "nic", "", "national identity card number")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	for _, name := range []string{"first-name", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if _, err := app.SessionCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoAmICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			printSession(cmd.OutOrStdout(), app.SessionCLI.Current(context.Background()))
			return nil
		},
	}
}

func newResolveCmd(flags *globalFlags) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which view a page resolves to for the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.RoutingCLI.Resolve(context.Background(), page)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "requested=%s view=%s rule=%s redirected=%t\n", out.Requested, out.View, out.Rule, out.Redirected)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "home", "page identifier, e.g. teacher-profile")
	return cmd
}

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	dashboard := &cobra.Command{Use: "dashboard", Short: "Read the signed-in user's dashboard"}

	var role string
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.DashboardCLI.Stats(context.Background(), role)
			if err != nil {
				return err
			}
			for _, s := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Label, s.Value)
			}
			return nil
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			p, err := app.DashboardCLI.Profile(context.Background(), role)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\nmobile: %s\nnic: %s\nrole: %s\nstatus: %s\njoined: %s\n",
				p.ID, strings.TrimSpace(p.FirstName+" "+p.LastName), p.Email, p.Mobile, p.NIC, p.Role, active(p.Active), p.CreatedAt)
			return nil
		},
	}

	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			courses, err := app.DashboardCLI.Courses(context.Background(), role)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
				return nil
			}
			for _, c := range courses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Teacher, active(c.Active))
			}
			return nil
		},
	}

	for _, c := range []*cobra.Command{statsCmd, profileCmd, coursesCmd} {
		c.Flags().StringVar(&role, "role", "", "dashboard role (defaults to the session role)")
	}

	dashboard.AddCommand(statsCmd, profileCmd, coursesCmd,
		newMembersCmd(flags, "students"), newMembersCmd(flags, "teachers"))
	return dashboard
}

func newMembersCmd(flags *globalFlags, kind string) *cobra.Command {
	var page, limit int
	var search string
	cmd := &cobra.Command{
		Use:   kind,
		Short: "List registered " + kind + " (admin only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			var out dashdto.MemberPageOutput
			if kind == "students" {
				out, err = app.DashboardCLI.Students(context.Background(), page, limit, search)
			} else {
				out, err = app.DashboardCLI.Teachers(context.Background(), page, limit, search)
			}
			if err != nil {
				return err
			}
			for _, m := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, active(m.Active))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d total=%d\n", out.Page, out.Pages, out.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().StringVar(&search, "search", "", "filter by name or email")
	return cmd
}

func newVersionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.AppName, cfg.AppVersion)
			return nil
		},
	}
}

func printSession(w io.Writer, s sessiondto.SessionOutput) {
	if !s.Authenticated || s.User == nil {
		_, _ = fmt.Fprintln(w, "not signed in")
		return
	}
	u := s.User
	_, _ = fmt.Fprintf(w, "id=%s role=%s email=%s name=%q\n", u.ID, u.Role, u.Email, strings.TrimSpace(u.FirstName+" "+u.LastName))
}

// authError prefers the message the store settled on.
func authError(out sessiondto.SessionOutput, err error) error {
	if out.Error != "" {
		return fmt.Errorf("%s: %w", out.Error, err)
	}
	return err
}

func active(b *bool) string {
	switch {
	case b == nil:
		return "-"
	case *b:
		return "active"
	}
	return "inactive"
}
