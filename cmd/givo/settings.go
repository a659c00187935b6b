package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all preferences",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			action, err := state.SettingAction(a.State.GetState().Settings, args[0], args[1])
			if err != nil {
				return err
			}
			if action != nil {
				a.State.Dispatch(action)
			}
			fmt.Printf("%s = %s\n", args[0], settingValue(a.State.GetState().Settings, args[0]))
			return nil
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.State.Dispatch(state.ResetSettings{})
			fmt.Println("Preferences reset to defaults")
			return nil
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		s := a.State.GetState().Settings
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, k := range state.SettingKeys {
			fmt.Fprintf(w, "%s\t%s\n", k, settingValue(s, k))
		}
		return w.Flush()
	})
}

func settingValue(s models.Settings, key string) string {
	switch key {
	case "darkMode":
		return fmt.Sprint(s.DarkMode)
	case "theme":
		return string(s.Theme)
	case "textSize":
		return string(s.TextSize)
	case "notificationsEnabled":
		return fmt.Sprint(s.NotificationsEnabled)
	case "emailNotifications":
		return fmt.Sprint(s.EmailNotifications)
	case "autoSync":
		return fmt.Sprint(s.AutoSync)
	case "syncInterval":
		return fmt.Sprintf("%d min", s.SyncInterval)
	case "language":
		return string(s.Language)
	case "privacyMode":
		return fmt.Sprint(s.PrivacyMode)
	case "deletedAccountsSync":
		return fmt.Sprint(s.DeletedAccountsSync)
	case "offlineMode":
		return fmt.Sprint(s.OfflineMode)
	case "analyticsEnabled":
		return fmt.Sprint(s.AnalyticsEnabled)
	}
	return "?"
}
