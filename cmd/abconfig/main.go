package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"abconfig/internal/configsync"
	"abconfig/internal/di"
	"abconfig/internal/models"
	"abconfig/internal/services"
	"abconfig/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagDebug      bool
	flagType       string
	flagPlatform   string
	flagYes        bool
	flagDryRun     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func cliFlags() *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: flagConfigPath,
		DebugMode:  flagDebug,
	}
}

func newService() (services.SyncServiceInterface, error) {
	svc, err := di.InitSyncService(cliFlags())
	if err != nil {
		return nil, fmt.Errorf("initializing service: %w", err)
	}
	return svc, nil
}

func resolveTarget() (configsync.ConfigType, configsync.Platform, error) {
	t, ok := configsync.ParseConfigType(flagType)
	if !ok {
		return 0, 0, fmt.Errorf("unknown config type: %q", flagType)
	}
	return t, configsync.ParsePlatform(flagPlatform), nil
}

// confirm asks the operator before a destructive remote or local overwrite.
func confirm(prompt string) bool {
	if flagYes {
		return true
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

var rootCmd = &cobra.Command{
	Use:   "abconfig",
	Short: "Online config sync client",
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the sync daemon with the status listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(cliFlags())
		return err
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot sync across all configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		svc.SyncAll(ctx)
		if err := svc.WaitReady(ctx); err != nil {
			return err
		}

		for _, st := range svc.Statuses() {
			fmt.Printf("%s: ready=%v variant=%s\n", st.Type, st.Ready, st.Variant)
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local config data to the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		t, platform, err := resolveTarget()
		if err != nil {
			return err
		}

		if flagDryRun {
			// Print what would be uploaded without touching the server.
			payload, err := svc.DataToSave(t)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("would push %s config (%s):\n%s\n", t, platform, data)
			return nil
		}

		if !confirm(fmt.Sprintf("This overwrites the %s config on the server. Continue?", t)) {
			return nil
		}

		if err := svc.SaveConfig(context.Background(), t, platform); err != nil {
			return err
		}
		fmt.Printf("pushed %s config\n", t)
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the server config and overwrite local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		t, platform, err := resolveTarget()
		if err != nil {
			return err
		}

		if !confirm(fmt.Sprintf("This overwrites the local %s config with server data. Continue?", t)) {
			return nil
		}

		if err := svc.PullConfig(context.Background(), t, platform); err != nil {
			return err
		}
		fmt.Printf("pulled %s config\n", t)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configurations on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		listing, err := svc.ListConfigurations(context.Background())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the local config state",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		event := svc.Event()
		variant := "unset"
		if v, ok := event.CurrentVariant(); ok {
			variant = v.String()
		}

		data, err := json.MarshalIndent(event.Store(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("variant: %s\n%s\n", variant, data)
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <variant>",
	Short: "Apply an A/B variant to the local config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		t, _, err := resolveTarget()
		if err != nil {
			return err
		}

		v, ok := models.ParseVariant(args[0])
		if !ok {
			return fmt.Errorf("unknown variant: %q", args[0])
		}
		return svc.ApplyVariant(t, v)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "abconfig.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log to stderr as well")
	rootCmd.PersistentFlags().StringVarP(&flagType, "type", "t", "Event", "config type")
	rootCmd.PersistentFlags().StringVarP(&flagPlatform, "platform", "p", "", "platform (ios, android, none)")
	pushCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation")
	pushCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the payload instead of uploading")
	pullCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation")

	rootCmd.AddCommand(daemonCmd, syncCmd, pushCmd, pullCmd, listCmd, showCmd, applyCmd)
}
