// launchmc installs and repairs moddable game clients from a declarative
// profile: vanilla or with a Fabric, Quilt, Forge or NeoForge loader
// overlay.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"launchmc/config"
	"launchmc/install"
	"launchmc/progress"
	"launchmc/update"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "launchmc",
		Short:         "Install and repair moddable game clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "launchmc.yml", "profile config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(installCmd(&configPath))
	root.AddCommand(updateCmd(&configPath))
	root.AddCommand(versionCmd())
	return root
}

func installCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Bring the game directory to a launchable state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Version == "" {
				return fmt.Errorf("no version set in %s", *configPath)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			inst := &install.Installer{
				Config: cfg,
				Sink:   &progress.LogSink{},
			}
			desc, err := inst.Install(ctx)
			if err != nil {
				return err
			}
			log.Info("install complete", "version", cfg.Name(), "mainClass", desc.MainClass)
			return nil
		},
	}
}

func updateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update the launcher binary itself",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.UpdateURL == "" {
				return fmt.Errorf("no update_url set in %s", *configPath)
			}
			return update.Apply(nil, cfg.UpdateURL)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the launcher version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
