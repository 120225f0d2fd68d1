package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	var (
		driver string
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new brewscout workspace",
		Long:  "Creates a .brewscout directory with default configuration and an empty database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(driver, addr)
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "Store driver (memory, sqlite or postgres)")
	cmd.Flags().StringVar(&addr, "addr", "", "Server listen address")
	return cmd
}

func runInit(driver, addr string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("brewscout already initialized in %s", cwd)
	}

	switch driver {
	case "", config.DriverMemory, config.DriverSQLite, config.DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q (expected memory, sqlite or postgres)", driver)
	}

	if driver == "" && addr == "" {
		err = config.WriteDefault(cwd)
	} else {
		cfg := config.Default()
		if driver != "" {
			cfg.Store.Driver = driver
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		err = config.Write(cwd, cfg)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	return withDeps(func(d *Deps) error {
		fmt.Println("Brewscout initialized successfully!")
		return nil
	})
}
