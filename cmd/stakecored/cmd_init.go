package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/stakecore/stakecore/config"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize the node's working directory",
	Run:   initNode,
	Args:  cobra.NoArgs,
}

var flagInit = struct {
	LogLevel      string
	ListenAddress string
	Memory        bool
}{}

func init() {
	cmdMain.AddCommand(cmdInit)

	cmdInit.Flags().StringVar(&flagInit.LogLevel, "log-level", "info", "Default logging level")
	cmdInit.Flags().StringVarP(&flagInit.ListenAddress, "listen", "l", "", "API listen address")
	cmdInit.Flags().BoolVar(&flagInit.Memory, "memory", false, "Use in-memory storage instead of Badger")
}

func initNode(cmd *cobra.Command, _ []string) {
	c := config.Default()
	c.RootDir = flagMain.WorkDir
	c.LogLevel = flagInit.LogLevel
	if flagInit.ListenAddress != "" {
		c.API.ListenAddress = flagInit.ListenAddress
	}
	if flagInit.Memory {
		c.Storage.Type = config.MemoryStorage
		c.Storage.Path = ""
	}

	checkf(c.Validate(), "validate configuration")
	checkf(config.Store(c), "write configuration")
}
