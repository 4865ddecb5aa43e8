package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/taneba/rome/internal/config"
	"github.com/taneba/rome/internal/inspect"
)

var (
	verbose    bool
	versionStr = "dev"
)

// SetVersion records the build version and enables cobra's --version flag.
func SetVersion(v string) {
	versionStr = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:          "rome",
	Short:        "Inspect what changed in a repository",
	Long:         "Report the default branch, the files changed against a branch, and the uncommitted files of the current repository.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed and verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func newService() *inspect.Service {
	return &inspect.Service{
		Config:  config.New(""),
		Out:     os.Stdout,
		Verbose: verbose,
	}
}

func getCwd() (string, error) {
	return os.Getwd()
}
