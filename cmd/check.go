package cmd

import (
	"github.com/mj1618/alwaysontop/internal/output"
	"github.com/mj1618/alwaysontop/internal/update"
	"github.com/mj1618/alwaysontop/internal/version"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether this is the latest release",
	Long:  "Query the release endpoint and report latest, update-needed or error. Unlike the other commands this never blocks startup.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkReport is the output of the check command.
type checkReport struct {
	Status  update.Status `yaml:"status"            json:"status"`
	Current string        `yaml:"current"           json:"current"`
	Remote  string        `yaml:"remote,omitempty"  json:"remote,omitempty"`
	URL     string        `yaml:"url,omitempty"     json:"url,omitempty"`
	Error   string        `yaml:"error,omitempty"   json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker := appConfig.Checker(version.Version)
	status, rel, err := checker.Check(cmd.Context())

	report := checkReport{
		Status:  status,
		Current: version.Version,
		Remote:  rel.TagName,
		URL:     rel.HTMLURL,
	}
	if err != nil {
		report.Error = err.Error()
	}
	return output.Print(report)
}
