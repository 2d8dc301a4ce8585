package cmd

import (
	"strings"

	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/output"
	"github.com/mj1618/alwaysontop/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List windows that can be pinned",
	Long:        "List visible top-level windows with a title, their owning app and PID.",
	Annotations: gated(),
	RunE:        runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("filter", "", "Only list windows whose title contains this text")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().Bool("all", false, "Include windows of this process and its parents")
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("filter")
	pid, _ := cmd.Flags().GetInt("pid")
	all, _ := cmd.Flags().GetBool("all")

	windows, err := env.provider.Directory.ListWindows()
	if err != nil {
		return err
	}
	if !all {
		windows = platform.ExcludePIDs(windows, platform.Ancestors())
	}
	return output.Print(filterWindows(windows, filter, pid))
}

// filterWindows keeps windows whose title contains filter (case-insensitive)
// and, when pid is set, that belong to pid.
func filterWindows(windows []model.Window, filter string, pid int) []model.Window {
	filter = strings.ToLower(filter)
	out := []model.Window{}
	for _, w := range windows {
		if pid != 0 && w.PID != pid {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(w.Title), filter) {
			continue
		}
		out = append(out, w)
	}
	return out
}
