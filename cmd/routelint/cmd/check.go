package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routekit/routetpl/internal/lint"
)

var (
	checkFile  string
	checkWatch bool
)

var checkCmd = &cobra.Command{
	Use:   "check [templates...]",
	Short: "Parse route templates and report diagnostics",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "check templates from a file, one per line")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-check the template file on change")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	renderer := lint.NewRenderer(os.Stdout, !noColor && !cfg.NoColor)

	if checkWatch {
		if checkFile == "" {
			return fmt.Errorf("--watch requires --file")
		}
		return watchFile(renderer, checkFile)
	}

	var results []lint.Result
	for _, tpl := range append(append([]string{}, cfg.Templates...), args...) {
		results = append(results, lint.CheckTemplate(tpl))
	}
	if checkFile != "" {
		fromFile, err := lint.CheckFile(checkFile)
		if err != nil {
			return err
		}
		results = append(results, fromFile...)
	}
	if len(results) == 0 {
		return fmt.Errorf("nothing to check: pass templates as arguments, --file or config")
	}
	if failed := renderer.RenderAll(results); failed > 0 {
		return fmt.Errorf("%d of %d templates have diagnostics", failed, len(results))
	}
	return nil
}

// watchFile re-checks the template file each time it changes.
func watchFile(renderer *lint.Renderer, path string) error {
	check := func() {
		results, err := lint.CheckFile(path)
		if err != nil {
			printError("check", err)
			return
		}
		renderer.RenderAll(results)
	}
	check()

	watcher, err := lint.NewWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for {
		select {
		case <-watcher.Changed():
			check()
		case err := <-watcher.Errors():
			printError("watch", err)
		}
	}
}
