package commands

import (
	"fmt"
	"os"
	"path/filepath"

	intconfig "github.com/leapstack-labs/phraselint/internal/config"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .phraselint.yaml configuration",
		Long: `Create a commented .phraselint.yaml in the target directory.

Use --example to also write a sample document with a few misused phrases
and a configuration that re-grades some rules and turns on the cache.`,
		Example: `  # Initialize in current directory
  phraselint init

  # Initialize with a sample document
  phraselint init --example

  # Initialize in a new directory
  phraselint init my-docs --example

  # Force overwrite existing config
  phraselint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also create a sample document to lint")

	return cmd
}

// prepareInitDir creates dir and refuses to replace an existing config
// unless force is set.
func prepareInitDir(dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}
	return nil
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("phraselint configuration created!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'phraselint rules' to see every rule")
	r.Println("  2. Disable or re-grade rules in " + intconfig.ConfigFileName)
	r.Println("  3. Run 'phraselint lint' to check your documents")

	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	if err := copyTemplate("example", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("example")
	groups := groupTemplateFiles(files)

	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Header(2, "Documents")
	for _, f := range groups["docs"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("phraselint example created!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  phraselint lint          Lint the sample document")
	r.Println("  phraselint lint --fix    Apply the first suggestion of every lint")
	r.Println("  phraselint doctor        Check the configuration")

	return nil
}
