package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/fsutil"
	"github.com/yaklabco/enumcmp/pkg/runner"
)

type restoreFlags struct {
	dryRun         bool
	followSymlinks bool
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Undo fixes by restoring sources from their backups",
		Long: `Restore C# sources rewritten by 'enumcmp lint --fix' from the
` + fsutil.BackupSuffix + ` backups written next to them. Each restored
backup is removed.

A backup holds the source as it was before the first fix, so restoring undoes
every fix applied since.

Examples:
  enumcmp restore                 Restore every backup under the current directory
  enumcmp restore src/Program.cs  Restore one file
  enumcmp restore --dry-run       List the files that would be restored`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runRestore(ctx, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "list files with backups without restoring them")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")

	return cmd
}

func runRestore(ctx context.Context, args []string, flags *restoreFlags) error {
	logger := logging.NewInteractive()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		IncludeGenerated: true,
		FollowSymlinks:   flags.followSymlinks,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	var restored int
	var errs []error
	for _, path := range files {
		if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			continue
		}
		if flags.dryRun {
			logger.Info("would restore", logging.FieldPath, path)
			restored++
			continue
		}

		ok, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if ok {
			logger.Info("restored", logging.FieldPath, path)
			restored++
		}
	}

	logger.Info("restore complete",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldFilesRestored, restored,
		logging.FieldDryRun, flags.dryRun,
	)

	return errors.Join(errs...)
}
