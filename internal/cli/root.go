package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/blogcore/internal/netx"
	"github.com/dmitrijs2005/blogcore/internal/server"
	"github.com/dmitrijs2005/blogcore/internal/server/config"
	"github.com/dmitrijs2005/blogcore/internal/server/media"
	"github.com/spf13/cobra"
)

// Seams for tests.
var (
	newApp       = server.NewApp
	newPresigner = func(c *config.Config) uploadPresigner { return media.NewPresigner(c) }
	putPresigned = netx.PutPresigned
)

type uploadPresigner interface {
	PresignUpload(ctx context.Context, kind media.Kind) (*media.Upload, error)
}

// NewRootCmd builds the blogctl command tree reading from in and writing to out.
// Logs go to out as well unless the caller redirects them with SetErr.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Blog core administration and interactive console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(root.PersistentFlags())
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(newMigrateCmd(), newConsoleCmd(), newPresignCmd())
	return root
}

// Execute runs blogctl against the process stdio.
func Execute() {
	root := NewRootCmd(os.Stdin, os.Stdout)
	root.SetErr(os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			cfg.MigrateOnStart = false

			app, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			app, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			NewConsole(app.Managers(), cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
			return nil
		},
	}
}

func newPresignCmd() *cobra.Command {
	var file, contentType string

	cmd := &cobra.Command{
		Use:   "presign <post|profile>",
		Short: "Issue a presigned upload URL for a post image or profile picture",
		Long: `Issue a presigned upload URL for a post image or profile picture.

With --file the local file is uploaded right away and only the public URL
needs to be stored on the post or user.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			var data []byte
			if file != "" {
				if data, err = os.ReadFile(filepath.Clean(file)); err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
			}

			up, err := newPresigner(cfg).PresignUpload(cmd.Context(), kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Key:        %s\n", up.Key)
			fmt.Fprintf(out, "Upload URL: %s\n", up.UploadURL)
			fmt.Fprintf(out, "Public URL: %s\n", up.PublicURL)
			fmt.Fprintf(out, "Expires:    %s\n", up.ExpiresAt.Format("2006-01-02 15:04:05 MST"))

			if file == "" {
				return nil
			}
			if err := putPresigned(cmd.Context(), up.UploadURL, data, contentType); err != nil {
				return err
			}
			fmt.Fprintf(out, "Uploaded %s (%d bytes)\n", file, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "upload this file to the presigned URL")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type of the uploaded file (sniffed when empty)")
	return cmd
}
