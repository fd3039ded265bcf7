package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/internal/workspace"
	"github.com/haierkeys/markdown-note-service/pkg/fileurl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// EnvNoteToken token read when --token is empty
// EnvNoteToken 未指定 --token 时读取的环境变量
const EnvNoteToken = "MARKDOWN_NOTE_TOKEN"

type noteFlags struct {
	server  string
	token   string
	timeout time.Duration
}

func (f *noteFlags) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.timeout)
}

// workspaceFor signs a client in with the saved token and starts a controller on it
// workspaceFor 使用保存的 Token 登录并启动工作区控制器
func (f *noteFlags) workspaceFor(ctx context.Context) (*workspace.Client, *workspace.Controller, error) {
	token := f.token
	if token == "" {
		token = os.Getenv(EnvNoteToken)
	}
	if token == "" {
		return nil, nil, workspace.ErrAuthRequired
	}

	client := workspace.NewClient(f.server)
	if _, err := client.UseToken(ctx, token); err != nil {
		return nil, nil, err
	}

	c := workspace.NewController(client, client.Sessions(), workspace.WithLogger(bootstrapLogger))
	c.Start(ctx)
	return client, c, nil
}

func init() {
	flags := &noteFlags{}

	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Work with notes on a running server",
	}
	pf := noteCmd.PersistentFlags()
	pf.StringVarP(&flags.server, "server", "s", "http://127.0.0.1:9000", "server base url")
	pf.StringVarP(&flags.token, "token", "t", "", "auth token (default $"+EnvNoteToken+")")
	pf.DurationVar(&flags.timeout, "timeout", 90*time.Second, "request timeout")

	var password string
	loginCmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Sign in and print the auth token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			sess, err := workspace.NewClient(flags.server).Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Token)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "password")

	lsCmd := &cobra.Command{
		Use:   "ls [query]",
		Short: "List notes, most recently updated first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			_, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()

			if len(args) > 0 {
				c.SetQuery(args[0])
			}
			notes := c.Notes()
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, c.EmptyMessage())
				return nil
			}
			for _, n := range notes {
				snippet := strings.ReplaceAll(n.ContentSnippet(), "\n", " ")
				fmt.Fprintf(out, "%s  %s  %s  %s\n", n.ID, n.UpdatedAt.Local().Format(time.DateTime), n.DisplayTitle(), snippet)
			}
			return nil
		},
	}

	var newTitle, newFile string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note, optionally from a markdown file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			_, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()

			n, err := c.Create(ctx)
			if err != nil {
				return err
			}

			if newFile != "" {
				content, err := os.ReadFile(newFile)
				if err != nil {
					return err
				}
				if newTitle == "" {
					newTitle = strings.TrimSuffix(filepath.Base(newFile), filepath.Ext(newFile))
				}
				c.SetContent(string(content))
			}
			if newTitle != "" {
				c.SetTitle(newTitle)
			}
			if newTitle != "" || newFile != "" {
				if _, err := c.Save(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}
	newCmd.Flags().StringVar(&newTitle, "title", "", "note title")
	newCmd.Flags().StringVarP(&newFile, "file", "f", "", "markdown file to import")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			_, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()

			return c.Delete(ctx, args[0])
		},
	}

	var exportDir string
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Download a note as <title>.md",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			client, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()

			name, body, err := client.ExportNote(ctx, args[0])
			if err != nil {
				return err
			}
			if err := fileurl.CreatePath(exportDir, os.ModePerm); err != nil {
				return err
			}
			path := filepath.Join(exportDir, fileurl.SafeFileName(name))
			if err := os.WriteFile(path, body, 0644); err != nil {
				return err
			}
			bootstrapLogger.Info("note exported", zap.String("id", args[0]), zap.String("path", path))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "output directory")

	previewCmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Print the rendered HTML of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			client, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()

			n, err := client.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			html, err := client.Preview(ctx, n.Content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	var assistNote string
	assistCmd := &cobra.Command{
		Use:   "assist <generate|expand|summarize|improve> <text>",
		Short: "Run an AI action; with --note the result is written into the note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := flags.context()
			defer cancel()

			action := workspace.Action(args[0])
			text := strings.Join(args[1:], " ")

			if assistNote == "" {
				result, err := workspace.NewClient(flags.server).Assist(ctx, action, text)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			}

			client, c, err := flags.workspaceFor(ctx)
			if err != nil {
				return err
			}
			defer c.Stop()
			if err := c.Select(assistNote); err != nil {
				return err
			}

			a := workspace.NewAssistant(client, c, nil, bootstrapLogger)
			if action == workspace.ActionGenerate {
				err = a.Generate(ctx, text)
			} else {
				err = a.RunSelectionAction(ctx, action, workspace.Selection{Text: text, Region: workspace.RegionPreview})
			}
			if err != nil {
				return err
			}
			if _, err := c.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.ExportFileName(c.Title()))
			return nil
		},
	}
	assistCmd.Flags().StringVar(&assistNote, "note", "", "note id to edit")

	noteCmd.AddCommand(loginCmd, lsCmd, newCmd, rmCmd, exportCmd, previewCmd, assistCmd)
	rootCmd.AddCommand(noteCmd)
}
