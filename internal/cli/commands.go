package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/nottodo/internal/itemstore"
	"github.com/idilsaglam/nottodo/internal/model"
	"github.com/idilsaglam/nottodo/internal/tui"
	"github.com/idilsaglam/nottodo/internal/ui"
)

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item (text can be multiple words)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: nottodo add <text...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.doAdd(cmd, strings.Join(args, " "))
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("usage: nottodo ls [--format text|json|yaml]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.doList(cmd, format)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return c
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove the item with the given id (see `nottodo ls`)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: nottodo rm <id>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return usagef("rm: not a number: %s", args[0])
			}
			return a.doRemove(cmd, id)
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// -------------- subcommand impls ----------------

func (a *app) doAdd(cmd *cobra.Command, text string) error {
	s, release, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	if d := s.Check(text); d != itemstore.Accepted {
		return &exitError{code: 1, err: errors.New("add: " + d.String())}
	}
	it, added, err := s.Add(cmd.Context(), text)
	if err != nil {
		return err
	}
	if !added {
		return &exitError{code: 1, err: errors.New("add: declined")}
	}
	ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %q (id %d, %d left)", it.Text, it.ID, s.Remaining()))
	return nil
}

func (a *app) doList(cmd *cobra.Command, format string) error {
	s, release, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	items := s.Items()
	switch strings.ToLower(format) {
	case "json":
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		fmt.Fprintln(out, string(b))
	case "yaml", "yml":
		b, err := yaml.Marshal(items)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		fmt.Fprint(out, string(b))
	case "text", "":
		fmt.Fprintln(out, ui.Panel(listLines(items)))
	default:
		return usagef("ls: unknown format %q (want text, json or yaml)", format)
	}
	return nil
}

func (a *app) doRemove(cmd *cobra.Command, id int64) error {
	s, release, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	it, _ := s.Find(id)
	removed, err := s.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Current().Muted.Render(fmt.Sprintf("no item with id %d", id)))
		return nil
	}
	ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %q", it.Text))
	return nil
}

func (a *app) runTUI(ctx context.Context) error {
	s, release, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err := tui.Run(ctx, s, a.log); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// -------------- rendering helpers --------------

func listLines(items []model.Item) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s",
		t.Title.Render(ui.Heading),
		t.Accent.Render(ui.CapacityBar(len(items), model.MaxItems)),
	)
	lines := []string{header, ""}

	if len(items) == 0 {
		lines = append(lines, t.Muted.Render(ui.EmptyTitle), t.Muted.Render(ui.EmptyHint))
	}
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			truncate(it.Text, 60),
			t.Muted.Render(rowMeta(it)),
		))
	}
	if len(items) >= model.MaxItems {
		lines = append(lines, "", t.Warn.Render(itemstore.DeclineFull.String()))
	}
	lines = append(lines, "", t.Muted.Render(ui.Tagline))
	return lines
}

// rowMeta is the "(id …, added …)" suffix of an ls row.
func rowMeta(it model.Item) string {
	created := it.Created()
	if created.IsZero() {
		return fmt.Sprintf("(id %d)", it.ID)
	}
	return fmt.Sprintf("(id %d, added %s UTC)", it.ID, created.UTC().Format("2006-01-02 15:04"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
