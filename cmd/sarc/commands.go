package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v2"

	"github.com/meigma/sarc"
)

// openFlags are shared by every command. Archive arguments may be local
// paths or http(s) URLs.
func openFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "expect-digest", Usage: "Verify the stored archive against `DIGEST`", EnvVars: []string{"SARC_EXPECT_DIGEST"}},
		&cli.BoolFlag{Name: "strict", Usage: "Reject archives with records outside the buffer"},
	}
}

func (e *env) open(c *cli.Context) (*sarc.Archive, string, error) {
	location := c.Args().First()
	if location == "" {
		return nil, "", errors.New("archive path is required")
	}
	opts := []sarc.OpenOption{sarc.OpenWithLogger(e.logger)}
	if d := c.String("expect-digest"); d != "" {
		parsed, err := digest.Parse(d)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --expect-digest: %w", err)
		}
		opts = append(opts, sarc.OpenWithExpectedDigest(parsed))
	}
	if c.Bool("strict") {
		opts = append(opts, sarc.OpenWithStrictValidation())
	}
	a, err := sarc.Open(c.Context, location, opts...)
	if err != nil {
		return nil, "", err
	}
	return a, location, nil
}

func (e *env) listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the files of an archive",
		ArgsUsage: "<archive>",
		Flags: append(openFlags(),
			&cli.BoolFlag{Name: "digest", Usage: "Show the sha256 digest of each file"},
			&cli.BoolFlag{Name: "bytes", Usage: "Show sizes in bytes instead of human-readable units"},
		),
		Action: func(c *cli.Context) error {
			a, location, err := e.open(c)
			if err != nil {
				return err
			}
			out := c.App.Writer
			showDigest := c.Bool("digest")

			if showDigest {
				fmt.Fprintf(out, "%-10s %-5s %-71s Name\n", "Size", "Align", "Digest")
			} else {
				fmt.Fprintf(out, "%-10s %-5s Name\n", "Size", "Align")
			}
			listed := uint32(0)
			for i, view := range a.Files() {
				listed++
				if !view.Valid() {
					e.logger.Warn("skipping unreadable record", "index", i)
					fmt.Fprintf(out, "%10s %5s <record %d out of bounds>\n", "-", "-", i)
					continue
				}
				size := humanize.IBytes(uint64(view.Size()))
				if c.Bool("bytes") {
					size = fmt.Sprint(view.Size())
				}
				if showDigest {
					fmt.Fprintf(out, "%10s %5d %-71s %s\n", size, view.Alignment(), view.Digest(), view.Name())
				} else {
					fmt.Fprintf(out, "%10s %5d %s\n", size, view.Alignment(), view.Name())
				}
			}
			if missing := a.NumFiles() - listed; missing > 0 {
				e.logger.Warn("offset table truncated", "declared", a.NumFiles(), "readable", listed)
				fmt.Fprintf(out, "%10s %5s <%d record(s) beyond offset table>\n", "-", "-", missing)
			}
			fmt.Fprintf(out, "%d file(s) in %s.\n", a.NumFiles(), location)
			return nil
		},
	}
}

func (e *env) catCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Write one file of an archive to stdout",
		ArgsUsage: "<archive> <name>",
		Flags:     openFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("cat takes an archive and one file name")
			}
			a, location, err := e.open(c)
			if err != nil {
				return err
			}
			name := c.Args().Get(1)
			view := a.Find(name)
			if !view.Valid() {
				return fmt.Errorf("%s: %q not found", location, name)
			}
			_, err = c.App.Writer.Write(view.Data())
			return err
		},
	}
}

func (e *env) extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract files from an archive",
		ArgsUsage: "<archive> [names...]",
		Flags: append(openFlags(),
			&cli.StringFlag{Name: "dir", Aliases: []string{"C"}, Value: ".", Usage: "Extract into `DIR`", TakesFile: true},
			&cli.BoolFlag{Name: "overwrite", Usage: "Replace existing files"},
			&cli.IntFlag{Name: "workers", Usage: "Number of files written concurrently (0 uses GOMAXPROCS)"},
		),
		Action: func(c *cli.Context) error {
			a, _, err := e.open(c)
			if err != nil {
				return err
			}
			out := c.App.Writer
			names := c.Args().Tail()
			for _, name := range names {
				if !a.Find(name).Valid() {
					fmt.Fprintf(out, "Skip: %s (not in archive)\n", name)
				}
			}

			stats, err := sarc.Extract(c.Context, a, c.String("dir"), names,
				sarc.ExtractWithOverwrite(c.Bool("overwrite")),
				sarc.ExtractWithWorkers(c.Int("workers")),
				sarc.ExtractWithLogger(e.logger),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Extracted %d file(s), %s.\n", stats.Extracted, humanize.IBytes(stats.Bytes))
			if stats.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d existing or shadowed file(s).\n", stats.Skipped)
			}
			return nil
		},
	}
}
