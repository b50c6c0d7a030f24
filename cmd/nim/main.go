package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/next-dev/nim"
	"github.com/next-dev/nim/bitmap"
	"github.com/next-dev/nim/nip"
	"github.com/urfave/cli/v2"
)

const defaultDB = "nim.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadPalette(c *cli.Context) (*nip.Palette, error) {
	p := nip.Default()
	if c.IsSet("pal") {
		var err error
		if p, err = nim.LoadPalette(c.String("pal"), c.Int("colors")); err != nil {
			return nil, err
		}
	}

	if c.IsSet("transparent") {
		t, err := nim.ParseIndex(c.String("transparent"))
		if err != nil {
			return nil, err
		}
		p.Transparent = t
	}

	return p, nil
}

func newConverter(c *cli.Context, cache *nim.Cache) (*nim.Converter, error) {
	p, err := loadPalette(c)
	if err != nil {
		return nil, err
	}

	depth := bitmap.Depth8
	if c.Bool("4bit") {
		depth = bitmap.Depth4
	}

	conv := nim.New(p, depth, cache, newLogger(c))

	if c.IsSet("resize") {
		w, h, err := nim.ParseSize(c.String("resize"))
		if err != nil {
			return nil, err
		}
		conv.Resize(w, h)
	}

	return conv, nil
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "pal",
			Usage: "path to palette, otherwise the standard palette is used",
		},
		&cli.BoolFlag{
			Name:    "4bit",
			Aliases: []string{"4"},
			Usage:   "pack two pixels per byte",
		},
		&cli.StringFlag{
			Name:    "transparent",
			Aliases: []string{"t"},
			Usage:   "transparent palette index, decimal or $-prefixed hex",
		},
		&cli.IntFlag{
			Name:  "colors",
			Value: nip.MaxColors,
			Usage: "maximum colours kept when the palette is an image",
		},
		&cli.StringFlag{
			Name:  "resize",
			Usage: "scale images to WIDTHxHEIGHT before converting",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "nim"
	app.Usage = "ZX Spectrum Next image conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NIM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to conversion cache",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "palette",
			Usage:       "Convert a palette to NIP format",
			Description: "FILE may be a JASC-PAL palette, a NIP palette or an image. The output is written alongside it with a .nip extension.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "extended",
					Aliases: []string{"9"},
					Usage:   "store full 9-bit colour entries",
				},
				&cli.BoolFlag{
					Name:    "default",
					Aliases: []string{"d"},
					Usage:   "write the standard palette instead of reading FILE",
				},
				&cli.StringFlag{
					Name:    "transparent",
					Aliases: []string{"t"},
					Usage:   "transparent palette index, decimal or $-prefixed hex",
				},
				&cli.IntFlag{
					Name:  "colors",
					Value: nip.MaxColors,
					Usage: "maximum colours kept when FILE is an image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()

				p := nip.Default()
				if !c.Bool("default") {
					var err error
					if p, err = nim.LoadPalette(file, c.Int("colors")); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				p.Extended = c.Bool("extended")

				if c.IsSet("transparent") {
					t, err := nim.ParseIndex(c.String("transparent"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					p.Transparent = t
				}

				if err := nim.WritePalette(nim.ReplaceExt(file, ".nip"), p); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "image",
			Usage:       "Convert an image to NIM format",
			Description: "The output is written alongside FILE with a .nim extension.",
			ArgsUsage:   "FILE",
			Flags:       convertFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, err := newConverter(c, nil)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.ConvertFile(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Recursively convert every image under a directory",
			Description: "Conversions are cached so only changed files are converted again on a rescan.",
			ArgsUsage:   "DIRECTORY",
			Flags:       convertFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cache, err := nim.OpenCache(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer cache.Close()

				conv, err := newConverter(c, cache)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
